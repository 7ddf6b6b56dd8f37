package export

import (
	"encoding/csv"
	"io"

	"vibecheck/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to read UTF-8 CSV.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes poll as CSV with a BOM and a header row.
func WriteCSV(w io.Writer, poll *domain.PollWithResults) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	if err := cw.WriteAll(pollRows(poll)); err != nil {
		return err
	}
	return cw.Error()
}
