package export

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"vibecheck/internal/domain"
)

const sheetName = "Peiling"

// WriteXLSX writes poll as an Excel workbook with a styled header row.
// Percentages and seats are stored as numbers.
func WriteXLSX(w io.Writer, poll *domain.PollWithResults) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("export.WriteXLSX: WARNING: closing workbook: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range pollRows(poll) {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		r := poll.Results[i]
		if r.Percentage != nil {
			cells[6] = *r.Percentage
		}
		if r.Seats != nil {
			cells[7] = *r.Seats
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetColWidth(sheetName, "A", lastCol, 16); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
