package polls

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownSchema is returned for a chart schema with no registered decoder.
var ErrUnknownSchema = errors.New("unknown chart schema")

// Schema identifies the record shape a poll source publishes its chart in.
type Schema string

const (
	// SchemaOnderzoekAmsterdam is the O&S chart shape: party under "party",
	// "partij" or "naam", percentage as a 0-1 fraction, seats under "seats"
	// or "zetels".
	SchemaOnderzoekAmsterdam Schema = "onderzoek_amsterdam"
	// SchemaManual is the curated shape: "party_name", "percentage" in
	// percent, "seats".
	SchemaManual Schema = "manual"
)

// maxSeats bounds a readable seat count; larger values are chart noise.
const maxSeats = math.MaxInt32

// ResultRow is one party line of a poll before it is matched to a party.
type ResultRow struct {
	PartyNameRaw string   `json:"party_name_raw"`
	Percentage   *float64 `json:"percentage,omitempty"`
	Seats        *int     `json:"seats,omitempty"`
}

// recordDecoder turns one JSON object into a row. ok is false when the
// record has no party name.
type recordDecoder func(raw json.RawMessage) (row ResultRow, ok bool)

var decoders = map[Schema]recordDecoder{
	SchemaOnderzoekAmsterdam: decodeOnderzoekRecord,
	SchemaManual:             decodeManualRecord,
}

// ParseResults decodes chart records with the decoder for schema.
// Records that are not JSON objects or carry no party name are skipped;
// numeric fields that cannot be read become nil without affecting the rest
// of the row.
func ParseResults(schema Schema, values []json.RawMessage) ([]ResultRow, error) {
	decode, ok := decoders[schema]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
	rows := make([]ResultRow, 0, len(values))
	for _, raw := range values {
		if !isObject(raw) {
			continue
		}
		if row, ok := decode(raw); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type onderzoekRecord struct {
	Party      flexString `json:"party"`
	Partij     flexString `json:"partij"`
	Naam       flexString `json:"naam"`
	Percentage flexNumber `json:"percentage"`
	Seats      flexNumber `json:"seats"`
	Zetels     flexNumber `json:"zetels"`
}

func decodeOnderzoekRecord(raw json.RawMessage) (ResultRow, bool) {
	var rec onderzoekRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ResultRow{}, false
	}
	name := firstNonEmpty(rec.Party, rec.Partij, rec.Naam)
	if name == "" {
		return ResultRow{}, false
	}
	row := ResultRow{PartyNameRaw: name}
	if v, ok := rec.Percentage.float(); ok {
		pct := roundTo(v*100, 6)
		row.Percentage = &pct
	}
	seats := rec.Seats
	if !seats.present {
		seats = rec.Zetels
	}
	row.Seats = seats.seats()
	return row, true
}

type manualRecord struct {
	PartyName  flexString `json:"party_name"`
	Percentage flexNumber `json:"percentage"`
	Seats      flexNumber `json:"seats"`
}

func decodeManualRecord(raw json.RawMessage) (ResultRow, bool) {
	var rec manualRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ResultRow{}, false
	}
	name := strings.TrimSpace(rec.PartyName.value)
	if name == "" {
		return ResultRow{}, false
	}
	row := ResultRow{PartyNameRaw: name}
	if v, ok := rec.Percentage.float(); ok {
		row.Percentage = &v
	}
	row.Seats = rec.Seats.seats()
	return row, true
}

// flexString accepts a JSON string or number; anything else leaves it empty.
type flexString struct {
	value string
}

func (s *flexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		s.value = str
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		s.value = num.String()
	}
	return nil
}

// flexNumber accepts a JSON number or numeric string. present records that
// the key carried a non-null value, even an unreadable one.
type flexNumber struct {
	present bool
	valid   bool
	value   float64
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	n.present = true
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value, n.valid = f, true
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			n.value, n.valid = f, true
		}
	}
	return nil
}

func (n flexNumber) float() (float64, bool) {
	if !n.valid || math.IsNaN(n.value) || math.IsInf(n.value, 0) {
		return 0, false
	}
	return n.value, true
}

func (n flexNumber) seats() *int {
	v, ok := n.float()
	if !ok {
		return nil
	}
	r := math.RoundToEven(v)
	if r < 0 || r > maxSeats {
		return nil
	}
	s := int(r)
	return &s
}

func firstNonEmpty(vals ...flexString) string {
	for _, v := range vals {
		if v.value != "" {
			return v.value
		}
	}
	return ""
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
