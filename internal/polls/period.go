package polls

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var dutchMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maart":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"augustus":  time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

const (
	monthAlt = `(januari|februari|maart|april|mei|juni|juli|augustus|september|oktober|november|december)`
	rangeSep = `\s+(?:en|t/m|tot|–|-)\s+`
	dayMonth = `(\d{1,2})\s+` + monthAlt
)

var (
	// "27 januari 2026 – 9 februari 2026"
	periodBothYears = regexp.MustCompile(`(?i)` + dayMonth + `\s+(\d{4})` +
		`(?:\s+(?:en|t/m|tot)\s+|\s*[–-]\s*)` + dayMonth + `\s+(\d{4})`)
	// "27 januari en 9 februari 2026"
	periodSameYear = regexp.MustCompile(`(?i)` + dayMonth + rangeSep + dayMonth + `\s+(\d{4})`)
	// "27 januari en 9 februari", only when no year follows
	periodNoYear   = regexp.MustCompile(`(?i)` + dayMonth + rangeSep + dayMonth)
	followedByYear = regexp.MustCompile(`^\s+\d{4}`)
	// "9 februari 2026"
	singleDate = regexp.MustCompile(`(?i)` + dayMonth + `\s+(\d{4})`)
)

// FieldPeriod is the fieldwork window of a poll. Either bound may be nil.
type FieldPeriod struct {
	Start *time.Time
	End   *time.Time
}

// ExtractFieldPeriod finds the first fieldwork period in Dutch methodology
// text. Grammars are tried in order: a range with a year on both sides, a
// range with one trailing year, a range without any year (dated with
// fallbackYear, skipped when fallbackYear is 0), and finally a single dated
// day, which yields only End. A match whose day and month do not form a
// real calendar date counts as no match for that grammar.
func ExtractFieldPeriod(text string, fallbackYear int) FieldPeriod {
	if m := periodBothYears.FindStringSubmatch(text); m != nil {
		start, ok1 := dutchDate(m[1], m[2], m[3])
		end, ok2 := dutchDate(m[4], m[5], m[6])
		if ok1 && ok2 {
			return FieldPeriod{Start: &start, End: &end}
		}
	}

	if m := periodSameYear.FindStringSubmatch(text); m != nil {
		start, ok1 := dutchDate(m[1], m[2], m[5])
		end, ok2 := dutchDate(m[3], m[4], m[5])
		if ok1 && ok2 {
			return FieldPeriod{Start: &start, End: &end}
		}
	}

	if fallbackYear > 0 {
		if m := findRangeWithoutYear(text); m != nil {
			year := strconv.Itoa(fallbackYear)
			start, ok1 := dutchDate(m[1], m[2], year)
			end, ok2 := dutchDate(m[3], m[4], year)
			if ok1 && ok2 {
				return FieldPeriod{Start: &start, End: &end}
			}
		}
	}

	if m := singleDate.FindStringSubmatch(text); m != nil {
		if end, ok := dutchDate(m[1], m[2], m[3]); ok {
			return FieldPeriod{End: &end}
		}
	}

	return FieldPeriod{}
}

// findRangeWithoutYear returns the leftmost year-less range that is not
// directly followed by a year, retrying one rune further on each rejection.
func findRangeWithoutYear(text string) []string {
	offset := 0
	for offset < len(text) {
		rest := text[offset:]
		loc := periodNoYear.FindStringSubmatchIndex(rest)
		if loc == nil {
			return nil
		}
		if !followedByYear.MatchString(rest[loc[1]:]) {
			groups := make([]string, len(loc)/2)
			for i := range groups {
				if loc[2*i] >= 0 {
					groups[i] = rest[loc[2*i]:loc[2*i+1]]
				}
			}
			return groups
		}
		_, size := utf8.DecodeRuneInString(rest[loc[0]:])
		offset += loc[0] + size
	}
	return nil
}

func dutchDate(day, month, year string) (time.Time, bool) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	mo, ok := dutchMonths[strings.ToLower(month)]
	if !ok {
		return time.Time{}, false
	}
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != mo {
		return time.Time{}, false
	}
	return t, true
}

var sampleSize = regexp.MustCompile(`(\d{1,3}[.,]\d{3}|\d{3,})\s+(?:respondenten|Amsterdammers|personen)`)

// ExtractSampleSize reads a respondent count such as "1.354 Amsterdammers"
// from methodology text. It returns nil when none is found.
func ExtractSampleSize(text string) *int {
	m := sampleSize.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// ParsePublicationDate reads the leading ISO date of a timestamp such as
// "2026-02-16T09:00:00.000Z".
func ParsePublicationDate(s string) *time.Time {
	if len(s) < 10 {
		return nil
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return nil
	}
	return &t
}
