// Package pdftext turns text extracted from party program PDFs into
// readable paragraphs and splits it into page-attributed chunks for
// retrieval.
package pdftext

import (
	"regexp"
	"strings"
)

// mergeMaxWords is the word count at or below which a line is treated as a
// wrapped fragment of its neighbour.
const mergeMaxWords = 3

var (
	multiSpace     = regexp.MustCompile(` {2,}`)
	hyphenatedWrap = regexp.MustCompile(`-\n([\p{L}\p{N}_])`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)

	// Line boundaries recognized besides \n.
	lineBreaks = strings.NewReplacer(
		"\r\n", "\n", "\r", "\n", "\f", "\n", "\v", "\n",
		"\x1c", "\n", "\x1d", "\n", "\x1e", "\n",
		"\u0085", "\n", "\u2028", "\n", "\u2029", "\n",
	)
)

// ShouldMerge reports whether next continues prev on the same logical line:
// one of the two lines has at most three words and prev does not end a
// sentence. Both lines are expected to be trimmed and non-blank.
func ShouldMerge(prev, next string) bool {
	short := len(strings.Fields(prev)) <= mergeMaxWords || len(strings.Fields(next)) <= mergeMaxWords
	return short && !endsSentence(prev)
}

func endsSentence(line string) bool {
	if line == "" {
		return false
	}
	switch line[len(line)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

type mergeState int

const (
	stateParagraphBreak mergeState = iota
	stateCollecting
)

// lineMerger rebuilds logical lines from layout-extracted physical lines.
// In stateCollecting it holds the words of the logical line being built and
// the last physical line added to it; a blank line moves it to
// stateParagraphBreak.
type lineMerger struct {
	state mergeState
	out   []string
	words []string
	last  string
}

func (m *lineMerger) feed(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		m.flush()
		if len(m.out) > 0 && m.out[len(m.out)-1] != "" {
			m.out = append(m.out, "")
		}
		m.state = stateParagraphBreak
		return
	}

	if m.state == stateCollecting && ShouldMerge(m.last, line) {
		m.words = append(m.words, line)
		m.last = line
		return
	}

	m.flush()
	m.words = append(m.words, line)
	m.last = line
	m.state = stateCollecting
}

func (m *lineMerger) flush() {
	if len(m.words) == 0 {
		return
	}
	merged := multiSpace.ReplaceAllString(strings.Join(m.words, " "), " ")
	m.out = append(m.out, merged)
	m.words = m.words[:0]
	m.last = ""
}

// CleanText reconstructs readable text from layout-mode PDF extraction,
// which breaks running text into short physical lines. Short fragments are
// joined to their neighbours, runs of blank lines become a single paragraph
// break, words hyphenated across a line break are rejoined, and the result
// is trimmed.
func CleanText(raw string) string {
	m := &lineMerger{}
	for _, line := range strings.Split(lineBreaks.Replace(raw), "\n") {
		m.feed(line)
	}
	m.flush()

	text := strings.Join(m.out, "\n")
	text = hyphenatedWrap.ReplaceAllString(text, "$1")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
