package pdftext

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize = 1500
	DefaultOverlap   = 200
)

// ErrInvalidChunkOptions is returned for a non-positive chunk size or a
// negative overlap.
var ErrInvalidChunkOptions = errors.New("invalid chunk options")

// Page is the cleaned text of one PDF page. Number is 1-based; 0 means the
// page is unknown.
type Page struct {
	Number int
	Text   string
}

// Chunk is a retrieval unit of whole paragraphs with the page range it was
// drawn from.
type Chunk struct {
	Content   string
	PageStart int
	PageEnd   int
}

// ChunkPages packs paragraphs into chunks of about chunkSize runes without
// splitting a paragraph. When a paragraph does not fit, the current chunk
// is closed and the next one starts with the last overlap runes of the
// closed chunk. A new chunk's page range starts at the page of the
// paragraph that opened it.
func ChunkPages(pages []Page, chunkSize, overlap int) ([]Chunk, error) {
	if chunkSize <= 0 || overlap < 0 {
		return nil, ErrInvalidChunkOptions
	}

	var (
		chunks    []Chunk
		cur       string
		curLen    int
		pageStart int
		pageEnd   int
	)
	for _, page := range pages {
		for _, para := range strings.Split(page.Text, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			paraLen := utf8.RuneCountInString(para)

			if cur != "" && curLen+paraLen+2 > chunkSize {
				chunks = append(chunks, Chunk{Content: strings.TrimSpace(cur), PageStart: pageStart, PageEnd: pageEnd})
				if overlap > 0 && curLen > overlap {
					cur = tailRunes(cur, overlap) + "\n\n" + para
				} else {
					cur = para
				}
				curLen = utf8.RuneCountInString(cur)
				pageStart = page.Number
				pageEnd = page.Number
				continue
			}

			if cur == "" {
				cur = para
				curLen = paraLen
				pageStart = page.Number
			} else {
				cur += "\n\n" + para
				curLen += 2 + paraLen
			}
			pageEnd = page.Number
		}
	}

	if content := strings.TrimSpace(cur); content != "" {
		chunks = append(chunks, Chunk{Content: content, PageStart: pageStart, PageEnd: pageEnd})
	}
	return chunks, nil
}

// ChunkText chunks text with no page information.
func ChunkText(text string, chunkSize, overlap int) ([]Chunk, error) {
	return ChunkPages([]Page{{Number: 0, Text: text}}, chunkSize, overlap)
}

func tailRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
