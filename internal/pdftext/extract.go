package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the text of a PDF: cleaned per page for chunking, and as a
// whole for summaries and display.
type Document struct {
	Pages    []Page
	FullText string
}

// ExtractBytes reads a PDF held in memory. Pages without text are skipped;
// page numbers stay 1-based positions in the file.
func ExtractBytes(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return extract(r)
}

// ExtractFile reads a PDF from disk.
func ExtractFile(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()
	return extract(r)
}

func extract(r *pdf.Reader) (*Document, error) {
	var (
		raw   []string
		pages []Page
	)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		raw = append(raw, text)
		if cleaned := CleanText(text); cleaned != "" {
			pages = append(pages, Page{Number: i, Text: cleaned})
		}
	}
	return &Document{
		Pages:    pages,
		FullText: CleanText(strings.Join(raw, "\n\n")),
	}, nil
}
