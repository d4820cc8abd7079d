package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// pdfPages extracts text page by page, keeping real page numbers.
// Blank pages are dropped; a page whose text extraction fails is
// skipped rather than failing the document.
func pdfPages(data []byte) ([]domain.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []domain.Page
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if isBlank(text) {
			continue
		}

		pages = append(pages, domain.Page{Number: num, Text: text})
	}

	return pages, nil
}
