// Package extract converts uploaded PDF/DOCX/TXT byte blobs into plain
// text, page-aware for PDF. A corrupt document yields an error the
// caller logs and skips; it never aborts a whole upload batch.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// KindFromName infers the file kind from the filename extension.
// Unsupported extensions (images included) return ErrUnsupportedFileType.
func KindFromName(name string) (domain.FileKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return domain.FileKindPDF, nil
	case ".docx":
		return domain.FileKindDOCX, nil
	case ".txt":
		return domain.FileKindTXT, nil
	}
	return "", domain.ErrUnsupportedFileType
}

// Document extracts plain text from raw bytes according to the file kind
// inferred from name. PDF pages keep their real page numbers; DOCX and
// TXT come back as a single synthetic page that the chunker windows.
func Document(name string, data []byte) (domain.ExtractedDocument, error) {
	kind, err := KindFromName(name)
	if err != nil {
		return domain.ExtractedDocument{}, err
	}

	doc := domain.ExtractedDocument{Name: name, Kind: kind}

	switch kind {
	case domain.FileKindPDF:
		doc.Pages, err = pdfPages(data)
	case domain.FileKindDOCX:
		doc.Pages, err = docxPages(data)
	case domain.FileKindTXT:
		doc.Pages = txtPages(data)
	}
	if err != nil {
		return domain.ExtractedDocument{}, err
	}

	return doc, nil
}

func txtPages(data []byte) []domain.Page {
	text := strings.ToValidUTF8(string(data), "")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []domain.Page{{Number: 1, Text: text}}
}
