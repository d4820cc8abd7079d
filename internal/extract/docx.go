package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// documentXML mirrors the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// docxPages extracts the paragraph text of a DOCX file as a single
// synthetic page. DOCX carries no pagination, so the chunker derives
// synthetic page numbers from character offsets.
func docxPages(data []byte) ([]domain.Page, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}

	content, err := documentText(reader)
	if err != nil {
		return nil, err
	}
	if isBlank(content) {
		return nil, nil
	}

	return []domain.Page{{Number: 1, Text: content}}, nil
}

func documentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}

		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("docx has no word/document.xml")
}

func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	var result strings.Builder
	for _, para := range doc.Body.Paragraphs {
		text := paragraphText(para)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(text)
	}

	return result.String(), nil
}

func paragraphText(para paragraph) string {
	var b strings.Builder
	for _, r := range para.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
