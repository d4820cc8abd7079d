// Package rag implements the session-scoped retrieval pipeline:
// chunking with provenance, wholesale embedding index builds and
// brute-force cosine top-k retrieval.
package rag

import (
	"strings"
	"unicode/utf8"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// DefaultChunkStep is the character window for DOCX/TXT chunking,
// sized so one chunk stays well inside the embedding input limit.
const DefaultChunkStep = 1800

// SplitDocument turns an extracted document into provenance-tagged
// chunks. PDF chunks are one per page with real page numbers; DOCX/TXT
// text is cut into step-sized windows, each carrying its window number
// as a synthetic page. Whitespace-only pieces are dropped.
func SplitDocument(doc domain.ExtractedDocument, step int) []domain.Chunk {
	if step <= 0 {
		step = DefaultChunkStep
	}

	if doc.Kind == domain.FileKindPDF {
		return pageChunks(doc)
	}
	return windowChunks(doc, step)
}

// SplitDocuments chunks several documents in upload order.
func SplitDocuments(docs []domain.ExtractedDocument, step int) []domain.Chunk {
	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, SplitDocument(doc, step)...)
	}
	return chunks
}

func pageChunks(doc domain.ExtractedDocument) []domain.Chunk {
	var chunks []domain.Chunk
	for _, page := range doc.Pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Doc:  doc.Name,
			Page: page.Number,
			Text: page.Text,
		})
	}
	return chunks
}

func windowChunks(doc domain.ExtractedDocument, step int) []domain.Chunk {
	text := doc.Text()
	var chunks []domain.Chunk
	page := 0
	for offset := 0; offset < len(text); {
		end := offset + step
		if end > len(text) {
			end = len(text)
		}
		// A window never ends mid-rune; the byte or two it gives up
		// belong to the next window.
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end--
		}
		piece := text[offset:end]
		offset = end
		page++
		if strings.TrimSpace(piece) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Doc:  doc.Name,
			Page: page,
			Text: piece,
		})
	}
	return chunks
}
