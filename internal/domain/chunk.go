package domain

import "fmt"

// FileKind is the declared type of an uploaded document, inferred from
// its filename extension.
type FileKind string

const (
	FileKindPDF  FileKind = "pdf"
	FileKindDOCX FileKind = "docx"
	FileKindTXT  FileKind = "txt"
)

// Page is one page (real for PDF, whole document otherwise) of
// extracted plain text.
type Page struct {
	Number int
	Text   string
}

// ExtractedDocument is the plain-text form of one uploaded file.
type ExtractedDocument struct {
	Name  string
	Kind  FileKind
	Pages []Page
}

// Text concatenates all page text in order.
func (d ExtractedDocument) Text() string {
	out := ""
	for i, p := range d.Pages {
		if i > 0 {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

// Chunk is a bounded piece of extracted text with its provenance.
// PDF chunks carry real page numbers; DOCX/TXT chunks carry a synthetic
// page computed from the character offset.
type Chunk struct {
	Doc  string
	Page int
	Text string
}

// Index pairs chunks with their embedding vectors. It is built wholesale
// and replaced atomically; there is no incremental update path.
type Index struct {
	Chunks     []Chunk
	Embeddings [][]float32
}

// Len returns the number of indexed chunks.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.Chunks)
}

// ValidateIndex checks the chunk/embedding pairing invariant.
func ValidateIndex(i *Index) error {
	if i == nil {
		return fmt.Errorf("index cannot be nil")
	}

	if len(i.Chunks) != len(i.Embeddings) {
		return fmt.Errorf("index has %d chunks but %d embeddings", len(i.Chunks), len(i.Embeddings))
	}

	return nil
}
