package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/extract"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

const maxUploadMemory = 32 << 20

type DocumentHandler struct {
	auditor service.Auditor
}

func NewDocumentHandler(auditor service.Auditor) *DocumentHandler {
	return &DocumentHandler{auditor: auditor}
}

type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type UploadResponse struct {
	Added      []string      `json:"added"`
	Skipped    []SkippedFile `json:"skipped,omitempty"`
	ClientName string        `json:"client_name"`
	Documents  int           `json:"documents"`
}

// Upload accepts a multipart batch of documents. A file that fails
// extraction is skipped with a reason; it never fails the batch. Each
// document is scanned for the audited organisation's name: documents
// naming different organisations reject the batch, and a detected name
// that contradicts the declared one does too.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		api.Error(w, http.StatusBadRequest, "no files provided")
		return
	}

	var docs []domain.ExtractedDocument
	var skipped []SkippedFile
	for _, header := range files {
		doc, err := extractFile(header)
		if err != nil {
			log.Printf("upload: skipping %s: %v", header.Filename, err)
			skipped = append(skipped, SkippedFile{Name: header.Filename, Reason: err.Error()})
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		api.HandleError(w, domain.ErrNoDocuments)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	detected, err := h.auditor.DetectClient(r.Context(), docs)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if detected != service.UnknownClient {
		if sess.ClientName == "" || sess.ClientName == service.UnknownClient {
			sess.ClientName = detected
		} else if !sameClient(sess.ClientName, detected) {
			api.HandleError(w, domain.ErrClientMismatch)
			return
		}
	}

	sess.Documents = append(sess.Documents, docs...)

	added := make([]string, len(docs))
	for i, doc := range docs {
		added[i] = doc.Name
	}

	api.Success(w, http.StatusOK, UploadResponse{
		Added:      added,
		Skipped:    skipped,
		ClientName: sess.ClientName,
		Documents:  len(sess.Documents),
	})
}

func extractFile(header *multipart.FileHeader) (domain.ExtractedDocument, error) {
	f, err := header.Open()
	if err != nil {
		return domain.ExtractedDocument{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.ExtractedDocument{}, err
	}

	doc, err := extract.Document(header.Filename, data)
	if err != nil {
		return domain.ExtractedDocument{}, err
	}
	if len(doc.Pages) == 0 {
		return domain.ExtractedDocument{}, errors.New("no extractable text")
	}
	return doc, nil
}

func sameClient(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
