package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

// Exporter writes deliverables and resolves their filenames back to
// paths for download.
type Exporter interface {
	Excel(sess *domain.Session, analysis service.Analysis) (string, error)
	Word(sess *domain.Session, analysis service.Analysis) (string, error)
	CSV(sess *domain.Session, analysis service.Analysis) (string, error)
	Open(filename string) (string, error)
}

type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

type ExportResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Create writes one deliverable (excel, word or csv) for the current
// analysis and returns where to download it.
func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	analysis := service.BuildAnalysis(sess, time.Now())

	var name string
	var err error
	switch chi.URLParam(r, "format") {
	case "excel":
		name, err = h.exporter.Excel(sess, analysis)
	case "word":
		name, err = h.exporter.Word(sess, analysis)
	case "csv":
		name, err = h.exporter.CSV(sess, analysis)
	default:
		api.Error(w, http.StatusBadRequest, "unknown export format")
		return
	}
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ExportResponse{
		Filename: name,
		URL:      "/exports/" + name,
	})
}

// Download streams a previously exported file.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.exporter.Open(filename)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(filename))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}
