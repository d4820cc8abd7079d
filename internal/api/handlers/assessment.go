package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

type AssessmentHandler struct {
	auditor service.Auditor
}

func NewAssessmentHandler(auditor service.Auditor) *AssessmentHandler {
	return &AssessmentHandler{auditor: auditor}
}

type IndexResponse struct {
	Chunks int `json:"chunks"`
}

// BuildIndex rebuilds the session's vector index from its documents.
func (h *AssessmentHandler) BuildIndex(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	chunks, err := h.auditor.BuildIndex(r.Context(), sess)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, IndexResponse{Chunks: chunks})
}

type ProposeResponse struct {
	Proposed int `json:"proposed"`
}

// Propose drafts an assessment entry for every questionnaire measure.
func (h *AssessmentHandler) Propose(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	proposed, err := h.auditor.Prefill(r.Context(), sess)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ProposeResponse{Proposed: proposed})
}

type UpdateEntryRequest struct {
	Status        string            `json:"status"`
	Answer        string            `json:"answer"`
	Justification string            `json:"justification"`
	Citations     []domain.Citation `json:"citations,omitempty"`
}

type EntryResponse struct {
	MeasureID     string            `json:"measure_id"`
	Status        string            `json:"status"`
	Answer        string            `json:"answer,omitempty"`
	Justification string            `json:"justification,omitempty"`
	Citations     []domain.Citation `json:"citations,omitempty"`
}

// Update records or overwrites the entry of one measure. The status
// must be one of the closed enumeration; free-form text belongs in
// answer and justification.
func (h *AssessmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	measureID := chi.URLParam(r, "measureID")
	if !measureExists(sess.Mode, measureID) {
		api.HandleError(w, domain.ErrMeasureNotFound)
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.Status(req.Status)
	if !status.IsValid() {
		api.HandleError(w, domain.ErrInvalidStatus)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Assessment.Set(measureID, domain.AssessmentEntry{
		Status:        status,
		Answer:        req.Answer,
		Justification: req.Justification,
		Citations:     req.Citations,
	})

	api.Success(w, http.StatusOK, entryToResponse(measureID, sess.Assessment.Get(measureID)))
}

// List returns the current entry for every measure of the
// questionnaire, unanswered ones included.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	measures := service.Questionnaire(sess.Mode)
	out := make([]EntryResponse, len(measures))
	for i, m := range measures {
		out[i] = entryToResponse(m.ID, sess.Assessment.Get(m.ID))
	}

	api.Success(w, http.StatusOK, out)
}

func entryToResponse(measureID string, entry domain.AssessmentEntry) EntryResponse {
	return EntryResponse{
		MeasureID:     measureID,
		Status:        string(entry.Status),
		Answer:        entry.Answer,
		Justification: entry.Justification,
		Citations:     entry.Citations,
	}
}

func measureExists(mode domain.AuditMode, measureID string) bool {
	for _, m := range service.Questionnaire(mode) {
		if m.ID == measureID {
			return true
		}
	}
	return false
}
