package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

type SessionStore interface {
	Create(clientName string, mode domain.AuditMode) (*domain.Session, error)
	Delete(id string)
}

type SessionHandler struct {
	store SessionStore
}

func NewSessionHandler(store SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

type CreateSessionRequest struct {
	ClientName string `json:"client_name"`
	Mode       string `json:"mode"`
}

type SessionResponse struct {
	SessionID  string `json:"session_id"`
	ClientName string `json:"client_name"`
	Mode       string `json:"mode"`
	CreatedAt  string `json:"created_at"`
}

func sessionToResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		SessionID:  s.ID,
		ClientName: s.ClientName,
		Mode:       string(s.Mode),
		CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Create opens a new audit session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := domain.AuditMode(req.Mode)
	if req.Mode == "" {
		mode = domain.AuditModeInternal
	}
	if req.ClientName == "" {
		req.ClientName = service.UnknownClient
	}

	sess, err := h.store.Create(req.ClientName, mode)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, sessionToResponse(sess))
}

// Delete tears down the current session and everything it holds.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.store.Delete(sess.ID)
	api.Success(w, http.StatusOK, map[string]bool{"deleted": true})
}
