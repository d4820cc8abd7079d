package handlers

import (
	"net/http"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

type QuestionnaireHandler struct{}

func NewQuestionnaireHandler() *QuestionnaireHandler {
	return &QuestionnaireHandler{}
}

type MeasureResponse struct {
	ID       string `json:"id"`
	Theme    string `json:"theme"`
	Title    string `json:"title"`
	Question string `json:"question"`
}

// List returns the full questionnaire for the session's audit mode.
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	measures := service.Questionnaire(sess.Mode)
	out := make([]MeasureResponse, len(measures))
	for i, m := range measures {
		out[i] = MeasureResponse{ID: m.ID, Theme: m.Theme, Title: m.Title, Question: m.Question}
	}

	api.Success(w, http.StatusOK, out)
}
