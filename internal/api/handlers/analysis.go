package handlers

import (
	"net/http"
	"time"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

type AnalysisHandler struct{}

func NewAnalysisHandler() *AnalysisHandler {
	return &AnalysisHandler{}
}

type GapRowResponse struct {
	Theme          string   `json:"theme"`
	MeasureID      string   `json:"measure_id"`
	Title          string   `json:"title"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer,omitempty"`
	Status         string   `json:"status"`
	Score          *float64 `json:"score"`
	Priority       string   `json:"priority"`
	Recommendation string   `json:"recommendation"`
	Justification  string   `json:"justification,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
}

type ThemeScoreResponse struct {
	Theme    string   `json:"theme"`
	Maturity *float64 `json:"maturity"`
	Measures int      `json:"measures"`
}

type ActionItemResponse struct {
	MeasureID     string `json:"measure_id"`
	Theme         string `json:"theme"`
	Action        string `json:"action"`
	Priority      string `json:"priority"`
	Owner         string `json:"owner"`
	Justification string `json:"justification,omitempty"`
	DueDate       string `json:"due_date"`
	FollowUp      string `json:"follow_up"`
}

type AnalysisResponse struct {
	ClientName string               `json:"client_name"`
	Global     *float64             `json:"global_maturity"`
	Rows       []GapRowResponse     `json:"rows"`
	Themes     []ThemeScoreResponse `json:"themes"`
	Actions    []ActionItemResponse `json:"actions"`
}

// Get recomputes the full gap analysis from the current assessment.
// Undefined scores (NA rows, all-NA themes) come back as null.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sess.Lock()
	analysis := service.BuildAnalysis(sess, time.Now())
	clientName := sess.ClientName
	sess.Unlock()

	resp := AnalysisResponse{
		ClientName: clientName,
		Rows:       make([]GapRowResponse, len(analysis.Rows)),
		Themes:     make([]ThemeScoreResponse, len(analysis.Themes)),
		Actions:    make([]ActionItemResponse, len(analysis.Actions)),
	}
	if analysis.Defined {
		resp.Global = ptr(analysis.Global)
	}

	for i, row := range analysis.Rows {
		resp.Rows[i] = gapRowToResponse(row)
	}
	for i, theme := range analysis.Themes {
		resp.Themes[i] = ThemeScoreResponse{Theme: theme.Theme, Measures: theme.Measures}
		if theme.Defined {
			resp.Themes[i].Maturity = ptr(theme.Maturity)
		}
	}
	for i, item := range analysis.Actions {
		resp.Actions[i] = ActionItemResponse{
			MeasureID:     item.MeasureID,
			Theme:         item.Theme,
			Action:        item.Action,
			Priority:      item.Priority,
			Owner:         item.Owner,
			Justification: item.Justification,
			DueDate:       item.DueDate,
			FollowUp:      item.FollowUp,
		}
	}

	api.Success(w, http.StatusOK, resp)
}

func gapRowToResponse(row domain.GapRow) GapRowResponse {
	resp := GapRowResponse{
		Theme:          row.Theme,
		MeasureID:      row.MeasureID,
		Title:          row.Title,
		Question:       row.Question,
		Answer:         row.Answer,
		Status:         string(row.Status),
		Priority:       row.Priority,
		Recommendation: row.Recommendation,
		Justification:  row.Justification,
		DueDate:        row.DueDate,
	}
	if row.Scored {
		resp.Score = ptr(row.Score)
	}
	return resp
}

func ptr(f float64) *float64 {
	return &f
}
