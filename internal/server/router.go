package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/handlers"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
)

type RouterConfig struct {
	SessionStore         middleware.SessionStore
	SessionHandler       *handlers.SessionHandler
	QuestionnaireHandler *handlers.QuestionnaireHandler
	DocumentHandler      *handlers.DocumentHandler
	AssessmentHandler    *handlers.AssessmentHandler
	AnalysisHandler      *handlers.AnalysisHandler
	ExportHandler        *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/sessions", cfg.SessionHandler.Create)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.SessionStore))

		r.Delete("/session", cfg.SessionHandler.Delete)
		r.Get("/questionnaire", cfg.QuestionnaireHandler.List)

		r.Post("/documents", cfg.DocumentHandler.Upload)
		r.Post("/index", cfg.AssessmentHandler.BuildIndex)

		r.Route("/assessment", func(r chi.Router) {
			r.Get("/", cfg.AssessmentHandler.List)
			r.Post("/propose", cfg.AssessmentHandler.Propose)
			r.Put("/{measureID}", cfg.AssessmentHandler.Update)
		})

		r.Get("/analysis", cfg.AnalysisHandler.Get)
		r.Post("/exports/{format}", cfg.ExportHandler.Create)
	})

	r.Get("/exports/{filename}", cfg.ExportHandler.Download)

	return r
}
