package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/handlers"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/config"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/openai"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/rag"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/report"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/server"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/session"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the audit assistant API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	store := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	exporter := report.NewExporter(cfg.OutputDir)

	var auditor service.Auditor
	if cfg.HasOpenAI() {
		embedModel := openai.EmbeddingModelFromName(cfg.OpenAIEmbedModel)
		client := openai.NewClientWithConfig(openai.Config{
			APIKey:              cfg.OpenAIAPIKey,
			EmbeddingModel:      embedModel,
			EmbeddingDimensions: openai.DimensionsForModel(embedModel),
			ChatModel:           cfg.OpenAIChatModel,
		})
		indexer := rag.NewIndexBuilder(client, cfg.ChunkStep)
		proposer := service.NewProposerWithTopK(client, rag.NewRetriever(client), cfg.RetrievalTopK)
		auditor = service.NewAuditService(indexer, proposer, client)
		log.Println("OpenAI client configured, AI features enabled")
	} else {
		auditor = service.NoOpAuditService{}
		log.Println("no OpenAI credential, AI features disabled")
	}

	routerCfg := server.RouterConfig{
		SessionStore:         store,
		SessionHandler:       handlers.NewSessionHandler(store),
		QuestionnaireHandler: handlers.NewQuestionnaireHandler(),
		DocumentHandler:      handlers.NewDocumentHandler(auditor),
		AssessmentHandler:    handlers.NewAssessmentHandler(auditor),
		AnalysisHandler:      handlers.NewAnalysisHandler(),
		ExportHandler:        handlers.NewExportHandler(exporter),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
