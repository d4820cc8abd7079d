package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIEmbedModel string `envconfig:"OPENAI_EMBED_MODEL" default:"text-embedding-3-large"`
	OpenAIChatModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// OutputDir is where exported artifacts (xlsx/docx/csv) are written.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"data/output"`

	// SessionTTLMinutes bounds how long an idle session keeps its state.
	SessionTTLMinutes int `envconfig:"SESSION_TTL_MINUTES" default:"120"`

	// ChunkStep is the character window for DOCX/TXT chunking.
	ChunkStep int `envconfig:"CHUNK_STEP" default:"1800"`

	// RetrievalTopK is how many chunks are fed to the answer proposer.
	RetrievalTopK int `envconfig:"RETRIEVAL_TOP_K" default:"6"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("AUDITBOT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
