package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.LargeEmbedding3
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from text-embedding-3-large
	DefaultEmbeddingDimensions = 3072
	// DefaultChatModel is the chat model used for answer proposals
	DefaultChatModel = openai.GPT4oMini
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when an embedding has unexpected dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// EmbeddingAPI defines the interface for embedding generation
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatAPI defines the interface for chat completions
type ChatAPI interface {
	CreateCompletion(ctx context.Context, system, user string, jsonResponse bool) (string, error)
}

// Client wraps the OpenAI API client
type Client struct {
	embed      EmbeddingAPI
	chat       ChatAPI
	dimensions int
}

type OpenAIAdapter struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	chatModel string
}

func NewOpenAIAdapter(apiKey string, model openai.EmbeddingModel, chatModel string) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &OpenAIAdapter{
		client:    openai.NewClient(apiKey),
		model:     model,
		chatModel: chatModel,
	}
}

// CreateEmbeddings calls the OpenAI API to create embeddings for a batch of texts
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}

// CreateCompletion calls the OpenAI chat completion API
func (a *OpenAIAdapter) CreateCompletion(ctx context.Context, system, user string, jsonResponse bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       a.chatModel,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	ChatModel           string
}

// EmbeddingModelFromName converts a configured model name into the API
// model type, defaulting to the large embedding model.
func EmbeddingModelFromName(name string) openai.EmbeddingModel {
	if name == "" {
		return DefaultEmbeddingModel
	}
	return openai.EmbeddingModel(name)
}

// DimensionsForModel returns the embedding width of known models.
func DimensionsForModel(model openai.EmbeddingModel) int {
	switch model {
	case openai.SmallEmbedding3:
		return 1536
	case openai.AdaEmbeddingV2:
		return 1536
	}
	return DefaultEmbeddingDimensions
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	adapter := NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel, cfg.ChatModel)
	return &Client{
		embed:      adapter,
		chat:       adapter,
		dimensions: dimensions,
	}
}

// NewClientFromEnv creates a new OpenAI client using OPENAI_API_KEY environment variable
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// EmbedBatch generates embeddings for a batch of texts, validating dimensions.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyText
	}
	for _, t := range texts {
		if t == "" {
			return nil, ErrEmptyText
		}
	}

	embeddings, err := c.embed.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	expected := c.dimensions
	if expected <= 0 {
		expected = DefaultEmbeddingDimensions
	}
	for _, e := range embeddings {
		if len(e) != expected {
			return nil, ErrWrongDimensions
		}
	}

	return embeddings, nil
}

// Complete issues one chat completion with a system and user prompt.
// When jsonResponse is set the model is constrained to emit a JSON object.
func (c *Client) Complete(ctx context.Context, system, user string, jsonResponse bool) (string, error) {
	if user == "" {
		return "", ErrEmptyText
	}

	content, err := c.chat.CreateCompletion(ctx, system, user, jsonResponse)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	return content, nil
}
