package rag

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

const (
	// DefaultEmbedBatchSize bounds how many chunk texts go into one
	// embeddings request.
	DefaultEmbedBatchSize = 100
	// DefaultMaxEmbedChars truncates chunk text before embedding so a
	// single oversized page cannot blow the request.
	DefaultMaxEmbedChars = 8000
)

// EmbeddingClient generates embeddings for a batch of texts.
type EmbeddingClient interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexBuilder builds in-memory vector indices from extracted documents.
type IndexBuilder struct {
	client        EmbeddingClient
	chunkStep     int
	batchSize     int
	maxEmbedChars int
}

// NewIndexBuilder creates an IndexBuilder with default batch sizing.
func NewIndexBuilder(client EmbeddingClient, chunkStep int) *IndexBuilder {
	if chunkStep <= 0 {
		chunkStep = DefaultChunkStep
	}
	return &IndexBuilder{
		client:        client,
		chunkStep:     chunkStep,
		batchSize:     DefaultEmbedBatchSize,
		maxEmbedChars: DefaultMaxEmbedChars,
	}
}

// Build chunks the documents and embeds every chunk in fixed-size
// batches. A batch failure fails the whole build: no partial index is
// ever returned, so the caller's previous index stays untouched.
func (b *IndexBuilder) Build(ctx context.Context, docs []domain.ExtractedDocument) (*domain.Index, error) {
	chunks := SplitDocuments(docs, b.chunkStep)
	if len(chunks) == 0 {
		return &domain.Index{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = truncate(c.Text, b.maxEmbedChars)
	}

	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := b.client.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d: %w", start, end, err)
		}
		embeddings = append(embeddings, batch...)
	}

	index := &domain.Index{Chunks: chunks, Embeddings: embeddings}
	if err := domain.ValidateIndex(index); err != nil {
		return nil, err
	}
	return index, nil
}

// truncate caps s to at most max bytes without cutting a rune in half.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
