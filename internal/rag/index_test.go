package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder derives a deterministic vector per text so identical
// texts always embed identically.
type hashEmbedder struct {
	batches  int
	failFrom int // fail on batch number >= failFrom when > 0
}

func (e *hashEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batches++
	if e.failFrom > 0 && e.batches >= e.failFrom {
		return nil, errors.New("embedding service unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		var sum float32
		for _, r := range t {
			sum += float32(r)
		}
		out[i] = []float32{sum, float32(len(t)), 1}
	}
	return out, nil
}

func TestIndexBuilderBuild(t *testing.T) {
	embedder := &hashEmbedder{}
	builder := NewIndexBuilder(embedder, 1800)

	docs := []domain.ExtractedDocument{
		txtDoc("policy.txt", strings.Repeat("a", 5000)),
	}

	index, err := builder.Build(context.Background(), docs)
	require.NoError(t, err)
	require.NoError(t, domain.ValidateIndex(index))
	assert.Equal(t, 3, index.Len())
	assert.Len(t, index.Embeddings, 3)
}

func TestIndexBuilderRebuildSameChunkCount(t *testing.T) {
	docs := []domain.ExtractedDocument{
		txtDoc("policy.txt", strings.Repeat("a", 5000)),
	}

	first, err := NewIndexBuilder(&hashEmbedder{}, 1800).Build(context.Background(), docs)
	require.NoError(t, err)
	second, err := NewIndexBuilder(&hashEmbedder{}, 1800).Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
}

func TestIndexBuilderBatching(t *testing.T) {
	embedder := &hashEmbedder{}
	builder := NewIndexBuilder(embedder, 10)
	builder.batchSize = 2

	// 5 chunks with a batch size of 2 means 3 embedding calls.
	docs := []domain.ExtractedDocument{txtDoc("doc.txt", strings.Repeat("a", 50))}

	index, err := builder.Build(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 5, index.Len())
	assert.Equal(t, 3, embedder.batches)
}

func TestIndexBuilderBatchFailureFailsWholeBuild(t *testing.T) {
	embedder := &hashEmbedder{failFrom: 2}
	builder := NewIndexBuilder(embedder, 10)
	builder.batchSize = 2

	docs := []domain.ExtractedDocument{txtDoc("doc.txt", strings.Repeat("a", 50))}

	index, err := builder.Build(context.Background(), docs)
	require.Error(t, err)
	assert.Nil(t, index)
}

func TestIndexBuilderEmptyCorpus(t *testing.T) {
	builder := NewIndexBuilder(&hashEmbedder{}, 1800)

	index, err := builder.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}

func TestIndexBuilderTruncatesOversizedChunks(t *testing.T) {
	embedder := &recordingEmbedder{}
	builder := NewIndexBuilder(embedder, 1800)
	builder.maxEmbedChars = 100

	doc := domain.ExtractedDocument{
		Name:  "big.pdf",
		Kind:  domain.FileKindPDF,
		Pages: []domain.Page{{Number: 1, Text: strings.Repeat("a", 500)}},
	}

	index, err := builder.Build(context.Background(), []domain.ExtractedDocument{doc})
	require.NoError(t, err)

	// Embedding input is truncated, the stored chunk text is not.
	require.Len(t, embedder.texts, 1)
	assert.Len(t, embedder.texts[0], 100)
	assert.Len(t, index.Chunks[0].Text, 500)
}

func TestIndexBuilderTruncationKeepsRunesWhole(t *testing.T) {
	embedder := &recordingEmbedder{}
	builder := NewIndexBuilder(embedder, 1800)
	builder.maxEmbedChars = 101

	doc := domain.ExtractedDocument{
		Name:  "accents.pdf",
		Kind:  domain.FileKindPDF,
		Pages: []domain.Page{{Number: 1, Text: strings.Repeat("é", 200)}},
	}

	_, err := builder.Build(context.Background(), []domain.ExtractedDocument{doc})
	require.NoError(t, err)

	// 101 bytes lands in the middle of a two-byte rune; the cut backs
	// up to the previous boundary.
	require.Len(t, embedder.texts, 1)
	assert.True(t, utf8.ValidString(embedder.texts[0]))
	assert.Len(t, embedder.texts[0], 100)
}

type recordingEmbedder struct {
	texts []string
}

func (e *recordingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.texts = append(e.texts, texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}
