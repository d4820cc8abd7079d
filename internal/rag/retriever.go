package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// DefaultTopK is how many chunks a retrieval returns.
const DefaultTopK = 6

// ScoredChunk is one retrieval hit with its cosine similarity.
type ScoredChunk struct {
	Chunk domain.Chunk
	Score float64
}

// Retriever ranks indexed chunks against a query embedding.
type Retriever struct {
	client EmbeddingClient
}

// NewRetriever creates a Retriever using the given embedding client.
func NewRetriever(client EmbeddingClient) *Retriever {
	return &Retriever{client: client}
}

// Retrieve embeds the query once and scans every indexed chunk,
// returning the top-k by cosine similarity. Ties keep original chunk
// order. An empty or nil index yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, index *domain.Index, query string, k int) ([]ScoredChunk, error) {
	if index.Len() == 0 || k <= 0 {
		return nil, nil
	}

	embeddings, err := r.client.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVec := embeddings[0]

	scored := make([]ScoredChunk, len(index.Chunks))
	for i, chunk := range index.Chunks {
		scored[i] = ScoredChunk{
			Chunk: chunk,
			Score: CosineSimilarity(queryVec, index.Embeddings[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// CosineSimilarity computes the cosine of the angle between two
// vectors. A zero vector on either side scores 0 rather than NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
