package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEmbeddingAPI struct {
	embeddings [][]float32
	err        error
	gotTexts   []string
}

func (m *mockEmbeddingAPI) CreateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	m.gotTexts = texts
	if m.err != nil {
		return nil, m.err
	}
	return m.embeddings, nil
}

type mockChatAPI struct {
	content string
	err     error
	gotJSON bool
}

func (m *mockChatAPI) CreateCompletion(_ context.Context, _, _ string, jsonResponse bool) (string, error) {
	m.gotJSON = jsonResponse
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}

func newTestClient(embed EmbeddingAPI, chat ChatAPI, dims int) *Client {
	return &Client{embed: embed, chat: chat, dimensions: dims}
}

func TestEmbedBatch(t *testing.T) {
	api := &mockEmbeddingAPI{embeddings: [][]float32{{0.1, 0.2}, {0.3, 0.4}}}
	client := newTestClient(api, nil, 2)

	embeddings, err := client.EmbedBatch(context.Background(), []string{"un", "deux"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []string{"un", "deux"}, api.gotTexts)
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	client := newTestClient(&mockEmbeddingAPI{}, nil, 2)

	_, err := client.EmbedBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = client.EmbedBatch(context.Background(), []string{"ok", ""})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEmbedBatchWrongDimensions(t *testing.T) {
	api := &mockEmbeddingAPI{embeddings: [][]float32{{0.1, 0.2, 0.3}}}
	client := newTestClient(api, nil, 2)

	_, err := client.EmbedBatch(context.Background(), []string{"un"})
	assert.ErrorIs(t, err, ErrWrongDimensions)
}

func TestEmbedBatchAPIError(t *testing.T) {
	api := &mockEmbeddingAPI{err: errors.New("rate limited")}
	client := newTestClient(api, nil, 2)

	_, err := client.EmbedBatch(context.Background(), []string{"un"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestComplete(t *testing.T) {
	chat := &mockChatAPI{content: `{"status":"Conforme"}`}
	client := newTestClient(nil, chat, 2)

	content, err := client.Complete(context.Background(), "system", "user", true)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"Conforme"}`, content)
	assert.True(t, chat.gotJSON)
}

func TestCompleteEmptyPrompt(t *testing.T) {
	client := newTestClient(nil, &mockChatAPI{}, 2)

	_, err := client.Complete(context.Background(), "system", "", false)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClientFromEnv()
	assert.ErrorIs(t, err, ErrNoAPIKey)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	client, err := NewClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingDimensions, client.dimensions)
}
