package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/rag"
)

type stubChat struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (c *stubChat) Complete(_ context.Context, _, user string, _ bool) (string, error) {
	c.calls++
	c.lastUser = user
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

type stubRetriever struct {
	hits  []rag.ScoredChunk
	err   error
	lastK int
}

func (r *stubRetriever) Retrieve(_ context.Context, _ *domain.Index, _ string, k int) ([]rag.ScoredChunk, error) {
	r.lastK = k
	return r.hits, r.err
}

func testMeasure() domain.Measure {
	return domain.Measure{
		ID:       "I-1",
		Theme:    "Sensibiliser et former",
		Title:    "Former les équipes opérationnelles",
		Question: "L’organisation a-t-elle formé les équipes opérationnelles ?",
	}
}

func testHits() []rag.ScoredChunk {
	return []rag.ScoredChunk{
		{Chunk: domain.Chunk{Doc: "politique.pdf", Page: 3, Text: "Un plan de formation annuel couvre les administrateurs."}, Score: 0.91},
	}
}

func TestProposeAnswer(t *testing.T) {
	chat := &stubChat{response: `{
		"status": "Conforme",
		"justification": "Un plan de formation annuel est documenté.",
		"citations": [{"doc": "politique.pdf", "page": 3}]
	}`}
	p := NewProposer(chat, &stubRetriever{hits: testHits()})

	entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())

	assert.Equal(t, domain.StatusCompliant, entry.Status)
	assert.Equal(t, "Un plan de formation annuel est documenté.", entry.Justification)
	require.Len(t, entry.Citations, 1)
	assert.Equal(t, "politique.pdf", entry.Citations[0].Doc)
	assert.Equal(t, 3, entry.Citations[0].Page)

	// The prompt carries the doc and page provenance of each hit.
	assert.Contains(t, chat.lastUser, "[politique.pdf – p.3]")
	assert.Contains(t, chat.lastUser, "I-1")
}

func TestProposerTopKReachesRetriever(t *testing.T) {
	chat := &stubChat{response: `{"status": "Conforme", "justification": "ok"}`}
	retriever := &stubRetriever{hits: testHits()}
	p := NewProposerWithTopK(chat, retriever, 3)

	p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())
	assert.Equal(t, 3, retriever.lastK)
}

func TestProposerTopKDefaulting(t *testing.T) {
	p := NewProposerWithTopK(&stubChat{}, &stubRetriever{}, 0)
	assert.Equal(t, rag.DefaultTopK, p.topK)

	p = NewProposer(&stubChat{}, &stubRetriever{})
	assert.Equal(t, rag.DefaultTopK, p.topK)
}

func TestProposeAnswerFuzzyStatus(t *testing.T) {
	// Statuses inside a sentence still parse; unknown ones degrade.
	tests := []struct {
		name     string
		status   string
		expected domain.Status
	}{
		{"label in sentence", "Le statut : non conforme au vu des extraits", domain.StatusNonCompliant},
		{"not applicable phrase", "N/A - hors périmètre de l'audit", domain.StatusNotApplicable},
		{"garbage degrades", "lorem ipsum", domain.StatusNoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &stubChat{response: `{"status": "` + tt.status + `", "justification": "j"}`}
			p := NewProposer(chat, &stubRetriever{hits: testHits()})

			entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())
			assert.Equal(t, tt.expected, entry.Status)
		})
	}
}

func TestProposeAnswerUnparseableResponse(t *testing.T) {
	chat := &stubChat{response: "Je pense que cette mesure est conforme."}
	p := NewProposer(chat, &stubRetriever{hits: testHits()})

	entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())

	// The raw text is kept as justification, never an error.
	assert.Equal(t, domain.StatusNoAnswer, entry.Status)
	assert.Equal(t, "Je pense que cette mesure est conforme.", entry.Justification)
}

func TestProposeAnswerChatFailure(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limited")}
	p := NewProposer(chat, &stubRetriever{hits: testHits()})

	entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())
	assert.Equal(t, domain.StatusNoAnswer, entry.Status)
	assert.NotEmpty(t, entry.Justification)
}

func TestProposeAnswerRetrievalFailure(t *testing.T) {
	p := NewProposer(&stubChat{}, &stubRetriever{err: errors.New("embed down")})

	entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())
	assert.Equal(t, domain.StatusNoAnswer, entry.Status)
}

func TestProposeAnswerNoRelevantChunks(t *testing.T) {
	chat := &stubChat{}
	p := NewProposer(chat, &stubRetriever{})

	entry := p.ProposeAnswer(context.Background(), &domain.Index{}, testMeasure())
	assert.Equal(t, domain.StatusNoAnswer, entry.Status)
	assert.Zero(t, chat.calls)
}

func batchMeasures(n int) []domain.Measure {
	measures := make([]domain.Measure, n)
	for i := range measures {
		measures[i] = domain.Measure{
			ID:       string(rune('A' + i)),
			Theme:    "Thème",
			Title:    "Titre",
			Question: "Question ?",
		}
	}
	return measures
}

func TestProposeBatch(t *testing.T) {
	chat := &stubChat{response: `{"results": [
		{"id": "A", "status": "Conforme", "justification": "ok"},
		{"id": "B", "status": "Non conforme", "justification": "absent"}
	]}`}
	p := NewProposer(chat, &stubRetriever{})

	docs := []domain.ExtractedDocument{{
		Name:  "notes.txt",
		Kind:  domain.FileKindTXT,
		Pages: []domain.Page{{Number: 1, Text: "contenu"}},
	}}

	entries := p.ProposeBatch(context.Background(), docs, batchMeasures(3))

	require.Len(t, entries, 3)
	assert.Equal(t, domain.StatusCompliant, entries["A"].Status)
	assert.Equal(t, domain.StatusNonCompliant, entries["B"].Status)
	// C was skipped by the model and degrades.
	assert.Equal(t, domain.StatusNoAnswer, entries["C"].Status)
}

func TestProposeBatchGroups(t *testing.T) {
	chat := &stubChat{response: `{"results": []}`}
	p := NewProposer(chat, &stubRetriever{})
	p.groupSize = 2

	entries := p.ProposeBatch(context.Background(), nil, batchMeasures(5))

	assert.Equal(t, 3, chat.calls)
	assert.Len(t, entries, 5)
}

func TestProposeBatchChatFailure(t *testing.T) {
	chat := &stubChat{err: errors.New("boom")}
	p := NewProposer(chat, &stubRetriever{})

	entries := p.ProposeBatch(context.Background(), nil, batchMeasures(2))

	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, domain.StatusNoAnswer, entry.Status)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", 10)

	out := truncate(s, 7)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("é", 3), out)

	assert.Equal(t, s, truncate(s, len(s)))
}

func TestDetectClientName(t *testing.T) {
	tests := []struct {
		name     string
		chat     *stubChat
		corpus   string
		expected string
	}{
		{"detected", &stubChat{response: " ACME Industries \n"}, "Rapport d'audit ACME Industries", "ACME Industries"},
		{"quoted", &stubChat{response: `« ACME »`}, "texte", "ACME"},
		{"chat failure", &stubChat{err: errors.New("down")}, "texte", UnknownClient},
		{"empty corpus", &stubChat{response: "ACME"}, "   ", UnknownClient},
		{"empty answer", &stubChat{response: "  "}, "texte", UnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectClientName(context.Background(), tt.chat, tt.corpus))
		})
	}
}
