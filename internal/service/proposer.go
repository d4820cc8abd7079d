package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/rag"
)

const (
	// DefaultBatchGroupSize is how many measures one batch completion covers.
	DefaultBatchGroupSize = 20
	// maxBatchCorpusChars caps the concatenated document text sent on the
	// batch path, which has no retrieval step to narrow the context.
	maxBatchCorpusChars = 12000
	// maxContextChunkChars caps each retrieved chunk inside the prompt.
	maxContextChunkChars = 1000
	// maxFallbackChars caps how much raw model output is kept as
	// justification when the response does not parse.
	maxFallbackChars = 800
)

const proposalSystemPrompt = `Tu es un auditeur sécurité ISO/IEC 27001. ` +
	`À partir des extraits de documents fournis, évalue la mesure demandée. ` +
	`Réponds uniquement en JSON avec les clés "status", "justification" et "citations" ` +
	`(liste d'objets {"doc": ..., "page": ...}). ` +
	`Le champ "status" vaut exactement l'une des valeurs : ` +
	`"Conforme", "Partiellement conforme", "Non conforme", "Pas réponse", "NA".`

const batchSystemPrompt = `Tu es un auditeur sécurité ISO/IEC 27001. ` +
	`Évalue chaque mesure listée à partir du texte fourni. ` +
	`Réponds uniquement en JSON : {"results": [{"id": ..., "status": ..., "justification": ...}]}. ` +
	`Le champ "status" vaut exactement l'une des valeurs : ` +
	`"Conforme", "Partiellement conforme", "Non conforme", "Pas réponse", "NA".`

// ChatClient is the completion surface the proposer needs.
type ChatClient interface {
	Complete(ctx context.Context, system, user string, jsonResponse bool) (string, error)
}

// ChunkRetriever is the retrieval surface the proposer needs.
type ChunkRetriever interface {
	Retrieve(ctx context.Context, index *domain.Index, query string, k int) ([]rag.ScoredChunk, error)
}

// Proposer drafts assessment entries from the indexed corpus. Every
// failure degrades into a "Pas réponse" entry; proposing never raises
// model errors to the caller.
type Proposer struct {
	chat      ChatClient
	retriever ChunkRetriever
	topK      int
	groupSize int
}

// NewProposer creates a Proposer over a chat client and retriever,
// retrieving rag.DefaultTopK chunks per measure.
func NewProposer(chat ChatClient, retriever ChunkRetriever) *Proposer {
	return NewProposerWithTopK(chat, retriever, rag.DefaultTopK)
}

// NewProposerWithTopK creates a Proposer retrieving topK chunks per
// measure. A non-positive topK falls back to rag.DefaultTopK.
func NewProposerWithTopK(chat ChatClient, retriever ChunkRetriever, topK int) *Proposer {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	return &Proposer{
		chat:      chat,
		retriever: retriever,
		topK:      topK,
		groupSize: DefaultBatchGroupSize,
	}
}

type proposalPayload struct {
	Status        string            `json:"status"`
	Justification string            `json:"justification"`
	Citations     []domain.Citation `json:"citations"`
}

// ProposeAnswer evaluates one measure against the index: retrieve the
// most relevant chunks, ask the model for a verdict, parse the JSON
// contract. Any failure yields a StatusNoAnswer entry instead.
func (p *Proposer) ProposeAnswer(ctx context.Context, index *domain.Index, m domain.Measure) domain.AssessmentEntry {
	hits, err := p.retriever.Retrieve(ctx, index, m.Title+" "+m.Question, p.topK)
	if err != nil {
		log.Printf("proposer: retrieval failed for %s: %v", m.ID, err)
		return notEvaluated("non évalué : récupération du contexte impossible")
	}
	if len(hits) == 0 {
		return notEvaluated("non évalué : aucun extrait pertinent dans les documents fournis")
	}

	var sb strings.Builder
	for _, hit := range hits {
		fmt.Fprintf(&sb, "[%s – p.%d] %s\n\n", hit.Chunk.Doc, hit.Chunk.Page, truncate(hit.Chunk.Text, maxContextChunkChars))
	}

	user := fmt.Sprintf("EXIGENCE (%s) : %s\nQUESTION : %s\n\nCONTEXTE :\n%s", m.ID, m.Title, m.Question, sb.String())

	raw, err := p.chat.Complete(ctx, proposalSystemPrompt, user, true)
	if err != nil {
		log.Printf("proposer: completion failed for %s: %v", m.ID, err)
		return notEvaluated("non évalué : le modèle n'a pas répondu")
	}

	var payload proposalPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return notEvaluated(truncate(raw, maxFallbackChars))
	}

	return domain.AssessmentEntry{
		Status:        domain.ParseStatus(payload.Status).Coerce(),
		Answer:        payload.Justification,
		Justification: payload.Justification,
		Citations:     payload.Citations,
	}
}

type batchPayload struct {
	Results []struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		Justification string `json:"justification"`
	} `json:"results"`
}

// ProposeBatch evaluates measures in groups against the raw document
// text, without retrieval. Used when no index exists yet. Each measure
// always gets an entry; failed groups degrade to StatusNoAnswer.
func (p *Proposer) ProposeBatch(ctx context.Context, docs []domain.ExtractedDocument, measures []domain.Measure) map[string]domain.AssessmentEntry {
	var corpus strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&corpus, "=== %s ===\n%s\n\n", doc.Name, doc.Text())
	}
	text := truncate(corpus.String(), maxBatchCorpusChars)

	entries := make(map[string]domain.AssessmentEntry, len(measures))
	for start := 0; start < len(measures); start += p.groupSize {
		end := start + p.groupSize
		if end > len(measures) {
			end = len(measures)
		}
		p.proposeGroup(ctx, text, measures[start:end], entries)
	}
	return entries
}

func (p *Proposer) proposeGroup(ctx context.Context, text string, group []domain.Measure, entries map[string]domain.AssessmentEntry) {
	var sb strings.Builder
	sb.WriteString("MESURES :\n")
	for _, m := range group {
		fmt.Fprintf(&sb, "- id: %s | %s | %s\n", m.ID, m.Title, m.Question)
	}
	fmt.Fprintf(&sb, "\nDOCUMENTS :\n%s", text)

	raw, err := p.chat.Complete(ctx, batchSystemPrompt, sb.String(), true)
	if err != nil {
		log.Printf("proposer: batch completion failed: %v", err)
		for _, m := range group {
			entries[m.ID] = notEvaluated("non évalué : le modèle n'a pas répondu")
		}
		return
	}

	var payload batchPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		fallback := notEvaluated(truncate(raw, maxFallbackChars))
		for _, m := range group {
			entries[m.ID] = fallback
		}
		return
	}

	byID := make(map[string]domain.AssessmentEntry, len(payload.Results))
	for _, r := range payload.Results {
		byID[r.ID] = domain.AssessmentEntry{
			Status:        domain.ParseStatus(r.Status).Coerce(),
			Answer:        r.Justification,
			Justification: r.Justification,
		}
	}

	// The model may skip or invent IDs; only requested measures get an
	// entry, and skipped ones degrade.
	for _, m := range group {
		if entry, ok := byID[m.ID]; ok {
			entries[m.ID] = entry
			continue
		}
		entries[m.ID] = notEvaluated("non évalué : absent de la réponse du modèle")
	}
}

func notEvaluated(justification string) domain.AssessmentEntry {
	return domain.AssessmentEntry{
		Status:        domain.StatusNoAnswer,
		Justification: justification,
	}
}

// truncate caps s to at most max bytes without cutting a rune in half.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
