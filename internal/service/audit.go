package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/rag"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/telemetry"
)

// Auditor is the AI-backed surface handlers depend on. A NoOp variant
// stands in when no OpenAI credentials are configured.
type Auditor interface {
	// BuildIndex embeds the session's documents and stores the
	// resulting index on the session. Returns the chunk count.
	BuildIndex(ctx context.Context, sess *domain.Session) (int, error)
	// Prefill drafts an assessment entry for every measure of the
	// session's questionnaire. Returns how many measures were covered.
	Prefill(ctx context.Context, sess *domain.Session) (int, error)
	// DetectClient guesses the audited organisation's name from the
	// uploaded documents, falling back to UnknownClient. Documents
	// naming different organisations yield ErrMultipleClientsDetected.
	DetectClient(ctx context.Context, docs []domain.ExtractedDocument) (string, error)
}

// AuditService wires the indexer and proposer into the session
// lifecycle.
type AuditService struct {
	indexer  *rag.IndexBuilder
	proposer *Proposer
	chat     ChatClient
}

// NewAuditService creates the AI-backed auditor.
func NewAuditService(indexer *rag.IndexBuilder, proposer *Proposer, chat ChatClient) *AuditService {
	return &AuditService{indexer: indexer, proposer: proposer, chat: chat}
}

// BuildIndex rebuilds the session index from scratch. A failed build
// leaves any previous index in place.
func (s *AuditService) BuildIndex(ctx context.Context, sess *domain.Session) (int, error) {
	if len(sess.Documents) == 0 {
		return 0, domain.ErrNoDocuments
	}

	ctx, span := telemetry.StartSpan(ctx, "audit.build_index", telemetry.SpanAttributes{
		SessionID: sess.ID,
		Operation: "build_index",
	})
	defer span.End()

	index, err := s.indexer.Build(ctx, sess.Documents)
	if err != nil {
		span.SetError(err)
		return 0, fmt.Errorf("%w: %v", domain.ErrIndexBuildFailed, err)
	}

	sess.Index = index
	return index.Len(), nil
}

// Prefill proposes an entry for every measure. With an index present it
// walks the retrieval path measure by measure; without one it falls
// back to batch evaluation over the raw document text.
func (s *AuditService) Prefill(ctx context.Context, sess *domain.Session) (int, error) {
	if len(sess.Documents) == 0 {
		return 0, domain.ErrNoDocuments
	}

	ctx, span := telemetry.StartSpan(ctx, "audit.prefill", telemetry.SpanAttributes{
		SessionID: sess.ID,
		Operation: "prefill",
	})
	defer span.End()

	measures := Questionnaire(sess.Mode)

	if sess.Index.Len() > 0 {
		for _, m := range measures {
			sess.Assessment.Set(m.ID, s.proposer.ProposeAnswer(ctx, sess.Index, m))
		}
		return len(measures), nil
	}

	for id, entry := range s.proposer.ProposeBatch(ctx, sess.Documents, measures) {
		sess.Assessment.Set(id, entry)
	}
	return len(measures), nil
}

// DetectClient guesses the client name from the head of each document.
// All documents of a batch must belong to the same organisation; two
// distinct detected names abort with ErrMultipleClientsDetected.
func (s *AuditService) DetectClient(ctx context.Context, docs []domain.ExtractedDocument) (string, error) {
	detected := UnknownClient
	for _, doc := range docs {
		name := DetectClientName(ctx, s.chat, doc.Text())
		if name == UnknownClient {
			continue
		}
		if detected == UnknownClient {
			detected = name
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(detected), strings.TrimSpace(name)) {
			return "", domain.ErrMultipleClientsDetected
		}
	}
	return detected, nil
}

// NoOpAuditService rejects AI operations when no credentials are
// configured. Manual assessment and exports keep working without it.
type NoOpAuditService struct{}

func (NoOpAuditService) BuildIndex(context.Context, *domain.Session) (int, error) {
	return 0, domain.ErrAIDisabled
}

func (NoOpAuditService) Prefill(context.Context, *domain.Session) (int, error) {
	return 0, domain.ErrAIDisabled
}

func (NoOpAuditService) DetectClient(context.Context, []domain.ExtractedDocument) (string, error) {
	return UnknownClient, nil
}

// Analysis is the full derived view over one session: detail rows,
// per-theme maturity, the global mean and the remediation plan.
type Analysis struct {
	Rows    []domain.GapRow
	Themes  []domain.ThemeScore
	Global  float64
	Defined bool
	Actions []domain.ActionItem
}

// BuildAnalysis recomputes the analysis from the session's current
// assessment. It never mutates the session.
func BuildAnalysis(sess *domain.Session, now time.Time) Analysis {
	rows := BuildGapRows(sess.ClientName, Questionnaire(sess.Mode), sess.Assessment, now)
	global, defined := GlobalMaturity(rows)
	return Analysis{
		Rows:    rows,
		Themes:  ThemeScores(rows),
		Global:  global,
		Defined: defined,
		Actions: BuildActionPlan(rows, DefaultOwner),
	}
}
