package domain

import (
	"sync"
	"time"
)

// Citation points at a (document, page) pair from the indexed corpus.
type Citation struct {
	Doc  string `json:"doc"`
	Page int    `json:"page"`
}

// AssessmentEntry is the recorded verdict for one measure. Entries are
// overwritten, never deleted; the zero entry means "no answer yet".
type AssessmentEntry struct {
	Status        Status
	Answer        string
	Justification string
	Citations     []Citation
}

// Assessment maps measure IDs to their current entries.
type Assessment map[string]AssessmentEntry

// Get returns the entry for a measure, defaulting to StatusNoAnswer
// when nothing has been recorded.
func (a Assessment) Get(measureID string) AssessmentEntry {
	if entry, ok := a[measureID]; ok {
		return entry
	}
	return AssessmentEntry{Status: StatusNoAnswer}
}

// Set records or overwrites the entry for a measure, coercing the
// status into the closed domain.
func (a Assessment) Set(measureID string, entry AssessmentEntry) {
	entry.Status = entry.Status.Coerce()
	a[measureID] = entry
}

// Session is the explicit per-user audit context. All mutable state of
// one browser session lives here; nothing is ambient. Handlers serving
// the same session concurrently must hold the session lock around any
// read or write of the mutable fields.
type Session struct {
	mu sync.Mutex

	ID         string
	ClientName string
	Mode       AuditMode
	CreatedAt  time.Time

	Documents  []ExtractedDocument
	Index      *Index
	Assessment Assessment
}

// Lock acquires the session's mutual exclusion lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's mutual exclusion lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// NewSession creates an initialized session.
func NewSession(id, clientName string, mode AuditMode, createdAt time.Time) *Session {
	return &Session{
		ID:         id,
		ClientName: clientName,
		Mode:       mode,
		CreatedAt:  createdAt,
		Assessment: make(Assessment),
	}
}

// Reset discards uploaded documents, the index and all recorded answers.
func (s *Session) Reset() {
	s.Documents = nil
	s.Index = nil
	s.Assessment = make(Assessment)
}

// ValidateSession validates a Session instance.
func ValidateSession(s *Session) error {
	if s == nil {
		return ErrSessionNotFound
	}

	if s.ID == "" {
		return NewDomainError(ErrCodeValidation, "session ID is required")
	}

	if s.ClientName == "" {
		return NewDomainError(ErrCodeValidation, "session client name is required")
	}

	if !s.Mode.IsValid() {
		return ErrInvalidAuditMode
	}

	return nil
}
