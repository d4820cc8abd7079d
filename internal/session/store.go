package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 2 * time.Hour

// Store keeps audit sessions in memory with a sliding expiration.
// Nothing is persisted; an evicted session is simply gone.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Create opens a new session for a client and audit mode.
func (s *Store) Create(clientName string, mode domain.AuditMode) (*domain.Session, error) {
	if !mode.IsValid() {
		return nil, domain.ErrInvalidAuditMode
	}
	if clientName == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "client name is required")
	}

	sess := domain.NewSession(uuid.NewString(), clientName, mode, time.Now().UTC())
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess, nil
}

// Get returns the session with the given ID and refreshes its TTL.
func (s *Store) Get(id string) (*domain.Session, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, domain.ErrSessionNotFound
	}

	sess := value.(*domain.Session)
	s.cache.Set(id, sess, s.ttl)
	return sess, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
