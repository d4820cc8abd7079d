package middleware

import (
	"context"
	"net/http"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

const SessionKey contextKey = "session"

// SessionHeader carries the session ID on every session-scoped route.
const SessionHeader = "X-Session-ID"

// SessionStore is the lookup surface the middleware needs.
type SessionStore interface {
	Get(id string) (*domain.Session, error)
}

// Session resolves the X-Session-ID header into a live session and
// injects it into the request context. Requests without a valid
// session never reach the handler.
func Session(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				api.Error(w, http.StatusUnauthorized, "missing "+SessionHeader+" header")
				return
			}

			sess, err := store.Get(id)
			if err != nil {
				api.Error(w, api.DomainErrorToHTTP(err), err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session from context, or nil outside the
// session middleware.
func GetSession(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(SessionKey).(*domain.Session)
	return sess
}

// GetSessionID returns the context session's ID, or "".
func GetSessionID(ctx context.Context) string {
	if sess := GetSession(ctx); sess != nil {
		return sess.ID
	}
	return ""
}
