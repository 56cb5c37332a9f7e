package httpserver

import (
	"context"
	"net/http"
	"strings"

	"staybook/internal/domain"
)

// SessionVerifier resolves a bearer token to a session. The identity client
// satisfies this.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (domain.Session, error)
}

type ctxKey int

const sessionKey ctxKey = iota

// SessionFrom returns the verified session attached to the request, if any.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(domain.Session)
	return s, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireSession rejects requests without a verifiable bearer token. The
// session lands in the request context; handlers read it via SessionFrom.
func RequireSession(v SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			sess, err := v.Verify(r.Context(), tok)
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches a session when a valid token is present but lets
// anonymous requests through. The search endpoint uses it to record history
// only for signed-in users.
func OptionalSession(v SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := bearerToken(r); tok != "" {
				if sess, err := v.Verify(r.Context(), tok); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
