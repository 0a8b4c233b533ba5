package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// HeaderName is the request header carrying the token.
const HeaderName = "x-auth-token"

// ErrUnauthenticated is the only failure the guard reports to callers.
var ErrUnauthenticated = errors.New("unauthenticated")

type contextKey string

// UserIDKey is the context key for the authenticated user id.
const UserIDKey = contextKey("userId")

// Verifier resolves a token to a user id.
type Verifier interface {
	Verify(token string) (string, error)
}

// Guard gates requests on a valid token.
type Guard struct {
	verifier Verifier
}

// NewGuard creates a Guard backed by verifier.
func NewGuard(verifier Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticate resolves the raw header value to a user id. Missing, invalid
// and expired tokens all yield ErrUnauthenticated; the reason is only logged.
func (g *Guard) Authenticate(rawHeader string) (string, error) {
	token := strings.TrimSpace(rawHeader)
	if token == "" {
		log.Warn().Str("reason", "missing token").Msg("Rejected request")
		return "", ErrUnauthenticated
	}

	userID, err := g.verifier.Verify(token)
	if err != nil {
		reason := "token invalid"
		if errors.Is(err, ErrTokenExpired) {
			reason = "token expired"
		}
		log.Warn().Err(err).Str("reason", reason).Msg("Rejected request")
		return "", ErrUnauthenticated
	}
	return userID, nil
}

// Middleware authenticates each request and stores the user id on its
// context. Rejected requests are passed to onError and go no further.
func (g *Guard) Middleware(onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := g.Authenticate(r.Header.Get(HeaderName))
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the user id stored by Middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
