package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/feastline/menu-api/internal/auth"
	"github.com/feastline/menu-api/internal/http/respond"
	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/storage"
)

type contextKey struct{}

var userKey contextKey

// RequireUser is the authorization gate for protected routes. It verifies the
// bearer token and resolves the subject to a live user record, which carries
// the current role rather than the (possibly stale) role claim embedded in
// the token. Every failure mode collapses to the same 401 so callers cannot
// distinguish a bad token from a deleted account.
func RequireUser(tokens *auth.TokenManager, store storage.UserStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				log.Warn("request rejected: missing bearer token", "path", r.URL.Path)
				unauthenticated(w)
				return
			}

			claims, ok := tokens.Verify(token)
			if !ok {
				log.Warn("request rejected: invalid token", "path", r.URL.Path)
				unauthenticated(w)
				return
			}

			user, err := store.FindUserByID(r.Context(), claims.UserID)
			if err != nil {
				log.Warn("request rejected: token subject not resolvable", "path", r.URL.Path, "user_id", claims.UserID)
				unauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

// UserFrom returns the authenticated user placed in the context by RequireUser.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func unauthenticated(w http.ResponseWriter) {
	respond.Detail(w, http.StatusUnauthorized, "Invalid authentication credentials")
}
