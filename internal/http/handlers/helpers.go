package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/feastline/menu-api/internal/http/respond"
	"github.com/feastline/menu-api/internal/middleware"
	"github.com/feastline/menu-api/internal/models"
	"github.com/go-chi/chi/v5"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// currentUser pulls the identity resolved by the authorization gate. The gate
// always runs ahead of protected handlers; a missing identity here means a
// wiring bug, answered like any other authentication failure.
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Detail(w, http.StatusUnauthorized, "Invalid authentication credentials")
	}
	return user, ok
}

// requireRole enforces the per-operation allow-set against the freshly loaded
// user's role, never the token claim. Failing the check is Forbidden, always
// distinct from Unauthenticated.
func requireRole(w http.ResponseWriter, r *http.Request, log *slog.Logger, message string, allowed ...string) (models.User, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return models.User{}, false
	}
	for _, role := range allowed {
		if user.Role == role {
			return user, true
		}
	}
	log.Warn("forbidden request", "path", r.URL.Path, "user_id", user.ID, "role", user.Role)
	respond.Detail(w, http.StatusForbidden, message)
	return models.User{}, false
}
