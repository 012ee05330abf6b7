// Package respond centralizes JSON response writing and the mapping from
// domain error kinds to HTTP status codes. Services never see status codes;
// handlers never inspect error message text.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/feastline/menu-api/internal/models/dto"
	"github.com/feastline/menu-api/internal/service"
)

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Detail writes an error body of the shape {"detail": message}.
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"detail": message})
}

// ValidationErrors writes a 422 with the per-field failure list.
func ValidationErrors(w http.ResponseWriter, errs []dto.FieldError) {
	JSON(w, http.StatusUnprocessableEntity, map[string][]dto.FieldError{"detail": errs})
}

// DomainError maps a service error to its response. Conflicts carry no fixed
// status in the taxonomy; each route supplies the one its contract promises
// (registration and menu duplicates answer 400, role transitions 409).
// Anything that is not a tagged domain error is logged with context and
// masked as a generic internal failure.
func DomainError(w http.ResponseWriter, log *slog.Logger, op string, err error, conflictStatus int) {
	domainErr, ok := service.AsError(err)
	if !ok {
		log.Error("unexpected failure", "op", op, "error", err)
		Detail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case service.KindValidation:
		status = http.StatusUnprocessableEntity
	case service.KindConflict:
		status = conflictStatus
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindUnauthenticated:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	}
	Detail(w, status, domainErr.Message)
}
