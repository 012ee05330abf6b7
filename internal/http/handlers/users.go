package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/feastline/menu-api/internal/http/respond"
	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// UserHandler owns role administration endpoints.
type UserHandler struct {
	users *service.UserService
	log   *slog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Routes mounts the user administration endpoints. The caller must already
// have passed the authorization gate.
func (h *UserHandler) Routes(r chi.Router) {
	r.Post("/{userID}/make-admin", h.handleMakeAdmin)
}

func (h *UserHandler) handleMakeAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, "Only super-admins can set admin role", models.RoleSuperAdmin)
	if !ok {
		return
	}

	targetID, ok := pathID(r, "userID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid user id")
		return
	}

	updated, err := h.users.PromoteToAdmin(r.Context(), targetID)
	if err != nil {
		// Redundant or forbidden transitions answer 409 on this route.
		respond.DomainError(w, h.log, "make-admin", err, http.StatusConflict)
		return
	}

	h.log.Info("role promoted", "user_id", updated.ID, "by_user_id", caller.ID)
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User %s is now an admin", updated.Username),
	})
}
