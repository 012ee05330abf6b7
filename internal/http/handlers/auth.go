package handlers

import (
	"log/slog"
	"net/http"

	"github.com/feastline/menu-api/internal/http/respond"
	"github.com/feastline/menu-api/internal/models/dto"
	"github.com/feastline/menu-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	users *service.UserService
	log   *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users *service.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

// Routes mounts the auth endpoints.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		// Duplicate email/username answer 400 on this route.
		respond.DomainError(w, h.log, "register", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.DomainError(w, h.log, "login", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}
