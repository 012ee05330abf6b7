package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feastline/menu-api/internal/auth"
	"github.com/feastline/menu-api/internal/middleware"
	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/models/dto"
	"github.com/feastline/menu-api/internal/service"
	"github.com/feastline/menu-api/internal/storage/memory"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires the real routing topology (public auth routes, gated user
// and menu admin routes) over the in-memory store.
type testEnv struct {
	router *chi.Mux
	store  *memory.Store
	tokens *auth.TokenManager
	users  *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	tokens := auth.NewTokenManager("handler-test-secret", time.Hour)
	hasher := auth.NewPasswordHasherWithCost(bcrypt.MinCost)

	users := service.NewUserService(store, hasher, tokens, log)
	menu := service.NewMenuService(store)
	gate := middleware.RequireUser(tokens, store, log)

	r := chi.NewRouter()
	r.Route("/auth", NewAuthHandler(users, log).Routes)
	r.Route("/users", func(r chi.Router) {
		r.Use(gate)
		NewUserHandler(users, log).Routes(r)
	})
	menuHandler := NewMenuHandler(menu, log)
	r.Route("/menu", func(r chi.Router) {
		menuHandler.PublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(gate)
			menuHandler.AdminRoutes(r)
		})
	})

	return &testEnv{router: r, store: store, tokens: tokens, users: users}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// seedUser registers an account, forces the requested role, and returns the
// record plus a valid bearer token for it.
func (e *testEnv) seedUser(t *testing.T, username, email, role string) (models.User, string) {
	t.Helper()
	user, err := e.users.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "Passw0rd",
	})
	require.NoError(t, err)

	if role != models.RoleUser {
		user, err = e.store.UpdateUserRole(context.Background(), user.ID, role)
		require.NoError(t, err)
	}

	token, err := e.tokens.Issue(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// validationMessages flattens a 422 body into its message strings.
func validationMessages(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var out struct {
		Detail []dto.FieldError `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	msgs := make([]string, 0, len(out.Detail))
	for _, fe := range out.Detail {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
