package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/feastline/menu-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	// No bearer header: the gate rejects before any service logic runs.
	rec := env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, "")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "Invalid authentication credentials", decodeBody(t, rec)["detail"])

	rec = env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, "not-a-token")
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestCreateCategory_RequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.seedUser(t, "bob", "b@x.com", models.RoleUser)

	rec := env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, userToken)
	requireStatus(t, rec, http.StatusForbidden)
	assert.Equal(t, "Only admins can create categories", decodeBody(t, rec)["detail"])
}

func TestCreateCategory_OK(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, adminToken)
	requireStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)
	assert.Equal(t, "Starters", body["name"])
	assert.NotZero(t, body["id"])

	// Super-admins pass the same allow-set.
	_, superToken := env.seedUser(t, "root", "root@x.com", models.RoleSuperAdmin)
	requireStatus(t, env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Mains"}, superToken), http.StatusOK)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)

	requireStatus(t, env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, adminToken), http.StatusOK)

	rec := env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, adminToken)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Category already exists", decodeBody(t, rec)["detail"])
}

func TestStaleTokenUsesLiveRole(t *testing.T) {
	env := newTestEnv(t)
	user, userToken := env.seedUser(t, "alice", "a@x.com", models.RoleUser)
	_, superToken := env.seedUser(t, "root", "root@x.com", models.RoleSuperAdmin)

	// With the original role the request is forbidden.
	requireStatus(t, env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, userToken), http.StatusForbidden)

	// After promotion the same token works: the gate trusts the freshly
	// loaded record, not the role claim baked into the token.
	requireStatus(t, env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/make-admin", user.ID), nil, superToken), http.StatusOK)
	requireStatus(t, env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": "Starters"}, userToken), http.StatusOK)
}

func createCategory(t *testing.T, env *testEnv, token, name string) int64 {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/menu/categories", map[string]string{"name": name}, token)
	requireStatus(t, rec, http.StatusOK)
	id, ok := decodeBody(t, rec)["id"].(float64)
	require.True(t, ok)
	return int64(id)
}

func TestCreateItem(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)
	catID := createCategory(t, env, adminToken, "Mains")

	payload := map[string]any{
		"name":        "Burger",
		"description": "with fries",
		"price_cents": 1250,
		"stock":       5,
		"category_id": catID,
	}
	rec := env.do(t, http.MethodPost, "/menu/items", payload, adminToken)
	requireStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)
	assert.Equal(t, "Burger", body["name"])
	assert.Equal(t, true, body["is_available"])

	// Duplicate name within the category.
	rec = env.do(t, http.MethodPost, "/menu/items", payload, adminToken)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Menu item already exists in this category", decodeBody(t, rec)["detail"])
}

func TestCreateItem_MissingCategory(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/menu/items", map[string]any{
		"name":        "Ghost",
		"price_cents": 100,
		"category_id": 77,
	}, adminToken)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Category not found", decodeBody(t, rec)["detail"])
}

func TestCreateItem_SchemaValidation(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)
	catID := createCategory(t, env, adminToken, "Mains")

	tests := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{
			name:    "zero price",
			payload: map[string]any{"name": "Burger", "price_cents": 0, "category_id": catID},
			message: "Price must be greater than zero",
		},
		{
			name:    "negative price",
			payload: map[string]any{"name": "Burger", "price_cents": -5, "category_id": catID},
			message: "Price must be greater than zero",
		},
		{
			name:    "negative stock",
			payload: map[string]any{"name": "Burger", "price_cents": 100, "stock": -1, "category_id": catID},
			message: "Stock cannot be negative",
		},
		{
			name:    "missing name",
			payload: map[string]any{"price_cents": 100, "category_id": catID},
			message: "Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/menu/items", tt.payload, adminToken)
			requireStatus(t, rec, http.StatusUnprocessableEntity)
			assert.Contains(t, validationMessages(t, rec), tt.message)
		})
	}
}

func TestPatchItem(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)
	catID := createCategory(t, env, adminToken, "Mains")

	rec := env.do(t, http.MethodPost, "/menu/items", map[string]any{
		"name":        "Burger",
		"price_cents": 1250,
		"stock":       5,
		"category_id": catID,
	}, adminToken)
	requireStatus(t, rec, http.StatusOK)
	itemID := int64(decodeBody(t, rec)["id"].(float64))

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/menu/items/%d", itemID), map[string]any{
		"price_cents":  1350,
		"is_available": false,
	}, adminToken)
	requireStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)
	assert.Equal(t, "Burger", body["name"])
	assert.Equal(t, float64(1350), body["price_cents"])
	assert.Equal(t, float64(5), body["stock"])
	assert.Equal(t, false, body["is_available"])

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/menu/items/%d", itemID), map[string]any{
		"price_cents": 0,
	}, adminToken)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestMenuReadsArePublic(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)
	catID := createCategory(t, env, adminToken, "Mains")

	rec := env.do(t, http.MethodGet, "/menu/categories", nil, "")
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/menu/categories/%d", catID), nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Mains", decodeBody(t, rec)["name"])

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/menu/categories/%d/items", catID), nil, "")
	requireStatus(t, rec, http.StatusOK)

	requireStatus(t, env.do(t, http.MethodGet, "/menu/categories/999", nil, ""), http.StatusNotFound)
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "adm", "adm@x.com", models.RoleAdmin)
	catID := createCategory(t, env, adminToken, "Mains")

	rec := env.do(t, http.MethodPost, "/menu/items", map[string]any{
		"name":        "Burger",
		"price_cents": 1250,
		"category_id": catID,
	}, adminToken)
	requireStatus(t, rec, http.StatusOK)
	itemID := int64(decodeBody(t, rec)["id"].(float64))

	// Refused while the category still owns items.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/menu/categories/%d", catID), nil, adminToken)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Category still has items", decodeBody(t, rec)["detail"])

	requireStatus(t, env.do(t, http.MethodDelete, fmt.Sprintf("/menu/items/%d", itemID), nil, adminToken), http.StatusOK)
	requireStatus(t, env.do(t, http.MethodDelete, fmt.Sprintf("/menu/categories/%d", catID), nil, adminToken), http.StatusOK)
	requireStatus(t, env.do(t, http.MethodDelete, fmt.Sprintf("/menu/categories/%d", catID), nil, adminToken), http.StatusNotFound)
}
