package handlers

import (
	"log/slog"
	"net/http"

	"github.com/feastline/menu-api/internal/http/respond"
	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/models/dto"
	"github.com/feastline/menu-api/internal/service"
	"github.com/go-chi/chi/v5"
)

const menuRoleMessage = "Only admins can manage the menu"

// MenuHandler owns the category and item endpoints. Reads are public; writes
// require an admin or super-admin and are mounted behind the authorization
// gate.
type MenuHandler struct {
	menu *service.MenuService
	log  *slog.Logger
}

// NewMenuHandler constructs the handler.
func NewMenuHandler(menu *service.MenuService, log *slog.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, log: log}
}

// PublicRoutes mounts the unauthenticated read endpoints.
func (h *MenuHandler) PublicRoutes(r chi.Router) {
	r.Get("/categories", h.handleListCategories)
	r.Get("/categories/{categoryID}", h.handleGetCategory)
	r.Get("/categories/{categoryID}/items", h.handleListItems)
	r.Get("/items/{itemID}", h.handleGetItem)
}

// AdminRoutes mounts the mutating endpoints.
func (h *MenuHandler) AdminRoutes(r chi.Router) {
	r.Post("/categories", h.handleCreateCategory)
	r.Patch("/categories/{categoryID}", h.handleRenameCategory)
	r.Delete("/categories/{categoryID}", h.handleDeleteCategory)
	r.Post("/items", h.handleCreateItem)
	r.Patch("/items/{itemID}", h.handleUpdateItem)
	r.Delete("/items/{itemID}", h.handleDeleteItem)
}

func (h *MenuHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, "Only admins can create categories", models.RoleAdmin, models.RoleSuperAdmin)
	if !ok {
		return
	}
	var req dto.CategoryCreate
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	cat, err := h.menu.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respond.DomainError(w, h.log, "create category", err, http.StatusBadRequest)
		return
	}
	h.log.Info("category created", "category_id", cat.ID, "user_id", caller.ID)
	respond.JSON(w, http.StatusOK, cat)
}

func (h *MenuHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.menu.ListCategories(r.Context())
	if err != nil {
		respond.DomainError(w, h.log, "list categories", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, cats)
}

func (h *MenuHandler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid category id")
		return
	}
	cat, err := h.menu.GetCategory(r.Context(), id)
	if err != nil {
		respond.DomainError(w, h.log, "get category", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, cat)
}

func (h *MenuHandler) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, h.log, menuRoleMessage, models.RoleAdmin, models.RoleSuperAdmin); !ok {
		return
	}
	id, ok := pathID(r, "categoryID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid category id")
		return
	}
	var req dto.CategoryUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	cat, err := h.menu.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		respond.DomainError(w, h.log, "rename category", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, cat)
}

func (h *MenuHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, h.log, menuRoleMessage, models.RoleAdmin, models.RoleSuperAdmin); !ok {
		return
	}
	id, ok := pathID(r, "categoryID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid category id")
		return
	}
	if err := h.menu.DeleteCategory(r.Context(), id); err != nil {
		respond.DomainError(w, h.log, "delete category", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func (h *MenuHandler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireRole(w, r, h.log, menuRoleMessage, models.RoleAdmin, models.RoleSuperAdmin)
	if !ok {
		return
	}
	req := dto.MenuItemCreate{IsAvailable: true}
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	item, err := h.menu.CreateItem(r.Context(), models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respond.DomainError(w, h.log, "create item", err, http.StatusBadRequest)
		return
	}
	h.log.Info("menu item created", "item_id", item.ID, "user_id", caller.ID)
	respond.JSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid item id")
		return
	}
	item, err := h.menu.GetItem(r.Context(), id)
	if err != nil {
		respond.DomainError(w, h.log, "get item", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid category id")
		return
	}
	items, err := h.menu.ListItems(r.Context(), id)
	if err != nil {
		respond.DomainError(w, h.log, "list items", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *MenuHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, h.log, menuRoleMessage, models.RoleAdmin, models.RoleSuperAdmin); !ok {
		return
	}
	id, ok := pathID(r, "itemID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid item id")
		return
	}
	var req dto.MenuItemUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respond.ValidationErrors(w, errs)
		return
	}

	item, err := h.menu.UpdateItem(r.Context(), id, models.MenuItemPatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respond.DomainError(w, h.log, "update item", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, h.log, menuRoleMessage, models.RoleAdmin, models.RoleSuperAdmin); !ok {
		return
	}
	id, ok := pathID(r, "itemID")
	if !ok {
		respond.Detail(w, http.StatusUnprocessableEntity, "Invalid item id")
		return
	}
	if err := h.menu.DeleteItem(r.Context(), id); err != nil {
		respond.DomainError(w, h.log, "delete item", err, http.StatusBadRequest)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted"})
}
