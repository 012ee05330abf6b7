package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/storage"
)

// MenuService owns the category and item catalog.
type MenuService struct {
	store storage.MenuStore
}

// NewMenuService constructs the service.
func NewMenuService(store storage.MenuStore) *MenuService {
	return &MenuService{store: store}
}

// CreateCategory creates a category with a globally unique name.
func (s *MenuService) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	if _, err := s.store.FindCategoryByName(ctx, name); err == nil {
		return models.Category{}, Conflict("Category already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Category{}, fmt.Errorf("look up category %q: %w", name, err)
	}

	cat, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.Category{}, Conflict("Category already exists")
		}
		return models.Category{}, fmt.Errorf("create category %q: %w", name, err)
	}
	return cat, nil
}

// GetCategory returns a category with its items.
func (s *MenuService) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	cat, err := s.store.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Category{}, NotFound("Category not found")
		}
		return models.Category{}, fmt.Errorf("look up category %d: %w", id, err)
	}
	return cat, nil
}

// ListCategories returns every category with its items.
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// RenameCategory changes a category name, keeping names unique.
func (s *MenuService) RenameCategory(ctx context.Context, id int64, name string) (models.Category, error) {
	if existing, err := s.store.FindCategoryByName(ctx, name); err == nil && existing.ID != id {
		return models.Category{}, Conflict("Category already exists")
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Category{}, fmt.Errorf("look up category %q: %w", name, err)
	}

	cat, err := s.store.RenameCategory(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return models.Category{}, NotFound("Category not found")
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.Category{}, Conflict("Category already exists")
		}
		return models.Category{}, fmt.Errorf("rename category %d: %w", id, err)
	}
	return cat, nil
}

// DeleteCategory removes a category that owns no items.
func (s *MenuService) DeleteCategory(ctx context.Context, id int64) error {
	err := s.store.DeleteCategory(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return NotFound("Category not found")
	case errors.Is(err, storage.ErrCategoryNotEmpty):
		return Conflict("Category still has items")
	}
	return fmt.Errorf("delete category %d: %w", id, err)
}

// CreateItem creates an item inside an existing category. Item names are
// unique within their category, not globally.
func (s *MenuService) CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if _, err := s.store.FindCategoryByID(ctx, item.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.MenuItem{}, NotFound("Category not found")
		}
		return models.MenuItem{}, fmt.Errorf("look up category %d: %w", item.CategoryID, err)
	}

	if _, err := s.store.FindItemByName(ctx, item.CategoryID, item.Name); err == nil {
		return models.MenuItem{}, Conflict("Menu item already exists in this category")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.MenuItem{}, fmt.Errorf("look up item %q: %w", item.Name, err)
	}

	created, err := s.store.CreateItem(ctx, item)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.MenuItem{}, Conflict("Menu item already exists in this category")
		case errors.Is(err, storage.ErrNotFound):
			return models.MenuItem{}, NotFound("Category not found")
		}
		return models.MenuItem{}, fmt.Errorf("create item %q: %w", item.Name, err)
	}
	return created, nil
}

// GetItem returns a single item.
func (s *MenuService) GetItem(ctx context.Context, id int64) (models.MenuItem, error) {
	item, err := s.store.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.MenuItem{}, NotFound("Menu item not found")
		}
		return models.MenuItem{}, fmt.Errorf("look up item %d: %w", id, err)
	}
	return item, nil
}

// ListItems returns the items of an existing category.
func (s *MenuService) ListItems(ctx context.Context, categoryID int64) ([]models.MenuItem, error) {
	if _, err := s.store.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NotFound("Category not found")
		}
		return nil, fmt.Errorf("look up category %d: %w", categoryID, err)
	}
	items, err := s.store.ListItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items of category %d: %w", categoryID, err)
	}
	return items, nil
}

// UpdateItem applies a partial update; absent fields keep their values. A
// category move re-checks the target category and the name's uniqueness
// within it.
func (s *MenuService) UpdateItem(ctx context.Context, id int64, patch models.MenuItemPatch) (models.MenuItem, error) {
	item, err := s.store.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.MenuItem{}, NotFound("Menu item not found")
		}
		return models.MenuItem{}, fmt.Errorf("look up item %d: %w", id, err)
	}

	targetCategory := item.CategoryID
	if patch.CategoryID != nil {
		targetCategory = *patch.CategoryID
		if _, err := s.store.FindCategoryByID(ctx, targetCategory); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.MenuItem{}, NotFound("Category not found")
			}
			return models.MenuItem{}, fmt.Errorf("look up category %d: %w", targetCategory, err)
		}
	}
	targetName := item.Name
	if patch.Name != nil {
		targetName = *patch.Name
	}
	if targetName != item.Name || targetCategory != item.CategoryID {
		if existing, err := s.store.FindItemByName(ctx, targetCategory, targetName); err == nil && existing.ID != id {
			return models.MenuItem{}, Conflict("Menu item already exists in this category")
		} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return models.MenuItem{}, fmt.Errorf("look up item %q: %w", targetName, err)
		}
	}

	updated, err := s.store.UpdateItem(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.MenuItem{}, Conflict("Menu item already exists in this category")
		case errors.Is(err, storage.ErrNotFound):
			return models.MenuItem{}, NotFound("Menu item not found")
		}
		return models.MenuItem{}, fmt.Errorf("update item %d: %w", id, err)
	}
	return updated, nil
}

// DeleteItem removes an item.
func (s *MenuService) DeleteItem(ctx context.Context, id int64) error {
	err := s.store.DeleteItem(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return NotFound("Menu item not found")
	}
	return fmt.Errorf("delete item %d: %w", id, err)
}
