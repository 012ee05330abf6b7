package storage

import (
	"context"
	"errors"

	"github.com/feastline/menu-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrCategoryNotEmpty indicates a category still owns items and cannot be
// deleted.
var ErrCategoryNotEmpty = errors.New("category still has items")

// UserStore captures persistence operations over identity records.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (models.User, error)
}

// MenuStore captures persistence operations over the menu catalog.
type MenuStore interface {
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	FindCategoryByID(ctx context.Context, id int64) (models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	FindItemByID(ctx context.Context, id int64) (models.MenuItem, error)
	FindItemByName(ctx context.Context, categoryID int64, name string) (models.MenuItem, error)
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]models.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, patch models.MenuItemPatch) (models.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// Store is the full persistence surface the services depend on.
type Store interface {
	UserStore
	MenuStore
}
