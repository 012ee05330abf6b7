package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const itemColumns = `id, name, description, price_cents, stock, is_available, category_id`

// CreateCategory inserts a category with an empty item list.
func (s *Store) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id, name;`
	var cat models.Category
	if err := s.pool.QueryRow(ctx, query, name).Scan(&cat.ID, &cat.Name); err != nil {
		return models.Category{}, mapPgError(err)
	}
	cat.Items = []models.MenuItem{}
	return cat, nil
}

// FindCategoryByID fetches a category with its owned items.
func (s *Store) FindCategoryByID(ctx context.Context, id int64) (models.Category, error) {
	const query = `SELECT id, name FROM categories WHERE id = $1;`
	var cat models.Category
	if err := s.pool.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name); err != nil {
		return models.Category{}, mapPgError(err)
	}
	items, err := s.ListItemsByCategory(ctx, cat.ID)
	if err != nil {
		return models.Category{}, err
	}
	cat.Items = items
	return cat, nil
}

// FindCategoryByName fetches a category by its unique name, without items.
func (s *Store) FindCategoryByName(ctx context.Context, name string) (models.Category, error) {
	const query = `SELECT id, name FROM categories WHERE name = $1;`
	var cat models.Category
	if err := s.pool.QueryRow(ctx, query, name).Scan(&cat.ID, &cat.Name); err != nil {
		return models.Category{}, mapPgError(err)
	}
	cat.Items = []models.MenuItem{}
	return cat, nil
}

// ListCategories returns all categories with their items.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range cats {
		items, err := s.ListItemsByCategory(ctx, cats[i].ID)
		if err != nil {
			return nil, err
		}
		cats[i].Items = items
	}
	return cats, nil
}

// RenameCategory updates the category name and returns the fresh record.
func (s *Store) RenameCategory(ctx context.Context, id int64, name string) (models.Category, error) {
	const query = `UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name;`
	var cat models.Category
	if err := s.pool.QueryRow(ctx, query, id, name).Scan(&cat.ID, &cat.Name); err != nil {
		return models.Category{}, mapPgError(err)
	}
	items, err := s.ListItemsByCategory(ctx, cat.ID)
	if err != nil {
		return models.Category{}, err
	}
	cat.Items = items
	return cat, nil
}

// DeleteCategory removes an empty category. A category still owning items is
// refused rather than cascaded.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return storage.ErrCategoryNotEmpty
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateItem inserts a menu item. A missing category surfaces as ErrNotFound,
// a duplicate name within the category as ErrAlreadyExists.
func (s *Store) CreateItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	const query = `
		INSERT INTO menu_items (name, description, price_cents, stock, is_available, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + itemColumns + `;`

	var desc *string
	if item.Description != "" {
		desc = &item.Description
	}
	row := s.pool.QueryRow(ctx, query, item.Name, desc, item.PriceCents, item.Stock, item.IsAvailable, item.CategoryID)
	return scanItem(row)
}

// FindItemByID fetches an item by primary key.
func (s *Store) FindItemByID(ctx context.Context, id int64) (models.MenuItem, error) {
	const query = `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1;`
	return scanItem(s.pool.QueryRow(ctx, query, id))
}

// FindItemByName fetches an item by its category-scoped unique name.
func (s *Store) FindItemByName(ctx context.Context, categoryID int64, name string) (models.MenuItem, error) {
	const query = `SELECT ` + itemColumns + ` FROM menu_items WHERE category_id = $1 AND name = $2;`
	return scanItem(s.pool.QueryRow(ctx, query, categoryID, name))
}

// ListItemsByCategory returns the items owned by a category.
func (s *Store) ListItemsByCategory(ctx context.Context, categoryID int64) ([]models.MenuItem, error) {
	const query = `SELECT ` + itemColumns + ` FROM menu_items WHERE category_id = $1 ORDER BY id;`
	rows, err := s.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem applies only the fields present in the patch.
func (s *Store) UpdateItem(ctx context.Context, id int64, patch models.MenuItemPatch) (models.MenuItem, error) {
	sets := []string{}
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.PriceCents != nil {
		add("price_cents", *patch.PriceCents)
	}
	if patch.Stock != nil {
		add("stock", *patch.Stock)
	}
	if patch.IsAvailable != nil {
		add("is_available", *patch.IsAvailable)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	if len(sets) == 0 {
		return s.FindItemByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE menu_items SET %s WHERE id = $1 RETURNING %s;`,
		strings.Join(sets, ", "), itemColumns)
	return scanItem(s.pool.QueryRow(ctx, query, args...))
}

// DeleteItem removes an item by id.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (models.MenuItem, error) {
	var item models.MenuItem
	var desc *string
	if err := row.Scan(&item.ID, &item.Name, &desc, &item.PriceCents, &item.Stock, &item.IsAvailable, &item.CategoryID); err != nil {
		return models.MenuItem{}, mapPgError(err)
	}
	if desc != nil {
		item.Description = *desc
	}
	return item, nil
}

// mapPgError translates driver errors into the storage sentinels: unique
// violations become ErrAlreadyExists, foreign-key violations (a reference to
// a missing category) and empty results become ErrNotFound.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return storage.ErrAlreadyExists
		case "23503":
			return storage.ErrNotFound
		}
	}
	return err
}
