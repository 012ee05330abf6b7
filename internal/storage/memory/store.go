// Package memory holds an in-memory storage.Store used by tests and local
// development. Uniqueness rules mirror the Postgres schema so service-level
// conflict handling exercises the same paths.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps all records in process memory behind a single mutex.
type Store struct {
	mu         sync.Mutex
	users      map[int64]models.User
	categories map[int64]models.Category
	items      map[int64]models.MenuItem
	nextUser   int64
	nextCat    int64
	nextItem   int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:      make(map[int64]models.User),
		categories: make(map[int64]models.Category),
		items:      make(map[int64]models.MenuItem),
	}
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
		if user.PhoneNumber != "" && u.PhoneNumber == user.PhoneNumber {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) UpdateUserRole(_ context.Context, id int64, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user.Role = role
	s.users[id] = user
	return user, nil
}

func (s *Store) CreateCategory(_ context.Context, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			return models.Category{}, storage.ErrAlreadyExists
		}
	}
	s.nextCat++
	cat := models.Category{ID: s.nextCat, Name: name, Items: []models.MenuItem{}}
	s.categories[cat.ID] = cat
	return cat, nil
}

func (s *Store) FindCategoryByID(_ context.Context, id int64) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[id]
	if !ok {
		return models.Category{}, storage.ErrNotFound
	}
	cat.Items = s.itemsOf(id)
	return cat, nil
}

func (s *Store) FindCategoryByName(_ context.Context, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			c.Items = s.itemsOf(c.ID)
			return c, nil
		}
	}
	return models.Category{}, storage.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats := []models.Category{}
	for id := int64(1); id <= s.nextCat; id++ {
		if cat, ok := s.categories[id]; ok {
			cat.Items = s.itemsOf(id)
			cats = append(cats, cat)
		}
	}
	return cats, nil
}

func (s *Store) RenameCategory(_ context.Context, id int64, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[id]
	if !ok {
		return models.Category{}, storage.ErrNotFound
	}
	for _, c := range s.categories {
		if c.ID != id && c.Name == name {
			return models.Category{}, storage.ErrAlreadyExists
		}
	}
	cat.Name = name
	s.categories[id] = cat
	cat.Items = s.itemsOf(id)
	return cat, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return storage.ErrNotFound
	}
	if len(s.itemsOf(id)) > 0 {
		return storage.ErrCategoryNotEmpty
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) CreateItem(_ context.Context, item models.MenuItem) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[item.CategoryID]; !ok {
		return models.MenuItem{}, storage.ErrNotFound
	}
	for _, existing := range s.items {
		if existing.CategoryID == item.CategoryID && existing.Name == item.Name {
			return models.MenuItem{}, storage.ErrAlreadyExists
		}
	}
	s.nextItem++
	item.ID = s.nextItem
	s.items[item.ID] = item
	return item, nil
}

func (s *Store) FindItemByID(_ context.Context, id int64) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.MenuItem{}, storage.ErrNotFound
	}
	return item, nil
}

func (s *Store) FindItemByName(_ context.Context, categoryID int64, name string) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.CategoryID == categoryID && item.Name == name {
			return item, nil
		}
	}
	return models.MenuItem{}, storage.ErrNotFound
}

func (s *Store) ListItemsByCategory(_ context.Context, categoryID int64) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsOf(categoryID), nil
}

func (s *Store) UpdateItem(_ context.Context, id int64, patch models.MenuItemPatch) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.MenuItem{}, storage.ErrNotFound
	}
	if patch.CategoryID != nil {
		if _, ok := s.categories[*patch.CategoryID]; !ok {
			return models.MenuItem{}, storage.ErrNotFound
		}
		item.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	for _, existing := range s.items {
		if existing.ID != id && existing.CategoryID == item.CategoryID && existing.Name == item.Name {
			return models.MenuItem{}, storage.ErrAlreadyExists
		}
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		item.PriceCents = *patch.PriceCents
	}
	if patch.Stock != nil {
		item.Stock = *patch.Stock
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
	}
	s.items[id] = item
	return item, nil
}

func (s *Store) DeleteItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// itemsOf must be called with the mutex held.
func (s *Store) itemsOf(categoryID int64) []models.MenuItem {
	items := []models.MenuItem{}
	for id := int64(1); id <= s.nextItem; id++ {
		if item, ok := s.items[id]; ok && item.CategoryID == categoryID {
			items = append(items, item)
		}
	}
	return items
}
