package dto

import "strings"

type CategoryCreate struct {
	Name string `json:"name"`
}

func (c *CategoryCreate) Validate() []FieldError {
	if strings.TrimSpace(c.Name) == "" {
		return []FieldError{{Field: "name", Message: "Name is required"}}
	}
	return nil
}

type CategoryUpdate struct {
	Name string `json:"name"`
}

func (c *CategoryUpdate) Validate() []FieldError {
	if strings.TrimSpace(c.Name) == "" {
		return []FieldError{{Field: "name", Message: "Name is required"}}
	}
	return nil
}

// MenuItemCreate carries the full item payload. Stock defaults to 0 and
// IsAvailable to true; handlers preset the defaults before decoding.
type MenuItemCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"is_available"`
	CategoryID  int64  `json:"category_id"`
}

func (m *MenuItemCreate) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if m.PriceCents <= 0 {
		errs = append(errs, FieldError{Field: "price_cents", Message: "Price must be greater than zero"})
	}
	if m.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if m.CategoryID <= 0 {
		errs = append(errs, FieldError{Field: "category_id", Message: "Category id is required"})
	}
	return errs
}

// MenuItemUpdate mirrors models.MenuItemPatch at the boundary; only fields
// present in the request body are validated and applied.
type MenuItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
	IsAvailable *bool   `json:"is_available"`
	CategoryID  *int64  `json:"category_id"`
}

func (m *MenuItemUpdate) Validate() []FieldError {
	var errs []FieldError
	if m.Name != nil && strings.TrimSpace(*m.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name cannot be empty"})
	}
	if m.PriceCents != nil && *m.PriceCents <= 0 {
		errs = append(errs, FieldError{Field: "price_cents", Message: "Price must be greater than zero"})
	}
	if m.Stock != nil && *m.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if m.CategoryID != nil && *m.CategoryID <= 0 {
		errs = append(errs, FieldError{Field: "category_id", Message: "Category id must be positive"})
	}
	return errs
}
