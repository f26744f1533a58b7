package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products; referenced by Product, never embedded.
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Brand is a product manufacturer; referenced by Product, never embedded.
type Brand struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// BrandRequest creates or renames a brand.
type BrandRequest struct {
	Name string `json:"name"`
}

// CategoryDTO is the outbound shape of a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BrandDTO is the outbound shape of a brand.
type BrandDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
