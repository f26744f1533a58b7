package model

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ModelYear   int             `db:"model_year"`
	CategoryID  uuid.UUID       `db:"category_id"`
	BrandID     uuid.UUID       `db:"brand_id"`
	CreatedAt   time.Time       `db:"created_at"`

	Category *Category
	Brand    *Brand
	// Images keeps the attachment order.
	Images []ProductImage
}

// ProductImage is a stored attachment reference owned by a product.
type ProductImage struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	Reference string    `db:"reference"`
	Position  int       `db:"position"`
}

// ImageUpload is a binary image payload received with a product create request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductCreateDTO is the request payload for creating a product.
type ProductCreateDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ModelYear   int             `json:"modelYear"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	BrandID     uuid.UUID       `json:"brandId"`
	Images      []ImageUpload   `json:"-"`
}

// ProductUpdateDTO replaces the scalar fields of an existing product.
type ProductUpdateDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ModelYear   int             `json:"modelYear"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	BrandID     uuid.UUID       `json:"brandId"`
}

// ProductDTO is the list shape of a product.
type ProductDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ModelYear    int             `json:"modelYear"`
	CategoryName string          `json:"categoryName"`
	BrandName    string          `json:"brandName"`
	Images       []string        `json:"images"`
}

// ProductDetailsDTO is the single-product shape used by the storefront.
type ProductDetailsDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ModelYear    int             `json:"modelYear"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	BrandID      uuid.UUID       `json:"brandId"`
	BrandName    string          `json:"brandName"`
	Images       []string        `json:"images"`
	CreatedAt    time.Time       `json:"createdAt"`
}
