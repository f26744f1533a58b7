package service

import (
	"context"

	"dropshop/internal/model"

	"github.com/google/uuid"
)

// OrderService defines operations for order management.
type OrderService interface {
	// Create validates the request, stores the order with its items in one
	// commit and returns the stored order.
	Create(ctx context.Context, dto model.OrderCreateDTO) (*model.OrderDetailsDTO, error)

	// GetByID retrieves a live order with its items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetailsDTO, error)

	// GetPage filters and paginates live orders.
	GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.OrderDetailsDTO], error)

	// Update replaces the scalar fields of an order.
	Update(ctx context.Context, id uuid.UUID, dto model.OrderUpdateDTO) (*model.OrderDetailsDTO, error)

	// Delete soft-deletes an order.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// Create uploads the images, then stores the product with their references.
	Create(ctx context.Context, dto model.ProductCreateDTO) (*model.ProductDetailsDTO, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetailsDTO, error)

	GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.ProductDTO], error)

	// Update replaces the scalar fields of a product. Images are kept.
	Update(ctx context.Context, id uuid.UUID, dto model.ProductUpdateDTO) (*model.ProductDetailsDTO, error)

	// Delete removes the product, then its stored images.
	Delete(ctx context.Context, id uuid.UUID) error
}

// NamedService defines operations for the id+name catalog aggregates.
type NamedService[R, D any] interface {
	Create(ctx context.Context, req R) (*D, error)
	GetByID(ctx context.Context, id uuid.UUID) (*D, error)
	GetPage(ctx context.Context, params model.NameParameters) (model.Page[D], error)
	Update(ctx context.Context, id uuid.UUID, req R) (*D, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService defines operations for category management.
type CategoryService = NamedService[model.CategoryRequest, model.CategoryDTO]

// BrandService defines operations for brand management.
type BrandService = NamedService[model.BrandRequest, model.BrandDTO]

// DropshipperService defines operations for dropshipper accounts. The
// account id always comes from the caller, never from the DTO.
type DropshipperService interface {
	Create(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error)
	GetByID(ctx context.Context, userID string) (*model.DropshipperDTO, error)
	GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.DropshipperDTO], error)
	Update(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error)
	Delete(ctx context.Context, userID string) error
}
