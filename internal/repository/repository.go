package repository

import (
	"context"

	"dropshop/internal/model"

	"github.com/google/uuid"
)

// OrderRepository defines data access operations for orders.
// Add, Update and Delete only stage statements; they become durable on
// UnitOfWork.SaveChanges. Soft-deleted orders are invisible to every read.
type OrderRepository interface {
	// Add stages the insert of an order together with its items.
	Add(order *model.Order)

	// Update stages a full replace of the order's scalar fields.
	Update(order *model.Order)

	// Delete stages a soft delete.
	Delete(id uuid.UUID)

	// GetByID retrieves an order with its dropshipper and items (each with its product).
	// Returns nil when no live order has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Exists reports whether a live order has that id.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// GetPage filters, counts and paginates orders.
	GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.Order], error)
}

// ProductRepository defines data access operations for products.
type ProductRepository interface {
	// Add stages the insert of a product together with its image references.
	Add(product *model.Product)

	// Update stages a full replace of the product's scalar fields.
	Update(product *model.Product)

	// Delete stages a hard delete; image rows cascade.
	Delete(id uuid.UUID)

	// GetByID retrieves a product with its category, brand and images.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Exists reports whether a product has that id.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// GetPage filters, counts and paginates products.
	GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.Product], error)

	// MissingIDs returns the ids from the input that match no product, in input order.
	MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// NamedRepository defines data access operations for the id+name catalog
// aggregates (categories and brands).
type NamedRepository[T any] interface {
	Add(entity *T)
	Update(entity *T)
	Delete(id uuid.UUID)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetPage(ctx context.Context, params model.NameParameters) (model.Page[T], error)
}

// CategoryRepository defines data access operations for categories.
type CategoryRepository = NamedRepository[model.Category]

// BrandRepository defines data access operations for brands.
type BrandRepository = NamedRepository[model.Brand]

// DropshipperRepository defines data access operations for dropshippers.
type DropshipperRepository interface {
	Add(dropshipper *model.Dropshipper)
	Update(dropshipper *model.Dropshipper)
	Delete(userID string)
	GetByID(ctx context.Context, userID string) (*model.Dropshipper, error)
	Exists(ctx context.Context, userID string) (bool, error)
	GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.Dropshipper], error)
}
