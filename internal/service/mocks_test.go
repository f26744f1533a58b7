package service

import (
	"context"
	"io"

	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of repository.UnitOfWork.
type MockUnitOfWork struct {
	mock.Mock
	orders       *MockOrderRepository
	products     *MockProductRepository
	categories   *MockNamedRepository[model.Category]
	brands       *MockNamedRepository[model.Brand]
	dropshippers *MockDropshipperRepository
}

func newMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		orders:       new(MockOrderRepository),
		products:     new(MockProductRepository),
		categories:   new(MockNamedRepository[model.Category]),
		brands:       new(MockNamedRepository[model.Brand]),
		dropshippers: new(MockDropshipperRepository),
	}
}

func (m *MockUnitOfWork) factory() repository.UnitOfWorkFactory {
	return func() repository.UnitOfWork { return m }
}

func (m *MockUnitOfWork) Orders() repository.OrderRepository             { return m.orders }
func (m *MockUnitOfWork) Products() repository.ProductRepository         { return m.products }
func (m *MockUnitOfWork) Categories() repository.CategoryRepository      { return m.categories }
func (m *MockUnitOfWork) Brands() repository.BrandRepository             { return m.brands }
func (m *MockUnitOfWork) Dropshippers() repository.DropshipperRepository { return m.dropshippers }

func (m *MockUnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(order *model.Order)    { m.Called(order) }
func (m *MockOrderRepository) Update(order *model.Order) { m.Called(order) }
func (m *MockOrderRepository) Delete(id uuid.UUID)       { m.Called(id) }

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.Order], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Order]), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Add(product *model.Product)    { m.Called(product) }
func (m *MockProductRepository) Update(product *model.Product) { m.Called(product) }
func (m *MockProductRepository) Delete(id uuid.UUID)           { m.Called(id) }

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.Product], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Product]), args.Error(1)
}

func (m *MockProductRepository) MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockNamedRepository is a mock implementation of NamedRepository.
type MockNamedRepository[T any] struct {
	mock.Mock
}

func (m *MockNamedRepository[T]) Add(entity *T)       { m.Called(entity) }
func (m *MockNamedRepository[T]) Update(entity *T)    { m.Called(entity) }
func (m *MockNamedRepository[T]) Delete(id uuid.UUID) { m.Called(id) }

func (m *MockNamedRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockNamedRepository[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNamedRepository[T]) GetPage(ctx context.Context, params model.NameParameters) (model.Page[T], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[T]), args.Error(1)
}

// MockDropshipperRepository is a mock implementation of DropshipperRepository.
type MockDropshipperRepository struct {
	mock.Mock
}

func (m *MockDropshipperRepository) Add(d *model.Dropshipper)    { m.Called(d) }
func (m *MockDropshipperRepository) Update(d *model.Dropshipper) { m.Called(d) }
func (m *MockDropshipperRepository) Delete(userID string)        { m.Called(userID) }

func (m *MockDropshipperRepository) GetByID(ctx context.Context, userID string) (*model.Dropshipper, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dropshipper), args.Error(1)
}

func (m *MockDropshipperRepository) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDropshipperRepository) GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.Dropshipper], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Dropshipper]), args.Error(1)
}

// MockStore is a mock implementation of attachment.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, folder, filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}
