package handler

import (
	"context"

	"dropshop/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, dto model.OrderCreateDTO) (*model.OrderDetailsDTO, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetailsDTO), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetailsDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetailsDTO), args.Error(1)
}

func (m *MockOrderService) GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.OrderDetailsDTO], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.OrderDetailsDTO]), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id uuid.UUID, dto model.OrderUpdateDTO) (*model.OrderDetailsDTO, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetailsDTO), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, dto model.ProductCreateDTO) (*model.ProductDetailsDTO, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetailsDTO), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetailsDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetailsDTO), args.Error(1)
}

func (m *MockProductService) GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.ProductDTO], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.ProductDTO]), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, dto model.ProductUpdateDTO) (*model.ProductDetailsDTO, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetailsDTO), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockNamedService is a mock implementation of NamedService.
type MockNamedService[R, D any] struct {
	mock.Mock
}

func (m *MockNamedService[R, D]) Create(ctx context.Context, req R) (*D, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockNamedService[R, D]) GetByID(ctx context.Context, id uuid.UUID) (*D, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockNamedService[R, D]) GetPage(ctx context.Context, params model.NameParameters) (model.Page[D], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[D]), args.Error(1)
}

func (m *MockNamedService[R, D]) Update(ctx context.Context, id uuid.UUID, req R) (*D, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockNamedService[R, D]) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockDropshipperService is a mock implementation of DropshipperService.
type MockDropshipperService struct {
	mock.Mock
}

func (m *MockDropshipperService) Create(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error) {
	args := m.Called(ctx, userID, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DropshipperDTO), args.Error(1)
}

func (m *MockDropshipperService) GetByID(ctx context.Context, userID string) (*model.DropshipperDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DropshipperDTO), args.Error(1)
}

func (m *MockDropshipperService) GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.DropshipperDTO], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.DropshipperDTO]), args.Error(1)
}

func (m *MockDropshipperService) Update(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error) {
	args := m.Called(ctx, userID, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DropshipperDTO), args.Error(1)
}

func (m *MockDropshipperService) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
