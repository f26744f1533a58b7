package service

import (
	"context"
	"fmt"
	"time"

	"dropshop/internal/mapping"
	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	newUnitOfWork repository.UnitOfWorkFactory
	mapper        *mapping.Mapper
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	newUnitOfWork repository.UnitOfWorkFactory,
	mapper *mapping.Mapper,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		newUnitOfWork: newUnitOfWork,
		mapper:        mapper,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// Create stores a new order and its items atomically.
func (s *orderService) Create(ctx context.Context, dto model.OrderCreateDTO) (*model.OrderDetailsDTO, error) {
	status, err := s.validateCreate(dto)
	if err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	if err := s.ensureDropshipper(ctx, uow, dto.DropshipperID); err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(dto.Items))
	for i, item := range dto.Items {
		productIDs[i] = item.ProductID
	}

	missing, err := uow.Products().MissingIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Str("product_id", missing[0].String()).
			Msg("order references unknown product")
		return nil, model.NewNotFoundError(missing[0].String(), "product")
	}

	order := s.mapper.NewOrder(dto)
	order.ID = uuid.New()
	order.OrderStatus = status
	order.CreatedAt = time.Now().UTC()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}

	uow.Orders().Add(&order)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	return s.load(ctx, uow, order.ID)
}

// GetByID retrieves an order by its ID with all items and product details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetailsDTO, error) {
	return s.load(ctx, s.newUnitOfWork(), id)
}

// GetPage filters and paginates orders.
func (s *orderService) GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.OrderDetailsDTO], error) {
	page, err := s.newUnitOfWork().Orders().GetPage(ctx, params)
	if err != nil {
		return model.Page[model.OrderDetailsDTO]{}, err
	}

	s.logger.Debug().
		Int("page_index", page.PageIndex).
		Int("result_count", len(page.Result)).
		Int("total_count", page.TotalCount).
		Msg("orders retrieved")

	return mapping.MapPage(page, s.mapper.OrderDetails), nil
}

// Update replaces the scalar fields of an order.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, dto model.OrderUpdateDTO) (*model.OrderDetailsDTO, error) {
	status, err := requireStatus(dto.OrderStatus)
	if err != nil {
		return nil, err
	}
	if err := firstError(
		requireNonNegative("orderPrice", dto.OrderPrice),
		requireNonNegative("orderDiscount", dto.OrderDiscount),
		requireText("dropshipperId", dto.DropshipperID),
	); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	order, err := uow.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.NewNotFoundError(id.String(), "order")
	}

	if dto.DropshipperID != order.DropshipperID {
		if err := s.ensureDropshipper(ctx, uow, dto.DropshipperID); err != nil {
			return nil, err
		}
	}

	dto.OrderStatus = status
	s.mapper.ApplyOrderUpdate(dto, order)
	uow.Orders().Update(order)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order updated")

	return s.load(ctx, uow, id)
}

// Delete soft-deletes an order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.newUnitOfWork()

	exists, err := uow.Orders().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewNotFoundError(id.String(), "order")
	}

	uow.Orders().Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

func (s *orderService) load(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*model.OrderDetailsDTO, error) {
	order, err := uow.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.NewNotFoundError(id.String(), "order")
	}

	dto := s.mapper.OrderDetails(*order)
	return &dto, nil
}

func (s *orderService) ensureDropshipper(ctx context.Context, uow repository.UnitOfWork, userID string) error {
	exists, err := uow.Dropshippers().Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Warn().Str("dropshipper_id", userID).Msg("order references unknown dropshipper")
		return model.NewNotFoundError(userID, "dropshipper")
	}
	return nil
}

// validateCreate checks the request and resolves its status.
func (s *orderService) validateCreate(dto model.OrderCreateDTO) (model.OrderStatus, error) {
	status, err := normaliseStatus(dto.OrderStatus)
	if err != nil {
		return "", err
	}

	if err := firstError(
		requireNonNegative("orderPrice", dto.OrderPrice),
		requireNonNegative("orderDiscount", dto.OrderDiscount),
		requireText("dropshipperId", dto.DropshipperID),
	); err != nil {
		return "", err
	}

	if len(dto.Items) == 0 {
		return "", model.NewValidationError("items", "order must contain at least one item")
	}

	for i, item := range dto.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == uuid.Nil {
			return "", model.NewValidationError(field+".productId", "is required")
		}
		if item.Quantity <= 0 {
			return "", model.NewValidationError(field+".quantity", "must be greater than 0")
		}
		if err := requireNonNegative(field+".orderItemDiscount", item.OrderItemDiscount); err != nil {
			return "", err
		}
	}

	return status, nil
}
