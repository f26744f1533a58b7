package service

import (
	"context"
	"time"

	"dropshop/internal/mapping"
	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/rs/zerolog"
)

// dropshipperService implements DropshipperService.
type dropshipperService struct {
	newUnitOfWork repository.UnitOfWorkFactory
	mapper        *mapping.Mapper
	logger        zerolog.Logger
}

// NewDropshipperService creates a new dropshipper service.
func NewDropshipperService(newUnitOfWork repository.UnitOfWorkFactory, mapper *mapping.Mapper, logger zerolog.Logger) DropshipperService {
	return &dropshipperService{
		newUnitOfWork: newUnitOfWork,
		mapper:        mapper,
		logger:        logger.With().Str("service", "dropshipper").Logger(),
	}
}

// Create registers the account userID as a dropshipper.
func (s *dropshipperService) Create(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error) {
	if err := firstError(
		requireText("userId", userID),
		requireText("userName", dto.UserName),
	); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	exists, err := uow.Dropshippers().Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.NewValidationError("userId", "dropshipper already exists")
	}

	dropshipper := model.Dropshipper{
		UserID:    userID,
		CreatedAt: model.NewDate(time.Now()).Time,
	}
	s.mapper.ApplyDropshipper(dto, &dropshipper)
	uow.Dropshippers().Add(&dropshipper)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create dropshipper")
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("dropshipper created")

	result := s.mapper.Dropshipper(dropshipper)
	return &result, nil
}

func (s *dropshipperService) GetByID(ctx context.Context, userID string) (*model.DropshipperDTO, error) {
	dropshipper, err := s.newUnitOfWork().Dropshippers().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dropshipper == nil {
		return nil, model.NewNotFoundError(userID, "dropshipper")
	}

	dto := s.mapper.Dropshipper(*dropshipper)
	return &dto, nil
}

func (s *dropshipperService) GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.DropshipperDTO], error) {
	page, err := s.newUnitOfWork().Dropshippers().GetPage(ctx, params)
	if err != nil {
		return model.Page[model.DropshipperDTO]{}, err
	}
	return mapping.MapPage(page, s.mapper.Dropshipper), nil
}

// Update replaces the profile of userID. The account id itself never changes.
func (s *dropshipperService) Update(ctx context.Context, userID string, dto model.DropshipperDTO) (*model.DropshipperDTO, error) {
	if err := requireText("userName", dto.UserName); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	dropshipper, err := uow.Dropshippers().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dropshipper == nil {
		return nil, model.NewNotFoundError(userID, "dropshipper")
	}

	s.mapper.ApplyDropshipper(dto, dropshipper)
	uow.Dropshippers().Update(dropshipper)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update dropshipper")
		return nil, err
	}

	result := s.mapper.Dropshipper(*dropshipper)
	return &result, nil
}

func (s *dropshipperService) Delete(ctx context.Context, userID string) error {
	uow := s.newUnitOfWork()

	exists, err := uow.Dropshippers().Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewNotFoundError(userID, "dropshipper")
	}

	uow.Dropshippers().Delete(userID)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete dropshipper")
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("dropshipper deleted")
	return nil
}
