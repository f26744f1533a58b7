package service

import (
	"context"
	"time"

	"dropshop/internal/mapping"
	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// namedAggregate binds a catalog entity E to its request R and DTO D.
type namedAggregate[E, R, D any] struct {
	name   string
	repo   func(uow repository.UnitOfWork) repository.NamedRepository[E]
	create func(id uuid.UUID, createdAt time.Time) E
	// label returns the request's name field for validation.
	label func(req R) string
	apply func(req R, entity *E)
	toDTO func(entity E) D
}

// namedService implements NamedService for one catalog aggregate.
type namedService[E, R, D any] struct {
	newUnitOfWork repository.UnitOfWorkFactory
	aggregate     namedAggregate[E, R, D]
	logger        zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(newUnitOfWork repository.UnitOfWorkFactory, mapper *mapping.Mapper, logger zerolog.Logger) CategoryService {
	return newNamedService(newUnitOfWork, namedAggregate[model.Category, model.CategoryRequest, model.CategoryDTO]{
		name: "category",
		repo: repository.UnitOfWork.Categories,
		create: func(id uuid.UUID, createdAt time.Time) model.Category {
			return model.Category{ID: id, CreatedAt: createdAt}
		},
		label: func(req model.CategoryRequest) string { return req.Name },
		apply: mapper.ApplyCategory,
		toDTO: mapper.Category,
	}, logger)
}

// NewBrandService creates a new brand service.
func NewBrandService(newUnitOfWork repository.UnitOfWorkFactory, mapper *mapping.Mapper, logger zerolog.Logger) BrandService {
	return newNamedService(newUnitOfWork, namedAggregate[model.Brand, model.BrandRequest, model.BrandDTO]{
		name: "brand",
		repo: repository.UnitOfWork.Brands,
		create: func(id uuid.UUID, createdAt time.Time) model.Brand {
			return model.Brand{ID: id, CreatedAt: createdAt}
		},
		label: func(req model.BrandRequest) string { return req.Name },
		apply: mapper.ApplyBrand,
		toDTO: mapper.Brand,
	}, logger)
}

func newNamedService[E, R, D any](newUnitOfWork repository.UnitOfWorkFactory, aggregate namedAggregate[E, R, D], logger zerolog.Logger) *namedService[E, R, D] {
	return &namedService[E, R, D]{
		newUnitOfWork: newUnitOfWork,
		aggregate:     aggregate,
		logger:        logger.With().Str("service", aggregate.name).Logger(),
	}
}

func (s *namedService[E, R, D]) Create(ctx context.Context, req R) (*D, error) {
	if err := requireText("name", s.aggregate.label(req)); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	id := uuid.New()

	entity := s.aggregate.create(id, time.Now().UTC())
	s.aggregate.apply(req, &entity)
	s.aggregate.repo(uow).Add(&entity)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to create " + s.aggregate.name)
		return nil, err
	}

	s.logger.Info().Str("id", id.String()).Msg(s.aggregate.name + " created")

	dto := s.aggregate.toDTO(entity)
	return &dto, nil
}

func (s *namedService[E, R, D]) GetByID(ctx context.Context, id uuid.UUID) (*D, error) {
	entity, err := s.aggregate.repo(s.newUnitOfWork()).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, model.NewNotFoundError(id.String(), s.aggregate.name)
	}

	dto := s.aggregate.toDTO(*entity)
	return &dto, nil
}

func (s *namedService[E, R, D]) GetPage(ctx context.Context, params model.NameParameters) (model.Page[D], error) {
	page, err := s.aggregate.repo(s.newUnitOfWork()).GetPage(ctx, params)
	if err != nil {
		return model.Page[D]{}, err
	}
	return mapping.MapPage(page, s.aggregate.toDTO), nil
}

func (s *namedService[E, R, D]) Update(ctx context.Context, id uuid.UUID, req R) (*D, error) {
	if err := requireText("name", s.aggregate.label(req)); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	repo := s.aggregate.repo(uow)

	entity, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, model.NewNotFoundError(id.String(), s.aggregate.name)
	}

	s.aggregate.apply(req, entity)
	repo.Update(entity)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to update " + s.aggregate.name)
		return nil, err
	}

	dto := s.aggregate.toDTO(*entity)
	return &dto, nil
}

// Delete fails with a PersistenceError while products still reference the entity.
func (s *namedService[E, R, D]) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.newUnitOfWork()
	repo := s.aggregate.repo(uow)

	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewNotFoundError(id.String(), s.aggregate.name)
	}

	repo.Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete " + s.aggregate.name)
		return err
	}

	s.logger.Info().Str("id", id.String()).Msg(s.aggregate.name + " deleted")
	return nil
}
