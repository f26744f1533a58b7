package service

import (
	"context"
	"time"

	"dropshop/internal/attachment"
	"dropshop/internal/mapping"
	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductImageFolder is the attachment folder of product images.
const ProductImageFolder = "Products"

// productService implements ProductService.
type productService struct {
	newUnitOfWork repository.UnitOfWorkFactory
	mapper        *mapping.Mapper
	store         attachment.Store
	logger        zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	newUnitOfWork repository.UnitOfWorkFactory,
	mapper *mapping.Mapper,
	store attachment.Store,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		newUnitOfWork: newUnitOfWork,
		mapper:        mapper,
		store:         store,
		logger:        logger.With().Str("service", "product").Logger(),
	}
}

// Create uploads the images, then stores the product and its image references.
func (s *productService) Create(ctx context.Context, dto model.ProductCreateDTO) (*model.ProductDetailsDTO, error) {
	if err := validateProduct(dto.Name, dto.Price, dto.ModelYear); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	if err := s.ensureReferences(ctx, uow, dto.CategoryID, dto.BrandID); err != nil {
		return nil, err
	}

	references := make([]string, 0, len(dto.Images))
	for _, image := range dto.Images {
		ref, err := s.store.Upload(ctx, ProductImageFolder, image.Filename, image.Content)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", image.Filename).Msg("failed to upload product image")
			s.removeImages(ctx, references)
			return nil, model.NewPersistenceError("upload product image", err)
		}
		references = append(references, ref)
	}

	product := s.mapper.NewProduct(dto)
	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	product.Images = make([]model.ProductImage, len(references))
	for i, ref := range references {
		product.Images[i] = model.ProductImage{
			ID:        uuid.New(),
			ProductID: product.ID,
			Reference: ref,
			Position:  i,
		}
	}

	uow.Products().Add(&product)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		s.removeImages(ctx, references)
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Int("image_count", len(references)).
		Msg("product created successfully")

	return s.load(ctx, uow, product.ID)
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetailsDTO, error) {
	return s.load(ctx, s.newUnitOfWork(), id)
}

// GetPage filters and paginates products.
func (s *productService) GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.ProductDTO], error) {
	page, err := s.newUnitOfWork().Products().GetPage(ctx, params)
	if err != nil {
		return model.Page[model.ProductDTO]{}, err
	}

	s.logger.Debug().
		Int("page_index", page.PageIndex).
		Int("result_count", len(page.Result)).
		Int("total_count", page.TotalCount).
		Msg("products retrieved")

	return mapping.MapPage(page, s.mapper.Product), nil
}

// Update replaces the scalar fields of a product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, dto model.ProductUpdateDTO) (*model.ProductDetailsDTO, error) {
	if err := validateProduct(dto.Name, dto.Price, dto.ModelYear); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.NewNotFoundError(id.String(), "product")
	}

	if err := s.ensureReferences(ctx, uow, dto.CategoryID, dto.BrandID); err != nil {
		return nil, err
	}

	s.mapper.ApplyProductUpdate(dto, product)
	uow.Products().Update(product)

	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")

	return s.load(ctx, uow, id)
}

// Delete removes a product and, once committed, its stored images.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.newUnitOfWork()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return model.NewNotFoundError(id.String(), "product")
	}

	uow.Products().Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return err
	}

	references := make([]string, len(product.Images))
	for i, image := range product.Images {
		references[i] = image.Reference
	}
	s.removeImages(ctx, references)

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

func (s *productService) load(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*model.ProductDetailsDTO, error) {
	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.NewNotFoundError(id.String(), "product")
	}

	dto := s.mapper.ProductDetails(*product)
	return &dto, nil
}

func (s *productService) ensureReferences(ctx context.Context, uow repository.UnitOfWork, categoryID, brandID uuid.UUID) error {
	exists, err := uow.Categories().Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewNotFoundError(categoryID.String(), "category")
	}

	exists, err = uow.Brands().Exists(ctx, brandID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewNotFoundError(brandID.String(), "brand")
	}

	return nil
}

// removeImages deletes stored images best-effort; failures are only logged.
func (s *productService) removeImages(ctx context.Context, references []string) {
	for _, ref := range references {
		if err := s.store.Delete(ctx, ref); err != nil {
			s.logger.Warn().Err(err).Str("reference", ref).Msg("failed to remove product image")
		}
	}
}

func validateProduct(name string, price decimal.Decimal, modelYear int) error {
	if err := firstError(
		requireText("name", name),
		requireNonNegative("price", price),
	); err != nil {
		return err
	}
	if modelYear <= 0 {
		return model.NewValidationError("modelYear", "must be a positive year")
	}
	return nil
}
