package repository

import (
	"context"
	"errors"

	"dropshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

const (
	productColumns = `p.id, p.name, p.description, p.price, p.model_year, p.category_id, p.brand_id, p.created_at,
		c.id, c.name, c.created_at, b.id, b.name, b.created_at`

	productFrom = `products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id`

	productImagesQuery = `
		SELECT id, product_id, reference, position
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, position
	`
)

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	db     DB
	stager stager
	logger zerolog.Logger
}

func newProductRepository(db DB, st stager, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		stager: st,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Add stages the insert of a product and its image references.
func (r *productRepository) Add(product *model.Product) {
	r.stager.stage("insert product", `
		INSERT INTO products (id, name, description, price, model_year, category_id, brand_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		product.ID,
		product.Name,
		product.Description,
		numeric(product.Price),
		product.ModelYear,
		product.CategoryID,
		product.BrandID,
		product.CreatedAt,
	)

	for i, image := range product.Images {
		r.stager.stage("insert product image", `
			INSERT INTO product_images (id, product_id, reference, position)
			VALUES ($1, $2, $3, $4)
		`, image.ID, product.ID, image.Reference, i)
	}
}

// Update stages a replace of the product's scalar fields. Images are left untouched.
func (r *productRepository) Update(product *model.Product) {
	r.stager.stage("update product", `
		UPDATE products
		SET name = $2, description = $3, price = $4, model_year = $5, category_id = $6, brand_id = $7
		WHERE id = $1
	`,
		product.ID,
		product.Name,
		product.Description,
		numeric(product.Price),
		product.ModelYear,
		product.CategoryID,
		product.BrandID,
	)
}

// Delete stages a hard delete.
func (r *productRepository) Delete(id uuid.UUID) {
	r.stager.stage("delete product", `DELETE FROM products WHERE id = $1`, id)
}

// GetByID retrieves a product with its category, brand and images.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product *model.Product

	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanProduct(tx.QueryRow(ctx,
			"SELECT "+productColumns+" FROM "+productFrom+" WHERE p.id = $1", id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		products := []model.Product{p}
		if err := r.loadImages(ctx, tx, products); err != nil {
			return err
		}
		product = &products[0]
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, model.NewPersistenceError("query product", err)
	}

	if product == nil {
		r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
	}

	return product, nil
}

// Exists reports whether a product has the id.
func (r *productRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to check product existence")
		return false, model.NewPersistenceError("check product existence", err)
	}
	return exists, nil
}

// GetPage filters, counts and paginates products, oldest first.
func (r *productRepository) GetPage(ctx context.Context, params model.ProductParameters) (model.Page[model.Product], error) {
	var page model.Page[model.Product]

	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		page, err = fetchPage(ctx, tx, productPageQuery(params), params.PageParams)
		if err != nil {
			return err
		}
		return r.loadImages(ctx, tx, page.Result)
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Int("page_index", params.PageIndex).
			Int("page_size", params.PageSize).
			Msg("failed to query products")
		return model.Page[model.Product]{}, model.NewPersistenceError("query products", err)
	}

	return page, nil
}

// MissingIDs returns the requested ids that match no product.
func (r *productRepository) MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT requested.id
		FROM unnest($1::uuid[]) WITH ORDINALITY AS requested(id, ord)
		WHERE NOT EXISTS (SELECT 1 FROM products p WHERE p.id = requested.id)
		ORDER BY requested.ord
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to validate products exist")
		return nil, model.NewPersistenceError("validate products exist", err)
	}
	defer rows.Close()

	var missing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product id")
			return nil, model.NewPersistenceError("validate products exist", err)
		}
		missing = append(missing, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product id rows")
		return nil, model.NewPersistenceError("validate products exist", err)
	}

	if len(missing) > 0 {
		r.logger.Warn().
			Int("expected", len(ids)).
			Int("missing", len(missing)).
			Msg("not all product IDs exist")
	}

	return missing, nil
}

func productPageQuery(params model.ProductParameters) pageQuery[model.Product] {
	w := &where{}

	if params.SearchTerm != "" {
		pattern := w.arg(containsPattern(params.SearchTerm))
		w.and("(p.name ILIKE " + pattern + " OR p.description ILIKE " + pattern + ")")
	}

	if params.CategoryID != nil {
		w.and("p.category_id = " + w.arg(*params.CategoryID))
	}

	if params.BrandID != nil {
		w.and("p.brand_id = " + w.arg(*params.BrandID))
	}

	return pageQuery[model.Product]{
		columns: productColumns,
		from:    productFrom,
		where:   w,
		orderBy: "p.created_at, p.id",
		scan:    scanProduct,
	}
}

// loadImages fetches the image references of all products in one query.
func (r *productRepository) loadImages(ctx context.Context, q Querier, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
		products[i].Images = []model.ProductImage{}
	}

	rows, err := q.Query(ctx, productImagesQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byProduct := make(map[uuid.UUID][]model.ProductImage, len(products))
	for rows.Next() {
		var image model.ProductImage
		if err := rows.Scan(&image.ID, &image.ProductID, &image.Reference, &image.Position); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product image row")
			return err
		}
		byProduct[image.ProductID] = append(byProduct[image.ProductID], image)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	for i := range products {
		if images, ok := byProduct[products[i].ID]; ok {
			products[i].Images = images
		}
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p     model.Product
		c     model.Category
		b     model.Brand
		price pgtype.Numeric
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &p.ModelYear, &p.CategoryID, &p.BrandID, &p.CreatedAt,
		&c.ID, &c.Name, &c.CreatedAt,
		&b.ID, &b.Name, &b.CreatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	p.Price = fromNumeric(price)
	p.Category = &c
	p.Brand = &b

	return p, nil
}
