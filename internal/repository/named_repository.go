package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dropshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// namedTable describes an id+name+created_at table and how to move rows in
// and out of its entity type.
type namedTable[T any] struct {
	table     string
	aggregate string
	fields    func(entity *T) (id uuid.UUID, name string, createdAt time.Time)
	build     func(id uuid.UUID, name string, createdAt time.Time) T
}

var categoryTable = namedTable[model.Category]{
	table:     "categories",
	aggregate: "category",
	fields: func(c *model.Category) (uuid.UUID, string, time.Time) {
		return c.ID, c.Name, c.CreatedAt
	},
	build: func(id uuid.UUID, name string, createdAt time.Time) model.Category {
		return model.Category{ID: id, Name: name, CreatedAt: createdAt}
	},
}

var brandTable = namedTable[model.Brand]{
	table:     "brands",
	aggregate: "brand",
	fields: func(b *model.Brand) (uuid.UUID, string, time.Time) {
		return b.ID, b.Name, b.CreatedAt
	},
	build: func(id uuid.UUID, name string, createdAt time.Time) model.Brand {
		return model.Brand{ID: id, Name: name, CreatedAt: createdAt}
	},
}

// namedRepository implements NamedRepository for one namedTable.
type namedRepository[T any] struct {
	db     DB
	stager stager
	def    namedTable[T]
	logger zerolog.Logger
}

func newCategoryRepository(db DB, st stager, logger zerolog.Logger) CategoryRepository {
	return newNamedRepository(db, st, categoryTable, logger)
}

func newBrandRepository(db DB, st stager, logger zerolog.Logger) BrandRepository {
	return newNamedRepository(db, st, brandTable, logger)
}

func newNamedRepository[T any](db DB, st stager, def namedTable[T], logger zerolog.Logger) *namedRepository[T] {
	return &namedRepository[T]{
		db:     db,
		stager: st,
		def:    def,
		logger: logger.With().Str("repository", def.aggregate).Logger(),
	}
}

func (r *namedRepository[T]) Add(entity *T) {
	id, name, createdAt := r.def.fields(entity)
	r.stager.stage("insert "+r.def.aggregate,
		fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, $3)`, r.def.table),
		id, name, createdAt)
}

func (r *namedRepository[T]) Update(entity *T) {
	id, name, _ := r.def.fields(entity)
	r.stager.stage("update "+r.def.aggregate,
		fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, r.def.table),
		id, name)
}

func (r *namedRepository[T]) Delete(id uuid.UUID) {
	r.stager.stage("delete "+r.def.aggregate,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.def.table), id)
}

func (r *namedRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.def.table)

	entity, err := r.scan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("id", id.String()).Msg(r.def.aggregate + " not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("id", id.String()).Msg("failed to query " + r.def.aggregate)
		return nil, model.NewPersistenceError("query "+r.def.aggregate, err)
	}

	return &entity, nil
}

func (r *namedRepository[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.def.table)

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("id", id.String()).Msg("failed to check " + r.def.aggregate + " existence")
		return false, model.NewPersistenceError("check "+r.def.aggregate+" existence", err)
	}
	return exists, nil
}

// GetPage pages the table ordered by name.
func (r *namedRepository[T]) GetPage(ctx context.Context, params model.NameParameters) (model.Page[T], error) {
	w := &where{}
	if params.SearchTerm != "" {
		w.and("name ILIKE " + w.arg(containsPattern(params.SearchTerm)))
	}

	pq := pageQuery[T]{
		columns: "id, name, created_at",
		from:    r.def.table,
		where:   w,
		orderBy: "name, id",
		scan:    r.scan,
	}

	var page model.Page[T]
	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		page, err = fetchPage(ctx, tx, pq, params.PageParams)
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query " + r.def.table)
		return model.Page[T]{}, model.NewPersistenceError("query "+r.def.table, err)
	}

	return page, nil
}

func (r *namedRepository[T]) scan(row pgx.Row) (T, error) {
	var (
		id        uuid.UUID
		name      string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &createdAt); err != nil {
		var zero T
		return zero, err
	}
	return r.def.build(id, name, createdAt), nil
}
