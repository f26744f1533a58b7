package repository

import (
	"context"
	"fmt"
	"sync"

	"dropshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UnitOfWork groups repository writes behind one atomic commit.
// An instance belongs to a single request and is not safe for concurrent use.
type UnitOfWork interface {
	Orders() OrderRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Brands() BrandRepository
	Dropshippers() DropshipperRepository

	// SaveChanges commits every statement staged since the previous call in one
	// transaction and returns the number of affected rows. On failure nothing is
	// persisted and a *model.PersistenceError is returned. The staged statements
	// are discarded either way.
	SaveChanges(ctx context.Context) (int64, error)
}

// UnitOfWorkFactory creates a fresh unit of work per logical operation.
type UnitOfWorkFactory func() UnitOfWork

// statement is a staged write.
type statement struct {
	label string
	sql   string
	args  []any
}

// stager receives the writes of the repositories a unit of work hands out.
type stager interface {
	stage(label, sql string, args ...any)
}

type unitOfWork struct {
	db      DB
	logger  zerolog.Logger
	pending []statement

	orders       func() OrderRepository
	products     func() ProductRepository
	categories   func() CategoryRepository
	brands       func() BrandRepository
	dropshippers func() DropshipperRepository
}

// NewUnitOfWorkFactory returns a factory of units of work backed by db.
func NewUnitOfWorkFactory(db DB, logger zerolog.Logger) UnitOfWorkFactory {
	return func() UnitOfWork {
		return NewUnitOfWork(db, logger)
	}
}

// NewUnitOfWork creates a unit of work. Repositories are built on first access.
func NewUnitOfWork(db DB, logger zerolog.Logger) UnitOfWork {
	u := &unitOfWork{
		db:     db,
		logger: logger.With().Str("component", "unit-of-work").Logger(),
	}

	u.orders = sync.OnceValue(func() OrderRepository {
		return newOrderRepository(db, u, logger)
	})
	u.products = sync.OnceValue(func() ProductRepository {
		return newProductRepository(db, u, logger)
	})
	u.categories = sync.OnceValue(func() CategoryRepository {
		return newCategoryRepository(db, u, logger)
	})
	u.brands = sync.OnceValue(func() BrandRepository {
		return newBrandRepository(db, u, logger)
	})
	u.dropshippers = sync.OnceValue(func() DropshipperRepository {
		return newDropshipperRepository(db, u, logger)
	})

	return u
}

func (u *unitOfWork) Orders() OrderRepository             { return u.orders() }
func (u *unitOfWork) Products() ProductRepository         { return u.products() }
func (u *unitOfWork) Categories() CategoryRepository      { return u.categories() }
func (u *unitOfWork) Brands() BrandRepository             { return u.brands() }
func (u *unitOfWork) Dropshippers() DropshipperRepository { return u.dropshippers() }

func (u *unitOfWork) stage(label, sql string, args ...any) {
	u.pending = append(u.pending, statement{label: label, sql: sql, args: args})
}

// SaveChanges commits the staged statements atomically.
func (u *unitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}

	pending := u.pending
	u.pending = nil

	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, model.NewPersistenceError("begin transaction", err)
	}

	affected, err := execBatch(ctx, tx, pending)
	if err != nil {
		u.logger.Error().
			Err(err).
			Int("statements", len(pending)).
			Msg("failed to save changes, rolling back")
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			u.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return 0, model.NewPersistenceError("save changes", err)
	}

	if err := tx.Commit(ctx); err != nil {
		u.logger.Error().Err(err).Msg("failed to commit transaction")
		return 0, model.NewPersistenceError("commit transaction", err)
	}

	u.logger.Debug().
		Int("statements", len(pending)).
		Int64("rows_affected", affected).
		Msg("changes saved")

	return affected, nil
}

// execBatch sends the statements as one batch, in staging order.
func execBatch(ctx context.Context, tx pgx.Tx, statements []statement) (int64, error) {
	batch := &pgx.Batch{}
	for _, s := range statements {
		batch.Queue(s.sql, s.args...)
	}

	results := tx.SendBatch(ctx, batch)

	var affected int64
	for _, s := range statements {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("%s: %w", s.label, err)
		}
		affected += tag.RowsAffected()
	}

	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	return affected, nil
}
