package repository

import (
	"context"
	"errors"

	"dropshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const dropshipperColumns = `user_id, user_name, contact_email, phone_number, street, city, country, is_active, created_at`

// dropshipperRepository implements DropshipperRepository using PostgreSQL.
type dropshipperRepository struct {
	db     DB
	stager stager
	logger zerolog.Logger
}

func newDropshipperRepository(db DB, st stager, logger zerolog.Logger) DropshipperRepository {
	return &dropshipperRepository{
		db:     db,
		stager: st,
		logger: logger.With().Str("repository", "dropshipper").Logger(),
	}
}

// Add stages the insert of a dropshipper.
func (r *dropshipperRepository) Add(d *model.Dropshipper) {
	r.stager.stage("insert dropshipper", `
		INSERT INTO dropshippers (`+dropshipperColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		d.UserID, d.UserName, d.ContactEmail, d.PhoneNumber,
		d.Street, d.City, d.Country, d.IsActive, d.CreatedAt,
	)
}

// Update stages a replace of the profile fields and active flag.
func (r *dropshipperRepository) Update(d *model.Dropshipper) {
	r.stager.stage("update dropshipper", `
		UPDATE dropshippers
		SET user_name = $2, contact_email = $3, phone_number = $4, street = $5, city = $6, country = $7, is_active = $8
		WHERE user_id = $1
	`,
		d.UserID, d.UserName, d.ContactEmail, d.PhoneNumber,
		d.Street, d.City, d.Country, d.IsActive,
	)
}

// Delete stages a hard delete.
func (r *dropshipperRepository) Delete(userID string) {
	r.stager.stage("delete dropshipper", `DELETE FROM dropshippers WHERE user_id = $1`, userID)
}

// GetByID retrieves a dropshipper by account id.
func (r *dropshipperRepository) GetByID(ctx context.Context, userID string) (*model.Dropshipper, error) {
	d, err := scanDropshipper(r.db.QueryRow(ctx,
		`SELECT `+dropshipperColumns+` FROM dropshippers WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID).Msg("dropshipper not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query dropshipper")
		return nil, model.NewPersistenceError("query dropshipper", err)
	}
	return &d, nil
}

// Exists reports whether a dropshipper has the account id.
func (r *dropshipperRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM dropshippers WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to check dropshipper existence")
		return false, model.NewPersistenceError("check dropshipper existence", err)
	}
	return exists, nil
}

// GetPage filters, counts and paginates dropshippers, oldest first.
func (r *dropshipperRepository) GetPage(ctx context.Context, params model.DropshipperParameters) (model.Page[model.Dropshipper], error) {
	w := &where{}

	if params.SearchTerm != "" {
		pattern := w.arg(containsPattern(params.SearchTerm))
		w.and("(user_name ILIKE " + pattern + " OR contact_email ILIKE " + pattern + ")")
	}

	if params.IsActive != nil {
		w.and("is_active = " + w.arg(*params.IsActive))
	}

	pq := pageQuery[model.Dropshipper]{
		columns: dropshipperColumns,
		from:    "dropshippers",
		where:   w,
		orderBy: "created_at, user_id",
		scan:    scanDropshipper,
	}

	var page model.Page[model.Dropshipper]
	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		page, err = fetchPage(ctx, tx, pq, params.PageParams)
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dropshippers")
		return model.Page[model.Dropshipper]{}, model.NewPersistenceError("query dropshippers", err)
	}

	return page, nil
}

func scanDropshipper(row pgx.Row) (model.Dropshipper, error) {
	var d model.Dropshipper
	err := row.Scan(
		&d.UserID, &d.UserName, &d.ContactEmail, &d.PhoneNumber,
		&d.Street, &d.City, &d.Country, &d.IsActive, &d.CreatedAt,
	)
	return d, err
}
