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
	orderColumns = `o.id, o.shipped_date, o.order_price, o.order_discount, o.order_status,
		o.dropshipper_id, o.is_deleted, o.created_at,
		d.user_id, d.user_name, d.contact_email, d.phone_number, d.street, d.city, d.country,
		d.is_active, d.created_at`

	orderFrom = `orders o JOIN dropshippers d ON d.user_id = o.dropshipper_id`

	orderItemsQuery = `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.order_item_discount, oi.position,
			p.id, p.name, p.description, p.price, p.model_year, p.category_id, p.brand_id, p.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position
	`
)

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	db     DB
	stager stager
	logger zerolog.Logger
}

func newOrderRepository(db DB, st stager, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		db:     db,
		stager: st,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Add stages the insert of an order and its items.
func (r *orderRepository) Add(order *model.Order) {
	r.stager.stage("insert order", `
		INSERT INTO orders (id, shipped_date, order_price, order_discount, order_status, dropshipper_id, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`,
		order.ID,
		order.ShippedDate,
		numeric(order.OrderPrice),
		numeric(order.OrderDiscount),
		string(order.OrderStatus),
		order.DropshipperID,
		order.CreatedAt,
	)

	for i, item := range order.Items {
		r.stager.stage("insert order item", `
			INSERT INTO order_items (id, order_id, product_id, quantity, order_item_discount, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			item.ID,
			order.ID,
			item.ProductID,
			item.Quantity,
			numeric(item.OrderItemDiscount),
			i,
		)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order insert staged")
}

// Update stages a replace of the order's scalar fields.
func (r *orderRepository) Update(order *model.Order) {
	r.stager.stage("update order", `
		UPDATE orders
		SET shipped_date = $2, order_price = $3, order_discount = $4, order_status = $5, dropshipper_id = $6
		WHERE id = $1 AND NOT is_deleted
	`,
		order.ID,
		order.ShippedDate,
		numeric(order.OrderPrice),
		numeric(order.OrderDiscount),
		string(order.OrderStatus),
		order.DropshipperID,
	)
}

// Delete stages a soft delete.
func (r *orderRepository) Delete(id uuid.UUID) {
	r.stager.stage("soft delete order",
		`UPDATE orders SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, id)
}

// GetByID retrieves a live order with its dropshipper, items and products.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order *model.Order

	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT "+orderColumns+" FROM "+orderFrom+" WHERE o.id = $1 AND NOT o.is_deleted", id)

		o, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		orders := []model.Order{o}
		if err := r.loadItems(ctx, tx, orders); err != nil {
			return err
		}
		order = &orders[0]
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, model.NewPersistenceError("query order", err)
	}

	if order == nil {
		r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
	}

	return order, nil
}

// Exists reports whether a live order has the id.
func (r *orderRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1 AND NOT is_deleted)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to check order existence")
		return false, model.NewPersistenceError("check order existence", err)
	}
	return exists, nil
}

// GetPage filters, counts and paginates live orders, oldest first.
func (r *orderRepository) GetPage(ctx context.Context, params model.OrderParameters) (model.Page[model.Order], error) {
	var page model.Page[model.Order]

	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		page, err = fetchPage(ctx, tx, orderPageQuery(params), params.PageParams)
		if err != nil {
			return err
		}
		return r.loadItems(ctx, tx, page.Result)
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Int("page_index", params.PageIndex).
			Int("page_size", params.PageSize).
			Msg("failed to query orders")
		return model.Page[model.Order]{}, model.NewPersistenceError("query orders", err)
	}

	return page, nil
}

// orderPageQuery translates order filters into predicates. The soft-delete
// predicate always comes first; an unparseable status adds nothing.
func orderPageQuery(params model.OrderParameters) pageQuery[model.Order] {
	w := &where{}
	w.and("NOT o.is_deleted")

	if status, ok := model.ParseOrderStatus(params.Status); ok {
		w.and("o.order_status = " + w.arg(string(status)))
	}

	if params.FromDate != nil {
		w.and("o.created_at >= " + w.arg(dayStart(*params.FromDate)))
	}

	if params.ToDate != nil {
		w.and("o.created_at < " + w.arg(nextDayStart(*params.ToDate)))
	}

	return pageQuery[model.Order]{
		columns: orderColumns,
		from:    orderFrom,
		where:   w,
		orderBy: "o.created_at, o.id",
		scan:    scanOrder,
	}
}

// loadItems fetches the items (with products) of all orders in one query.
func (r *orderRepository) loadItems(ctx context.Context, q Querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		orders[i].Items = []model.OrderItem{}
	}

	rows, err := q.Query(ctx, orderItemsQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]model.OrderItem, len(orders))
	for rows.Next() {
		var (
			item     model.OrderItem
			product  model.Product
			discount pgtype.Numeric
			price    pgtype.Numeric
		)
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &discount, &item.Position,
			&product.ID, &product.Name, &product.Description, &price, &product.ModelYear,
			&product.CategoryID, &product.BrandID, &product.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return err
		}
		item.OrderItemDiscount = fromNumeric(discount)
		product.Price = fromNumeric(price)
		item.Product = &product
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	for i := range orders {
		if items, ok := byOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}

	return nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o        model.Order
		d        model.Dropshipper
		price    pgtype.Numeric
		discount pgtype.Numeric
		status   string
	)

	err := row.Scan(
		&o.ID, &o.ShippedDate, &price, &discount, &status,
		&o.DropshipperID, &o.IsDeleted, &o.CreatedAt,
		&d.UserID, &d.UserName, &d.ContactEmail, &d.PhoneNumber, &d.Street, &d.City, &d.Country,
		&d.IsActive, &d.CreatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}

	o.OrderPrice = fromNumeric(price)
	o.OrderDiscount = fromNumeric(discount)
	o.OrderStatus = model.OrderStatus(status)
	o.Dropshipper = &d

	return o, nil
}
