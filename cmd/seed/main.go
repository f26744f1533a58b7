// Command seed fills an empty database with sample catalog data, dropshippers
// and orders for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"dropshop/internal/config"
	"dropshop/internal/database"
	"dropshop/internal/model"
	"dropshop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var sampleProducts = []struct {
	name     string
	price    string
	category string
	brand    string
}{
	{"Checkpoint SL 5", "2799.00", "Gravel", "Trek"},
	{"Domane AL 2", "1099.99", "Road", "Trek"},
	{"Diverge E5", "1300.00", "Gravel", "Specialized"},
	{"Allez Sprint", "2500.00", "Road", "Specialized"},
	{"Topstone 1", "1925.50", "Gravel", "Cannondale"},
	{"Trail 8", "679.00", "Mountain", "Cannondale"},
}

var sampleDropshippers = []model.Dropshipper{
	{UserID: "seed-alice", UserName: "Alice Martin", ContactEmail: "alice@example.com", City: "Lyon", Country: "France", IsActive: true},
	{UserID: "seed-bruno", UserName: "Bruno Costa", ContactEmail: "bruno@example.com", City: "Porto", Country: "Portugal", IsActive: true},
	{UserID: "seed-chen", UserName: "Chen Wei", ContactEmail: "chen@example.com", City: "Utrecht", Country: "Netherlands", IsActive: false},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		return err
	}

	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&existing); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if existing > 0 {
		logger.Info().Int("products", existing).Msg("database already has data, nothing to seed")
		return nil
	}

	uow := repository.NewUnitOfWork(pool, logger)
	now := time.Now().UTC()

	categories := map[string]*model.Category{}
	brands := map[string]*model.Brand{}
	products := make([]model.Product, 0, len(sampleProducts))

	for i, p := range sampleProducts {
		category, ok := categories[p.category]
		if !ok {
			category = &model.Category{ID: uuid.New(), Name: p.category, CreatedAt: now}
			categories[p.category] = category
			uow.Categories().Add(category)
		}

		brand, ok := brands[p.brand]
		if !ok {
			brand = &model.Brand{ID: uuid.New(), Name: p.brand, CreatedAt: now}
			brands[p.brand] = brand
			uow.Brands().Add(brand)
		}

		product := model.Product{
			ID:         uuid.New(),
			Name:       p.name,
			Price:      decimal.RequireFromString(p.price),
			ModelYear:  2024,
			CategoryID: category.ID,
			BrandID:    brand.ID,
			CreatedAt:  now.Add(time.Duration(i) * time.Second),
		}
		products = append(products, product)
		uow.Products().Add(&products[i])
	}

	for i := range sampleDropshippers {
		sampleDropshippers[i].CreatedAt = model.NewDate(now).Time
		uow.Dropshippers().Add(&sampleDropshippers[i])
	}

	statuses := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}

	for i := range 20 {
		product := products[i%len(products)]
		order := model.Order{
			ID:            uuid.New(),
			OrderPrice:    product.Price.Mul(decimal.NewFromInt(int64(i%3 + 1))),
			OrderStatus:   statuses[i%len(statuses)],
			DropshipperID: sampleDropshippers[i%2].UserID,
			CreatedAt:     now.AddDate(0, 0, -i),
		}
		order.Items = []model.OrderItem{{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  i%3 + 1,
		}}
		uow.Orders().Add(&order)
	}

	affected, err := uow.SaveChanges(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Int64("rows", affected).
		Int("products", len(products)).
		Int("dropshippers", len(sampleDropshippers)).
		Msg("sample data seeded")

	return nil
}
