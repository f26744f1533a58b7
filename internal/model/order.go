package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a dropshipper's order.
type Order struct {
	ID            uuid.UUID       `db:"id"`
	ShippedDate   *time.Time      `db:"shipped_date"`
	OrderPrice    decimal.Decimal `db:"order_price"`
	OrderDiscount decimal.Decimal `db:"order_discount"`
	OrderStatus   OrderStatus     `db:"order_status"`
	DropshipperID string          `db:"dropshipper_id"`
	IsDeleted     bool            `db:"is_deleted"`
	CreatedAt     time.Time       `db:"created_at"`

	// Dropshipper is loaded with the order; nil when the account row is missing.
	Dropshipper *Dropshipper
	Items       []OrderItem
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID                uuid.UUID       `db:"id"`
	OrderID           uuid.UUID       `db:"order_id"`
	ProductID         uuid.UUID       `db:"product_id"`
	Quantity          int             `db:"quantity"`
	OrderItemDiscount decimal.Decimal `db:"order_item_discount"`
	Position          int             `db:"position"`

	Product *Product
}

// OrderCreateDTO is the request payload for creating an order.
type OrderCreateDTO struct {
	ShippedDate   *Date                `json:"shippedDate,omitempty"`
	OrderPrice    decimal.Decimal      `json:"orderPrice"`
	OrderDiscount decimal.Decimal      `json:"orderDiscount"`
	OrderStatus   OrderStatus          `json:"orderStatus,omitempty"`
	DropshipperID string               `json:"dropshipperId"`
	Items         []OrderItemCreateDTO `json:"items"`
}

// OrderItemCreateDTO is a single item of an order create request.
type OrderItemCreateDTO struct {
	ProductID         uuid.UUID       `json:"productId"`
	Quantity          int             `json:"quantity"`
	OrderItemDiscount decimal.Decimal `json:"orderItemDiscount"`
}

// OrderUpdateDTO replaces the scalar fields of an existing order.
type OrderUpdateDTO struct {
	ShippedDate   *Date           `json:"shippedDate,omitempty"`
	OrderPrice    decimal.Decimal `json:"orderPrice"`
	OrderDiscount decimal.Decimal `json:"orderDiscount"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	DropshipperID string          `json:"dropshipperId"`
}

// OrderDetailsDTO is the outbound shape of an order with its items.
type OrderDetailsDTO struct {
	ID              uuid.UUID              `json:"id"`
	ShippedDate     *Date                  `json:"shippedDate"`
	OrderPrice      decimal.Decimal        `json:"orderPrice"`
	OrderDiscount   decimal.Decimal        `json:"orderDiscount"`
	OrderStatus     OrderStatus            `json:"orderStatus"`
	DropshipperID   string                 `json:"dropshipperId"`
	DropshipperName string                 `json:"dropshipperName"`
	CreatedAt       time.Time              `json:"createdAt"`
	Items           []OrderItemsDetailsDTO `json:"items"`
}

// OrderItemsDetailsDTO is the outbound shape of an order item.
type OrderItemsDetailsDTO struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"productId"`
	ProductName       string          `json:"productName"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Quantity          int             `json:"quantity"`
	OrderItemDiscount decimal.Decimal `json:"orderItemDiscount"`
}
