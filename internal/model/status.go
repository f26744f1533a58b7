package model

import (
	"strconv"
	"strings"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// orderStatuses is ordered by ordinal.
var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus parses a status name (case-insensitive) or its ordinal.
// The second return value is false when s matches no status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(orderStatuses) {
			return "", false
		}
		return orderStatuses[n], true
	}

	for _, status := range orderStatuses {
		if strings.EqualFold(string(status), s) {
			return status, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the defined statuses.
func (s OrderStatus) Valid() bool {
	for _, status := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
