package service

import (
	"strings"

	"dropshop/internal/model"

	"github.com/shopspring/decimal"
)

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return model.NewValidationError(field, "is required")
	}
	return nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return model.NewValidationError(field, "must not be negative")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// normaliseStatus resolves the status of a new order; empty means Pending.
func normaliseStatus(status model.OrderStatus) (model.OrderStatus, error) {
	if status == "" {
		return model.OrderStatusPending, nil
	}
	return requireStatus(status)
}

// requireStatus resolves a status that must be given explicitly.
func requireStatus(status model.OrderStatus) (model.OrderStatus, error) {
	if strings.TrimSpace(string(status)) == "" {
		return "", model.NewValidationError("orderStatus", "is required")
	}
	parsed, ok := model.ParseOrderStatus(string(status))
	if !ok {
		return "", model.NewValidationError("orderStatus", "unknown status "+string(status))
	}
	return parsed, nil
}
