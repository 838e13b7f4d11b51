package usecase

import (
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/domain/model"
)

// next maps each lifecycle state to its single allowed successor.
var next = map[model.OrderStatus]model.OrderStatus{
	model.OrderStatusNew:     model.OrderStatusCooking,
	model.OrderStatusCooking: model.OrderStatusServed,
	model.OrderStatusServed:  model.OrderStatusPaid,
}

// NewOrder builds a NEW_ORDER with a client-generated id so the optimistic
// insert can be displayed before the remote store confirms it. Items are
// normalized (zero-quantity lines dropped) and the total computed.
func NewOrder(table string, items []model.OrderItem, notes, waiterID string, now time.Time) (*model.Order, error) {
	normalized := NormalizeItems(items)
	if len(normalized) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	return &model.Order{
		ID:          uuid.NewString(),
		TableNumber: table,
		Items:       normalized,
		Notes:       notes,
		Status:      model.OrderStatusNew,
		TotalPrice:  TotalPrice(normalized),
		CreatedAt:   now,
		WaiterID:    waiterID,
	}, nil
}

// Transition advances the order to the requested status, stamping the
// corresponding timestamp exactly once. Skipping states, moving backwards,
// and mutating a PAID order are all rejected. PAID additionally requires a
// payment method.
func Transition(o *model.Order, to model.OrderStatus, method model.PaymentMethod, now time.Time) error {
	if !to.Valid() {
		return domainErrors.ErrInvalidTransition
	}
	if next[o.Status] != to {
		return domainErrors.ErrInvalidTransition
	}

	switch to {
	case model.OrderStatusCooking:
		o.CookingAt = &now
	case model.OrderStatusServed:
		o.ServedAt = &now
	case model.OrderStatusPaid:
		if method == "" {
			return domainErrors.ErrPaymentMethodRequired
		}
		o.PaidAt = &now
		o.PaymentMethod = method
	}

	o.Status = to
	return nil
}

// EditItems replaces the order's items and notes while it is still in the
// kitchen's hands (NEW_ORDER or COOKING) and recomputes the total. Status
// and timestamps are never touched by an edit.
func EditItems(o *model.Order, items []model.OrderItem, notes string) error {
	if o.Status != model.OrderStatusNew && o.Status != model.OrderStatusCooking {
		return domainErrors.ErrOrderNotEditable
	}

	normalized := NormalizeItems(items)
	if len(normalized) == 0 {
		return domainErrors.ErrEmptyOrder
	}

	o.Items = normalized
	o.Notes = notes
	o.TotalPrice = TotalPrice(normalized)
	return nil
}

// Cancellable reports whether the order may still be deleted. Only orders
// the kitchen has not started count; anything past NEW_ORDER is an
// operator error, not a transition.
func Cancellable(o *model.Order) bool {
	return o.Status == model.OrderStatusNew
}

// NormalizeItems drops lines whose quantity fell to zero or below. A line
// is removed rather than kept at quantity zero.
func NormalizeItems(items []model.OrderItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}

// TotalPrice is the sum of quantity times snapshot price over all lines.
func TotalPrice(items []model.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += int64(it.Quantity) * it.MenuItem.Price
	}
	return total
}
