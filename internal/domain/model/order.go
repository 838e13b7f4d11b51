package model

import "time"

// OrderStatus describes the kitchen lifecycle of an order. Transitions only
// move forward: NEW_ORDER -> COOKING -> SERVED -> PAID.
type OrderStatus string

const (
	OrderStatusNew     OrderStatus = "NEW_ORDER"
	OrderStatusCooking OrderStatus = "COOKING"
	OrderStatusServed  OrderStatus = "SERVED"
	OrderStatusPaid    OrderStatus = "PAID"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusCooking, OrderStatusServed, OrderStatusPaid:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is defined.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid
}

// PaymentMethod describes how a finished order was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

// OrderItem is one line of an order. MenuItem is a snapshot of the menu
// entry taken at order time, so later menu edits never change historical
// totals. Quantity is always >= 1; a line that would reach zero is removed.
type OrderItem struct {
	ID       string
	MenuItem MenuItem
	Quantity int
}

// Order is the unit of synchronized state shared by all terminals.
type Order struct {
	ID            string
	TableNumber   string
	Items         []OrderItem
	Notes         string
	Status        OrderStatus
	TotalPrice    int64
	CreatedAt     time.Time
	CookingAt     *time.Time
	ServedAt      *time.Time
	PaidAt        *time.Time
	WaiterID      string
	PaymentMethod PaymentMethod
}

// Clone returns a deep copy, detaching the items slice and timestamps.
func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem(nil), o.Items...)
	out.CookingAt = cloneTime(o.CookingAt)
	out.ServedAt = cloneTime(o.ServedAt)
	out.PaidAt = cloneTime(o.PaidAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
