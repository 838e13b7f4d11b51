package handlers

import (
	"context"

	"github.com/polkiloo/warungpos/internal/wire"
)

// OrderStore covers the order collection operations handlers need.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]wire.OrderRow, error)
	InsertOrder(ctx context.Context, row wire.OrderRow) (wire.OrderRow, error)
	PatchOrder(ctx context.Context, id string, fields map[string]any) (wire.OrderRow, error)
	DeleteOrder(ctx context.Context, id string) (wire.OrderRow, error)
}

// MenuStore covers the menu collection.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]wire.MenuItemRow, error)
	InsertMenuItem(ctx context.Context, row wire.MenuItemRow) (wire.MenuItemRow, error)
	PatchMenuItem(ctx context.Context, id string, fields map[string]any) (wire.MenuItemRow, error)
	DeleteMenuItem(ctx context.Context, id string) (wire.MenuItemRow, error)
}

// UserStore covers the staff account collection.
type UserStore interface {
	ListUsers(ctx context.Context) ([]wire.UserRow, error)
	InsertUser(ctx context.Context, row wire.UserRow) (wire.UserRow, error)
	PatchUser(ctx context.Context, id string, fields map[string]any) (wire.UserRow, error)
	DeleteUser(ctx context.Context, id string) (wire.UserRow, error)
}

// DataStore aggregates the full persistence surface used across handlers.
type DataStore interface {
	OrderStore
	MenuStore
	UserStore
	HealthCheck(ctx context.Context) error
}

// EventSink broadcasts change events to subscribed terminals. A nil sink
// disables broadcasting; writes still succeed.
type EventSink interface {
	Publish(ctx context.Context, event wire.Event) error
}
