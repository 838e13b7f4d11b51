// Package app assembles the runtime pieces of both binaries: the terminal
// facade the UI layer drives, and the HTTP server lifecycle of the data
// service.
package app

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/domain/model"
	"github.com/polkiloo/warungpos/internal/queue"
	"github.com/polkiloo/warungpos/internal/store"
	"github.com/polkiloo/warungpos/internal/sync"
)

// TerminalFacade is the single surface a terminal UI talks to: PIN login,
// cached reads, engine mutations, and the paginated kitchen queue. It is
// meant to be driven from one UI goroutine.
type TerminalFacade struct {
	store     *store.Store
	engine    *sync.Engine
	paginator *queue.Paginator
}

// NewTerminalFacade constructs the facade.
func NewTerminalFacade(st *store.Store, engine *sync.Engine) *TerminalFacade {
	return &TerminalFacade{
		store:     st,
		engine:    engine,
		paginator: queue.NewPaginator(),
	}
}

// Login matches a PIN against the locally cached staff accounts, so it
// works with no connectivity at all.
func (f *TerminalFacade) Login(pin string) (model.User, error) {
	user, ok := f.store.UserByPIN(pin)
	if !ok {
		return model.User{}, fmt.Errorf("%w: no account for pin", domainErrors.ErrNotFound)
	}
	return user, nil
}

// Subscribe registers a redraw callback for store changes.
func (f *TerminalFacade) Subscribe(fn func()) func() {
	return f.store.Subscribe(fn)
}

// Connected reports the engine's view of remote reachability.
func (f *TerminalFacade) Connected() bool {
	return f.engine.Connected()
}

// Snapshot returns a deep copy of all cached collections.
func (f *TerminalFacade) Snapshot() model.Snapshot {
	return f.store.Snapshot()
}

// Orders returns all cached orders, newest first.
func (f *TerminalFacade) Orders() []model.Order {
	return f.store.Snapshot().Orders
}

// Menu returns the cached menu sorted by name.
func (f *TerminalFacade) Menu() []model.MenuItem {
	return f.store.Snapshot().MenuItems
}

// Users returns the cached staff accounts.
func (f *TerminalFacade) Users() []model.User {
	return f.store.Snapshot().Users
}

// KitchenQueue builds the current page of the kitchen display and syncs the
// paginator to whatever page the build settled on.
func (f *TerminalFacade) KitchenQueue(now time.Time) queue.Page {
	page := queue.Build(f.Orders(), now, f.paginator.Page(), f.paginator.Size())
	f.paginator.Sync(page)
	return page
}

// QueueTally counts active orders per state for the display header.
func (f *TerminalFacade) QueueTally() queue.Tally {
	return queue.CountByStatus(f.Orders())
}

// SetQueuePageSize switches the kitchen grid density.
func (f *TerminalFacade) SetQueuePageSize(size int) error {
	if !f.paginator.SetSize(size) {
		return fmt.Errorf("page size %d is not offered", size)
	}
	return nil
}

// NextQueuePage pages the kitchen display forward.
func (f *TerminalFacade) NextQueuePage() { f.paginator.Next() }

// PrevQueuePage pages the kitchen display back.
func (f *TerminalFacade) PrevQueuePage() { f.paginator.Prev() }

// CreateOrder places a new order.
func (f *TerminalFacade) CreateOrder(ctx context.Context, table string, items []model.OrderItem, notes, waiterID string) (*model.Order, error) {
	return f.engine.CreateOrder(ctx, table, items, notes, waiterID)
}

// UpdateOrderStatus advances an order through its lifecycle.
func (f *TerminalFacade) UpdateOrderStatus(ctx context.Context, id string, to model.OrderStatus, method model.PaymentMethod) error {
	return f.engine.UpdateOrderStatus(ctx, id, to, method)
}

// UpdateOrderItems edits the lines of an in-progress order.
func (f *TerminalFacade) UpdateOrderItems(ctx context.Context, id string, items []model.OrderItem, notes string) error {
	return f.engine.UpdateOrderItems(ctx, id, items, notes)
}

// DeleteOrder cancels an untouched order.
func (f *TerminalFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.engine.DeleteOrder(ctx, id)
}

// ToggleMenuSoldOut flips a dish's availability.
func (f *TerminalFacade) ToggleMenuSoldOut(ctx context.Context, id string) error {
	return f.engine.ToggleMenuSoldOut(ctx, id)
}

// CreateMenuItem adds a dish (owner view).
func (f *TerminalFacade) CreateMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	return f.engine.CreateMenuItem(ctx, item)
}

// UpdateMenuItem edits a dish (owner view).
func (f *TerminalFacade) UpdateMenuItem(ctx context.Context, item model.MenuItem) error {
	return f.engine.UpdateMenuItem(ctx, item)
}

// DeleteMenuItem removes a dish (owner view).
func (f *TerminalFacade) DeleteMenuItem(ctx context.Context, id string) error {
	return f.engine.DeleteMenuItem(ctx, id)
}

// CreateUser adds a staff account (owner view).
func (f *TerminalFacade) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	return f.engine.CreateUser(ctx, u)
}

// UpdateUser edits a staff account (owner view).
func (f *TerminalFacade) UpdateUser(ctx context.Context, u model.User) error {
	return f.engine.UpdateUser(ctx, u)
}

// DeleteUser removes a staff account (owner view).
func (f *TerminalFacade) DeleteUser(ctx context.Context, id string) error {
	return f.engine.DeleteUser(ctx, id)
}
