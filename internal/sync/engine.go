// Package sync implements the synchronization engine: every terminal
// mutation goes through it, is applied to the local store optimistically,
// and is then confirmed against the remote data service. Push events and a
// periodic reconciliation fetch keep terminals converged; with no remote
// configured the engine degrades to a purely local, snapshot-backed mode.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/warungpos/internal/adapter/push"
	"github.com/polkiloo/warungpos/internal/adapter/remote"
	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/domain/model"
	"github.com/polkiloo/warungpos/internal/snapshot"
	"github.com/polkiloo/warungpos/internal/store"
	"github.com/polkiloo/warungpos/internal/usecase"
	"github.com/polkiloo/warungpos/internal/wire"
)

// Engine owns all mutation of the store and the remote conversation.
type Engine struct {
	store    *store.Store
	remote   remote.Client
	channel  push.Channel
	keeper   *snapshot.Keeper
	logger   *slog.Logger
	interval time.Duration

	// test seams
	now        func() time.Time
	retryDelay time.Duration

	connected atomic.Bool

	mu      stdsync.Mutex
	pending map[string]struct{}

	cancel context.CancelFunc
	wg     stdsync.WaitGroup
}

// New creates an engine. A nil remote client means offline mode; a nil
// channel disables push and leaves convergence to reconciliation alone.
func New(st *store.Store, client remote.Client, channel push.Channel, keeper *snapshot.Keeper, interval time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		store:      st,
		remote:     client,
		channel:    channel,
		keeper:     keeper,
		logger:     logger,
		interval:   interval,
		now:        time.Now,
		retryDelay: 2 * time.Second,
		pending:    make(map[string]struct{}),
	}
}

// Connected reports whether the last remote exchange succeeded. It is a
// display hint, not a gate: mutations are accepted either way.
func (e *Engine) Connected() bool {
	return e.connected.Load()
}

// Start seeds the store and launches the background loops. With a remote
// configured it attempts an authoritative fetch first and falls back to the
// local snapshot if the service is unreachable.
func (e *Engine) Start(ctx context.Context) error {
	if e.remote == nil {
		e.store.ReplaceAll(e.keeper.Load(e.now()))
		e.logger.Info("sync engine started in offline mode")
		return nil
	}

	bundle, err := e.remote.FetchAll(ctx)
	if err != nil {
		e.logger.Warn("bootstrap fetch failed, starting from snapshot", slog.String("error", err.Error()))
		e.store.ReplaceAll(e.keeper.Load(e.now()))
	} else {
		e.store.ReplaceAll(wire.SnapshotFromBundle(*bundle, e.now()))
		e.connected.Store(true)
		e.saveSnapshot()
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go e.reconcileLoop(loopCtx)

	if e.channel != nil {
		e.wg.Add(1)
		go e.pushLoop(loopCtx)
	}

	e.logger.Info("sync engine started", slog.Bool("connected", e.connected.Load()))
	return nil
}

// Stop halts the background loops and persists a final snapshot.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.saveSnapshot()
}

// CreateOrder applies an optimistic insert and confirms it remotely. This is
// the one mutation that rolls back on rejection: an unconfirmed phantom
// order must not linger on the kitchen queue.
func (e *Engine) CreateOrder(ctx context.Context, table string, items []model.OrderItem, notes, waiterID string) (*model.Order, error) {
	order, err := usecase.NewOrder(table, items, notes, waiterID, e.now())
	if err != nil {
		return nil, err
	}

	e.store.UpsertOrder(*order)
	e.markPending(order.ID)

	if e.remote == nil {
		e.clearPending(order.ID)
		e.saveSnapshot()
		return order, nil
	}

	serverID, err := e.remote.Insert(ctx, wire.CollectionOrders, wire.RowFromOrder(*order))
	if err != nil {
		e.store.RemoveOrder(order.ID)
		e.clearPending(order.ID)
		e.connected.Store(false)
		return nil, fmt.Errorf("create order: %w", err)
	}

	if serverID != "" && serverID != order.ID {
		e.store.RemoveOrder(order.ID)
		order.ID = serverID
		e.store.UpsertOrder(*order)
	}
	e.clearPending(order.ID)
	e.connected.Store(true)
	return order, nil
}

// UpdateOrderStatus advances the lifecycle locally and patches the changed
// fields remotely. A rejected patch keeps the local state and surfaces the
// error; the operator retries by hand.
func (e *Engine) UpdateOrderStatus(ctx context.Context, id string, to model.OrderStatus, method model.PaymentMethod) error {
	order, ok := e.store.Order(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	if err := usecase.Transition(&order, to, method, e.now()); err != nil {
		return err
	}
	e.store.UpsertOrder(order)

	row := wire.RowFromOrder(order)
	fields := map[string]any{"status": row.Status}
	switch to {
	case model.OrderStatusCooking:
		fields["cooking_at"] = row.CookingAt
	case model.OrderStatusServed:
		fields["served_at"] = row.ServedAt
	case model.OrderStatusPaid:
		fields["paid_at"] = row.PaidAt
		fields["payment_method"] = row.PaymentMethod
	}
	return e.confirmPatch(ctx, wire.CollectionOrders, id, fields)
}

// UpdateOrderItems edits the lines and notes of an order still in progress.
func (e *Engine) UpdateOrderItems(ctx context.Context, id string, items []model.OrderItem, notes string) error {
	order, ok := e.store.Order(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	if err := usecase.EditItems(&order, items, notes); err != nil {
		return err
	}
	e.store.UpsertOrder(order)

	row := wire.RowFromOrder(order)
	return e.confirmPatch(ctx, wire.CollectionOrders, id, map[string]any{
		"items":       row.Items,
		"notes":       row.Notes,
		"total_price": row.TotalPrice,
	})
}

// DeleteOrder cancels an order the kitchen has not started.
func (e *Engine) DeleteOrder(ctx context.Context, id string) error {
	order, ok := e.store.Order(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	if !usecase.Cancellable(&order) {
		return domainErrors.ErrOrderNotCancellable
	}
	e.store.RemoveOrder(id)
	return e.confirmDelete(ctx, wire.CollectionOrders, id)
}

// ToggleMenuSoldOut flips availability of one menu entry.
func (e *Engine) ToggleMenuSoldOut(ctx context.Context, id string) error {
	item, ok := e.store.MenuItem(id)
	if !ok {
		return domainErrors.ErrNotFound
	}
	item.IsSoldOut = !item.IsSoldOut
	e.store.UpsertMenuItem(item)
	return e.confirmPatch(ctx, wire.CollectionMenuItems, id, map[string]any{
		"is_sold_out": item.IsSoldOut,
	})
}

// CreateMenuItem adds a menu entry (owner terminal). Rolls back like order
// creation does.
func (e *Engine) CreateMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if !item.Category.Valid() {
		item.Category = model.CategoryMain
	}
	e.store.UpsertMenuItem(item)

	if e.remote == nil {
		e.saveSnapshot()
		return item, nil
	}
	serverID, err := e.remote.Insert(ctx, wire.CollectionMenuItems, wire.RowFromMenuItem(item))
	if err != nil {
		e.store.RemoveMenuItem(item.ID)
		e.connected.Store(false)
		return model.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}
	if serverID != "" && serverID != item.ID {
		e.store.RemoveMenuItem(item.ID)
		item.ID = serverID
		e.store.UpsertMenuItem(item)
	}
	e.connected.Store(true)
	return item, nil
}

// UpdateMenuItem replaces a menu entry wholesale.
func (e *Engine) UpdateMenuItem(ctx context.Context, item model.MenuItem) error {
	if _, ok := e.store.MenuItem(item.ID); !ok {
		return domainErrors.ErrNotFound
	}
	e.store.UpsertMenuItem(item)

	row := wire.RowFromMenuItem(item)
	return e.confirmPatch(ctx, wire.CollectionMenuItems, item.ID, map[string]any{
		"name":        row.Name,
		"price":       row.Price,
		"category":    row.Category,
		"image":       row.Image,
		"is_sold_out": row.IsSoldOut,
	})
}

// DeleteMenuItem removes a menu entry. Existing orders keep their item
// snapshots, so history stays intact.
func (e *Engine) DeleteMenuItem(ctx context.Context, id string) error {
	if !e.store.RemoveMenuItem(id) {
		return domainErrors.ErrNotFound
	}
	return e.confirmDelete(ctx, wire.CollectionMenuItems, id)
}

// CreateUser adds a staff account (owner terminal).
func (e *Engine) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if !u.Role.Valid() {
		u.Role = model.RoleWaiter
	}
	e.store.UpsertUser(u)

	if e.remote == nil {
		e.saveSnapshot()
		return u, nil
	}
	serverID, err := e.remote.Insert(ctx, wire.CollectionUsers, wire.RowFromUser(u))
	if err != nil {
		e.store.RemoveUser(u.ID)
		e.connected.Store(false)
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	if serverID != "" && serverID != u.ID {
		e.store.RemoveUser(u.ID)
		u.ID = serverID
		e.store.UpsertUser(u)
	}
	e.connected.Store(true)
	return u, nil
}

// UpdateUser replaces a staff account.
func (e *Engine) UpdateUser(ctx context.Context, u model.User) error {
	snap := e.store.Snapshot()
	found := false
	for _, existing := range snap.Users {
		if existing.ID == u.ID {
			found = true
			break
		}
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	e.store.UpsertUser(u)

	row := wire.RowFromUser(u)
	return e.confirmPatch(ctx, wire.CollectionUsers, u.ID, map[string]any{
		"name": row.Name,
		"role": row.Role,
		"pin":  row.PIN,
	})
}

// DeleteUser removes a staff account.
func (e *Engine) DeleteUser(ctx context.Context, id string) error {
	if !e.store.RemoveUser(id) {
		return domainErrors.ErrNotFound
	}
	return e.confirmDelete(ctx, wire.CollectionUsers, id)
}

// confirmPatch pushes changed fields to the remote store. Local state is
// already applied and is never rolled back here.
func (e *Engine) confirmPatch(ctx context.Context, collection, id string, fields map[string]any) error {
	if e.remote == nil {
		e.saveSnapshot()
		return nil
	}
	if err := e.remote.Patch(ctx, collection, id, fields); err != nil {
		e.connected.Store(false)
		return fmt.Errorf("confirm %s update: %w", collection, err)
	}
	e.connected.Store(true)
	return nil
}

func (e *Engine) confirmDelete(ctx context.Context, collection, id string) error {
	if e.remote == nil {
		e.saveSnapshot()
		return nil
	}
	if err := e.remote.Delete(ctx, collection, id); err != nil {
		e.connected.Store(false)
		return fmt.Errorf("confirm %s delete: %w", collection, err)
	}
	e.connected.Store(true)
	return nil
}

// Reconcile fetches the authoritative state and replaces the cache with it,
// carrying over any optimistic creates the server has not confirmed yet.
func (e *Engine) Reconcile(ctx context.Context) error {
	if e.remote == nil {
		return domainErrors.ErrRemoteUnconfigured
	}

	bundle, err := e.remote.FetchAll(ctx)
	if err != nil {
		e.connected.Store(false)
		return fmt.Errorf("reconcile fetch: %w", err)
	}

	snap := wire.SnapshotFromBundle(*bundle, e.now())

	remoteIDs := make(map[string]struct{}, len(snap.Orders))
	for _, o := range snap.Orders {
		remoteIDs[o.ID] = struct{}{}
	}
	e.mu.Lock()
	for id := range e.pending {
		if _, ok := remoteIDs[id]; ok {
			continue
		}
		if local, ok := e.store.Order(id); ok {
			snap.Orders = append(snap.Orders, local)
		}
	}
	e.mu.Unlock()

	e.store.ReplaceAll(snap)
	e.connected.Store(true)
	e.saveSnapshot()
	return nil
}

func (e *Engine) reconcileLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Reconcile(ctx); err != nil && ctx.Err() == nil {
				e.logger.Warn("reconciliation failed", slog.String("error", err.Error()))
			}
		}
	}
}

// pushLoop consumes change events. A closed stream means the connection
// dropped: the engine flags disconnection, resubscribes once, and lets the
// post-resubscribe reconciliation repair whatever was missed.
func (e *Engine) pushLoop(ctx context.Context) {
	defer e.wg.Done()
	for ctx.Err() == nil {
		events, err := e.channel.Subscribe(ctx)
		if err != nil {
			e.connected.Store(false)
			e.logger.Warn("push subscribe failed", slog.String("error", err.Error()))
			if !sleep(ctx, e.retryDelay) {
				return
			}
			continue
		}

		if err := e.Reconcile(ctx); err != nil && ctx.Err() == nil {
			e.logger.Warn("post-subscribe reconciliation failed", slog.String("error", err.Error()))
		}

		for event := range events {
			e.applyEvent(ctx, event)
		}
		if ctx.Err() == nil {
			e.connected.Store(false)
			e.logger.Warn("push stream closed, resubscribing")
			if !sleep(ctx, e.retryDelay) {
				return
			}
		}
	}
}

// applyEvent folds one push event into the store. Anything it cannot decode
// falls back to a full reconciliation rather than guessing.
func (e *Engine) applyEvent(ctx context.Context, event wire.Event) {
	id := event.RowID()
	if id == "" {
		e.logger.Warn("push event without row id, reconciling",
			slog.String("collection", event.Collection), slog.String("action", event.Action))
		e.reconcileAfterBadEvent(ctx)
		return
	}

	switch event.Action {
	case wire.ActionInsert, wire.ActionUpdate:
		if !e.applyUpsert(event) {
			e.reconcileAfterBadEvent(ctx)
		}
	case wire.ActionDelete:
		switch event.Collection {
		case wire.CollectionOrders:
			e.store.RemoveOrder(id)
		case wire.CollectionMenuItems:
			e.store.RemoveMenuItem(id)
		case wire.CollectionUsers:
			e.store.RemoveUser(id)
		default:
			e.reconcileAfterBadEvent(ctx)
		}
	default:
		e.reconcileAfterBadEvent(ctx)
	}
}

func (e *Engine) applyUpsert(event wire.Event) bool {
	switch event.Collection {
	case wire.CollectionOrders:
		var row wire.OrderRow
		if err := decodeRow(event.New, &row); err != nil {
			return false
		}
		e.store.UpsertOrder(wire.OrderFromRow(row, e.now()))
		e.clearPending(row.ID)
	case wire.CollectionMenuItems:
		var row wire.MenuItemRow
		if err := decodeRow(event.New, &row); err != nil {
			return false
		}
		e.store.UpsertMenuItem(wire.MenuItemFromRow(row))
	case wire.CollectionUsers:
		var row wire.UserRow
		if err := decodeRow(event.New, &row); err != nil {
			return false
		}
		e.store.UpsertUser(wire.UserFromRow(row))
	default:
		return false
	}
	return true
}

func (e *Engine) reconcileAfterBadEvent(ctx context.Context) {
	if err := e.Reconcile(ctx); err != nil && ctx.Err() == nil {
		e.logger.Warn("reconciliation after bad event failed", slog.String("error", err.Error()))
	}
}

func (e *Engine) markPending(id string) {
	e.mu.Lock()
	e.pending[id] = struct{}{}
	e.mu.Unlock()
}

func (e *Engine) clearPending(id string) {
	e.mu.Lock()
	delete(e.pending, id)
	e.mu.Unlock()
}

func (e *Engine) saveSnapshot() {
	if err := e.keeper.Save(e.store.Snapshot()); err != nil {
		e.logger.Warn("snapshot save failed", slog.String("error", err.Error()))
	}
}

func decodeRow(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty row payload")
	}
	return json.Unmarshal(raw, out)
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
