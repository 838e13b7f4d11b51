// Package postgres backs the data service with PostgreSQL. Rows are stored
// the way they travel: snake_case columns per collection, order lines as a
// JSONB document so an order is always read and written as one unit.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/wire"
)

type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage is the authoritative store behind the data service API.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            table_number TEXT NOT NULL DEFAULT '',
            items JSONB NOT NULL DEFAULT '[]',
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'NEW_ORDER',
            total_price BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            cooking_at TIMESTAMPTZ,
            served_at TIMESTAMPTZ,
            paid_at TIMESTAMPTZ,
            waiter_id TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            price BIGINT NOT NULL DEFAULT 0,
            category TEXT NOT NULL DEFAULT 'Menu Utama',
            image TEXT NOT NULL DEFAULT '',
            is_sold_out BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'WAITER',
            pin TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// patchable whitelists the columns a PATCH may touch per collection.
var patchable = map[string]map[string]bool{
	wire.CollectionOrders: {
		"table_number": true, "items": true, "notes": true, "status": true,
		"total_price": true, "cooking_at": true, "served_at": true,
		"paid_at": true, "waiter_id": true, "payment_method": true,
	},
	wire.CollectionMenuItems: {
		"name": true, "price": true, "category": true, "image": true, "is_sold_out": true,
	},
	wire.CollectionUsers: {
		"name": true, "role": true, "pin": true,
	},
}

// patchClause builds a deterministic SET clause from whitelisted fields.
// Unknown fields are rejected rather than silently dropped so a buggy
// client fails loudly.
func patchClause(collection string, fields map[string]any) (string, []any, error) {
	allowed := patchable[collection]
	names := make([]string, 0, len(fields))
	for name := range fields {
		if !allowed[name] {
			return "", nil, fmt.Errorf("%w: field %q is not patchable on %s", domainErrors.ErrInvalidPatch, name, collection)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil, fmt.Errorf("%w: empty patch for %s", domainErrors.ErrInvalidPatch, collection)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		parts = append(parts, fmt.Sprintf("%s=$%d", name, i+1))
		value := fields[name]
		if name == "items" {
			encoded, err := json.Marshal(value)
			if err != nil {
				return "", nil, fmt.Errorf("encode items: %w", err)
			}
			value = encoded
		}
		args = append(args, value)
	}
	return strings.Join(parts, ", "), args, nil
}

const orderColumns = `id, table_number, items, notes, status, total_price, created_at, cooking_at, served_at, paid_at, waiter_id, payment_method`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(sc rowScanner) (wire.OrderRow, error) {
	var (
		r         wire.OrderRow
		items     []byte
		createdAt time.Time
		cookingAt *time.Time
		servedAt  *time.Time
		paidAt    *time.Time
	)
	err := sc.Scan(&r.ID, &r.TableNumber, &items, &r.Notes, &r.Status, &r.TotalPrice,
		&createdAt, &cookingAt, &servedAt, &paidAt, &r.WaiterID, &r.PaymentMethod)
	if err != nil {
		return wire.OrderRow{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &r.Items); err != nil {
			return wire.OrderRow{}, fmt.Errorf("decode items for order %s: %w", r.ID, err)
		}
	}
	r.CreatedAt = tsString(&createdAt)
	r.CookingAt = tsString(cookingAt)
	r.ServedAt = tsString(servedAt)
	r.PaidAt = tsString(paidAt)
	return r, nil
}

// ListOrders returns every order, newest first.
func (s *Storage) ListOrders(ctx context.Context) ([]wire.OrderRow, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]wire.OrderRow, 0)
	for rows.Next() {
		r, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertOrder stores an order, honoring a client-generated id so terminals
// can create optimistically. Re-sending the same id replaces the row, which
// makes retried creates harmless.
func (s *Storage) InsertOrder(ctx context.Context, row wire.OrderRow) (wire.OrderRow, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt == "" {
		row.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	items, err := json.Marshal(row.Items)
	if err != nil {
		return wire.OrderRow{}, fmt.Errorf("encode items: %w", err)
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
                   ON CONFLICT (id) DO UPDATE SET
                       table_number=EXCLUDED.table_number, items=EXCLUDED.items,
                       notes=EXCLUDED.notes, status=EXCLUDED.status,
                       total_price=EXCLUDED.total_price, cooking_at=EXCLUDED.cooking_at,
                       served_at=EXCLUDED.served_at, paid_at=EXCLUDED.paid_at,
                       waiter_id=EXCLUDED.waiter_id, payment_method=EXCLUDED.payment_method
                   RETURNING ` + orderColumns
	return scanOrderRow(s.pool.QueryRow(ctx, query,
		row.ID, row.TableNumber, items, row.Notes, row.Status, row.TotalPrice,
		row.CreatedAt, tsArg(row.CookingAt), tsArg(row.ServedAt), tsArg(row.PaidAt),
		row.WaiterID, row.PaymentMethod))
}

// PatchOrder applies a partial update and returns the resulting row.
func (s *Storage) PatchOrder(ctx context.Context, id string, fields map[string]any) (wire.OrderRow, error) {
	set, args, err := patchClause(wire.CollectionOrders, fields)
	if err != nil {
		return wire.OrderRow{}, err
	}
	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id=$%d RETURNING %s`, set, len(args)+1, orderColumns)
	r, err := scanOrderRow(s.pool.QueryRow(ctx, query, append(args, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.OrderRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

// DeleteOrder removes an order, returning the deleted row for the change
// announcement.
func (s *Storage) DeleteOrder(ctx context.Context, id string) (wire.OrderRow, error) {
	r, err := scanOrderRow(s.pool.QueryRow(ctx, `DELETE FROM orders WHERE id=$1 RETURNING `+orderColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.OrderRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

const menuColumns = `id, name, price, category, image, is_sold_out`

func scanMenuRow(sc rowScanner) (wire.MenuItemRow, error) {
	var r wire.MenuItemRow
	err := sc.Scan(&r.ID, &r.Name, &r.Price, &r.Category, &r.Image, &r.IsSoldOut)
	return r, err
}

// ListMenuItems returns the full menu ordered by name.
func (s *Storage) ListMenuItems(ctx context.Context) ([]wire.MenuItemRow, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]wire.MenuItemRow, 0)
	for rows.Next() {
		r, err := scanMenuRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertMenuItem stores a menu entry.
func (s *Storage) InsertMenuItem(ctx context.Context, row wire.MenuItemRow) (wire.MenuItemRow, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	const query = `INSERT INTO menu_items (` + menuColumns + `)
                   VALUES ($1,$2,$3,$4,$5,$6)
                   ON CONFLICT (id) DO UPDATE SET
                       name=EXCLUDED.name, price=EXCLUDED.price, category=EXCLUDED.category,
                       image=EXCLUDED.image, is_sold_out=EXCLUDED.is_sold_out
                   RETURNING ` + menuColumns
	return scanMenuRow(s.pool.QueryRow(ctx, query, row.ID, row.Name, row.Price, row.Category, row.Image, row.IsSoldOut))
}

// PatchMenuItem applies a partial update to a menu entry.
func (s *Storage) PatchMenuItem(ctx context.Context, id string, fields map[string]any) (wire.MenuItemRow, error) {
	set, args, err := patchClause(wire.CollectionMenuItems, fields)
	if err != nil {
		return wire.MenuItemRow{}, err
	}
	query := fmt.Sprintf(`UPDATE menu_items SET %s WHERE id=$%d RETURNING %s`, set, len(args)+1, menuColumns)
	r, err := scanMenuRow(s.pool.QueryRow(ctx, query, append(args, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.MenuItemRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

// DeleteMenuItem removes a menu entry.
func (s *Storage) DeleteMenuItem(ctx context.Context, id string) (wire.MenuItemRow, error) {
	r, err := scanMenuRow(s.pool.QueryRow(ctx, `DELETE FROM menu_items WHERE id=$1 RETURNING `+menuColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.MenuItemRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

const userColumns = `id, name, role, pin`

func scanUserRow(sc rowScanner) (wire.UserRow, error) {
	var r wire.UserRow
	err := sc.Scan(&r.ID, &r.Name, &r.Role, &r.PIN)
	return r, err
}

// ListUsers returns all staff accounts ordered by id.
func (s *Storage) ListUsers(ctx context.Context) ([]wire.UserRow, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]wire.UserRow, 0)
	for rows.Next() {
		r, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertUser stores a staff account.
func (s *Storage) InsertUser(ctx context.Context, row wire.UserRow) (wire.UserRow, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	const query = `INSERT INTO users (` + userColumns + `)
                   VALUES ($1,$2,$3,$4)
                   ON CONFLICT (id) DO UPDATE SET
                       name=EXCLUDED.name, role=EXCLUDED.role, pin=EXCLUDED.pin
                   RETURNING ` + userColumns
	return scanUserRow(s.pool.QueryRow(ctx, query, row.ID, row.Name, row.Role, row.PIN))
}

// PatchUser applies a partial update to a staff account.
func (s *Storage) PatchUser(ctx context.Context, id string, fields map[string]any) (wire.UserRow, error) {
	set, args, err := patchClause(wire.CollectionUsers, fields)
	if err != nil {
		return wire.UserRow{}, err
	}
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING %s`, set, len(args)+1, userColumns)
	r, err := scanUserRow(s.pool.QueryRow(ctx, query, append(args, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.UserRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

// DeleteUser removes a staff account.
func (s *Storage) DeleteUser(ctx context.Context, id string) (wire.UserRow, error) {
	r, err := scanUserRow(s.pool.QueryRow(ctx, `DELETE FROM users WHERE id=$1 RETURNING `+userColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return wire.UserRow{}, domainErrors.ErrNotFound
	}
	return r, err
}

func tsString(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func tsArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}
