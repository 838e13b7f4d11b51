// Package wire owns the boundary representation shared by the remote data
// service, the push channel, and the offline snapshot: snake_case JSON rows
// with RFC3339 timestamps. The in-memory model never crosses a process
// boundary directly.
package wire

import "encoding/json"

// Collection names at the remote boundary.
const (
	CollectionOrders    = "orders"
	CollectionMenuItems = "menu_items"
	CollectionUsers     = "users"
)

// Row-level change actions announced on the push channel.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// OrderRow is the boundary shape of an order.
type OrderRow struct {
	ID            string    `json:"id"`
	TableNumber   string    `json:"table_number"`
	Items         []ItemRow `json:"items"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	TotalPrice    int64     `json:"total_price"`
	CreatedAt     string    `json:"created_at,omitempty"`
	CookingAt     string    `json:"cooking_at,omitempty"`
	ServedAt      string    `json:"served_at,omitempty"`
	PaidAt        string    `json:"paid_at,omitempty"`
	WaiterID      string    `json:"waiter_id"`
	PaymentMethod string    `json:"payment_method,omitempty"`
}

// ItemRow is one denormalized order line at the boundary.
type ItemRow struct {
	ID       string      `json:"id"`
	MenuItem MenuItemRow `json:"menu_item"`
	Quantity int         `json:"quantity"`
}

// MenuItemRow is the boundary shape of a menu entry.
type MenuItemRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	IsSoldOut bool   `json:"is_sold_out"`
}

// UserRow is the boundary shape of a staff account.
type UserRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	PIN  string `json:"pin"`
}

// Bundle groups one row set per collection: the shape of a bulk fetch and
// of the offline snapshot file.
type Bundle struct {
	Orders    []OrderRow    `json:"orders"`
	MenuItems []MenuItemRow `json:"menu_items"`
	Users     []UserRow     `json:"users"`
}

// Event announces a row-level change on the push channel. New carries the
// affected row for inserts and updates; Old carries the previous row (at
// minimum its id) for deletes. Delivery is at-most-once.
type Event struct {
	Collection string          `json:"collection"`
	Action     string          `json:"action"`
	New        json.RawMessage `json:"new,omitempty"`
	Old        json.RawMessage `json:"old,omitempty"`
}

// RowID extracts the id of whichever row the event carries, preferring the
// new row. Returns empty string when neither side decodes.
func (e Event) RowID() string {
	var probe struct {
		ID string `json:"id"`
	}
	if len(e.New) > 0 && json.Unmarshal(e.New, &probe) == nil && probe.ID != "" {
		return probe.ID
	}
	if len(e.Old) > 0 && json.Unmarshal(e.Old, &probe) == nil {
		return probe.ID
	}
	return ""
}
