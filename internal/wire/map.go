package wire

import (
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

// OrderFromRow maps a boundary row into the model, defaulting every missing
// or malformed field individually so one bad row never blocks a collection
// from loading. A row without a usable created_at gets now.
func OrderFromRow(r OrderRow, now time.Time) model.Order {
	status := model.OrderStatus(r.Status)
	if !status.Valid() {
		status = model.OrderStatusNew
	}

	createdAt := now
	if t := parseTime(r.CreatedAt); t != nil {
		createdAt = *t
	}

	items := make([]model.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			continue
		}
		items = append(items, model.OrderItem{
			ID:       it.ID,
			MenuItem: MenuItemFromRow(it.MenuItem),
			Quantity: it.Quantity,
		})
	}

	return model.Order{
		ID:            r.ID,
		TableNumber:   r.TableNumber,
		Items:         items,
		Notes:         r.Notes,
		Status:        status,
		TotalPrice:    r.TotalPrice,
		CreatedAt:     createdAt,
		CookingAt:     parseTime(r.CookingAt),
		ServedAt:      parseTime(r.ServedAt),
		PaidAt:        parseTime(r.PaidAt),
		WaiterID:      r.WaiterID,
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
	}
}

// RowFromOrder maps a model order to its boundary shape.
func RowFromOrder(o model.Order) OrderRow {
	items := make([]ItemRow, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemRow{
			ID:       it.ID,
			MenuItem: RowFromMenuItem(it.MenuItem),
			Quantity: it.Quantity,
		})
	}

	return OrderRow{
		ID:            o.ID,
		TableNumber:   o.TableNumber,
		Items:         items,
		Notes:         o.Notes,
		Status:        string(o.Status),
		TotalPrice:    o.TotalPrice,
		CreatedAt:     formatTime(&o.CreatedAt),
		CookingAt:     formatTime(o.CookingAt),
		ServedAt:      formatTime(o.ServedAt),
		PaidAt:        formatTime(o.PaidAt),
		WaiterID:      o.WaiterID,
		PaymentMethod: string(o.PaymentMethod),
	}
}

// MenuItemFromRow maps a boundary menu row, defaulting an unknown category.
func MenuItemFromRow(r MenuItemRow) model.MenuItem {
	category := model.MenuCategory(r.Category)
	if !category.Valid() {
		category = model.CategoryMain
	}
	return model.MenuItem{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Category:  category,
		Image:     r.Image,
		IsSoldOut: r.IsSoldOut,
	}
}

// RowFromMenuItem maps a model menu item to its boundary shape.
func RowFromMenuItem(m model.MenuItem) MenuItemRow {
	return MenuItemRow{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Category:  string(m.Category),
		Image:     m.Image,
		IsSoldOut: m.IsSoldOut,
	}
}

// UserFromRow maps a boundary user row, defaulting an unknown role to the
// least privileged one.
func UserFromRow(r UserRow) model.User {
	role := model.UserRole(r.Role)
	if !role.Valid() {
		role = model.RoleWaiter
	}
	return model.User{
		ID:   r.ID,
		Name: r.Name,
		Role: role,
		PIN:  r.PIN,
	}
}

// RowFromUser maps a model user to its boundary shape.
func RowFromUser(u model.User) UserRow {
	return UserRow{
		ID:   u.ID,
		Name: u.Name,
		Role: string(u.Role),
		PIN:  u.PIN,
	}
}

// SnapshotFromBundle maps a bulk fetch (or snapshot file) into model state,
// applying the same per-field defaulting as the single-row mappers.
func SnapshotFromBundle(b Bundle, now time.Time) model.Snapshot {
	snap := model.Snapshot{
		Orders:    make([]model.Order, 0, len(b.Orders)),
		MenuItems: make([]model.MenuItem, 0, len(b.MenuItems)),
		Users:     make([]model.User, 0, len(b.Users)),
	}
	for _, row := range b.Orders {
		snap.Orders = append(snap.Orders, OrderFromRow(row, now))
	}
	for _, row := range b.MenuItems {
		snap.MenuItems = append(snap.MenuItems, MenuItemFromRow(row))
	}
	for _, row := range b.Users {
		snap.Users = append(snap.Users, UserFromRow(row))
	}
	return snap
}

// BundleFromSnapshot maps model state to the boundary shape.
func BundleFromSnapshot(snap model.Snapshot) Bundle {
	b := Bundle{
		Orders:    make([]OrderRow, 0, len(snap.Orders)),
		MenuItems: make([]MenuItemRow, 0, len(snap.MenuItems)),
		Users:     make([]UserRow, 0, len(snap.Users)),
	}
	for _, o := range snap.Orders {
		b.Orders = append(b.Orders, RowFromOrder(o))
	}
	for _, m := range snap.MenuItems {
		b.MenuItems = append(b.MenuItems, RowFromMenuItem(m))
	}
	for _, u := range snap.Users {
		b.Users = append(b.Users, RowFromUser(u))
	}
	return b
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
