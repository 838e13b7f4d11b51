package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestOrderRoundTrip(t *testing.T) {
	cooking := now.Add(2 * time.Minute)
	order := model.Order{
		ID:          "o1",
		TableNumber: "A1",
		Items: []model.OrderItem{
			{ID: "i1", MenuItem: model.MenuItem{ID: "m1", Name: "Rendang Daging", Price: 15000, Category: model.CategoryMain}, Quantity: 2},
		},
		Notes:      "pedas",
		Status:     model.OrderStatusCooking,
		TotalPrice: 30000,
		CreatedAt:  now,
		CookingAt:  &cooking,
		WaiterID:   "w1",
	}

	got := OrderFromRow(RowFromOrder(order), now.Add(time.Hour))

	if got.ID != order.ID || got.TableNumber != order.TableNumber || got.Notes != order.Notes {
		t.Fatalf("identity fields lost: %+v", got)
	}
	if got.Status != model.OrderStatusCooking || got.TotalPrice != 30000 {
		t.Fatalf("status/total lost: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("createdAt drifted: %v", got.CreatedAt)
	}
	if got.CookingAt == nil || !got.CookingAt.Equal(cooking) {
		t.Fatalf("cookingAt drifted: %v", got.CookingAt)
	}
	if got.ServedAt != nil || got.PaidAt != nil {
		t.Fatal("absent timestamps must stay absent")
	}
	if len(got.Items) != 1 || got.Items[0].MenuItem.Price != 15000 {
		t.Fatalf("item snapshot lost: %+v", got.Items)
	}
}

func TestOrderFromRowDefaultsMalformedFields(t *testing.T) {
	row := OrderRow{
		ID:        "o1",
		Status:    "SHIPPED",      // unknown -> NEW_ORDER
		CreatedAt: "not-a-time",   // malformed -> now
		CookingAt: "also-not-one", // malformed -> absent
		Items: []ItemRow{
			{ID: "i1", MenuItem: MenuItemRow{ID: "m1", Category: "Dessert"}, Quantity: 1},
			{ID: "i2", Quantity: 0}, // zero quantity line dropped
		},
	}

	got := OrderFromRow(row, now)

	if got.Status != model.OrderStatusNew {
		t.Fatalf("expected NEW_ORDER default, got %s", got.Status)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt defaulted to now, got %v", got.CreatedAt)
	}
	if got.CookingAt != nil {
		t.Fatal("malformed cookingAt must map to absent")
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected zero-quantity line dropped, got %d items", len(got.Items))
	}
	if got.Items[0].MenuItem.Category != model.CategoryMain {
		t.Fatalf("expected default category, got %s", got.Items[0].MenuItem.Category)
	}
}

func TestUserFromRowDefaultsRole(t *testing.T) {
	got := UserFromRow(UserRow{ID: "u1", Name: "Andi", Role: "SUPERUSER", PIN: "3333"})
	if got.Role != model.RoleWaiter {
		t.Fatalf("expected WAITER default, got %s", got.Role)
	}
	if got.PIN != "3333" {
		t.Fatalf("pin lost: %q", got.PIN)
	}
}

func TestMenuItemRoundTrip(t *testing.T) {
	item := model.MenuItem{ID: "m1", Name: "Es Teh", Price: 5000, Category: model.CategoryColdDrink, IsSoldOut: true}
	got := MenuItemFromRow(RowFromMenuItem(item))
	if got != item {
		t.Fatalf("round trip changed item: %+v", got)
	}
}

func TestEventRowID(t *testing.T) {
	newRow, _ := json.Marshal(map[string]string{"id": "o1"})
	oldRow, _ := json.Marshal(map[string]string{"id": "o2"})

	if got := (Event{New: newRow, Old: oldRow}).RowID(); got != "o1" {
		t.Fatalf("expected new row id to win, got %q", got)
	}
	if got := (Event{Action: ActionDelete, Old: oldRow}).RowID(); got != "o2" {
		t.Fatalf("expected old row id for delete, got %q", got)
	}
	if got := (Event{New: json.RawMessage(`{broken`)}).RowID(); got != "" {
		t.Fatalf("expected empty id for malformed payload, got %q", got)
	}
}
