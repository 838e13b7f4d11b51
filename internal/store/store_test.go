package store

import (
	"testing"
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func order(id string, createdAt time.Time) model.Order {
	return model.Order{ID: id, Status: model.OrderStatusNew, CreatedAt: createdAt}
}

func TestSnapshotOrdering(t *testing.T) {
	s := New()
	s.UpsertOrder(order("old", base))
	s.UpsertOrder(order("new", base.Add(time.Minute)))
	s.UpsertMenuItem(model.MenuItem{ID: "m2", Name: "Rendang"})
	s.UpsertMenuItem(model.MenuItem{ID: "m1", Name: "Es Teh"})

	snap := s.Snapshot()
	if snap.Orders[0].ID != "new" || snap.Orders[1].ID != "old" {
		t.Fatalf("expected newest order first, got %+v", snap.Orders)
	}
	if snap.MenuItems[0].Name != "Es Teh" {
		t.Fatalf("expected menu sorted by name, got %+v", snap.MenuItems)
	}
}

func TestUpsertOrderIdempotent(t *testing.T) {
	s := New()
	notifications := 0
	unsub := s.Subscribe(func() { notifications++ })
	defer unsub()

	o := order("o1", base)
	s.UpsertOrder(o)
	s.UpsertOrder(o) // identical record: no duplicate entry, no re-notify

	snap := s.Snapshot()
	if len(snap.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(snap.Orders))
	}
	if notifications != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", notifications)
	}
}

func TestReplaceAllSkipsWhenUnchanged(t *testing.T) {
	s := New()
	snap := model.Snapshot{
		Orders:    []model.Order{order("o1", base)},
		MenuItems: []model.MenuItem{{ID: "m1", Name: "Es Teh"}},
		Users:     []model.User{{ID: "u1", PIN: "1111", Role: model.RoleWaiter}},
	}

	if !s.ReplaceAll(snap) {
		t.Fatal("first replace must report change")
	}

	notifications := 0
	unsub := s.Subscribe(func() { notifications++ })
	defer unsub()

	// Same content in different slice order: content equality, not identity.
	again := snap.Clone()
	if s.ReplaceAll(again) {
		t.Fatal("identical snapshot must not be applied")
	}
	if notifications != 0 {
		t.Fatalf("unchanged replace must not notify, got %d", notifications)
	}

	again.Orders[0].Status = model.OrderStatusCooking
	if !s.ReplaceAll(again) {
		t.Fatal("changed snapshot must be applied")
	}
	if notifications != 1 {
		t.Fatalf("expected 1 notification after change, got %d", notifications)
	}
}

func TestRemoveOrder(t *testing.T) {
	s := New()
	s.UpsertOrder(order("o1", base))

	if !s.RemoveOrder("o1") {
		t.Fatal("expected removal of existing order")
	}
	if s.RemoveOrder("o1") {
		t.Fatal("second removal must report absence")
	}
	if _, ok := s.Order("o1"); ok {
		t.Fatal("order still present after removal")
	}
}

func TestUserByPIN(t *testing.T) {
	s := New()
	s.UpsertUser(model.User{ID: "u1", Name: "Andi", Role: model.RoleOwner, PIN: "3333"})

	u, ok := s.UserByPIN("3333")
	if !ok || u.Name != "Andi" {
		t.Fatalf("expected Andi, got %+v ok=%v", u, ok)
	}
	if _, ok := s.UserByPIN("0000"); ok {
		t.Fatal("unknown pin must not match")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	s.UpsertOrder(model.Order{
		ID:        "o1",
		Status:    model.OrderStatusNew,
		CreatedAt: base,
		Items:     []model.OrderItem{{ID: "i1", Quantity: 1}},
	})

	snap := s.Snapshot()
	snap.Orders[0].Items[0].Quantity = 99

	fresh, _ := s.Order("o1")
	if fresh.Items[0].Quantity != 1 {
		t.Fatal("snapshot mutation leaked into store")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := New()
	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	s.UpsertOrder(order("o1", base))
	unsub()
	s.UpsertOrder(order("o2", base.Add(time.Second)))

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
