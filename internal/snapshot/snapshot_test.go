package snapshot

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newKeeper(t *testing.T) (*Keeper, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warungpos.json")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewKeeper(path, logger), path
}

func TestLoadMissingFileReturnsSeed(t *testing.T) {
	keeper, _ := newKeeper(t)
	snap := keeper.Load(now)

	if len(snap.Orders) != 0 {
		t.Fatalf("seed must carry no orders, got %d", len(snap.Orders))
	}
	if len(snap.MenuItems) == 0 || len(snap.Users) == 0 {
		t.Fatal("seed must carry menu items and users")
	}
	if _, ok := findUserByPIN(snap.Users, "3333"); !ok {
		t.Fatal("seed owner pin missing")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	keeper, path := newKeeper(t)

	cooking := now.Add(time.Minute)
	saved := model.Snapshot{
		Orders: []model.Order{{
			ID:          "o1",
			TableNumber: "A1",
			Status:      model.OrderStatusCooking,
			TotalPrice:  30000,
			CreatedAt:   now,
			CookingAt:   &cooking,
			Items: []model.OrderItem{
				{ID: "i1", MenuItem: model.MenuItem{ID: "m1", Name: "Rendang Daging", Price: 15000, Category: model.CategoryMain}, Quantity: 2},
			},
		}},
		MenuItems: []model.MenuItem{{ID: "m1", Name: "Rendang Daging", Price: 15000, Category: model.CategoryMain}},
		Users:     []model.User{{ID: "u1", Name: "Sari", Role: model.RoleWaiter, PIN: "1111"}},
	}

	if err := keeper.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not written: %v", err)
	}

	loaded := keeper.Load(now.Add(time.Hour))
	if len(loaded.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(loaded.Orders))
	}
	got := loaded.Orders[0]
	if got.Status != model.OrderStatusCooking || got.TotalPrice != 30000 {
		t.Fatalf("order fields lost: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || got.CookingAt == nil || !got.CookingAt.Equal(cooking) {
		t.Fatalf("timestamps lost: %+v", got)
	}
	if len(loaded.Users) != 1 || loaded.Users[0].PIN != "1111" {
		t.Fatalf("users lost: %+v", loaded.Users)
	}
}

func TestLoadCorruptFileFallsBackToSeed(t *testing.T) {
	keeper, path := newKeeper(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap := keeper.Load(now)
	if len(snap.MenuItems) == 0 {
		t.Fatal("corrupt snapshot must fall back to seed")
	}
}

func TestEmptyPathDisablesPersistence(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	keeper := NewKeeper("", logger)

	if err := keeper.Save(model.Snapshot{}); err != nil {
		t.Fatalf("save with empty path must be a no-op: %v", err)
	}
	if snap := keeper.Load(now); len(snap.MenuItems) == 0 {
		t.Fatal("load with empty path must return seed")
	}
}

func findUserByPIN(users []model.User, pin string) (model.User, bool) {
	for _, u := range users {
		if u.PIN == pin {
			return u, true
		}
	}
	return model.User{}, false
}
