package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polkiloo/warungpos/internal/wire"
)

type memoryStore struct {
	orders []wire.OrderRow
}

func (s *memoryStore) ListOrders(context.Context) ([]wire.OrderRow, error) { return s.orders, nil }

func (s *memoryStore) InsertOrder(_ context.Context, row wire.OrderRow) (wire.OrderRow, error) {
	if row.ID == "" {
		row.ID = "o-new"
	}
	s.orders = append(s.orders, row)
	return row, nil
}

func (s *memoryStore) PatchOrder(_ context.Context, id string, _ map[string]any) (wire.OrderRow, error) {
	return wire.OrderRow{ID: id}, nil
}

func (s *memoryStore) DeleteOrder(_ context.Context, id string) (wire.OrderRow, error) {
	return wire.OrderRow{ID: id}, nil
}

func (s *memoryStore) ListMenuItems(context.Context) ([]wire.MenuItemRow, error) {
	return []wire.MenuItemRow{}, nil
}

func (s *memoryStore) InsertMenuItem(_ context.Context, row wire.MenuItemRow) (wire.MenuItemRow, error) {
	return row, nil
}

func (s *memoryStore) PatchMenuItem(_ context.Context, id string, _ map[string]any) (wire.MenuItemRow, error) {
	return wire.MenuItemRow{ID: id}, nil
}

func (s *memoryStore) DeleteMenuItem(_ context.Context, id string) (wire.MenuItemRow, error) {
	return wire.MenuItemRow{ID: id}, nil
}

func (s *memoryStore) ListUsers(context.Context) ([]wire.UserRow, error) {
	return []wire.UserRow{}, nil
}

func (s *memoryStore) InsertUser(_ context.Context, row wire.UserRow) (wire.UserRow, error) {
	return row, nil
}

func (s *memoryStore) PatchUser(_ context.Context, id string, _ map[string]any) (wire.UserRow, error) {
	return wire.UserRow{ID: id}, nil
}

func (s *memoryStore) DeleteUser(_ context.Context, id string) (wire.UserRow, error) {
	return wire.UserRow{ID: id}, nil
}

func (s *memoryStore) HealthCheck(context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRoutesAreWired(t *testing.T) {
	engine := Setup(&memoryStore{}, nil, testLogger())
	server := httptest.NewServer(engine)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}

	body := strings.NewReader(`{"table_number":"A1","items":[],"status":"NEW_ORDER"}`)
	resp, err = http.Post(server.URL+"/api/orders", "application/json", body)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var created wire.OrderRow
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must return the stored row")
	}

	resp, err = http.Get(server.URL + "/api/unknown")
	if err != nil {
		t.Fatalf("unknown: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %d", resp.StatusCode)
	}
}
