package usecase

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/domain/model"
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testItems() []model.OrderItem {
	return []model.OrderItem{
		{ID: "i1", MenuItem: model.MenuItem{ID: "m1", Name: "Rendang Daging", Price: 15000}, Quantity: 2},
	}
}

func TestNewOrderComputesTotal(t *testing.T) {
	order, err := NewOrder("A1", testItems(), "pedas", "w1", testClock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Fatal("expected generated id")
	}
	if order.Status != model.OrderStatusNew {
		t.Fatalf("expected NEW_ORDER, got %s", order.Status)
	}
	if order.TotalPrice != 30000 {
		t.Fatalf("expected total 30000, got %d", order.TotalPrice)
	}
	if !order.CreatedAt.Equal(testClock) {
		t.Fatalf("expected createdAt %v, got %v", testClock, order.CreatedAt)
	}
	if order.CookingAt != nil || order.ServedAt != nil || order.PaidAt != nil {
		t.Fatal("no stage timestamps may be set at creation")
	}
}

func TestNewOrderRejectsEmpty(t *testing.T) {
	if _, err := NewOrder("A1", nil, "", "w1", testClock); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	zeroed := []model.OrderItem{{ID: "i1", Quantity: 0}}
	if _, err := NewOrder("A1", zeroed, "", "w1", testClock); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder for all-zero quantities, got %v", err)
	}
}

func TestTransitionHappyPath(t *testing.T) {
	order, _ := NewOrder("A1", testItems(), "", "w1", testClock)

	step := testClock.Add(time.Minute)
	if err := Transition(order, model.OrderStatusCooking, "", step); err != nil {
		t.Fatalf("to COOKING: %v", err)
	}
	if order.CookingAt == nil || !order.CookingAt.Equal(step) {
		t.Fatalf("expected cookingAt %v, got %v", step, order.CookingAt)
	}

	step = step.Add(time.Minute)
	if err := Transition(order, model.OrderStatusServed, "", step); err != nil {
		t.Fatalf("to SERVED: %v", err)
	}
	if order.ServedAt == nil || !order.ServedAt.Equal(step) {
		t.Fatalf("expected servedAt %v, got %v", step, order.ServedAt)
	}

	step = step.Add(time.Minute)
	if err := Transition(order, model.OrderStatusPaid, model.PaymentCash, step); err != nil {
		t.Fatalf("to PAID: %v", err)
	}
	if order.PaidAt == nil || order.PaymentMethod != model.PaymentCash {
		t.Fatal("expected paidAt and payment method to be set")
	}

	// Timestamps must be monotonically non-decreasing through the chain.
	if order.CookingAt.Before(order.CreatedAt) || order.ServedAt.Before(*order.CookingAt) || order.PaidAt.Before(*order.ServedAt) {
		t.Fatal("timestamp ordering violated")
	}
}

func TestTransitionRejectsSkipsAndCycles(t *testing.T) {
	cases := []struct {
		name string
		from model.OrderStatus
		to   model.OrderStatus
	}{
		{"skip to served", model.OrderStatusNew, model.OrderStatusServed},
		{"skip to paid", model.OrderStatusNew, model.OrderStatusPaid},
		{"skip cooking to paid", model.OrderStatusCooking, model.OrderStatusPaid},
		{"backwards", model.OrderStatusServed, model.OrderStatusCooking},
		{"self", model.OrderStatusCooking, model.OrderStatusCooking},
		{"out of terminal", model.OrderStatusPaid, model.OrderStatusNew},
		{"unknown", model.OrderStatusNew, model.OrderStatus("DELIVERED")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := &model.Order{ID: "o1", Status: tc.from, CreatedAt: testClock}
			if err := Transition(order, tc.to, model.PaymentCash, testClock); !errors.Is(err, domainErrors.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if order.Status != tc.from {
				t.Fatalf("status mutated on rejected transition: %s", order.Status)
			}
		})
	}
}

func TestTransitionPaidRequiresPaymentMethod(t *testing.T) {
	order := &model.Order{ID: "o1", Status: model.OrderStatusServed, CreatedAt: testClock}
	if err := Transition(order, model.OrderStatusPaid, "", testClock); !errors.Is(err, domainErrors.ErrPaymentMethodRequired) {
		t.Fatalf("expected ErrPaymentMethodRequired, got %v", err)
	}
	if order.Status != model.OrderStatusServed || order.PaidAt != nil {
		t.Fatal("rejected payment must not mutate the order")
	}
}

func TestEditItemsRecomputesTotal(t *testing.T) {
	order, _ := NewOrder("A1", testItems(), "", "w1", testClock)

	updated := []model.OrderItem{
		{ID: "i1", MenuItem: model.MenuItem{ID: "m1", Price: 15000}, Quantity: 1},
		{ID: "i2", MenuItem: model.MenuItem{ID: "m2", Price: 8000}, Quantity: 3},
	}
	if err := EditItems(order, updated, "tanpa sambal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TotalPrice != 39000 {
		t.Fatalf("expected total 39000, got %d", order.TotalPrice)
	}
	if order.Notes != "tanpa sambal" {
		t.Fatalf("notes not updated: %q", order.Notes)
	}
	if order.Status != model.OrderStatusNew {
		t.Fatal("edit must not change status")
	}
}

func TestEditItemsDropsZeroQuantityLines(t *testing.T) {
	order, _ := NewOrder("A1", testItems(), "", "w1", testClock)

	// Last unit removed: the line disappears instead of persisting at zero.
	updated := []model.OrderItem{
		{ID: "i1", MenuItem: model.MenuItem{ID: "m1", Price: 15000}, Quantity: 0},
		{ID: "i2", MenuItem: model.MenuItem{ID: "m2", Price: 8000}, Quantity: 2},
	}
	if err := EditItems(order, updated, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].ID != "i2" {
		t.Fatalf("expected only i2 to remain, got %+v", order.Items)
	}
	if order.TotalPrice != 16000 {
		t.Fatalf("expected total 16000, got %d", order.TotalPrice)
	}
}

func TestEditItemsOnlyWhileEditable(t *testing.T) {
	for _, status := range []model.OrderStatus{model.OrderStatusServed, model.OrderStatusPaid} {
		order := &model.Order{ID: "o1", Status: status}
		if err := EditItems(order, testItems(), ""); !errors.Is(err, domainErrors.ErrOrderNotEditable) {
			t.Fatalf("status %s: expected ErrOrderNotEditable, got %v", status, err)
		}
	}

	cooking := &model.Order{ID: "o1", Status: model.OrderStatusCooking}
	if err := EditItems(cooking, testItems(), ""); err != nil {
		t.Fatalf("COOKING order must remain editable: %v", err)
	}
}

func TestCancellableOnlyWhileNew(t *testing.T) {
	if !Cancellable(&model.Order{Status: model.OrderStatusNew}) {
		t.Fatal("NEW_ORDER must be cancellable")
	}
	for _, status := range []model.OrderStatus{model.OrderStatusCooking, model.OrderStatusServed, model.OrderStatusPaid} {
		if Cancellable(&model.Order{Status: status}) {
			t.Fatalf("status %s must not be cancellable", status)
		}
	}
}

func TestTotalPrice(t *testing.T) {
	items := []model.OrderItem{
		{MenuItem: model.MenuItem{Price: 15000}, Quantity: 2},
		{MenuItem: model.MenuItem{Price: 5000}, Quantity: 1},
	}
	if got := TotalPrice(items); got != 35000 {
		t.Fatalf("expected 35000, got %d", got)
	}
	if got := TotalPrice(nil); got != 0 {
		t.Fatalf("expected 0 for empty items, got %d", got)
	}
}
