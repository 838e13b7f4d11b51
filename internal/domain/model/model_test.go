package model

import (
	"testing"
	"time"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"new", OrderStatusNew, "NEW_ORDER"},
		{"cooking", OrderStatusCooking, "COOKING"},
		{"served", OrderStatusServed, "SERVED"},
		{"paid", OrderStatusPaid, "PAID"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("DELIVERED").Valid() {
		t.Fatal("unknown status must not be valid")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusNew.Terminal() || OrderStatusCooking.Terminal() || OrderStatusServed.Terminal() {
		t.Fatal("only PAID is terminal")
	}
	if !OrderStatusPaid.Terminal() {
		t.Fatal("PAID must be terminal")
	}
}

func TestUserRoleAndCategoryValues(t *testing.T) {
	for _, r := range []UserRole{RoleOwner, RoleAdmin, RoleWaiter} {
		if !r.Valid() {
			t.Fatalf("expected role %s to be valid", r)
		}
	}
	if UserRole("COOK").Valid() {
		t.Fatal("unknown role must not be valid")
	}

	for _, c := range []MenuCategory{CategoryMain, CategorySnack, CategoryColdDrink, CategoryHotDrink} {
		if !c.Valid() {
			t.Fatalf("expected category %s to be valid", c)
		}
	}
	if MenuCategory("Dessert").Valid() {
		t.Fatal("unknown category must not be valid")
	}
}

func TestOrderCloneDetachesState(t *testing.T) {
	cooking := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	orig := Order{
		ID:        "o1",
		Status:    OrderStatusCooking,
		Items:     []OrderItem{{ID: "i1", MenuItem: MenuItem{ID: "m1", Price: 15000}, Quantity: 2}},
		CookingAt: &cooking,
	}

	clone := orig.Clone()
	clone.Items[0].Quantity = 9
	*clone.CookingAt = clone.CookingAt.Add(time.Hour)

	if orig.Items[0].Quantity != 2 {
		t.Fatalf("clone mutated original items: %d", orig.Items[0].Quantity)
	}
	if !orig.CookingAt.Equal(cooking) {
		t.Fatalf("clone mutated original timestamp: %v", orig.CookingAt)
	}
}

func TestSnapshotCloneDetachesState(t *testing.T) {
	snap := Snapshot{
		Orders:    []Order{{ID: "o1", Status: OrderStatusNew}},
		MenuItems: []MenuItem{{ID: "m1", Name: "Rendang Daging"}},
		Users:     []User{{ID: "u1", PIN: "1111"}},
	}

	clone := snap.Clone()
	clone.Orders[0].Status = OrderStatusPaid
	clone.MenuItems[0].Name = "changed"
	clone.Users[0].PIN = "0000"

	if snap.Orders[0].Status != OrderStatusNew {
		t.Fatal("snapshot clone shares orders")
	}
	if snap.MenuItems[0].Name != "Rendang Daging" {
		t.Fatal("snapshot clone shares menu items")
	}
	if snap.Users[0].PIN != "1111" {
		t.Fatal("snapshot clone shares users")
	}
}
