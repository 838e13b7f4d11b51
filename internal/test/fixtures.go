package test

import (
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

// BaseTime is a fixed reference instant fixtures hang off.
var BaseTime = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

// SampleMenuItem builds a menu item with sensible defaults.
func SampleMenuItem(id string) model.MenuItem {
	return model.MenuItem{
		ID:       id,
		Name:     "Nasi Goreng " + id,
		Price:    25000,
		Category: model.CategoryMain,
	}
}

// SampleOrder builds a fresh dine-in order with one line item.
func SampleOrder(id string, createdAt time.Time) *model.Order {
	item := SampleMenuItem("m-" + id)
	return &model.Order{
		ID:          id,
		TableNumber: "A1",
		Items: []model.OrderItem{
			{ID: "oi-" + id, MenuItem: item, Quantity: 2},
		},
		Status:     model.OrderStatusNew,
		TotalPrice: item.Price * 2,
		CreatedAt:  createdAt,
		WaiterID:   "u-waiter",
	}
}

// SampleUser builds a user with the given role.
func SampleUser(id string, role model.UserRole, pin string) model.User {
	return model.User{ID: id, Name: "User " + id, Role: role, PIN: pin}
}
