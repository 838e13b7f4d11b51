package model

// MenuCategory groups menu entries on the order-taking terminal.
type MenuCategory string

const (
	CategoryMain      MenuCategory = "Menu Utama"
	CategorySnack     MenuCategory = "Camilan"
	CategoryColdDrink MenuCategory = "Minuman Dingin"
	CategoryHotDrink  MenuCategory = "Minuman Panas"
)

// Valid reports whether the category belongs to the fixed set.
func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryMain, CategorySnack, CategoryColdDrink, CategoryHotDrink:
		return true
	}
	return false
}

// MenuItem is a sellable dish or drink. Price is in the smallest currency
// unit. IsSoldOut is toggled by the kitchen independently of any order.
type MenuItem struct {
	ID        string
	Name      string
	Price     int64
	Category  MenuCategory
	Image     string
	IsSoldOut bool
}
