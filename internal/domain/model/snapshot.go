package model

// Snapshot is a point-in-time copy of everything a terminal caches locally.
type Snapshot struct {
	Orders    []Order
	MenuItems []MenuItem
	Users     []User
}

// Clone returns a deep copy safe to hand to observers.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Orders:    make([]Order, 0, len(s.Orders)),
		MenuItems: append([]MenuItem(nil), s.MenuItems...),
		Users:     append([]User(nil), s.Users...),
	}
	for _, o := range s.Orders {
		out.Orders = append(out.Orders, o.Clone())
	}
	return out
}
