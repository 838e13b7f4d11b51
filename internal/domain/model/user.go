package model

// UserRole selects which terminal view a staff member gets.
type UserRole string

const (
	RoleOwner  UserRole = "OWNER"
	RoleAdmin  UserRole = "ADMIN"
	RoleWaiter UserRole = "WAITER"
)

// Valid reports whether the role belongs to the fixed set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleWaiter:
		return true
	}
	return false
}

// User is a staff account. The PIN is a short numeric credential matched
// locally on each terminal; it is not a security boundary.
type User struct {
	ID   string
	Name string
	Role UserRole
	PIN  string
}
