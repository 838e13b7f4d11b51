// Package store holds the terminal's in-memory cache of orders, menu items,
// and staff accounts. It is the only state the UI layer reads. The store
// never talks to the network; the synchronization engine owns all mutation.
package store

import (
	"reflect"
	"sort"
	"sync"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

// Store is a goroutine-safe cache with an observer interface. Listeners are
// notified after every mutation that actually changed content.
type Store struct {
	mu     sync.RWMutex
	orders map[string]model.Order
	menu   map[string]model.MenuItem
	users  map[string]model.User

	listenerMu sync.Mutex
	listeners  map[int]func()
	nextID     int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		orders:    make(map[string]model.Order),
		menu:      make(map[string]model.MenuItem),
		users:     make(map[string]model.User),
		listeners: make(map[int]func()),
	}
}

// Subscribe registers a change listener and returns its unsubscribe func.
// Listeners are invoked outside the store lock and must not block for long.
func (s *Store) Subscribe(fn func()) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	s.listenerMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Snapshot returns a deep copy of the full cached state. Orders come newest
// first, menu items by name, users by id.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()
	return snap
}

func (s *Store) snapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		Orders:    make([]model.Order, 0, len(s.orders)),
		MenuItems: make([]model.MenuItem, 0, len(s.menu)),
		Users:     make([]model.User, 0, len(s.users)),
	}
	for _, o := range s.orders {
		snap.Orders = append(snap.Orders, o.Clone())
	}
	for _, m := range s.menu {
		snap.MenuItems = append(snap.MenuItems, m)
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	sortSnapshot(&snap)
	return snap
}

func sortSnapshot(snap *model.Snapshot) {
	sort.Slice(snap.Orders, func(i, j int) bool {
		a, b := snap.Orders[i], snap.Orders[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	sort.Slice(snap.MenuItems, func(i, j int) bool {
		a, b := snap.MenuItems[i], snap.MenuItems[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	sort.Slice(snap.Users, func(i, j int) bool {
		return snap.Users[i].ID < snap.Users[j].ID
	})
}

// Order fetches one order by id.
func (s *Store) Order(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return o.Clone(), true
}

// MenuItem fetches one menu entry by id.
func (s *Store) MenuItem(id string) (model.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menu[id]
	return m, ok
}

// UserByPIN finds the staff account matching a PIN. Matching happens
// locally so login keeps working offline.
func (s *Store) UserByPIN(pin string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.PIN == pin {
			return u, true
		}
	}
	return model.User{}, false
}

// ReplaceAll swaps in an authoritative snapshot, skipping both the swap and
// the notification when content is unchanged. Returns whether anything
// changed. This is the drift-correction path: a reconciliation fetch always
// wins over local state.
func (s *Store) ReplaceAll(snap model.Snapshot) bool {
	incoming := snap.Clone()
	sortSnapshot(&incoming)

	s.mu.Lock()
	current := s.snapshotLocked()
	if reflect.DeepEqual(current, incoming) {
		s.mu.Unlock()
		return false
	}

	s.orders = make(map[string]model.Order, len(incoming.Orders))
	for _, o := range incoming.Orders {
		s.orders[o.ID] = o
	}
	s.menu = make(map[string]model.MenuItem, len(incoming.MenuItems))
	for _, m := range incoming.MenuItems {
		s.menu[m.ID] = m
	}
	s.users = make(map[string]model.User, len(incoming.Users))
	for _, u := range incoming.Users {
		s.users[u.ID] = u
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// UpsertOrder inserts or replaces one order. Applying the same record twice
// is a no-op the second time.
func (s *Store) UpsertOrder(o model.Order) {
	s.mu.Lock()
	existing, ok := s.orders[o.ID]
	if ok && reflect.DeepEqual(existing, o) {
		s.mu.Unlock()
		return
	}
	s.orders[o.ID] = o.Clone()
	s.mu.Unlock()
	s.notify()
}

// RemoveOrder deletes one order, reporting whether it was present.
func (s *Store) RemoveOrder(id string) bool {
	s.mu.Lock()
	_, ok := s.orders[id]
	if ok {
		delete(s.orders, id)
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// UpsertMenuItem inserts or replaces one menu entry.
func (s *Store) UpsertMenuItem(m model.MenuItem) {
	s.mu.Lock()
	existing, ok := s.menu[m.ID]
	if ok && existing == m {
		s.mu.Unlock()
		return
	}
	s.menu[m.ID] = m
	s.mu.Unlock()
	s.notify()
}

// RemoveMenuItem deletes one menu entry, reporting whether it was present.
func (s *Store) RemoveMenuItem(id string) bool {
	s.mu.Lock()
	_, ok := s.menu[id]
	if ok {
		delete(s.menu, id)
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// UpsertUser inserts or replaces one staff account.
func (s *Store) UpsertUser(u model.User) {
	s.mu.Lock()
	existing, ok := s.users[u.ID]
	if ok && existing == u {
		s.mu.Unlock()
		return
	}
	s.users[u.ID] = u
	s.mu.Unlock()
	s.notify()
}

// RemoveUser deletes one staff account, reporting whether it was present.
func (s *Store) RemoveUser(id string) bool {
	s.mu.Lock()
	_, ok := s.users[id]
	if ok {
		delete(s.users, id)
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}
