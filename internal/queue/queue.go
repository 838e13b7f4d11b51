// Package queue derives the kitchen's operational view from the order set:
// terminal orders filtered out, strict FIFO within priority groups, urgency
// flags, and pagination. Everything here is a pure function of its inputs
// and cheap enough to re-run on every display tick.
package queue

import (
	"sort"
	"time"

	"github.com/polkiloo/warungpos/internal/domain/model"
)

// UrgentAfter is how long a NEW_ORDER may wait before it is flagged for
// visual escalation.
const UrgentAfter = 3 * time.Minute

// DefaultPageSize matches the kitchen display's default grid.
const DefaultPageSize = 12

// PageSizes is the fixed set of page sizes the operator may choose from.
var PageSizes = []int{8, 12, 16, 24}

// Entry is one order in the queue with its derived urgency flag. The flag
// is re-evaluated on every build, never stored.
type Entry struct {
	Order  model.Order
	Urgent bool
}

// Page is one page of the sorted, filtered queue.
type Page struct {
	Entries    []Entry
	Number     int
	Size       int
	TotalPages int
	TotalItems int
}

// Tally counts active orders per lifecycle state.
type Tally struct {
	New     int
	Cooking int
	Served  int
}

// Active filters out PAID orders and sorts the rest: every NEW_ORDER ahead
// of every other state regardless of age, oldest first within each group.
func Active(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.Terminal() {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aNew := a.Status == model.OrderStatusNew
		bNew := b.Status == model.OrderStatusNew
		if aNew != bNew {
			return aNew
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

// Urgent reports whether a NEW_ORDER has waited at least UrgentAfter.
func Urgent(o model.Order, now time.Time) bool {
	return o.Status == model.OrderStatusNew && now.Sub(o.CreatedAt) >= UrgentAfter
}

// Build produces one page of the kitchen queue. The page number is clamped
// to the valid range, so navigating past the end lands on the last page.
func Build(orders []model.Order, now time.Time, page, size int) Page {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}

	active := Active(orders)
	total := len(active)
	totalPages := (total + size - 1) / size

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	entries := make([]Entry, 0, end-start)
	for _, o := range active[start:end] {
		entries = append(entries, Entry{Order: o, Urgent: Urgent(o, now)})
	}

	return Page{
		Entries:    entries,
		Number:     page,
		Size:       size,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// CountByStatus tallies active orders for the display header.
func CountByStatus(orders []model.Order) Tally {
	var t Tally
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusNew:
			t.New++
		case model.OrderStatusCooking:
			t.Cooking++
		case model.OrderStatusServed:
			t.Served++
		}
	}
	return t
}

// ValidPageSize reports whether the size belongs to the allowed set.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Paginator tracks the operator's page position between rebuilds.
type Paginator struct {
	page int
	size int
}

// NewPaginator starts on page 1 with the default size.
func NewPaginator() *Paginator {
	return &Paginator{page: 1, size: DefaultPageSize}
}

// Page returns the requested page number.
func (p *Paginator) Page() int { return p.page }

// Size returns the current page size.
func (p *Paginator) Size() int { return p.size }

// SetSize switches to another allowed size and resets to page 1. Sizes
// outside the enumerated set are rejected.
func (p *Paginator) SetSize(size int) bool {
	if !ValidPageSize(size) {
		return false
	}
	p.size = size
	p.page = 1
	return true
}

// Next advances one page; Build clamps to the last page if it overshoots.
func (p *Paginator) Next() { p.page++ }

// Prev goes back one page, never below 1.
func (p *Paginator) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Sync pulls the paginator back into the range the last built page allowed.
func (p *Paginator) Sync(built Page) {
	p.page = built.Number
}
