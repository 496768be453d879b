package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cinetick/cinetick/internal/model"
)

// Draft is an in-progress, unpersisted booking selection.  It is created
// when a user opens the booking step, carried through payment, and
// discarded after a successful checkout (or simply abandoned).  Each draft
// is owned by exactly one user and holds its own freshly generated seat
// map.
type Draft struct {
	ID        string
	UserID    uint64
	Movie     model.Movie
	Showtime  string
	Tickets   int
	CreatedAt time.Time

	mu       sync.Mutex
	seats    []model.Seat
	selected []string // seat labels in selection order
}

func newDraft(userID uint64, movie model.Movie, tickets int, showtime string, seats []model.Seat) *Draft {
	return &Draft{
		ID:        uuid.NewString(),
		UserID:    userID,
		Movie:     movie,
		Showtime:  showtime,
		Tickets:   tickets,
		CreatedAt: time.Now().UTC(),
		seats:     seats,
	}
}

// SetShowtime records the chosen showtime.  The label must be one the
// movie actually offers.
func (d *Draft) SetShowtime(showtime string) error {
	if !d.Movie.HasShowtime(showtime) {
		return ErrShowtimeUnknown
	}
	d.mu.Lock()
	d.Showtime = showtime
	d.mu.Unlock()
	return nil
}

// Toggle flips the selection state of the seat with the given label.
// Pre-booked seats are rejected and never enter the selection; selecting
// past the ticket quantity is rejected with ErrSeatLimit.
func (d *Draft) Toggle(label string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	seat, ok := d.seat(label)
	if !ok {
		return ErrSeatUnknown
	}
	if seat.Booked {
		return ErrSeatBooked
	}
	for i, sel := range d.selected {
		if sel == label {
			d.selected = append(d.selected[:i], d.selected[i+1:]...)
			return nil
		}
	}
	if len(d.selected) >= d.Tickets {
		return ErrSeatLimit
	}
	d.selected = append(d.selected, label)
	return nil
}

// Snapshot returns the seat map, the selected seats in selection order and
// the running total.  The total is always the sum of the selected seats'
// individual prices.
func (d *Draft) Snapshot() (seats []model.Seat, selected []model.Seat, totalCents uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seats = make([]model.Seat, len(d.seats))
	copy(seats, d.seats)
	for _, label := range d.selected {
		if s, ok := d.seat(label); ok {
			selected = append(selected, s)
			totalCents += s.PriceCents
		}
	}
	return seats, selected, totalCents
}

// SelectedLabels returns the selected seat labels in selection order.
func (d *Draft) SelectedLabels() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.selected))
	copy(out, d.selected)
	return out
}

// TotalCents returns the sum of the selected seats' prices.
func (d *Draft) TotalCents() uint32 {
	_, _, total := d.Snapshot()
	return total
}

// ReadyForCheckout reports whether the draft can proceed to payment: a
// showtime must be chosen and at least one seat selected.
func (d *Draft) ReadyForCheckout() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Showtime == "" || len(d.selected) == 0 {
		return ErrIncomplete
	}
	return nil
}

// seat looks up a seat by label.  Caller holds d.mu.
func (d *Draft) seat(label string) (model.Seat, bool) {
	for _, s := range d.seats {
		if s.Label == label {
			return s, true
		}
	}
	return model.Seat{}, false
}

// Registry owns all live drafts.  Drafts live in memory only: reloading
// mid-flow (or restarting the server) loses unsaved draft state, which
// matches the intended lifecycle.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewRegistry returns an empty draft registry.
func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Create builds a draft for the user with a fresh seat map and registers it.
func (r *Registry) Create(userID uint64, movie model.Movie, tickets int, showtime string, seats []model.Seat) *Draft {
	d := newDraft(userID, movie, tickets, showtime, seats)
	r.mu.Lock()
	r.drafts[d.ID] = d
	r.mu.Unlock()
	return d
}

// Get returns the draft with the given id.  ErrDraftNotFound is returned
// for unknown ids, ErrForbidden when the draft belongs to another user.
func (r *Registry) Get(id string, userID uint64) (*Draft, error) {
	r.mu.Lock()
	d, ok := r.drafts[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrDraftNotFound
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

// Discard removes a draft, typically after a successful checkout.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
}
