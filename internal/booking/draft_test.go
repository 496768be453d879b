package booking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/seatmap"
)

func testMovie() model.Movie {
	return model.Movie{
		ID:             "1",
		Title:          "Avatar: The Way of Water",
		BasePriceCents: 1599,
		Showtimes:      []string{"2:00 PM", "6:00 PM"},
	}
}

// freeSeats returns a seat map with no pre-booked seats.
func freeSeats(base uint32) []model.Seat {
	g := seatmap.New(rand.NewSource(1))
	g.BookedProb = 0
	return g.Generate(base)
}

func TestToggleSelectAndDeselect(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 2, "", freeSeats(1599))

	require.NoError(t, d.Toggle("A1"))
	require.NoError(t, d.Toggle("D4"))
	assert.Equal(t, []string{"A1", "D4"}, d.SelectedLabels())

	// toggling a selected seat deselects it
	require.NoError(t, d.Toggle("A1"))
	assert.Equal(t, []string{"D4"}, d.SelectedLabels())
}

func TestToggleRespectsTicketQuantity(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 1, "", freeSeats(1599))

	require.NoError(t, d.Toggle("A1"))
	err := d.Toggle("A2")
	assert.ErrorIs(t, err, ErrSeatLimit)
	assert.Equal(t, []string{"A1"}, d.SelectedLabels())
}

func TestToggleNeverSelectsBookedSeat(t *testing.T) {
	g := seatmap.New(rand.NewSource(1))
	g.BookedProb = 1 // everything pre-booked
	r := NewRegistry()
	d := r.Create(1, testMovie(), 3, "", g.Generate(1599))

	assert.ErrorIs(t, d.Toggle("A1"), ErrSeatBooked)
	assert.ErrorIs(t, d.Toggle("F10"), ErrSeatBooked)
	assert.Empty(t, d.SelectedLabels())
	assert.Zero(t, d.TotalCents())
}

func TestToggleUnknownSeat(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 1, "", freeSeats(1599))
	assert.ErrorIs(t, d.Toggle("Z99"), ErrSeatUnknown)
}

func TestTotalIsSumOfSelectedSeatPrices(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 3, "", freeSeats(1599))

	// row A carries the premium: 15.99 + 5.00 = 20.99
	require.NoError(t, d.Toggle("A1"))
	assert.Equal(t, uint32(2099), d.TotalCents())

	require.NoError(t, d.Toggle("D1"))
	assert.Equal(t, uint32(2099+1599), d.TotalCents())

	_, selected, total := d.Snapshot()
	var sum uint32
	for _, s := range selected {
		sum += s.PriceCents
	}
	assert.Equal(t, sum, total)
}

func TestSelectionNeverExceedsQuantityUnderArbitraryClicks(t *testing.T) {
	const tickets = 3
	r := NewRegistry()
	d := r.Create(1, testMovie(), tickets, "", freeSeats(1599))

	rnd := rand.New(rand.NewSource(99))
	rows := []string{"A", "B", "C", "D", "E", "F"}
	for i := 0; i < 500; i++ {
		label := rows[rnd.Intn(len(rows))] + string(rune('0'+1+rnd.Intn(9)))
		_ = d.Toggle(label)
		assert.LessOrEqual(t, len(d.SelectedLabels()), tickets)
	}
}

func TestSetShowtime(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 1, "", freeSeats(1599))

	assert.ErrorIs(t, d.SetShowtime("4:44 PM"), ErrShowtimeUnknown)
	require.NoError(t, d.SetShowtime("2:00 PM"))
	assert.Equal(t, "2:00 PM", d.Showtime)
}

func TestReadyForCheckout(t *testing.T) {
	r := NewRegistry()
	d := r.Create(1, testMovie(), 1, "", freeSeats(1599))

	assert.ErrorIs(t, d.ReadyForCheckout(), ErrIncomplete)
	require.NoError(t, d.SetShowtime("2:00 PM"))
	assert.ErrorIs(t, d.ReadyForCheckout(), ErrIncomplete)
	require.NoError(t, d.Toggle("B2"))
	assert.NoError(t, d.ReadyForCheckout())
}

func TestRegistryOwnership(t *testing.T) {
	r := NewRegistry()
	d := r.Create(7, testMovie(), 1, "", freeSeats(1599))

	got, err := r.Get(d.ID, 7)
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = r.Get(d.ID, 8)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = r.Get("nope", 7)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	r.Discard(d.ID)
	_, err = r.Get(d.ID, 7)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
