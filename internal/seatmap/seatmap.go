// Package seatmap generates the auditorium seat grid shown during booking.
// Every visit to the booking step gets a fresh map, so availability is
// sampled anew each time and never persisted.
package seatmap

import (
	"fmt"
	"math/rand"

	"github.com/cinetick/cinetick/internal/model"
)

// Grid dimensions and pricing rules.  Rows A-C sit closest to the screen
// and carry a premium on top of the movie's base price.
const (
	Rows        = 6
	SeatsPerRow = 10

	premiumRowMax     = 'C'
	PremiumCents      = 500
	DefaultBookedProb = 0.3
)

// Generator produces seat maps.  The random source is injected so tests can
// fix the layout; BookedProb can be overridden to force a fully free or
// fully booked map.
type Generator struct {
	rnd        *rand.Rand
	BookedProb float64
}

// New returns a generator drawing from the given source.
func New(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src), BookedProb: DefaultBookedProb}
}

// Generate returns exactly Rows*SeatsPerRow seats in row-major order.  Each
// seat's booked flag is drawn independently with probability BookedProb.
// Seat price is the base price plus the premium for rows A-C.
func (g *Generator) Generate(basePriceCents uint32) []model.Seat {
	seats := make([]model.Seat, 0, Rows*SeatsPerRow)
	for r := 0; r < Rows; r++ {
		row := string(rune('A' + r))
		price := basePriceCents
		if rune('A'+r) <= premiumRowMax {
			price += PremiumCents
		}
		for n := 1; n <= SeatsPerRow; n++ {
			seats = append(seats, model.Seat{
				Label:      fmt.Sprintf("%s%d", row, n),
				Row:        row,
				Number:     n,
				Booked:     g.rnd.Float64() < g.BookedProb,
				PriceCents: price,
			})
		}
	}
	return seats
}
