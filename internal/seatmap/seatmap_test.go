package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGridShape(t *testing.T) {
	g := New(rand.NewSource(1))
	seats := g.Generate(1599)

	require.Len(t, seats, Rows*SeatsPerRow)

	perRow := map[string]int{}
	for _, s := range seats {
		perRow[s.Row]++
	}
	require.Len(t, perRow, Rows)
	for _, row := range []string{"A", "B", "C", "D", "E", "F"} {
		assert.Equal(t, SeatsPerRow, perRow[row])
	}

	// row-major labels: first seat A1, last seat F10
	assert.Equal(t, "A1", seats[0].Label)
	assert.Equal(t, "F10", seats[len(seats)-1].Label)
}

func TestGeneratePremiumRows(t *testing.T) {
	g := New(rand.NewSource(1))
	for _, s := range g.Generate(1599) {
		switch s.Row {
		case "A", "B", "C":
			assert.Equal(t, uint32(2099), s.PriceCents, "seat %s", s.Label)
		default:
			assert.Equal(t, uint32(1599), s.PriceCents, "seat %s", s.Label)
		}
	}
}

func TestGenerateDeterministicUnderFixedSeed(t *testing.T) {
	a := New(rand.NewSource(42)).Generate(1499)
	b := New(rand.NewSource(42)).Generate(1499)
	assert.Equal(t, a, b)
}

func TestGenerateBookedProbability(t *testing.T) {
	g := New(rand.NewSource(7))
	g.BookedProb = 0
	for _, s := range g.Generate(1299) {
		assert.False(t, s.Booked)
	}

	g.BookedProb = 1
	for _, s := range g.Generate(1299) {
		assert.True(t, s.Booked)
	}

	// at the default probability a 60-seat map almost surely has both kinds
	g.BookedProb = DefaultBookedProb
	seats := g.Generate(1299)
	booked := 0
	for _, s := range seats {
		if s.Booked {
			booked++
		}
	}
	assert.Greater(t, booked, 0)
	assert.Less(t, booked, len(seats))
}
