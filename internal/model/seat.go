package model

// Seat is a single seat in a generated auditorium map.  Seats are labelled
// by row letter plus seat number ("A1".."F10").  Booked seats are drawn at
// generation time and are not persisted; the same seat can come up free on
// the next visit.
type Seat struct {
	Label      string `json:"id"`
	Row        string `json:"row"`
	Number     int    `json:"number"`
	Booked     bool   `json:"is_booked"`
	PriceCents uint32 `json:"price_cents"`
}

// Price returns the seat price in dollars for display.
func (s Seat) Price() float64 { return float64(s.PriceCents) / 100.0 }
