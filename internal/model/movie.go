package model

// Movie describes a bookable title in the static catalog.  The catalog is
// defined at load time and never mutated; a real deployment would source it
// from a catalog service instead.  Prices are stored in cents to avoid
// floating point drift when summing seats.
//
// Fields:
//  ID             – catalog identifier.
//  Title          – display title.
//  Genre          – slash-separated genre label (e.g. "Sci-Fi/Adventure").
//  Duration       – human-readable running time (e.g. "3h 12m").
//  Rating         – average rating out of 5.
//  BasePriceCents – price of a standard seat in cents.
//  Language       – spoken language of the screening.
//  Showtimes      – bookable showtime labels in display order.
//  Description    – short synopsis.
type Movie struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Genre          string   `json:"genre"`
	Duration       string   `json:"duration"`
	Rating         float64  `json:"rating"`
	BasePriceCents uint32   `json:"base_price_cents"`
	Language       string   `json:"language"`
	Showtimes      []string `json:"showtimes"`
	Description    string   `json:"description"`
}

// BasePrice returns the base seat price in dollars for display.
func (m Movie) BasePrice() float64 { return float64(m.BasePriceCents) / 100.0 }

// HasShowtime reports whether the given showtime label is offered.
func (m Movie) HasShowtime(showtime string) bool {
	for _, s := range m.Showtimes {
		if s == showtime {
			return true
		}
	}
	return false
}
