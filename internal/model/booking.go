package model

// Booking status values.  A booking is created CONFIRMED; COMPLETED and
// CANCELLED are reached by out-of-band flows and kept for history display.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

// BookingRecord is a finalized booking as it appears in history.  It is
// created exactly once, at payment confirmation, and never deleted.  The
// reference is either assigned by the durable store or synthesized locally
// ("TXN" + timestamp) when the store write falls back.
//
// Fields:
//  Reference   – booking identifier shown to the user.
//  Movie       – movie title at time of booking.
//  Date        – show date, YYYY-MM-DD.
//  Showtime    – showtime label (e.g. "7:00 PM").
//  Seats       – seat labels in selection order.
//  AmountCents – total paid, in cents.
//  Status      – CONFIRMED, COMPLETED or CANCELLED.
//  BookingDate – date the booking was created, YYYY-MM-DD.
type BookingRecord struct {
	Reference   string   `json:"id"`
	Movie       string   `json:"movie"`
	Date        string   `json:"date"`
	Showtime    string   `json:"showtime"`
	Seats       []string `json:"seats"`
	AmountCents uint32   `json:"amount_cents"`
	Status      string   `json:"status"`
	BookingDate string   `json:"booking_date"`
}

// Amount returns the total paid in dollars for display.
func (b BookingRecord) Amount() float64 { return float64(b.AmountCents) / 100.0 }
