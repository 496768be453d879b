// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a checkout produces a booking.
// It carries enough for downstream consumers to log or notify without
// querying the primary store, including whether the record actually
// reached durable storage or was only accepted locally.
type BookingConfirmedEvent struct {
	Reference     string   `json:"reference"`
	UserID        uint64   `json:"user_id"`
	MovieTitle    string   `json:"movie_title"`
	ShowDate      string   `json:"show_date"`
	Showtime      string   `json:"showtime"`
	Seats         []string `json:"seats"`
	AmountCents   uint32   `json:"amount_cents"`
	Storage       string   `json:"storage"` // "durable" or "local"
	TransactionID string   `json:"transaction_id"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
