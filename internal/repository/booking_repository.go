package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cinetick/cinetick/internal/model"
)

// BookingRepo is the durable side of the booking store.  A booking row
// plus its booking_seats rows are written atomically; the repo assigns the
// booking reference on insert.  It satisfies the booking.Remote interface.
type BookingRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db, now: time.Now}
}

// Insert writes the booking and its seats in one transaction and fills in
// the store-assigned reference on success.  On any error the transaction
// is rolled back and the record is left without a reference.
func (r *BookingRepo) Insert(ctx context.Context, userID uint64, rec *model.BookingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reference := fmt.Sprintf("TXN%d", r.now().UnixMilli())
	const ins = `INSERT INTO bookings
		(user_id, reference, movie_title, show_date, showtime, amount_cents, status, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		userID, reference, rec.Movie, rec.Date, rec.Showtime, rec.AmountCents, rec.Status, rec.BookingDate)
	if err != nil {
		return err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if len(rec.Seats) > 0 {
		query := `INSERT INTO booking_seats (booking_id, seat_label) VALUES `
		args := make([]interface{}, 0, len(rec.Seats)*2)
		for i, label := range rec.Seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, bookingID, label)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	rec.Reference = reference
	return nil
}

// ListByUser returns all of a user's bookings ordered by booking date
// descending, each with its seat labels in insertion order.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingRecord, error) {
	const q = `SELECT id, reference, movie_title,
			DATE_FORMAT(show_date, '%Y-%m-%d'),
			showtime, amount_cents, status,
			DATE_FORMAT(booking_date, '%Y-%m-%d')
		FROM bookings
		WHERE user_id = ?
		ORDER BY booking_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingRecord{}
	ids := []uint64{}
	byID := map[uint64]int{}
	for rows.Next() {
		var (
			id  uint64
			rec model.BookingRecord
		)
		if err := rows.Scan(&id, &rec.Reference, &rec.Movie, &rec.Date,
			&rec.Showtime, &rec.AmountCents, &rec.Status, &rec.BookingDate); err != nil {
			return nil, err
		}
		byID[id] = len(out)
		ids = append(ids, id)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	query := `SELECT booking_id, seat_label FROM booking_seats WHERE booking_id IN (`
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY id ASC`

	seatRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var (
			bookingID uint64
			label     string
		)
		if err := seatRows.Scan(&bookingID, &label); err != nil {
			return nil, err
		}
		if idx, ok := byID[bookingID]; ok {
			out[idx].Seats = append(out[idx].Seats, label)
		}
	}
	return out, seatRows.Err()
}
