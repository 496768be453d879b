// Package booking holds the in-progress draft state and the persisted
// booking store.  Sentinel errors defined here let the handler layer map
// each failure to a specific HTTP response and user-facing message.
package booking

import "errors"

// ErrDraftNotFound is returned when no draft exists for the given id, for
// example after a checkout discarded it.  Handlers translate this into a
// "no data found" 404 response.
var ErrDraftNotFound = errors.New("draft not found")

// ErrForbidden is returned when a user touches a draft owned by someone
// else.  Handlers translate this into a 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrSeatUnknown is returned when a toggled seat label does not exist in
// the draft's seat map.
var ErrSeatUnknown = errors.New("seat not in map")

// ErrSeatBooked is returned when the toggled seat was pre-booked at map
// generation time.  The selection is left unchanged.
var ErrSeatBooked = errors.New("seat already booked")

// ErrSeatLimit is returned when selecting a seat would exceed the
// requested ticket quantity.
var ErrSeatLimit = errors.New("seat limit reached")

// ErrShowtimeUnknown is returned when the chosen showtime is not offered
// by the draft's movie.
var ErrShowtimeUnknown = errors.New("showtime not offered")

// ErrIncomplete is returned by checkout when the draft has no showtime or
// no selected seats yet.
var ErrIncomplete = errors.New("showtime and seats required")
