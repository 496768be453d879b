package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/booking"
	"github.com/cinetick/cinetick/internal/catalog"
	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/cinetick/cinetick/internal/queue"
	"github.com/cinetick/cinetick/internal/seatmap"
	queue_publisher "github.com/cinetick/cinetick/internal/service"
)

// maxTickets caps how many seats a single draft may select.
const maxTickets = 10

// BookingHandler drives the booking flow: draft creation, seat selection,
// checkout and history.  Drafts live in memory only; bookings are written
// through the store, which falls back to a local record when the durable
// write fails.
type BookingHandler struct {
	Catalog  *catalog.Catalog
	Drafts   *booking.Registry
	Payments *payment.Processor
	Store    *booking.Store

	// seat generation shares one rand source, so calls are serialized
	genMu sync.Mutex
	Seats *seatmap.Generator
}

func NewBookingHandler(cat *catalog.Catalog, reg *booking.Registry, gen *seatmap.Generator, proc *payment.Processor, store *booking.Store) *BookingHandler {
	return &BookingHandler{Catalog: cat, Drafts: reg, Seats: gen, Payments: proc, Store: store}
}

// ----- DTOs -----

type createDraftReq struct {
	MovieID  string `json:"movie_id"`
	Tickets  int    `json:"tickets"`
	Showtime string `json:"showtime"`
}
type showtimeReq struct {
	Showtime string `json:"showtime"`
}
type toggleSeatReq struct {
	Seat string `json:"seat"`
}
type checkoutReq struct {
	Method string `json:"method"`
	payment.Card
}

type draftResp struct {
	ID         string       `json:"id"`
	Movie      model.Movie  `json:"movie"`
	Showtime   string       `json:"showtime"`
	Tickets    int          `json:"tickets"`
	Seats      []model.Seat `json:"seats"`
	Selected   []string     `json:"selected"`
	TotalCents uint32       `json:"total_cents"`
}

func newDraftResp(d *booking.Draft) draftResp {
	seats, selected, total := d.Snapshot()
	labels := make([]string, 0, len(selected))
	for _, s := range selected {
		labels = append(labels, s.Label)
	}
	return draftResp{
		ID:         d.ID,
		Movie:      d.Movie,
		Showtime:   d.Showtime,
		Tickets:    d.Tickets,
		Seats:      seats,
		Selected:   labels,
		TotalCents: total,
	}
}

// CreateDraft handles POST /v1/drafts.  A draft pins the chosen movie and
// ticket quantity and receives a freshly generated seat map; availability
// is sampled anew for every draft.
func (h *BookingHandler) CreateDraft(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createDraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	movie, ok := h.Catalog.ByID(req.MovieID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if req.Tickets == 0 {
		req.Tickets = 1
	}
	if req.Tickets < 1 || req.Tickets > maxTickets {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets must be between 1 and 10"})
	}
	if req.Showtime != "" && !movie.HasShowtime(req.Showtime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown showtime"})
	}

	h.genMu.Lock()
	seats := h.Seats.Generate(movie.BasePriceCents)
	h.genMu.Unlock()

	d := h.Drafts.Create(userID, movie, req.Tickets, req.Showtime, seats)
	return c.JSON(http.StatusCreated, newDraftResp(d))
}

// GetDraft handles GET /v1/drafts/:id.
func (h *BookingHandler) GetDraft(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, newDraftResp(d))
}

// SetShowtime handles PUT /v1/drafts/:id/showtime.
func (h *BookingHandler) SetShowtime(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return h.draftError(c, err)
	}
	var req showtimeReq
	if err := c.Bind(&req); err != nil || req.Showtime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime required"})
	}
	if err := d.SetShowtime(req.Showtime); err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, newDraftResp(d))
}

// ToggleSeat handles POST /v1/drafts/:id/seats.  Selecting an already
// selected seat deselects it; booked seats and selections past the ticket
// quantity are rejected.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	d, err := h.draft(c)
	if err != nil {
		return h.draftError(c, err)
	}
	var req toggleSeatReq
	if err := c.Bind(&req); err != nil || req.Seat == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat required"})
	}
	if err := d.Toggle(req.Seat); err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, newDraftResp(d))
}

// Checkout handles POST /v1/drafts/:id/checkout.  It charges the payment,
// persists the booking (falling back to a local record when the durable
// write fails), publishes a confirmation event and discards the draft.
func (h *BookingHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	d, err := h.Drafts.Get(c.Param("id"), userID)
	if err != nil {
		return h.draftError(c, err)
	}
	if err := d.ReadyForCheckout(); err != nil {
		return h.draftError(c, err)
	}

	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Method == "" {
		req.Method = payment.MethodCard
	}

	_, selected, total := d.Snapshot()
	labels := make([]string, 0, len(selected))
	for _, s := range selected {
		labels = append(labels, s.Label)
	}

	rcpt, err := h.Payments.Charge(req.Method, req.Card, total)
	if err != nil {
		var verr *payment.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": verr.Message,
				"field": verr.Field,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	today := time.Now().UTC().Format("2006-01-02")
	rec := model.BookingRecord{
		Movie:       d.Movie.Title,
		Date:        today,
		Showtime:    d.Showtime,
		Seats:       labels,
		AmountCents: total,
		Status:      model.BookingStatusConfirmed,
		BookingDate: today,
	}
	stored, outcome := h.Store.Add(c.Request().Context(), userID, rec)

	// fire-and-forget: a dead broker never fails a checkout
	event := queue.BookingConfirmedEvent{
		Reference:     stored.Reference,
		UserID:        userID,
		MovieTitle:    stored.Movie,
		ShowDate:      stored.Date,
		Showtime:      stored.Showtime,
		Seats:         stored.Seats,
		AmountCents:   stored.AmountCents,
		Storage:       outcome.String(),
		TransactionID: rcpt.TransactionID,
		ConfirmedAt:   rcpt.ProcessedAt.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(ctx, event)
	}()

	h.Drafts.Discard(d.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": stored,
		"storage": outcome.String(),
		"receipt": rcpt,
	})
}

// History handles GET /v1/bookings, newest booking date first.
func (h *BookingHandler) History(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	records := h.Store.History(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, echo.Map{"items": records})
}

func (h *BookingHandler) draft(c echo.Context) (*booking.Draft, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, errUnauthorized
	}
	return h.Drafts.Get(c.Param("id"), userID)
}

var errUnauthorized = errors.New("unauthorized")

// draftError maps draft flow errors to HTTP responses.
func (h *BookingHandler) draftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, booking.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrSeatUnknown):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown seat"})
	case errors.Is(err, booking.ErrSeatBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
	case errors.Is(err, booking.ErrSeatLimit):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat selection exceeds ticket quantity"})
	case errors.Is(err, booking.ErrShowtimeUnknown):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown showtime"})
	case errors.Is(err, booking.ErrIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime and at least one seat are required"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
