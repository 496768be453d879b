package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/booking"
	"github.com/cinetick/cinetick/internal/catalog"
	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/cinetick/cinetick/internal/seatmap"
)

var txnPattern = regexp.MustCompile(`^TXN\d+$`)

// stubRemote satisfies booking.Remote without a database.
type stubRemote struct {
	insertErr error
	records   []model.BookingRecord
}

func (s *stubRemote) Insert(_ context.Context, _ uint64, rec *model.BookingRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	rec.Reference = fmt.Sprintf("TXN%d", 1700000000000+int64(len(s.records)))
	s.records = append(s.records, *rec)
	return nil
}

func (s *stubRemote) ListByUser(context.Context, uint64) ([]model.BookingRecord, error) {
	return []model.BookingRecord{}, nil
}

// asUser stands in for the JWT middleware in tests.
func asUser(id uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", id)
			return next(c)
		}
	}
}

// newBookingAPI wires a BookingHandler with a free seat map, an instant
// payment processor and the given remote, and mounts it the way the router
// does.  Requests run as user 1 unless the path says otherwise.
func newBookingAPI(remote booking.Remote) *echo.Echo {
	gen := seatmap.New(rand.NewSource(1))
	gen.BookedProb = 0 // every seat selectable

	h := NewBookingHandler(
		catalog.New(),
		booking.NewRegistry(),
		gen,
		payment.NewProcessor(0),
		booking.NewStore(remote),
	)

	e := echo.New()
	for _, uid := range []uint64{1, 2} {
		g := e.Group(fmt.Sprintf("/u%d/v1", uid), asUser(uid))
		g.POST("/drafts", h.CreateDraft)
		g.GET("/drafts/:id", h.GetDraft)
		g.PUT("/drafts/:id/showtime", h.SetShowtime)
		g.POST("/drafts/:id/seats", h.ToggleSeat)
		g.POST("/drafts/:id/checkout", h.Checkout)
		g.GET("/bookings", h.History)
	}
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func validCard() map[string]interface{} {
	return map[string]interface{}{
		"method":          "card",
		"card_number":     "1234 5678 9012 3456",
		"expiry":          "12/25",
		"cvv":             "123",
		"cardholder_name": "Jane Doe",
	}
}

func createDraft(t *testing.T, e *echo.Echo, body map[string]interface{}) draftResp {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var d draftResp
	decode(t, rec, &d)
	return d
}

func TestBookingFlowCheckout(t *testing.T) {
	remote := &stubRemote{}
	e := newBookingAPI(remote)

	d := createDraft(t, e, map[string]interface{}{"movie_id": "1", "tickets": 2})
	assert.Len(t, d.Seats, 60)
	assert.Empty(t, d.Selected)

	rec := doJSON(t, e, http.MethodPut, "/u1/v1/drafts/"+d.ID+"/showtime",
		map[string]interface{}{"showtime": "6:00 PM"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A1 is a premium seat on Avatar: 1599 base + 500 premium
	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "A1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &d)
	assert.Equal(t, []string{"A1"}, d.Selected)
	assert.Equal(t, uint32(2099), d.TotalCents)

	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/checkout", validCard())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Booking model.BookingRecord `json:"booking"`
		Storage string              `json:"storage"`
		Receipt payment.Receipt     `json:"receipt"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "durable", resp.Storage)
	assert.Equal(t, "Avatar: The Way of Water", resp.Booking.Movie)
	assert.Equal(t, []string{"A1"}, resp.Booking.Seats)
	assert.Equal(t, uint32(2099), resp.Booking.AmountCents)
	assert.Equal(t, model.BookingStatusConfirmed, resp.Booking.Status)
	assert.Regexp(t, txnPattern, resp.Booking.Reference)
	assert.Regexp(t, txnPattern, resp.Receipt.TransactionID)
	assert.Equal(t, "3456", resp.Receipt.CardLast4)

	// draft is gone after checkout
	rec = doJSON(t, e, http.MethodGet, "/u1/v1/drafts/"+d.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// booking shows up in history
	rec = doJSON(t, e, http.MethodGet, "/u1/v1/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		Items []model.BookingRecord `json:"items"`
	}
	decode(t, rec, &hist)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, resp.Booking.Reference, hist.Items[0].Reference)
}

func TestToggleSeatRespectsTicketQuantity(t *testing.T) {
	e := newBookingAPI(&stubRemote{})
	d := createDraft(t, e, map[string]interface{}{"movie_id": "1", "tickets": 1})

	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "B1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "B2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// deselect then reselect works
	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "B1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "B2"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutRequiresShowtimeAndSeats(t *testing.T) {
	e := newBookingAPI(&stubRemote{})
	d := createDraft(t, e, map[string]interface{}{"movie_id": "2"})

	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/checkout", validCard())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/u1/v1/drafts/"+d.ID+"/showtime",
		map[string]interface{}{"showtime": "7:00 PM"})
	require.Equal(t, http.StatusOK, rec.Code)

	// showtime alone is not enough
	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/checkout", validCard())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRejectsInvalidCard(t *testing.T) {
	e := newBookingAPI(&stubRemote{})
	d := createDraft(t, e, map[string]interface{}{"movie_id": "1", "showtime": "2:00 PM"})

	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "D4"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := validCard()
	body["card_number"] = "1234"
	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/checkout", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "card_number", resp.Field)
	assert.Equal(t, "Please enter a valid 16-digit card number", resp.Error)
}

func TestCheckoutFallsBackWhenDurableWriteFails(t *testing.T) {
	remote := &stubRemote{insertErr: errors.New("store down")}
	e := newBookingAPI(remote)

	d := createDraft(t, e, map[string]interface{}{"movie_id": "4", "showtime": "10:30 AM"})
	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/seats",
		map[string]interface{}{"seat": "F10"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts/"+d.ID+"/checkout", validCard())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Booking model.BookingRecord `json:"booking"`
		Storage string              `json:"storage"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "local", resp.Storage)
	assert.Regexp(t, txnPattern, resp.Booking.Reference)
	assert.Empty(t, remote.records)

	// the local record still appears in history
	rec = doJSON(t, e, http.MethodGet, "/u1/v1/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		Items []model.BookingRecord `json:"items"`
	}
	decode(t, rec, &hist)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, resp.Booking.Reference, hist.Items[0].Reference)
}

func TestDraftOwnership(t *testing.T) {
	e := newBookingAPI(&stubRemote{})
	d := createDraft(t, e, map[string]interface{}{"movie_id": "1"})

	rec := doJSON(t, e, http.MethodGet, "/u2/v1/drafts/"+d.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/u1/v1/drafts/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateDraftValidation(t *testing.T) {
	e := newBookingAPI(&stubRemote{})

	rec := doJSON(t, e, http.MethodPost, "/u1/v1/drafts",
		map[string]interface{}{"movie_id": "999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts",
		map[string]interface{}{"movie_id": "1", "tickets": 11})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/u1/v1/drafts",
		map[string]interface{}{"movie_id": "1", "showtime": "4:44 AM"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
