package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const venueID = "11111111-1111-1111-1111-111111111111"

type stubService struct {
	lastWindow *availability.TimeInterval
	lastCreate booking.CreateInput
	createErr  error
}

func (s *stubService) Availability(_ context.Context, id string, date availability.Date, window *availability.TimeInterval) (*availability.AvailabilityResult, error) {
	s.lastWindow = window
	res, err := availability.CheckAvailability(&availability.Resource{ID: id}, []availability.Reservation{
		{ID: "r1", ResourceID: id, Date: date, Interval: availability.TimeInterval{Start: 600, End: 660}, Status: availability.StatusConfirmed},
	}, availability.AvailabilityRequest{ResourceID: id, Date: date, RequestedInterval: window})
	return &res, err
}

func (s *stubService) Quote(_ context.Context, id string, in booking.QuoteInput) (*availability.PriceQuote, error) {
	q, err := availability.QuotePrice(&availability.Resource{
		ID:          id,
		BasePricing: availability.BasePricing{BasePrice: 100, PerGuestPrice: 5, MinimumGuestsBeforeSurcharge: 10},
	}, availability.PriceQuoteRequest{ResourceID: id, Date: in.Date, GuestCount: in.GuestCount, PackageID: in.PackageID})
	return &q, err
}

func (s *stubService) Create(_ context.Context, actor auth.Principal, in booking.CreateInput) (*booking.Booking, *availability.PriceQuote, error) {
	s.lastCreate = in
	if s.createErr != nil {
		return nil, nil, s.createErr
	}
	return &booking.Booking{
		ID: "b1", VenueID: in.VenueID, UserID: actor.UserID, Date: in.Date, Interval: in.Interval,
		Status: availability.StatusPending, TotalPrice: 100,
	}, &availability.PriceQuote{BasePrice: 100, Total: 100}, nil
}

func (s *stubService) Transition(_ context.Context, _ auth.Principal, id string, to availability.Status) (*booking.Booking, error) {
	if to == availability.StatusCompleted {
		return nil, booking.ErrInvalidTransition
	}
	return &booking.Booking{ID: id, Status: to}, nil
}

func (s *stubService) GetByID(_ context.Context, _ auth.Principal, _ string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func (s *stubService) List(_ context.Context, actor auth.Principal, _ booking.Filter) ([]*booking.Booking, int, error) {
	return []*booking.Booking{{ID: "b1", UserID: actor.UserID, Status: availability.StatusPending}}, 1, nil
}

func setup(t *testing.T) (*gin.Engine, *stubService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	token, err := tokens.Issue(auth.Principal{UserID: "guest"})
	require.NoError(t, err)

	svc := &stubService{}
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(tokens), nil)
	return r, svc, token
}

func do(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAvailabilityEndpoint(t *testing.T) {
	r, svc, _ := setup(t)

	w := do(r, http.MethodGet, "/v1/venues/"+venueID+"/availability?date=2026-12-05&start=10:30&end=12:00", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, svc.lastWindow)
	assert.Equal(t, availability.TimeInterval{Start: 630, End: 720}, *svc.lastWindow)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-12-05", resp.Date.String())
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, WindowResponse{Start: "10:00", End: "11:00"}, resp.Slots[1].WindowResponse)
	assert.Equal(t, availability.SlotOccupied, resp.Slots[1].Status)
	require.NotNil(t, resp.Requested)
	assert.False(t, resp.Requested.Available)
	require.Len(t, resp.Requested.Conflicts, 1)
	assert.Equal(t, "r1", resp.Requested.Conflicts[0].ReservationID)
}

func TestAvailabilityEndpoint_BadInput(t *testing.T) {
	r, _, _ := setup(t)

	paths := []string{
		"/v1/venues/" + venueID + "/availability",
		"/v1/venues/" + venueID + "/availability?date=2026-13-01",
		"/v1/venues/" + venueID + "/availability?date=2026-12-05&start=10:00",
		"/v1/venues/" + venueID + "/availability?date=2026-12-05&start=12:00&end=10:00",
		"/v1/venues/not-a-uuid/availability?date=2026-12-05",
	}
	for _, p := range paths {
		w := do(r, http.MethodGet, p, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, p)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodPost, "/v1/venues/"+venueID+"/quote", gin.H{"date": "2026-06-01", "guest_count": 12}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var q availability.PriceQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 110.0, q.Total)

	w = do(r, http.MethodPost, "/v1/venues/"+venueID+"/quote", gin.H{"date": "2026-06-01", "package_id": "gold"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/venues/"+venueID+"/quote", gin.H{"date": "2026-06-01", "guest_count": -1}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEndpoint(t *testing.T) {
	r, svc, token := setup(t)
	body := gin.H{"venue_id": venueID, "date": "2026-12-05", "start": "10:00", "end": "12:00", "guest_count": 4}

	w := do(r, http.MethodPost, "/v1/bookings", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/v1/bookings", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, availability.TimeInterval{Start: 600, End: 720}, svc.lastCreate.Interval)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "guest", resp.Booking.UserID)
	assert.Equal(t, "10:00", resp.Booking.Start)
	assert.Equal(t, availability.StatusPending, resp.Booking.Status)
	assert.Equal(t, 100.0, resp.Quote.Total)

	svc.createErr = booking.ErrTimeConflict
	w = do(r, http.MethodPost, "/v1/bookings", body, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/v1/bookings", gin.H{"venue_id": venueID, "date": "2026-12-05", "start": "10:00"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransitionEndpoint(t *testing.T) {
	r, _, token := setup(t)
	path := "/v1/bookings/" + venueID + "/status"

	w := do(r, http.MethodPatch, path, gin.H{"status": "confirmed"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, path, gin.H{"status": "pending"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, path, gin.H{"status": "completed"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAndListEndpoints(t *testing.T) {
	r, _, token := setup(t)

	w := do(r, http.MethodGet, "/v1/bookings/"+venueID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/v1/bookings?page=1&page_size=10", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []BookingResponse `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, []string{}, page.Items[0].AddOnIDs)

	w = do(r, http.MethodGet, "/v1/bookings?date_from=yesterday", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
