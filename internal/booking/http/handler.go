package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Availability answers GET /venues/:id/availability?date=YYYY-MM-DD[&start=HH:MM&end=HH:MM].
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	date, err := availability.ParseDate(q.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	window, err := parseWindow(q.Start, q.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Availability(c.Request.Context(), uri.ID, date, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAvailabilityResponse(result))
}

func (h *Handler) Quote(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid venue id", err)
		return
	}
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	date, err := availability.ParseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), uri.ID, booking.QuoteInput{
		Date:       date,
		GuestCount: req.GuestCount,
		PackageID:  req.PackageID,
		AddOnIDs:   req.AddOnIDs,
		Interval:   window,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	date, err := availability.ParseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	window, err := parseWindow(req.Start, req.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, quote, err := h.service.Create(c.Request.Context(), auth.CurrentPrincipal(c), booking.CreateInput{
		VenueID:    req.VenueID,
		Date:       date,
		Interval:   *window,
		GuestCount: req.GuestCount,
		PackageID:  req.PackageID,
		AddOnIDs:   req.AddOnIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateBookingResponse{Booking: NewBookingResponse(b), Quote: *quote})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.CurrentPrincipal(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns the caller's bookings, or with ?venue_id= / ?owned=true the
// bookings of venues the caller manages.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	from, err := parseOptionalDate(req.DateFrom)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseOptionalDate(req.DateTo)
	if err != nil {
		response.Error(c, err)
		return
	}

	actor := auth.CurrentPrincipal(c)
	filter := booking.Filter{
		VenueID:   req.VenueID,
		Status:    availability.Status(req.Status),
		DateFrom:  from,
		DateTo:    to,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}
	if req.Owned {
		filter.OwnerID = actor.UserID
	}

	bookings, total, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Transition(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Transition(c.Request.Context(), auth.CurrentPrincipal(c), uri.ID, availability.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}
