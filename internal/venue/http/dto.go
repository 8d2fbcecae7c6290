package http

import (
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type ListVenuesRequest struct {
	request.ListParams
	OwnerID string `form:"owner_id" binding:"omitempty,uuid"`
	Name    string `form:"name"`
}

type CreateVenueRequest struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Capacity         int                 `json:"capacity"`
	OpenTime         string              `json:"open_time"`
	CloseTime        string              `json:"close_time"`
	SlotWidthMinutes int                 `json:"slot_width_minutes"`
	Pricing          venue.PricingConfig `json:"pricing"`
}

func (r CreateVenueRequest) toInput() venue.CreateInput {
	return venue.CreateInput{
		Name:             r.Name,
		Description:      r.Description,
		Capacity:         r.Capacity,
		OpenTime:         r.OpenTime,
		CloseTime:        r.CloseTime,
		SlotWidthMinutes: r.SlotWidthMinutes,
		Pricing:          r.Pricing,
	}
}

// UpdateVenueRequest uses pointers to tell "not sent" from zero values.
type UpdateVenueRequest struct {
	Name             *string              `json:"name"`
	Description      *string              `json:"description"`
	Capacity         *int                 `json:"capacity"`
	OpenTime         *string              `json:"open_time"`
	CloseTime        *string              `json:"close_time"`
	SlotWidthMinutes *int                 `json:"slot_width_minutes"`
	Pricing          *venue.PricingConfig `json:"pricing"`
}

func (r UpdateVenueRequest) toInput() venue.UpdateInput {
	return venue.UpdateInput{
		Name:             r.Name,
		Description:      r.Description,
		Capacity:         r.Capacity,
		OpenTime:         r.OpenTime,
		CloseTime:        r.CloseTime,
		SlotWidthMinutes: r.SlotWidthMinutes,
		Pricing:          r.Pricing,
	}
}

type VenueResponse struct {
	ID               string              `json:"id"`
	OwnerID          string              `json:"owner_id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Capacity         int                 `json:"capacity"`
	OpenTime         string              `json:"open_time"`
	CloseTime        string              `json:"close_time"`
	SlotWidthMinutes int                 `json:"slot_width_minutes"`
	Pricing          venue.PricingConfig `json:"pricing"`
	CoverURL         *string             `json:"cover_url"`
	ThumbnailURL     *string             `json:"thumbnail_url"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	resp := VenueResponse{
		ID:               v.ID,
		OwnerID:          v.OwnerID,
		Name:             v.Name,
		Description:      v.Description,
		Capacity:         v.Capacity,
		OpenTime:         availability.FormatClock(v.OpenMinute),
		CloseTime:        availability.FormatClock(v.CloseMinute),
		SlotWidthMinutes: v.SlotWidthMinutes,
		Pricing:          v.Pricing,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.CoverPath != nil {
		full := "/v1/venues/" + v.ID + "/cover"
		thumb := full + "?size=thumb"
		resp.CoverURL, resp.ThumbnailURL = &full, &thumb
	}
	return resp
}
