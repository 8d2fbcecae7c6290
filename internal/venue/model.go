package venue

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "venue not found")
	ErrForbidden    = apperror.New(http.StatusForbidden, "not allowed to manage this venue")
	ErrInvalidVenue = apperror.New(http.StatusBadRequest, "invalid venue")
	ErrInvalidImage = apperror.New(http.StatusBadRequest, "invalid image")
	ErrNoCover      = apperror.New(http.StatusNotFound, "venue has no cover photo")
)

// PricingConfig is stored as a single JSONB document.
type PricingConfig struct {
	BasePrice                    float64                     `json:"base_price" validate:"gte=0"`
	PerGuestPrice                float64                     `json:"per_guest_price" validate:"gte=0"`
	MinimumGuestsBeforeSurcharge int                         `json:"minimum_guests_before_surcharge" validate:"gte=0"`
	SeasonalRules                []availability.SeasonalRule `json:"seasonal_rules" validate:"max=24"`
	Packages                     []availability.Package      `json:"packages" validate:"max=50"`
	AddOnServices                []availability.AddOnService `json:"add_on_services" validate:"max=100"`
}

// Venue is a bookable space owned by a vendor.
type Venue struct {
	ID               string
	OwnerID          string
	Name             string
	Description      string
	Capacity         int
	OpenMinute       int
	CloseMinute      int
	SlotWidthMinutes int
	Pricing          PricingConfig
	CoverPath        *string
	ThumbnailPath    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ManagedBy reports whether p acts as the vendor of v.
func (v *Venue) ManagedBy(p auth.Principal) bool {
	return p.IsAdmin || (p.UserID != "" && p.UserID == v.OwnerID)
}

// ToResource adapts the stored venue to the availability engine's view.
func (v *Venue) ToResource() *availability.Resource {
	return &availability.Resource{
		ID: v.ID,
		BusinessHours: availability.BusinessHours{
			StartMinute: v.OpenMinute,
			EndMinute:   v.CloseMinute,
		},
		SlotWidthMinutes: v.SlotWidthMinutes,
		BasePricing: availability.BasePricing{
			BasePrice:                    v.Pricing.BasePrice,
			PerGuestPrice:                v.Pricing.PerGuestPrice,
			MinimumGuestsBeforeSurcharge: v.Pricing.MinimumGuestsBeforeSurcharge,
		},
		SeasonalRules: v.Pricing.SeasonalRules,
		Packages:      v.Pricing.Packages,
		AddOnServices: v.Pricing.AddOnServices,
	}
}

// CreateInput is what a vendor supplies for a new venue. Times are "HH:MM".
type CreateInput struct {
	Name             string `validate:"required,max=200"`
	Description      string `validate:"max=2000"`
	Capacity         int    `validate:"gte=0"`
	OpenTime         string `validate:"required,clock"`
	CloseTime        string `validate:"required,clock"`
	SlotWidthMinutes int    `validate:"gte=0,lte=1440"`
	Pricing          PricingConfig
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name             *string `validate:"omitempty,min=1,max=200"`
	Description      *string `validate:"omitempty,max=2000"`
	Capacity         *int    `validate:"omitempty,gte=0"`
	OpenTime         *string `validate:"omitempty,clock"`
	CloseTime        *string `validate:"omitempty,clock"`
	SlotWidthMinutes *int    `validate:"omitempty,gte=0,lte=1440"`
	Pricing          *PricingConfig
}

// Filter narrows List.
type Filter struct {
	OwnerID   string
	Name      string
	Page      int
	PageSize  int
	SortOrder string
}
