package availability

import (
	"fmt"
	"math"
)

// price runs the pricing steps in their fixed order; each step feeds the next.
func price(r Resource, req PriceQuoteRequest) (PriceQuote, error) {
	var q PriceQuote

	// 1. Base price
	q.BasePrice = r.BasePricing.BasePrice
	subtotal := q.BasePrice

	// 2. Per-guest surcharge above the included guest count
	if extra := req.GuestCount - r.BasePricing.MinimumGuestsBeforeSurcharge; extra > 0 {
		q.GuestSurcharge = float64(extra) * r.BasePricing.PerGuestPrice
		subtotal += q.GuestSurcharge
	}

	// 3. Seasonal adjustment, first declared rule wins
	if rule, ok := seasonalRuleFor(r.SeasonalRules, int(req.Date.Month)); ok {
		q.SeasonalAdjustment = subtotal * rule.AdjustmentPercent / 100
		subtotal += q.SeasonalAdjustment
	}

	// 4. Package, added on top of base pricing
	if req.PackageID != "" {
		pkg, ok := findPackage(r.Packages, req.PackageID)
		if !ok {
			return PriceQuote{}, fmt.Errorf("%w: %q", ErrPackageNotFound, req.PackageID)
		}
		if req.GuestCount < pkg.MinGuests || req.GuestCount > pkg.MaxGuests {
			return PriceQuote{}, fmt.Errorf("%w: %d guests, package %q allows %d-%d",
				ErrGuestCountOutOfRange, req.GuestCount, pkg.ID, pkg.MinGuests, pkg.MaxGuests)
		}
		q.PackagePrice = pkg.Price
		subtotal += q.PackagePrice
	}

	// 5+6. Selected add-ons, then required ones the caller left out
	charges, err := addOnCharges(r.AddOnServices, req)
	if err != nil {
		return PriceQuote{}, err
	}
	for _, c := range charges {
		q.AddOnTotal += c.Amount
	}
	q.AddOns = charges
	subtotal += q.AddOnTotal

	// 7. Whole currency units
	q.Total = roundHalfUp(subtotal)
	return q, nil
}

func seasonalRuleFor(rules []SeasonalRule, month int) (SeasonalRule, bool) {
	for _, rule := range rules {
		if rule.Matches(month) {
			return rule, true
		}
	}
	return SeasonalRule{}, false
}

func findPackage(pkgs []Package, id string) (Package, bool) {
	for _, p := range pkgs {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func findService(services []AddOnService, id string) (AddOnService, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return AddOnService{}, false
}

func addOnCharges(services []AddOnService, req PriceQuoteRequest) ([]AddOnCharge, error) {
	selected := make(map[string]bool, len(req.AddOnServiceIDs))
	charges := make([]AddOnCharge, 0, len(req.AddOnServiceIDs))

	for _, id := range req.AddOnServiceIDs {
		if selected[id] {
			continue
		}
		svc, ok := findService(services, id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, id)
		}
		selected[id] = true

		c, err := charge(svc, req)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}

	for _, svc := range services {
		if !svc.Required || selected[svc.ID] {
			continue
		}
		c, err := charge(svc, req)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, nil
}

func charge(svc AddOnService, req PriceQuoteRequest) (AddOnCharge, error) {
	c := AddOnCharge{
		ServiceID: svc.ID,
		Name:      svc.Name,
		PriceType: svc.PriceType,
		Required:  svc.Required,
	}

	switch svc.PriceType {
	case PricePerGuest:
		c.Amount = svc.Price * float64(req.GuestCount)
	case PricePerHour:
		if req.Interval == nil {
			return AddOnCharge{}, fmt.Errorf("%w: service %q", ErrDurationRequired, svc.ID)
		}
		hours := (req.Interval.Duration() + 59) / 60
		c.Amount = svc.Price * float64(hours)
	default:
		c.Amount = svc.Price
	}
	return c, nil
}

// roundHalfUp rounds to a whole unit, first trimming float noise such as
// 164.99999999997 so it does not fall below the half-way mark.
func roundHalfUp(v float64) float64 {
	v = math.Round(v*1e6) / 1e6
	return math.Floor(v + 0.5)
}
