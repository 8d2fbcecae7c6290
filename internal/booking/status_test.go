package booking

import (
	"testing"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	const (
		pending   = availability.StatusPending
		confirmed = availability.StatusConfirmed
		cancelled = availability.StatusCancelled
		rejected  = availability.StatusRejected
		completed = availability.StatusCompleted
	)

	tests := []struct {
		from, to availability.Status
		roles    role
		want     error
	}{
		{pending, confirmed, roleVendor, nil},
		{pending, confirmed, roleBooker, ErrPermissionDenied},
		{pending, rejected, roleVendor, nil},
		{pending, rejected, roleBooker, ErrPermissionDenied},
		{pending, cancelled, roleBooker, nil},
		{pending, cancelled, roleVendor, nil},
		{confirmed, cancelled, roleBooker, nil},
		{confirmed, completed, roleVendor, nil},
		{confirmed, completed, roleBooker, ErrPermissionDenied},
		{confirmed, rejected, roleVendor, ErrInvalidTransition},
		{pending, completed, roleVendor, ErrInvalidTransition},
		{pending, pending, roleVendor, ErrInvalidTransition},
		{cancelled, confirmed, roleVendor | roleBooker, ErrInvalidTransition},
		{rejected, pending, roleVendor, ErrInvalidTransition},
		{completed, cancelled, roleVendor, ErrInvalidTransition},
		{pending, confirmed, roleBooker | roleVendor, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := checkTransition(tt.from, tt.to, tt.roles)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(availability.StatusPending))
	assert.False(t, IsTerminal(availability.StatusConfirmed))
	assert.True(t, IsTerminal(availability.StatusCancelled))
	assert.True(t, IsTerminal(availability.StatusRejected))
	assert.True(t, IsTerminal(availability.StatusCompleted))
}
