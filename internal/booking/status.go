package booking

import (
	"fmt"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
)

type role uint8

const (
	roleBooker role = 1 << iota
	roleVendor
)

// transitions lists, per current status, the reachable statuses and who may
// move a booking there. Statuses absent as keys are terminal.
var transitions = map[availability.Status]map[availability.Status]role{
	availability.StatusPending: {
		availability.StatusConfirmed: roleVendor,
		availability.StatusRejected:  roleVendor,
		availability.StatusCancelled: roleBooker | roleVendor,
	},
	availability.StatusConfirmed: {
		availability.StatusCancelled: roleBooker | roleVendor,
		availability.StatusCompleted: roleVendor,
	},
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s availability.Status) bool {
	return len(transitions[s]) == 0
}

// checkTransition returns ErrInvalidTransition for moves the lifecycle does
// not allow and ErrPermissionDenied when roles may not make an allowed move.
func checkTransition(from, to availability.Status, roles role) error {
	allowed, ok := transitions[from][to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if allowed&roles == 0 {
		return fmt.Errorf("%w: only the %s may move a booking to %s", ErrPermissionDenied, roleName(allowed), to)
	}
	return nil
}

func roleName(r role) string {
	if r == roleVendor {
		return "venue owner"
	}
	return "booker"
}
