package availability

import (
	"sort"
)

// CheckSlot classifies slot on date against the resource's reservations.
// Only pending and confirmed reservations block; cancelled, rejected and
// completed ones are ignored.
func CheckSlot(r Resource, reservations []Reservation, date Date, slot TimeInterval) SlotStatus {
	return slotStatus(blockingOn(r, reservations, date), slot)
}

// blockingOn filters reservations down to the ones that occupy time on date.
// A reservation naming a different resource is skipped; an empty ResourceID
// on either side is treated as a match.
func blockingOn(r Resource, reservations []Reservation, date Date) []Reservation {
	var out []Reservation
	for _, res := range reservations {
		if res.Date != date || !res.Status.Blocking() {
			continue
		}
		if r.ID != "" && res.ResourceID != "" && res.ResourceID != r.ID {
			continue
		}
		out = append(out, res)
	}
	return out
}

func slotStatus(blocking []Reservation, slot TimeInterval) SlotStatus {
	for _, res := range blocking {
		if Overlaps(res.Interval, slot) {
			return SlotOccupied
		}
	}
	return SlotAvailable
}

// conflictsWith lists blocking reservations overlapping window, ordered by
// start minute then reservation id.
func conflictsWith(blocking []Reservation, window TimeInterval) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, res := range blocking {
		if Overlaps(res.Interval, window) {
			conflicts = append(conflicts, Conflict{
				ReservationID: res.ID,
				Interval:      res.Interval,
				Status:        res.Status,
			})
		}
	}
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Interval.Start != conflicts[j].Interval.Start {
			return conflicts[i].Interval.Start < conflicts[j].Interval.Start
		}
		return conflicts[i].ReservationID < conflicts[j].ReservationID
	})
	return conflicts
}

// freeWindows returns the maximal gaps of hours not covered by any blocking
// reservation. Reservations may be unsorted and may overlap each other.
func freeWindows(hours TimeInterval, blocking []Reservation) []TimeInterval {
	if !hours.Valid() {
		return nil
	}

	busy := make([]TimeInterval, 0, len(blocking))
	for _, res := range blocking {
		if Overlaps(res.Interval, hours) {
			busy = append(busy, res.Interval)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })

	free := make([]TimeInterval, 0, len(busy)+1)
	cursor := hours.Start
	for _, b := range busy {
		if b.Start > cursor {
			free = append(free, TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < hours.End {
		free = append(free, TimeInterval{Start: cursor, End: hours.End})
	}
	return free
}
