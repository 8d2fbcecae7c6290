package availability

// GenerateSlots splits the resource's business hours into consecutive slots of
// SlotWidth minutes, ascending by start. A trailing remainder shorter than a
// full slot is dropped, so the result has floor(span/width) entries.
func GenerateSlots(r Resource) []TimeInterval {
	hours := r.Hours()
	width := r.SlotWidth()

	span := hours.EndMinute - hours.StartMinute
	if span <= 0 {
		return nil
	}

	slots := make([]TimeInterval, 0, span/width)
	for start := hours.StartMinute; start+width <= hours.EndMinute; start += width {
		slots = append(slots, TimeInterval{Start: start, End: start + width})
	}
	return slots
}
