package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
const MinutesPerDay = 24 * 60

// TimeInterval is a half-open range [Start, End) of minutes within one calendar day.
// The day itself belongs to whatever record owns the interval.
type TimeInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTimeInterval validates 0 <= start < end <= 1440.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	i := TimeInterval{Start: start, End: end}
	if !i.Valid() {
		return TimeInterval{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, start, end)
	}
	return i, nil
}

// Valid reports whether the interval satisfies the constructor invariant.
func (i TimeInterval) Valid() bool {
	return i.Start >= 0 && i.End <= MinutesPerDay && i.Start < i.End
}

// Duration returns the length of the interval in minutes.
func (i TimeInterval) Duration() int {
	return i.End - i.Start
}

func (i TimeInterval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// Overlaps reports whether a and b share at least one minute.
// Intervals that only touch at an endpoint do not overlap.
func Overlaps(a, b TimeInterval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner TimeInterval) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes of day.
// "24:00" is accepted as the end-of-day boundary. Seconds must be zero.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidInterval, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: clock %q", ErrInvalidInterval, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: clock %q", ErrInvalidInterval, s)
		}
		nums[i] = n
	}

	if len(nums) == 3 && nums[2] != 0 {
		return 0, fmt.Errorf("%w: clock %q has seconds", ErrInvalidInterval, s)
	}
	if nums[1] > 59 {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidInterval, s)
	}

	m := nums[0]*60 + nums[1]
	if m > MinutesPerDay {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidInterval, s)
	}
	return m, nil
}

// FormatClock renders minutes of day as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
