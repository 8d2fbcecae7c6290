package availability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weddingDay = NewDate(2026, time.June, 13)

func hall() *Resource {
	return &Resource{
		ID:               "hall-1",
		BusinessHours:    BusinessHours{StartMinute: 540, EndMinute: 720},
		SlotWidthMinutes: 60,
	}
}

func reservation(id string, start, end int, status Status) Reservation {
	return Reservation{
		ID:         id,
		ResourceID: "hall-1",
		Date:       weddingDay,
		Interval:   TimeInterval{Start: start, End: end},
		Status:     status,
	}
}

func TestCheckSlot_BlockingPolicy(t *testing.T) {
	r := Resource{ID: "hall-1"}
	slot := TimeInterval{0, 60}

	tests := []struct {
		status Status
		want   SlotStatus
	}{
		{StatusPending, SlotOccupied},
		{StatusConfirmed, SlotOccupied},
		{StatusCancelled, SlotAvailable},
		{StatusRejected, SlotAvailable},
		{StatusCompleted, SlotAvailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			res := []Reservation{reservation("r1", 0, 60, tt.status)}
			assert.Equal(t, tt.want, CheckSlot(r, res, weddingDay, slot))
		})
	}
}

func TestCheckSlot_IgnoresOtherDaysAndResources(t *testing.T) {
	r := Resource{ID: "hall-1"}
	slot := TimeInterval{600, 660}

	otherDay := reservation("r1", 600, 660, StatusConfirmed)
	otherDay.Date = NewDate(2026, time.June, 14)

	otherHall := reservation("r2", 600, 660, StatusConfirmed)
	otherHall.ResourceID = "hall-2"

	touching := reservation("r3", 540, 600, StatusConfirmed)

	assert.Equal(t, SlotAvailable, CheckSlot(r, []Reservation{otherDay, otherHall, touching}, weddingDay, slot))
}

func TestCheckAvailability_SlotBreakdown(t *testing.T) {
	res := []Reservation{
		reservation("r1", 600, 660, StatusConfirmed),
		reservation("r2", 540, 600, StatusCancelled),
	}

	got, err := CheckAvailability(hall(), res, AvailabilityRequest{ResourceID: "hall-1", Date: weddingDay})
	require.NoError(t, err)

	assert.Equal(t, "hall-1", got.ResourceID)
	assert.Equal(t, weddingDay, got.Date)
	assert.Nil(t, got.Requested)
	assert.Equal(t, []SlotAvailability{
		{Interval: TimeInterval{540, 600}, Status: SlotAvailable},
		{Interval: TimeInterval{600, 660}, Status: SlotOccupied},
		{Interval: TimeInterval{660, 720}, Status: SlotAvailable},
	}, got.Slots)
	assert.Equal(t, []TimeInterval{{540, 600}, {660, 720}}, got.FreeWindows)
}

func TestCheckAvailability_RequestedWindow(t *testing.T) {
	res := []Reservation{
		reservation("r2", 690, 720, StatusPending),
		reservation("r1", 600, 630, StatusConfirmed),
		reservation("r3", 630, 660, StatusRejected),
	}

	tests := []struct {
		name          string
		window        TimeInterval
		wantAvailable bool
		wantWithin    bool
		wantConflicts []string
	}{
		{
			name:          "Free partial hour",
			window:        TimeInterval{630, 690},
			wantAvailable: true,
			wantWithin:    true,
			wantConflicts: []string{},
		},
		{
			name:          "Spans two reservations",
			window:        TimeInterval{540, 720},
			wantAvailable: false,
			wantWithin:    true,
			wantConflicts: []string{"r1", "r2"},
		},
		{
			name:          "Overlaps the start of one",
			window:        TimeInterval{570, 610},
			wantAvailable: false,
			wantWithin:    true,
			wantConflicts: []string{"r1"},
		},
		{
			name:          "Free but after closing",
			window:        TimeInterval{720, 780},
			wantAvailable: true,
			wantWithin:    false,
			wantConflicts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.window
			got, err := CheckAvailability(hall(), res, AvailabilityRequest{Date: weddingDay, RequestedInterval: &w})
			require.NoError(t, err)
			require.NotNil(t, got.Requested)

			assert.Equal(t, tt.window, got.Requested.Interval)
			assert.Equal(t, tt.wantAvailable, got.Requested.Available)
			assert.Equal(t, tt.wantWithin, got.Requested.WithinBusinessHours)

			ids := make([]string, 0, len(got.Requested.Conflicts))
			for _, c := range got.Requested.Conflicts {
				ids = append(ids, c.ReservationID)
			}
			assert.Equal(t, tt.wantConflicts, ids)
		})
	}
}

func TestCheckAvailability_ConflictDetails(t *testing.T) {
	res := []Reservation{reservation("r1", 600, 660, StatusPending)}
	w := TimeInterval{600, 720}

	got, err := CheckAvailability(hall(), res, AvailabilityRequest{Date: weddingDay, RequestedInterval: &w})
	require.NoError(t, err)

	assert.Equal(t, []Conflict{{ReservationID: "r1", Interval: TimeInterval{600, 660}, Status: StatusPending}}, got.Requested.Conflicts)
}

func TestCheckAvailability_Errors(t *testing.T) {
	bad := TimeInterval{700, 600}

	tests := []struct {
		name     string
		resource *Resource
		req      AvailabilityRequest
		wantErr  error
	}{
		{
			name:     "Nil resource",
			resource: nil,
			req:      AvailabilityRequest{ResourceID: "hall-1", Date: weddingDay},
			wantErr:  ErrResourceNotFound,
		},
		{
			name:     "Mismatched resource",
			resource: hall(),
			req:      AvailabilityRequest{ResourceID: "hall-9", Date: weddingDay},
			wantErr:  ErrResourceNotFound,
		},
		{
			name:     "Impossible date",
			resource: hall(),
			req:      AvailabilityRequest{Date: NewDate(2026, time.February, 30)},
			wantErr:  ErrInvalidDate,
		},
		{
			name:     "Zero date",
			resource: hall(),
			req:      AvailabilityRequest{},
			wantErr:  ErrInvalidDate,
		},
		{
			name:     "Inverted window",
			resource: hall(),
			req:      AvailabilityRequest{Date: weddingDay, RequestedInterval: &bad},
			wantErr:  ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckAvailability(tt.resource, nil, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckAvailability_FullyBooked(t *testing.T) {
	res := []Reservation{reservation("r1", 540, 720, StatusConfirmed)}
	w := TimeInterval{600, 660}

	got, err := CheckAvailability(hall(), res, AvailabilityRequest{Date: weddingDay, RequestedInterval: &w})
	require.NoError(t, err, "no availability is a result, not an error")

	for _, s := range got.Slots {
		assert.Equal(t, SlotOccupied, s.Status)
	}
	assert.Empty(t, got.FreeWindows)
	assert.False(t, got.Requested.Available)
}

func TestCheckAvailability_FreeWindowsMergeOverlaps(t *testing.T) {
	r := &Resource{BusinessHours: BusinessHours{StartMinute: 540, EndMinute: 1080}}
	res := []Reservation{
		reservation("a", 840, 960, StatusConfirmed),
		reservation("b", 600, 720, StatusConfirmed),
		reservation("c", 700, 760, StatusPending),
		reservation("d", 480, 560, StatusPending),
	}

	got, err := CheckAvailability(r, res, AvailabilityRequest{Date: weddingDay})
	require.NoError(t, err)

	assert.Equal(t, []TimeInterval{{560, 600}, {760, 840}, {960, 1080}}, got.FreeWindows)
}

func TestCheckAvailability_Idempotent(t *testing.T) {
	res := []Reservation{
		reservation("r1", 600, 660, StatusConfirmed),
		reservation("r2", 660, 690, StatusPending),
	}
	w := TimeInterval{630, 700}
	req := AvailabilityRequest{Date: weddingDay, RequestedInterval: &w}

	first, err := CheckAvailability(hall(), res, req)
	require.NoError(t, err)
	second, err := CheckAvailability(hall(), res, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, TimeInterval{600, 660}, res[0].Interval, "input must not be mutated")
}

func TestCheckAvailability_ConcurrentCallers(t *testing.T) {
	r := hall()
	res := []Reservation{reservation("r1", 600, 660, StatusConfirmed)}
	want, err := CheckAvailability(r, res, AvailabilityRequest{Date: weddingDay})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]AvailabilityResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = CheckAvailability(r, res, AvailabilityRequest{Date: weddingDay})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
