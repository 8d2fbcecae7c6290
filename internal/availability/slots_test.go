package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		want     []TimeInterval
	}{
		{
			name: "Three hourly slots",
			resource: Resource{
				BusinessHours:    BusinessHours{StartMinute: 540, EndMinute: 720},
				SlotWidthMinutes: 60,
			},
			want: []TimeInterval{{540, 600}, {600, 660}, {660, 720}},
		},
		{
			name: "Remainder is dropped",
			resource: Resource{
				BusinessHours:    BusinessHours{StartMinute: 540, EndMinute: 750},
				SlotWidthMinutes: 60,
			},
			want: []TimeInterval{{540, 600}, {600, 660}, {660, 720}},
		},
		{
			name: "Span shorter than one slot",
			resource: Resource{
				BusinessHours:    BusinessHours{StartMinute: 540, EndMinute: 570},
				SlotWidthMinutes: 60,
			},
			want: []TimeInterval{},
		},
		{
			name: "Inverted hours yield nothing",
			resource: Resource{
				BusinessHours: BusinessHours{StartMinute: 720, EndMinute: 540},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlots(tt.resource))
		})
	}
}

func TestGenerateSlots_Defaults(t *testing.T) {
	slots := GenerateSlots(Resource{})

	// 09:00-18:00 at 60 minutes
	assert.Len(t, slots, 9)
	assert.Equal(t, TimeInterval{540, 600}, slots[0])
	assert.Equal(t, TimeInterval{1020, 1080}, slots[8])
}

func TestGenerateSlots_CountMatchesFloor(t *testing.T) {
	for _, width := range []int{15, 25, 45, 60, 90, 120, 200, 541} {
		r := Resource{
			BusinessHours:    BusinessHours{StartMinute: 480, EndMinute: 1020},
			SlotWidthMinutes: width,
		}
		slots := GenerateSlots(r)

		assert.Len(t, slots, (1020-480)/width, "width %d", width)
		for i, s := range slots {
			assert.Equal(t, width, s.Duration())
			assert.LessOrEqual(t, s.End, 1020)
			if i > 0 {
				assert.Equal(t, slots[i-1].End, s.Start, "slots must be consecutive")
			}
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	r := Resource{BusinessHours: BusinessHours{StartMinute: 600, EndMinute: 1320}, SlotWidthMinutes: 30}
	assert.Equal(t, GenerateSlots(r), GenerateSlots(r))
}
