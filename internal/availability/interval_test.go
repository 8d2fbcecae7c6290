package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "Whole day", start: 0, end: 1440},
		{name: "One minute", start: 540, end: 541},
		{name: "Empty", start: 600, end: 600, wantErr: true},
		{name: "Reversed", start: 660, end: 600, wantErr: true},
		{name: "Negative start", start: -1, end: 60, wantErr: true},
		{name: "Past midnight", start: 1380, end: 1441, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeInterval(tt.start, tt.end)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TimeInterval{Start: tt.start, End: tt.end}, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{name: "Self", a: TimeInterval{540, 600}, b: TimeInterval{540, 600}, want: true},
		{name: "Touching", a: TimeInterval{0, 60}, b: TimeInterval{60, 120}, want: false},
		{name: "Touching reversed", a: TimeInterval{60, 120}, b: TimeInterval{0, 60}, want: false},
		{name: "Partial", a: TimeInterval{540, 630}, b: TimeInterval{600, 660}, want: true},
		{name: "Nested", a: TimeInterval{540, 720}, b: TimeInterval{600, 660}, want: true},
		{name: "Disjoint", a: TimeInterval{540, 600}, b: TimeInterval{700, 760}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestContains(t *testing.T) {
	day := TimeInterval{540, 1080}

	assert.True(t, Contains(day, day))
	assert.True(t, Contains(day, TimeInterval{600, 660}))
	assert.False(t, Contains(day, TimeInterval{500, 600}))
	assert.False(t, Contains(day, TimeInterval{1020, 1100}))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "18:30:00", want: 1110},
		{in: "00:00", want: 0},
		{in: "24:00", want: 1440},
		{in: "24:01", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09:00:30", wantErr: true},
		{in: "nine", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeIntervalString(t *testing.T) {
	assert.Equal(t, "09:00-10:30", TimeInterval{540, 630}.String())
	assert.Equal(t, "23:00-24:00", TimeInterval{1380, 1440}.String())
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-12-05")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.December, 5), d)
	assert.Equal(t, "2026-12-05", d.String())

	_, err = ParseDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.False(t, NewDate(2026, time.February, 30).Valid())
	assert.False(t, NewDate(2026, 13, 1).Valid())
	assert.True(t, NewDate(2028, time.February, 29).Valid())
	assert.False(t, NewDate(2027, time.February, 29).Valid())

	assert.True(t, NewDate(2026, time.May, 1).Before(NewDate(2026, time.May, 2)))
	assert.False(t, NewDate(2026, time.May, 2).Before(NewDate(2026, time.May, 2)))
}
