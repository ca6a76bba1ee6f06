package review

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	t.Parallel()

	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		tz   *time.Location
		want time.Time
	}{
		{
			name: "utc midday",
			now:  time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
			tz:   time.UTC,
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just before local midnight",
			now:  time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
			tz:   time.UTC,
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly local midnight starts the new day",
			now:  time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			tz:   time.UTC,
			want: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "moscow is already tomorrow",
			// 22:30 UTC is 01:30 next day in Moscow (UTC+3).
			now:  time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC),
			tz:   moscow,
			want: time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DayStart(tt.now, tt.tz)
			if !got.Equal(tt.want) {
				t.Errorf("DayStart(%v, %v) = %v, want %v", tt.now, tt.tz, got, tt.want)
			}
		})
	}
}

func TestNextDayStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	got := NextDayStart(now, time.UTC)
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextDayStart = %v, want %v", got, want)
	}
}

func TestParseTimezone(t *testing.T) {
	t.Parallel()

	if loc := ParseTimezone("Europe/Moscow"); loc.String() != "Europe/Moscow" {
		t.Errorf("loc = %v, want Europe/Moscow", loc)
	}
	if loc := ParseTimezone("Not/AZone"); loc != time.UTC {
		t.Errorf("invalid timezone should fall back to UTC, got %v", loc)
	}
	if loc := ParseTimezone(""); loc != time.UTC {
		t.Errorf("empty timezone should fall back to UTC, got %v", loc)
	}
}
