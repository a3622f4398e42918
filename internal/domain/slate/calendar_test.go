package slate

import (
	"testing"
	"time"
)

func TestToSlateID(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    string
	}{
		{
			name:    "utc early morning is previous eastern day boundary",
			instant: time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC),
			want:    "2024-01-01",
		},
		{
			name:    "just before eastern midnight",
			instant: time.Date(2024, 1, 1, 4, 59, 0, 0, time.UTC),
			want:    "2023-12-31",
		},
		{
			name:    "summer offset",
			instant: time.Date(2024, 7, 4, 3, 59, 0, 0, time.UTC),
			want:    "2024-07-03",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToSlateID(tc.instant)
			if err != nil {
				t.Fatalf("to slate id failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name      string
		slateDate string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "standard time",
			slateDate: "2024-01-15",
			wantStart: time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 16, 5, 0, 0, 0, time.UTC),
		},
		{
			name:      "daylight time",
			slateDate: "2024-07-04",
			wantStart: time.Date(2024, 7, 4, 4, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 7, 5, 4, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := Bounds(tc.slateDate)
			if err != nil {
				t.Fatalf("bounds failed: %v", err)
			}
			if !start.Equal(tc.wantStart) {
				t.Fatalf("expected start %v, got %v", tc.wantStart, start)
			}
			if !end.Equal(tc.wantEnd) {
				t.Fatalf("expected end %v, got %v", tc.wantEnd, end)
			}
		})
	}
}

func TestBoundsSpanExactly24HoursAcrossDSTTransitions(t *testing.T) {
	// Spring-forward and fall-back dates: the noon anchor keeps one offset
	// for the whole slate, so the span never shrinks or stretches.
	for _, slateDate := range []string{"2024-03-10", "2024-11-03", "2024-03-09", "2024-11-04"} {
		start, end, err := Bounds(slateDate)
		if err != nil {
			t.Fatalf("bounds %s failed: %v", slateDate, err)
		}
		if span := end.Sub(start); span != 24*time.Hour {
			t.Fatalf("slate %s spans %v, expected 24h", slateDate, span)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, valid := range []string{"2024-01-01", "1999-12-31"} {
		if err := Validate(valid); err != nil {
			t.Fatalf("expected %q valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "2024-1-1", "2024-13-01", "20240101", "2024-01-01T00:00:00Z", "yesterday"} {
		if err := Validate(invalid); err == nil {
			t.Fatalf("expected %q invalid", invalid)
		}
	}
}

func TestYesterday(t *testing.T) {
	// 01:00 UTC Jan 2 is 20:00 Eastern Jan 1; one day back is Dec 31.
	now := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	got, err := Yesterday(now)
	if err != nil {
		t.Fatalf("yesterday failed: %v", err)
	}
	if got != "2023-12-31" {
		t.Fatalf("expected 2023-12-31, got %s", got)
	}
}

func TestEndOfDayEastern(t *testing.T) {
	got, err := EndOfDayEastern("2024-01-15")
	if err != nil {
		t.Fatalf("end of day failed: %v", err)
	}
	want := time.Date(2024, 1, 16, 4, 59, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
