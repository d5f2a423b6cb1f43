package scheduler

import (
	"testing"
	"time"
)

func TestNextFireTime(t *testing.T) {
	loc := time.UTC

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"before today's firing",
			time.Date(2025, 3, 10, 8, 0, 0, 0, loc),
			time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
		},
		{
			"exactly at the firing time",
			time.Date(2025, 3, 10, 10, 0, 0, 0, loc),
			time.Date(2025, 3, 11, 10, 0, 0, 0, loc),
		},
		{
			"after today's firing",
			time.Date(2025, 3, 10, 15, 30, 0, 0, loc),
			time.Date(2025, 3, 11, 10, 0, 0, 0, loc),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextFireTime(tc.now, 10, 0, loc)
			if !got.Equal(tc.want) {
				t.Fatalf("NextFireTime(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestNextFireTimeCrossesMonthBoundary(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 31, 11, 0, 0, 0, loc)
	got := NextFireTime(now, 10, 0, loc)
	want := time.Date(2025, 4, 1, 10, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("NextFireTime = %v, want %v", got, want)
	}
}
