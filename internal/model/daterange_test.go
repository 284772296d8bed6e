package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewDateRangeCoversWholeDays(t *testing.T) {
	start := time.Date(2024, 3, 5, 14, 30, 12, 500, time.UTC)
	end := time.Date(2024, 3, 9, 1, 2, 3, 0, time.UTC)

	r, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}

	wantStart := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 9, 23, 59, 59, 999999000, time.UTC)
	if !r.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", r.Start, wantStart)
	}
	if !r.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", r.End, wantEnd)
	}

	inside := []time.Time{
		wantStart,
		time.Date(2024, 3, 5, 0, 0, 0, 1, time.UTC),
		time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC),
		wantEnd,
	}
	for _, ts := range inside {
		if !r.Contains(ts) {
			t.Errorf("expected %v inside range", ts)
		}
	}

	outside := []time.Time{
		wantStart.Add(-time.Nanosecond),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, ts := range outside {
		if r.Contains(ts) {
			t.Errorf("expected %v outside range", ts)
		}
	}
}

func TestNewDateRangeSameDay(t *testing.T) {
	day := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	r, err := NewDateRange(day, day.Add(-22*time.Hour))
	if err != nil {
		t.Fatalf("same-day range should be valid: %v", err)
	}
	if r.End.Sub(r.Start) != 24*time.Hour-time.Microsecond {
		t.Errorf("unexpected span %v", r.End.Sub(r.Start))
	}
}

func TestNewDateRangeRejectsReversed(t *testing.T) {
	_, err := NewDateRange(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestDefaultDateRange(t *testing.T) {
	now := time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC)
	r := DefaultDateRange(now)
	if !r.Start.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", r.Start)
	}
	if !r.Contains(now) {
		t.Error("default range should contain now")
	}
}

func TestParseDateRange(t *testing.T) {
	now := time.Date(2024, 7, 15, 16, 0, 0, 0, time.UTC)

	r, err := ParseDateRange("2024-06-01", "2024-06-30", now)
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if want := time.Date(2024, 6, 30, 23, 59, 59, 999999000, time.UTC); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}

	r, err = ParseDateRange("", "", now)
	if err != nil {
		t.Fatalf("ParseDateRange defaults: %v", err)
	}
	if r != DefaultDateRange(now) {
		t.Errorf("expected default range, got %v", r)
	}

	if _, err := ParseDateRange("06/01/2024", "", now); err == nil {
		t.Error("expected error for malformed start")
	}
	if _, err := ParseDateRange("2024-07-02", "2024-07-01", now); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}
