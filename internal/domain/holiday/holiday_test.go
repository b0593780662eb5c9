package holiday

import (
	"testing"
	"time"
)

var sample = []Holiday{
	{ID: "h3", Name: "Christmas Day", Date: "2026-12-25"},
	{ID: "h1", Name: "New Year's Day", Date: "2026-01-01"},
	{ID: "h2", Name: "Workers' Day", Date: "2026-05-01T00:00:00Z"},
	{ID: "h4", Name: "Old Fixture", Date: "2025-12-25"},
	{ID: "h5", Name: "Broken", Date: "not-a-date"},
}

func TestForYear(t *testing.T) {
	got := ForYear(sample, 2026)
	if len(got) != 3 {
		t.Fatalf("expected 3 holidays in 2026, got %d", len(got))
	}
	if got[0].ID != "h1" || got[1].ID != "h2" || got[2].ID != "h3" {
		t.Fatalf("expected date order h1,h2,h3; got %v", got)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 1, 15, 30, 0, 0, time.UTC)
	got := Upcoming(sample, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming holidays, got %d", len(got))
	}
	if got[0].ID != "h2" {
		t.Fatalf("expected same-day holiday included first, got %v", got)
	}
}
