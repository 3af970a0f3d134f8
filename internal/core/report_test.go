package core

import (
	"math"
	"testing"
)

// sampleEntries is the worked example from the original dataset:
// two entries on Nov 1, one on Nov 2.
func sampleEntries() []Entry {
	return []Entry{
		{ID: 1, Date: NewDate(2025, 11, 1), Category: "Study", Hours: 3.5},
		{ID: 2, Date: NewDate(2025, 11, 1), Category: "Social Media", Hours: 2.0},
		{ID: 3, Date: NewDate(2025, 11, 2), Category: "Gaming", Hours: 4.0},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDailyTotalsOf(t *testing.T) {
	daily := DailyTotalsOf(sampleEntries())
	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d", len(daily))
	}
	if daily[0].Date.String() != "2025-11-01" || !almostEqual(daily[0].Hours, 5.5) {
		t.Fatalf("unexpected first day: %+v", daily[0])
	}
	if daily[1].Date.String() != "2025-11-02" || !almostEqual(daily[1].Hours, 4.0) {
		t.Fatalf("unexpected second day: %+v", daily[1])
	}
}

func TestCategoryTotalsOf(t *testing.T) {
	cats := CategoryTotalsOf(sampleEntries())
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}
	// Descending by total hours.
	if cats[0].Category != "Gaming" || cats[1].Category != "Study" || cats[2].Category != "Social Media" {
		t.Fatalf("unexpected order: %+v", cats)
	}
}

func TestStatisticsOf(t *testing.T) {
	stats := StatisticsOf(sampleEntries())
	if stats.TotalEntries != 3 {
		t.Fatalf("total entries = %d", stats.TotalEntries)
	}
	if !almostEqual(stats.TotalHours, 9.5) {
		t.Fatalf("total hours = %v", stats.TotalHours)
	}
	// Mean of per-day sums (5.5+4.0)/2, not mean of raw entries.
	if !almostEqual(stats.AvgDailyHours, 4.75) {
		t.Fatalf("avg daily hours = %v", stats.AvgDailyHours)
	}
	// Heaviest single day, again over per-day sums.
	if !almostEqual(stats.MaxDailyHours, 5.5) {
		t.Fatalf("max daily hours = %v", stats.MaxDailyHours)
	}
	if stats.FirstDate.String() != "2025-11-01" || stats.LastDate.String() != "2025-11-02" {
		t.Fatalf("unexpected date range: %s .. %s", stats.FirstDate, stats.LastDate)
	}

	// Daily totals must sum to statistics total.
	var sum float64
	for _, d := range DailyTotalsOf(sampleEntries()) {
		sum += d.Hours
	}
	if !almostEqual(sum, stats.TotalHours) {
		t.Fatalf("daily sum %v != total %v", sum, stats.TotalHours)
	}
}

func TestStatisticsOfEmpty(t *testing.T) {
	stats := StatisticsOf(nil)
	if stats.TotalEntries != 0 || stats.TotalHours != 0 || stats.AvgDailyHours != 0 || stats.MaxDailyHours != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if !stats.FirstDate.IsZero() || !stats.LastDate.IsZero() {
		t.Fatalf("expected zero dates")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: NewDate(2025, 11, 1), To: NewDate(2025, 11, 30)}
	if !r.Contains(NewDate(2025, 11, 1)) || !r.Contains(NewDate(2025, 11, 30)) {
		t.Fatalf("range bounds should be inclusive")
	}
	if r.Contains(NewDate(2025, 10, 31)) || r.Contains(NewDate(2025, 12, 1)) {
		t.Fatalf("out-of-range date accepted")
	}
	open := Range{From: NewDate(2025, 11, 15)}
	if !open.Contains(NewDate(2026, 1, 1)) {
		t.Fatalf("open upper bound should accept later dates")
	}
}
