package memory

import (
	"context"
	"math"
	"testing"

	"screentime/internal/core"
)

func TestAppendAssignsSequentialIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.Append(ctx, core.Entry{Date: core.NewDate(2025, 11, 1), Category: "Study", Hours: 1})
	if err != nil || id1 != 1 {
		t.Fatalf("first append: id=%d err=%v", id1, err)
	}
	id2, err := s.Append(ctx, core.Entry{Date: core.NewDate(2025, 11, 2), Category: "Gaming", Hours: 2})
	if err != nil || id2 != 2 {
		t.Fatalf("second append: id=%d err=%v", id2, err)
	}

	if _, err := s.Append(ctx, core.Entry{Date: core.NewDate(2025, 11, 1), Category: "", Hours: 1}); !core.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, _ := s.Append(ctx, core.Entry{Date: core.NewDate(2025, 11, 1), Category: "Study", Hours: 1})

	if removed, err := s.Delete(ctx, id); err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	if removed, err := s.Delete(ctx, id); err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
}

func TestListOrderAndRange(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	entries, err := s.ListEntries(ctx, core.Range{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("expected 6 seeded entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Date.After(prev.Date.Time) {
			t.Fatalf("entries not newest first at %d", i)
		}
		if cur.Date.Equal(prev.Date.Time) && cur.ID > prev.ID {
			t.Fatalf("same-day entries not id-descending at %d", i)
		}
	}

	ranged, err := s.ListEntries(ctx, core.Range{From: core.NewDate(2025, 11, 2), To: core.NewDate(2025, 11, 2)})
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 entries on Nov 2, got %d", len(ranged))
	}
}

func TestAggregatesMatchReducers(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	stats, err := s.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	daily, err := s.DailyTotals(ctx)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}

	var sum float64
	for _, d := range daily {
		sum += d.Hours
	}
	if math.Abs(sum-stats.TotalHours) > 1e-9 {
		t.Fatalf("daily sum %v != total %v", sum, stats.TotalHours)
	}
	if math.Abs(stats.AvgDailyHours-stats.TotalHours/float64(len(daily))) > 1e-9 {
		t.Fatalf("avg daily hours %v inconsistent", stats.AvgDailyHours)
	}
}
