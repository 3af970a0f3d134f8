package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"screentime/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "screentime.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedSample(t *testing.T, repo *SQLiteRepository) []int64 {
	t.Helper()
	ctx := context.Background()
	sample := []core.Entry{
		{Date: core.NewDate(2025, 11, 1), Category: "Study", Hours: 3.5, Remarks: "Online classes"},
		{Date: core.NewDate(2025, 11, 1), Category: "Social Media", Hours: 2.0},
		{Date: core.NewDate(2025, 11, 2), Category: "Gaming", Hours: 4.0, Remarks: "Weekend"},
	}
	ids := make([]int64, 0, len(sample))
	for _, e := range sample {
		id, err := repo.Append(ctx, e)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestAppendAndListEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ids := seedSample(t, repo)

	entries, err := repo.ListEntries(ctx, core.Range{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest first: date desc, id desc within the same day.
	if entries[0].ID != ids[2] || entries[1].ID != ids[1] || entries[2].ID != ids[0] {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[2].Remarks != "Online classes" {
		t.Fatalf("remarks not round-tripped: %q", entries[2].Remarks)
	}

	// Each appended entry appears exactly once.
	seen := map[int64]int{}
	for _, e := range entries {
		seen[e.ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Fatalf("entry %d appears %d times", id, seen[id])
		}
	}
}

func TestAppendRejectsInvalidInput(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cases := []core.Entry{
		{Date: core.NewDate(2025, 11, 1), Category: "Gaming", Hours: 25},
		{Date: core.NewDate(2025, 11, 1), Category: "", Hours: 1},
		{Category: "Gaming", Hours: 1},
	}
	for i, e := range cases {
		if _, err := repo.Append(ctx, e); !core.IsValidationError(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	// Nothing was persisted.
	entries, err := repo.ListEntries(ctx, core.Range{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(entries))
	}

	// Zero hours is accepted.
	if _, err := repo.Append(ctx, core.Entry{Date: core.NewDate(2025, 11, 1), Category: "Reading", Hours: 0}); err != nil {
		t.Fatalf("zero hours rejected: %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ids := seedSample(t, repo)

	removed, err := repo.Delete(ctx, ids[0])
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}

	// Second delete of the same id signals false without error.
	removed, err = repo.Delete(ctx, ids[0])
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}

	entries, err := repo.ListEntries(ctx, core.Range{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range entries {
		if e.ID == ids[0] {
			t.Fatalf("deleted entry still listed")
		}
	}
}

func TestListEntriesInRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedSample(t, repo)

	// Inclusive bounds keep Nov 1 only.
	rng := core.Range{From: core.NewDate(2025, 11, 1), To: core.NewDate(2025, 11, 1)}
	entries, err := repo.ListEntries(ctx, rng)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries on Nov 1, got %d", len(entries))
	}

	// Open lower bound.
	entries, err = repo.ListEntries(ctx, core.Range{To: core.NewDate(2025, 11, 1)})
	if err != nil {
		t.Fatalf("list open range: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries up to Nov 1, got %d", len(entries))
	}
}

func TestAggregates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedSample(t, repo)

	daily, err := repo.DailyTotals(ctx)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d", len(daily))
	}
	if daily[0].Date.String() != "2025-11-01" || math.Abs(daily[0].Hours-5.5) > 1e-9 {
		t.Fatalf("unexpected first day: %+v", daily[0])
	}
	if daily[1].Date.String() != "2025-11-02" || math.Abs(daily[1].Hours-4.0) > 1e-9 {
		t.Fatalf("unexpected second day: %+v", daily[1])
	}

	cats, err := repo.CategoryTotals(ctx)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(cats) != 3 || cats[0].Category != "Gaming" {
		t.Fatalf("unexpected category order: %+v", cats)
	}

	stats, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalEntries != 3 {
		t.Fatalf("total entries = %d", stats.TotalEntries)
	}
	if math.Abs(stats.TotalHours-9.5) > 1e-9 {
		t.Fatalf("total hours = %v", stats.TotalHours)
	}
	if math.Abs(stats.AvgDailyHours-4.75) > 1e-9 {
		t.Fatalf("avg daily hours = %v", stats.AvgDailyHours)
	}
	if math.Abs(stats.MaxDailyHours-5.5) > 1e-9 {
		t.Fatalf("max daily hours = %v", stats.MaxDailyHours)
	}
	if stats.FirstDate.String() != "2025-11-01" || stats.LastDate.String() != "2025-11-02" {
		t.Fatalf("unexpected date range: %s .. %s", stats.FirstDate, stats.LastDate)
	}

	// Daily totals sum equals the statistics total.
	var sum float64
	for _, d := range daily {
		sum += d.Hours
	}
	if math.Abs(sum-stats.TotalHours) > 1e-9 {
		t.Fatalf("daily sum %v != total %v", sum, stats.TotalHours)
	}

	total, err := repo.DayTotal(ctx, core.NewDate(2025, 11, 1))
	if err != nil || math.Abs(total-5.5) > 1e-9 {
		t.Fatalf("day total: %v err=%v", total, err)
	}
}

func TestStatisticsEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	stats, err := repo.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalEntries != 0 || stats.TotalHours != 0 || stats.AvgDailyHours != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if !stats.FirstDate.IsZero() || !stats.LastDate.IsZero() {
		t.Fatalf("expected zero dates")
	}
}

func TestExportPipelineMarks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ids := seedSample(t, repo)

	pending, err := repo.PendingExportEntries(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending, got %d", len(pending))
	}

	if err := repo.MarkExported(ctx, ids[0]); err != nil {
		t.Fatalf("mark exported: %v", err)
	}
	if err := repo.MarkExportError(ctx, ids[1]); err != nil {
		t.Fatalf("mark export error: %v", err)
	}

	pending, err = repo.PendingExportEntries(ctx, 10)
	if err != nil {
		t.Fatalf("pending after marks: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != ids[2] {
		t.Fatalf("unexpected pending set: %+v", pending)
	}
}
