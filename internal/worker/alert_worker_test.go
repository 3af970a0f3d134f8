package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"screentime/internal/amqp"
	"screentime/internal/core"
	"screentime/internal/storage"
)

type fakeExporter struct {
	appended []core.Entry
	fail     bool
}

func (f *fakeExporter) AppendEntry(_ context.Context, e core.Entry) (string, error) {
	if f.fail {
		return "", errors.New("exporter down")
	}
	f.appended = append(f.appended, e)
	return "Screen Time!A2:D2", nil
}

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustAppend(t *testing.T, repo *storage.SQLiteRepository, date core.Date, category string, hours float64) int64 {
	t.Helper()
	id, err := repo.Append(context.Background(), core.Entry{
		Date:     date,
		Category: category,
		Hours:    hours,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	return id
}

func TestCheckDay(t *testing.T) {
	repo := newTestRepo(t)
	w := NewAlertWorker(repo, nil, 6.0, 10)
	ctx := context.Background()

	day := core.NewDate(2025, 11, 1)
	mustAppend(t, repo, day, "Study", 3.5)
	mustAppend(t, repo, day, "Social Media", 2.0)

	total, over, err := w.CheckDay(ctx, day)
	if err != nil {
		t.Fatalf("CheckDay: %v", err)
	}
	if total != 5.5 || over {
		t.Errorf("got total=%v over=%v, want 5.5 under threshold", total, over)
	}

	mustAppend(t, repo, day, "Gaming", 1.0)
	total, over, err = w.CheckDay(ctx, day)
	if err != nil {
		t.Fatalf("CheckDay: %v", err)
	}
	if total != 6.5 || !over {
		t.Errorf("got total=%v over=%v, want 6.5 over threshold", total, over)
	}
}

func TestHandleEntryEventExportsCreated(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewAlertWorker(repo, exporter, 6.0, 10)
	ctx := context.Background()

	day := core.NewDate(2025, 11, 2)
	id := mustAppend(t, repo, day, "Gaming", 4.0)

	msg := amqp.NewEntryEventMessage(id, amqp.ActionCreated, day.String())
	if err := w.HandleEntryEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEntryEvent: %v", err)
	}

	if len(exporter.appended) != 1 || exporter.appended[0].Category != "Gaming" {
		t.Fatalf("expected one exported Gaming entry, got %+v", exporter.appended)
	}

	// The entry should no longer be pending.
	pending, err := repo.PendingExportEntries(ctx, 10)
	if err != nil {
		t.Fatalf("PendingExportEntries: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending entries, got %d", len(pending))
	}
}

func TestHandleEntryEventDeletedSkipsExport(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewAlertWorker(repo, exporter, 6.0, 10)
	ctx := context.Background()

	msg := amqp.NewEntryEventMessage(99, amqp.ActionDeleted, "2025-11-02")
	if err := w.HandleEntryEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEntryEvent: %v", err)
	}
	if len(exporter.appended) != 0 {
		t.Errorf("delete event must not export, got %d appends", len(exporter.appended))
	}
}

func TestHandleEntryEventBadDate(t *testing.T) {
	repo := newTestRepo(t)
	w := NewAlertWorker(repo, nil, 6.0, 10)

	msg := amqp.NewEntryEventMessage(1, amqp.ActionCreated, "november 2nd")
	if err := w.HandleEntryEvent(context.Background(), msg); err == nil {
		t.Fatal("expected error for malformed entry date")
	}
}

func TestProcessPendingExports(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewAlertWorker(repo, exporter, 6.0, 10)
	ctx := context.Background()

	mustAppend(t, repo, core.NewDate(2025, 11, 1), "Study", 2.0)
	mustAppend(t, repo, core.NewDate(2025, 11, 2), "Gaming", 1.5)

	if err := w.ProcessPendingExports(ctx); err != nil {
		t.Fatalf("ProcessPendingExports: %v", err)
	}
	if len(exporter.appended) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(exporter.appended))
	}

	// Second pass is a no-op.
	if err := w.ProcessPendingExports(ctx); err != nil {
		t.Fatalf("second ProcessPendingExports: %v", err)
	}
	if len(exporter.appended) != 2 {
		t.Errorf("expected no further exports, got %d", len(exporter.appended))
	}
}

func TestProcessPendingExportsMarksErrors(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{fail: true}
	w := NewAlertWorker(repo, exporter, 6.0, 10)
	ctx := context.Background()

	id := mustAppend(t, repo, core.NewDate(2025, 11, 1), "Study", 2.0)

	if err := w.ProcessPendingExports(ctx); err != nil {
		t.Fatalf("ProcessPendingExports: %v", err)
	}

	// Marked as error, so no longer pending.
	pending, err := repo.PendingExportEntries(ctx, 10)
	if err != nil {
		t.Fatalf("PendingExportEntries: %v", err)
	}
	for _, e := range pending {
		if e.ID == id {
			t.Errorf("entry %d still pending after export failure", id)
		}
	}
}

func TestStartupExportCheckWithoutExporter(t *testing.T) {
	repo := newTestRepo(t)
	w := NewAlertWorker(repo, nil, 6.0, 10)

	mustAppend(t, repo, core.NewDate(2025, 11, 1), "Study", 2.0)
	if err := w.StartupExportCheck(context.Background()); err != nil {
		t.Fatalf("StartupExportCheck: %v", err)
	}
}
