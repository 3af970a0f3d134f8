package adapters

import (
	"context"

	"screentime/internal/core"
	"screentime/internal/services"
	"screentime/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and EntryService to the ports
// interfaces, so HTTP handlers and CLI commands work unchanged against
// the SQLite + AMQP backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.EntryService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.EntryService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// Append implements ports.EntryWriter; creation goes through the
// service so the event gets published.
func (a *SQLiteAdapter) Append(ctx context.Context, e core.Entry) (int64, error) {
	return a.service.Append(ctx, e)
}

// Delete implements ports.EntryDeleter.
func (a *SQLiteAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	return a.service.Delete(ctx, id)
}

// ListEntries implements ports.EntryLister.
func (a *SQLiteAdapter) ListEntries(ctx context.Context, r core.Range) ([]core.Entry, error) {
	return a.storage.ListEntries(ctx, r)
}

// DailyTotals implements ports.ReportReader.
func (a *SQLiteAdapter) DailyTotals(ctx context.Context) ([]core.DailyTotal, error) {
	return a.storage.DailyTotals(ctx)
}

// CategoryTotals implements ports.ReportReader.
func (a *SQLiteAdapter) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	return a.storage.CategoryTotals(ctx)
}

// Statistics implements ports.ReportReader.
func (a *SQLiteAdapter) Statistics(ctx context.Context) (core.Statistics, error) {
	return a.storage.Statistics(ctx)
}
