package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"screentime/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ports.EntryWriter. Validation happens before any
// statement touches the database.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Entry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	row, err := r.queries.CreateEntry(ctx, CreateEntryParams{
		EntryDate: e.Date.String(),
		Category:  e.Category,
		Hours:     e.Hours,
		Remarks:   nullString(e.Remarks),
	})
	if err != nil {
		return 0, fmt.Errorf("create entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", row.ID,
		"date", row.EntryDate,
		"category", row.Category,
		"hours", row.Hours)

	return row.ID, nil
}

// Delete implements ports.EntryDeleter. A missing id yields (false, nil).
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.queries.DeleteEntry(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	if affected == 0 {
		return false, nil
	}

	slog.InfoContext(ctx, "Entry deleted from SQLite", "id", id)
	return true, nil
}

// GetEntry retrieves a single entry by id.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row, err := r.queries.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Entry{}, fmt.Errorf("entry %d not found: %w", id, err)
		}
		return core.Entry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return toEntry(row)
}

// ListEntries implements ports.EntryLister.
func (r *SQLiteRepository) ListEntries(ctx context.Context, rng core.Range) ([]core.Entry, error) {
	var (
		rows []UsageLog
		err  error
	)
	if rng.IsZero() {
		rows, err = r.queries.ListEntries(ctx)
	} else {
		rows, err = r.queries.ListEntriesInRange(ctx, rangeParams(rng))
	}
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := toEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DailyTotals implements ports.ReportReader, ordered by date ascending.
func (r *SQLiteRepository) DailyTotals(ctx context.Context) ([]core.DailyTotal, error) {
	rows, err := r.queries.GetDailyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get daily totals: %w", err)
	}

	out := make([]core.DailyTotal, 0, len(rows))
	for _, row := range rows {
		d, err := core.ParseDate(row.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("daily totals: bad date %q: %w", row.EntryDate, err)
		}
		out = append(out, core.DailyTotal{Date: d, Hours: row.TotalHours})
	}
	return out, nil
}

// CategoryTotals implements ports.ReportReader, ordered by total descending.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := r.queries.GetCategoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get category totals: %w", err)
	}

	out := make([]core.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.CategoryTotal{Category: row.Category, Hours: row.TotalHours})
	}
	return out, nil
}

// Statistics implements ports.ReportReader. An empty table yields the
// zero value without error.
func (r *SQLiteRepository) Statistics(ctx context.Context) (core.Statistics, error) {
	row, err := r.queries.GetStatistics(ctx)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("get statistics: %w", err)
	}

	stats := core.Statistics{
		TotalHours:    row.TotalHours,
		TotalEntries:  int(row.TotalEntries),
		AvgDailyHours: row.AvgDailyHours,
		MaxDailyHours: row.MaxDailyHours,
	}
	if row.FirstDate.Valid {
		if stats.FirstDate, err = core.ParseDate(row.FirstDate.String); err != nil {
			return core.Statistics{}, fmt.Errorf("statistics: bad first date %q: %w", row.FirstDate.String, err)
		}
	}
	if row.LastDate.Valid {
		if stats.LastDate, err = core.ParseDate(row.LastDate.String); err != nil {
			return core.Statistics{}, fmt.Errorf("statistics: bad last date %q: %w", row.LastDate.String, err)
		}
	}
	return stats, nil
}

// DayTotal returns the summed hours for a single day.
func (r *SQLiteRepository) DayTotal(ctx context.Context, d core.Date) (float64, error) {
	total, err := r.queries.GetDayTotal(ctx, d.String())
	if err != nil {
		return 0, fmt.Errorf("get day total for %s: %w", d, err)
	}
	return total, nil
}

// PendingExportEntries returns entries not yet pushed to the export sheet.
func (r *SQLiteRepository) PendingExportEntries(ctx context.Context, limit int) ([]core.Entry, error) {
	rows, err := r.queries.GetPendingExportEntries(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending export entries: %w", err)
	}

	entries := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := toEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarkExported marks an entry as successfully exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.queries.MarkEntryExported(ctx, id); err != nil {
		return fmt.Errorf("mark entry exported: %w", err)
	}
	slog.InfoContext(ctx, "Entry marked as exported", "id", id)
	return nil
}

// MarkExportError marks an entry as having failed export.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if err := r.queries.MarkEntryExportError(ctx, id); err != nil {
		return fmt.Errorf("mark entry export error: %w", err)
	}
	slog.WarnContext(ctx, "Entry marked with export error", "id", id)
	return nil
}

func toEntry(row UsageLog) (core.Entry, error) {
	d, err := core.ParseDate(row.EntryDate)
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry %d: bad date %q: %w", row.ID, row.EntryDate, err)
	}
	e := core.Entry{
		ID:       row.ID,
		Date:     d,
		Category: row.Category,
		Hours:    row.Hours,
	}
	if row.Remarks.Valid {
		e.Remarks = row.Remarks.String
	}
	if row.CreatedAt.Valid {
		e.CreatedAt = row.CreatedAt.Time
	}
	return e, nil
}

func rangeParams(rng core.Range) ListEntriesInRangeParams {
	p := ListEntriesInRangeParams{FromDate: "0000-00-00", ToDate: "9999-12-31"}
	if !rng.From.IsZero() {
		p.FromDate = rng.From.String()
	}
	if !rng.To.IsZero() {
		p.ToDate = rng.To.String()
	}
	return p
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
