package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// UsageLog is a row of the usage_log table.
type UsageLog struct {
	ID           int64
	EntryDate    string
	Category     string
	Hours        float64
	Remarks      sql.NullString
	CreatedAt    sql.NullTime
	ExportStatus string
}

// DailyTotalRow is one bucket of the per-day aggregation.
type DailyTotalRow struct {
	EntryDate  string
	TotalHours float64
}

// CategoryTotalRow is one bucket of the per-category aggregation.
type CategoryTotalRow struct {
	Category   string
	TotalHours float64
}

// StatisticsRow is the single-row overall summary.
type StatisticsRow struct {
	TotalHours    float64
	TotalEntries  int64
	AvgDailyHours float64
	MaxDailyHours float64
	FirstDate     sql.NullString
	LastDate      sql.NullString
}

type CreateEntryParams struct {
	EntryDate string
	Category  string
	Hours     float64
	Remarks   sql.NullString
}

const entryColumns = `id, entry_date, category, hours, remarks, created_at, export_status`

const createEntry = `
INSERT INTO usage_log (entry_date, category, hours, remarks)
VALUES (?, ?, ?, ?)
RETURNING ` + entryColumns

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (UsageLog, error) {
	row := q.db.QueryRowContext(ctx, createEntry,
		arg.EntryDate, arg.Category, arg.Hours, arg.Remarks)
	var e UsageLog
	err := row.Scan(&e.ID, &e.EntryDate, &e.Category, &e.Hours, &e.Remarks, &e.CreatedAt, &e.ExportStatus)
	return e, err
}

const deleteEntry = `DELETE FROM usage_log WHERE id = ?`

func (q *Queries) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEntry, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getEntry = `SELECT ` + entryColumns + ` FROM usage_log WHERE id = ?`

func (q *Queries) GetEntry(ctx context.Context, id int64) (UsageLog, error) {
	row := q.db.QueryRowContext(ctx, getEntry, id)
	var e UsageLog
	err := row.Scan(&e.ID, &e.EntryDate, &e.Category, &e.Hours, &e.Remarks, &e.CreatedAt, &e.ExportStatus)
	return e, err
}

const listEntries = `
SELECT ` + entryColumns + `
FROM usage_log
ORDER BY entry_date DESC, id DESC`

func (q *Queries) ListEntries(ctx context.Context) ([]UsageLog, error) {
	rows, err := q.db.QueryContext(ctx, listEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const listEntriesInRange = `
SELECT ` + entryColumns + `
FROM usage_log
WHERE entry_date >= ? AND entry_date <= ?
ORDER BY entry_date DESC, id DESC`

type ListEntriesInRangeParams struct {
	FromDate string
	ToDate   string
}

func (q *Queries) ListEntriesInRange(ctx context.Context, arg ListEntriesInRangeParams) ([]UsageLog, error) {
	rows, err := q.db.QueryContext(ctx, listEntriesInRange, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const getDailyTotals = `
SELECT entry_date, SUM(hours) AS total_hours
FROM usage_log
GROUP BY entry_date
ORDER BY entry_date`

func (q *Queries) GetDailyTotals(ctx context.Context) ([]DailyTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, getDailyTotals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DailyTotalRow
	for rows.Next() {
		var r DailyTotalRow
		if err := rows.Scan(&r.EntryDate, &r.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const getCategoryTotals = `
SELECT category, SUM(hours) AS total_hours
FROM usage_log
GROUP BY category
ORDER BY total_hours DESC, category`

func (q *Queries) GetCategoryTotals(ctx context.Context) ([]CategoryTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, getCategoryTotals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotalRow
	for rows.Next() {
		var r CategoryTotalRow
		if err := rows.Scan(&r.Category, &r.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// The average is taken over per-day sums so that a day with many short
// entries weighs the same as a day with one long entry.
const getStatistics = `
SELECT
    COALESCE(SUM(hours), 0)  AS total_hours,
    COUNT(*)                 AS total_entries,
    COALESCE((SELECT AVG(day_total)
              FROM (SELECT SUM(hours) AS day_total
                    FROM usage_log
                    GROUP BY entry_date)), 0) AS avg_daily_hours,
    COALESCE((SELECT MAX(day_total)
              FROM (SELECT SUM(hours) AS day_total
                    FROM usage_log
                    GROUP BY entry_date)), 0) AS max_daily_hours,
    MIN(entry_date)          AS first_date,
    MAX(entry_date)          AS last_date
FROM usage_log`

func (q *Queries) GetStatistics(ctx context.Context) (StatisticsRow, error) {
	row := q.db.QueryRowContext(ctx, getStatistics)
	var s StatisticsRow
	err := row.Scan(&s.TotalHours, &s.TotalEntries, &s.AvgDailyHours, &s.MaxDailyHours, &s.FirstDate, &s.LastDate)
	return s, err
}

const getDayTotal = `
SELECT COALESCE(SUM(hours), 0)
FROM usage_log
WHERE entry_date = ?`

func (q *Queries) GetDayTotal(ctx context.Context, entryDate string) (float64, error) {
	row := q.db.QueryRowContext(ctx, getDayTotal, entryDate)
	var total float64
	err := row.Scan(&total)
	return total, err
}

const getPendingExportEntries = `
SELECT ` + entryColumns + `
FROM usage_log
WHERE export_status = 'pending'
ORDER BY id
LIMIT ?`

func (q *Queries) GetPendingExportEntries(ctx context.Context, limit int64) ([]UsageLog, error) {
	rows, err := q.db.QueryContext(ctx, getPendingExportEntries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const markEntryExported = `UPDATE usage_log SET export_status = 'exported' WHERE id = ?`

func (q *Queries) MarkEntryExported(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markEntryExported, id)
	return err
}

const markEntryExportError = `UPDATE usage_log SET export_status = 'error' WHERE id = ?`

func (q *Queries) MarkEntryExportError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markEntryExportError, id)
	return err
}

func scanEntries(rows *sql.Rows) ([]UsageLog, error) {
	var out []UsageLog
	for rows.Next() {
		var e UsageLog
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Category, &e.Hours, &e.Remarks, &e.CreatedAt, &e.ExportStatus); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
