package ports

import (
	"context"

	"screentime/internal/core"
)

// Ports for outbound adapters. The HTTP handlers and CLI only ever see
// these interfaces; the backend factory decides what sits behind them.
type (
	EntryWriter interface {
		// Append validates and persists an entry, returning its new id.
		Append(ctx context.Context, e core.Entry) (int64, error)
	}

	EntryDeleter interface {
		// Delete removes an entry by id. A missing id is not an error;
		// removed reports whether a row was actually deleted.
		Delete(ctx context.Context, id int64) (removed bool, err error)
	}

	EntryLister interface {
		// ListEntries returns entries newest first, optionally filtered
		// to an inclusive date range.
		ListEntries(ctx context.Context, r core.Range) ([]core.Entry, error)
	}

	// ReportReader provides the aggregate views, recomputed on each call.
	ReportReader interface {
		DailyTotals(ctx context.Context) ([]core.DailyTotal, error)
		CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error)
		Statistics(ctx context.Context) (core.Statistics, error)
	}
)
