// Package worker consumes entry events, raises threshold alerts, and
// exports logged usage to Google Sheets.
package worker

import (
	"context"
	"fmt"

	"screentime/internal/amqp"
	"screentime/internal/core"
	applog "screentime/internal/log"
	"screentime/internal/storage"
)

// EntryExporter writes a single entry to an external sink, returning a
// reference to where it landed.
type EntryExporter interface {
	AppendEntry(ctx context.Context, e core.Entry) (string, error)
}

// AlertWorker reacts to entry events: it checks the affected day
// against the usage threshold and pushes new entries to the exporter.
type AlertWorker struct {
	storage        *storage.SQLiteRepository
	exporter       EntryExporter
	thresholdHours float64
	batchSize      int
	logger         *applog.Logger
}

func NewAlertWorker(storage *storage.SQLiteRepository, exporter EntryExporter, thresholdHours float64, batchSize int) *AlertWorker {
	return &AlertWorker{
		storage:        storage,
		exporter:       exporter,
		thresholdHours: thresholdHours,
		batchSize:      batchSize,
		logger:         applog.Default().WithComponent(applog.ComponentWorker),
	}
}

// HandleEntryEvent processes a single entry event from AMQP.
func (w *AlertWorker) HandleEntryEvent(ctx context.Context, msg *amqp.EntryEventMessage) error {
	w.logger.InfoContext(ctx, "Processing entry event",
		applog.FieldEntryID, msg.ID,
		"action", msg.Action,
		applog.FieldEntryDate, msg.EntryDate)

	date, err := core.ParseDate(msg.EntryDate)
	if err != nil {
		return fmt.Errorf("parse entry date %q: %w", msg.EntryDate, err)
	}

	if _, _, err := w.CheckDay(ctx, date); err != nil {
		return fmt.Errorf("check day total: %w", err)
	}

	// Deleted entries have nothing left to export.
	if msg.Action == amqp.ActionCreated && w.exporter != nil {
		if err := w.exportEntry(ctx, msg.ID); err != nil {
			return fmt.Errorf("export entry: %w", err)
		}
	}

	return nil
}

// CheckDay recomputes the day's total and logs an alert when it
// exceeds the threshold. Returns the total and whether it is over.
func (w *AlertWorker) CheckDay(ctx context.Context, date core.Date) (float64, bool, error) {
	total, err := w.storage.DayTotal(ctx, date)
	if err != nil {
		return 0, false, err
	}

	over := total > w.thresholdHours
	if over {
		w.logger.WarnContext(ctx, "Daily usage above threshold",
			applog.FieldEntryDate, date.String(),
			applog.FieldDayTotal, total,
			applog.FieldThreshold, w.thresholdHours)
	} else {
		w.logger.InfoContext(ctx, "Daily usage within threshold",
			applog.FieldEntryDate, date.String(),
			applog.FieldDayTotal, total,
			applog.FieldThreshold, w.thresholdHours)
	}

	return total, over, nil
}

// ProcessPendingExports pushes entries that haven't been exported yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *AlertWorker) ProcessPendingExports(ctx context.Context) error {
	if w.exporter == nil {
		return nil
	}

	pending, err := w.storage.PendingExportEntries(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending entries: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, entry := range pending {
		if err := w.exportEntry(ctx, entry.ID); err != nil {
			w.logger.ErrorContext(ctx, "Failed to export entry", applog.FieldEntryID, entry.ID, applog.FieldError, err)
			continue
		}
	}

	return nil
}

// StartupExportCheck drains a larger pending batch at worker startup,
// to recover from missed messages or worker downtime.
func (w *AlertWorker) StartupExportCheck(ctx context.Context) error {
	if w.exporter == nil {
		w.logger.InfoContext(ctx, "No exporter configured, skipping startup export check")
		return nil
	}

	pending, err := w.storage.PendingExportEntries(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending entries for startup check: %w", err)
	}

	if len(pending) == 0 {
		w.logger.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	w.logger.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, entry := range pending {
		if err := w.exportEntry(ctx, entry.ID); err != nil {
			w.logger.ErrorContext(ctx, "Failed to export entry during startup",
				applog.FieldEntryID, entry.ID, applog.FieldError, err)
			errorCount++
			continue
		}
		successCount++
	}

	w.logger.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *AlertWorker) exportEntry(ctx context.Context, id int64) error {
	entry, err := w.storage.GetEntry(ctx, id)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "Failed to mark export error", applog.FieldEntryID, id, applog.FieldError, markErr)
		}
		return fmt.Errorf("get entry from storage: %w", err)
	}

	ref, err := w.exporter.AppendEntry(ctx, entry)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "Failed to mark export error", applog.FieldEntryID, id, applog.FieldError, markErr)
		}
		return fmt.Errorf("append to exporter: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		// The export itself worked, so don't fail the message.
		w.logger.ErrorContext(ctx, "Failed to mark as exported", applog.FieldEntryID, id, applog.FieldError, err)
	}

	w.logger.InfoContext(ctx, "Exported entry",
		applog.FieldEntryID, id,
		applog.FieldSheetsRef, ref,
		applog.FieldEntryDate, entry.Date.String(),
		applog.FieldCategory, entry.Category)

	return nil
}
