package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"screentime/internal/core"
	"screentime/internal/storage"
)

// EventPublisher publishes entry lifecycle events to a message broker.
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, id int64, entryDate string) error
	PublishEntryDeleted(ctx context.Context, id int64, entryDate string) error
	Close() error
}

// EntryService wraps the repository with event publishing. Publish
// failures are logged but never fail the storage operation.
type EntryService struct {
	repo      *storage.SQLiteRepository
	publisher EventPublisher
}

func NewEntryService(repo *storage.SQLiteRepository, publisher EventPublisher) *EntryService {
	return &EntryService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EntryService) Append(ctx context.Context, entry core.Entry) (int64, error) {
	id, err := s.repo.Append(ctx, entry)
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEntryCreated(ctx, id, entry.Date.String()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish entry created event",
				"error", err,
				"id", id)
		}
	}

	return id, nil
}

func (s *EntryService) Delete(ctx context.Context, id int64) (bool, error) {
	// Look up the entry first so the deleted event can carry its date.
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEntryDeleted(ctx, id, entry.Date.String()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish entry deleted event",
				"error", err,
				"id", id)
		}
	}

	return true, nil
}

func (s *EntryService) ListEntries(ctx context.Context, r core.Range) ([]core.Entry, error) {
	return s.repo.ListEntries(ctx, r)
}

func (s *EntryService) DailyTotals(ctx context.Context) ([]core.DailyTotal, error) {
	return s.repo.DailyTotals(ctx)
}

func (s *EntryService) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	return s.repo.CategoryTotals(ctx)
}

func (s *EntryService) Statistics(ctx context.Context) (core.Statistics, error) {
	return s.repo.Statistics(ctx)
}

func (s *EntryService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
