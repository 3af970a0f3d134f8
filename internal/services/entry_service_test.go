package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"screentime/internal/core"
	"screentime/internal/storage"
)

type recordingPublisher struct {
	created []int64
	deleted []int64
	fail    bool
	closed  bool
}

func (p *recordingPublisher) PublishEntryCreated(_ context.Context, id int64, _ string) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.created = append(p.created, id)
	return nil
}

func (p *recordingPublisher) PublishEntryDeleted(_ context.Context, id int64, _ string) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func newTestService(t *testing.T, pub EventPublisher) *EntryService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewEntryService(repo, pub)
}

func testEntry(hours float64) core.Entry {
	return core.Entry{
		Date:     core.NewDate(2025, 11, 1),
		Category: "Study",
		Hours:    hours,
	}
}

func TestAppendPublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub)
	ctx := context.Background()

	id, err := svc.Append(ctx, testEntry(2.5))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(pub.created) != 1 || pub.created[0] != id {
		t.Errorf("expected created event for id %d, got %v", id, pub.created)
	}
}

func TestAppendSurvivesPublishFailure(t *testing.T) {
	pub := &recordingPublisher{fail: true}
	svc := newTestService(t, pub)
	ctx := context.Background()

	id, err := svc.Append(ctx, testEntry(2.5))
	if err != nil {
		t.Fatalf("Append should not fail on publish error: %v", err)
	}

	entries, err := svc.ListEntries(ctx, core.Range{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != id {
		t.Errorf("entry %d not persisted, got %+v", id, entries)
	}
}

func TestAppendRejectsInvalidEntry(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub)

	if _, err := svc.Append(context.Background(), testEntry(30)); err == nil {
		t.Fatal("expected validation error for 30h entry")
	}
	if len(pub.created) != 0 {
		t.Error("invalid entry must not publish an event")
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub)
	ctx := context.Background()

	id, err := svc.Append(ctx, testEntry(2.5))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	removed, err := svc.Delete(ctx, id)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != id {
		t.Errorf("expected deleted event for id %d, got %v", id, pub.deleted)
	}
}

func TestDeleteMissingIDIsNotAnError(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub)

	removed, err := svc.Delete(context.Background(), 12345)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Error("removed should be false for a missing id")
	}
	if len(pub.deleted) != 0 {
		t.Error("missing id must not publish an event")
	}
}

func TestNilPublisher(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	id, err := svc.Append(ctx, testEntry(1.0))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestClosePropagates(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(t, pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed {
		t.Error("Close must close the publisher")
	}
}
