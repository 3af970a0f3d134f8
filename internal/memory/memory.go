package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"screentime/internal/core"
)

// Store is an in-memory entry store used as the dev backend and in
// handler tests. Aggregates are recomputed from the entry slice on each
// call, same as the SQLite queries.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries []core.Entry
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewSeeded returns a store preloaded with the demo dataset.
func NewSeeded() *Store {
	s := New()
	for _, e := range SampleEntries() {
		_, _ = s.Append(context.Background(), e)
	}
	return s
}

// SampleEntries is the demo dataset used for seeding.
func SampleEntries() []core.Entry {
	return []core.Entry{
		{Date: core.NewDate(2025, 11, 1), Category: "Study", Hours: 3.5, Remarks: "Online classes"},
		{Date: core.NewDate(2025, 11, 1), Category: "Social Media", Hours: 2.0, Remarks: "Instagram"},
		{Date: core.NewDate(2025, 11, 2), Category: "Gaming", Hours: 4.0, Remarks: "Weekend"},
		{Date: core.NewDate(2025, 11, 2), Category: "Study", Hours: 2.5, Remarks: "Homework"},
		{Date: core.NewDate(2025, 11, 3), Category: "Entertainment", Hours: 1.5, Remarks: "YouTube"},
		{Date: core.NewDate(2025, 11, 3), Category: "Social Media", Hours: 2.5, Remarks: "Chats"},
	}
}

// Append stores the entry and returns its assigned id.
func (s *Store) Append(_ context.Context, e core.Entry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	e.CreatedAt = time.Now().UTC()
	s.nextID++
	s.entries = append(s.entries, e)
	return e.ID, nil
}

// Delete removes an entry by id; missing ids yield (false, nil).
func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListEntries returns entries newest first, optionally range-filtered.
func (s *Store) ListEntries(_ context.Context, rng core.Range) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if rng.IsZero() || rng.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) DailyTotals(_ context.Context) ([]core.DailyTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.DailyTotalsOf(s.entries), nil
}

func (s *Store) CategoryTotals(_ context.Context) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.CategoryTotalsOf(s.entries), nil
}

func (s *Store) Statistics(_ context.Context) (core.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.StatisticsOf(s.entries), nil
}
