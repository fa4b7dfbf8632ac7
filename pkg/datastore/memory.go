package datastore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	admin "github.com/refugehq/crisis-admin/components/admin"
)

// MemoryStore is an in-memory admin.Store used by demos, seeds, and tests.
// Rows keep insertion order; ids and timestamps are assigned on insert the
// way the remote store would.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]admin.Record
	now         func() time.Time
}

var _ admin.Store = (*MemoryStore)(nil)

// MemoryOption customizes the store.
type MemoryOption func(*MemoryStore)

// WithClock overrides the timestamp source, useful in tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore builds an empty store.
func NewMemoryStore(options ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		collections: make(map[string][]admin.Record),
		now:         time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Query returns cloned rows matching the query.
func (s *MemoryStore) Query(ctx context.Context, q admin.Query) ([]admin.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []admin.Record
	for _, row := range s.collections[q.Collection] {
		if matchesFilters(row, q.Filters) {
			out = append(out, cloneRecord(row))
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a := fmt.Sprint(out[i][q.OrderBy])
			b := fmt.Sprint(out[j][q.OrderBy])
			if q.Descending {
				return a > b
			}
			return a < b
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Count returns the number of rows matching the filters.
func (s *MemoryStore) Count(ctx context.Context, collection string, filters ...admin.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, row := range s.collections[collection] {
		if matchesFilters(row, filters) {
			count++
		}
	}
	return count, nil
}

// Insert stores a cloned record, assigning id and created_at when absent.
func (s *MemoryStore) Insert(ctx context.Context, collection string, record admin.Record) (admin.Record, error) {
	row := cloneRecord(record)
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = s.now().UTC().Format(time.RFC3339)
	}
	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], row)
	s.mu.Unlock()
	return cloneRecord(row), nil
}

// Delete removes a row by id, reporting admin.ErrNotFound for unknown ids.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.collections[collection]
	for i, row := range rows {
		if fmt.Sprint(row["id"]) == id {
			s.collections[collection] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("datastore: %s/%s: %w", collection, id, admin.ErrNotFound)
}

func matchesFilters(row admin.Record, filters []admin.Filter) bool {
	for _, f := range filters {
		value, present := row[f.Field]
		switch f.Op {
		case admin.FilterEq:
			if !present || fmt.Sprint(value) != fmt.Sprint(f.Value) {
				return false
			}
		case admin.FilterGTE:
			// Values compare as strings; RFC 3339 timestamps order correctly
			// that way, which is the only range filter in use.
			if !present || strings.Compare(fmt.Sprint(value), fmt.Sprint(f.Value)) < 0 {
				return false
			}
		case admin.FilterNotNull:
			if !present || value == nil {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func cloneRecord(record admin.Record) admin.Record {
	out := make(admin.Record, len(record))
	for key, value := range record {
		out[key] = value
	}
	return out
}
