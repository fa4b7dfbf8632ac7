package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// fakeStore is the in-package Store used by the unit tests. It mirrors the
// remote contract closely enough to exercise filters, ordering, and counts,
// and can fail per collection to drive error paths.
type fakeStore struct {
	mu     sync.Mutex
	rows   map[string][]Record
	fail   map[string]error
	nextID int
	now    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows: map[string][]Record{},
		fail: map[string]error{},
		now:  time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) failWith(collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[collection] = err
}

func (s *fakeStore) seed(collection string, rec Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(collection, rec)
}

func (s *fakeStore) append(collection string, rec Record) Record {
	row := Record{}
	for k, v := range rec {
		row[k] = v
	}
	if _, ok := row["id"]; !ok {
		s.nextID++
		row["id"] = fmt.Sprintf("%s-%d", collection, s.nextID)
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = s.now.Format(time.RFC3339)
	}
	s.rows[collection] = append(s.rows[collection], row)
	return row
}

func (s *fakeStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[collection])
}

func (s *fakeStore) Query(_ context.Context, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[q.Collection]; err != nil {
		return nil, err
	}
	var out []Record
	for _, row := range s.rows[q.Collection] {
		if fakeMatches(row, q.Filters) {
			out = append(out, row)
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

func (s *fakeStore) Count(_ context.Context, collection string, filters ...Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[collection]; err != nil {
		return 0, err
	}
	count := 0
	for _, row := range s.rows[collection] {
		if fakeMatches(row, filters) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) Insert(_ context.Context, collection string, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[collection]; err != nil {
		return nil, err
	}
	return s.append(collection, record), nil
}

func (s *fakeStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[collection]; err != nil {
		return err
	}
	rows := s.rows[collection]
	for i, row := range rows {
		if fmt.Sprint(row["id"]) == id {
			s.rows[collection] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fake: %s/%s: %w", collection, id, ErrNotFound)
}

func fakeMatches(row Record, filters []Filter) bool {
	for _, f := range filters {
		value, present := row[f.Field]
		switch f.Op {
		case FilterEq:
			if !present || fmt.Sprint(value) != fmt.Sprint(f.Value) {
				return false
			}
		case FilterGTE:
			if !present || strings.Compare(fmt.Sprint(value), fmt.Sprint(f.Value)) < 0 {
				return false
			}
		case FilterNotNull:
			if !present || value == nil {
				return false
			}
		default:
			return false
		}
	}
	return true
}
