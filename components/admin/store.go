package admin

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is a raw store row. Rows decode into typed structs through
// decodeRecord; managers never reach into maps directly.
type Record map[string]any

// FilterOp enumerates the comparison operators the store contract supports.
type FilterOp string

const (
	// FilterEq matches rows whose field equals the value.
	FilterEq FilterOp = "eq"
	// FilterGTE matches rows whose field is greater than or equal to the value.
	FilterGTE FilterOp = "gte"
	// FilterNotNull matches rows whose field is present and non-null.
	FilterNotNull FilterOp = "not_null"
)

// Filter is one equality/range predicate applied server-side.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: FilterEq, Value: value}
}

// GTE builds a greater-or-equal filter.
func GTE(field string, value any) Filter {
	return Filter{Field: field, Op: FilterGTE, Value: value}
}

// NotNull builds a presence filter.
func NotNull(field string) Filter {
	return Filter{Field: field, Op: FilterNotNull}
}

// Query describes a single read against a collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Store is the typed contract over the remote data store. Implementations
// carry no business logic, perform no retries, and classify failures with
// the sentinel kinds in errors.go so transient errors propagate as-is.
type Store interface {
	Query(ctx context.Context, q Query) ([]Record, error)
	Count(ctx context.Context, collection string, filters ...Filter) (int, error)
	Insert(ctx context.Context, collection string, record Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
}

// decodeRecord converts a raw row into a typed struct through a JSON
// round-trip, matching how rows arrive off the wire.
func decodeRecord(rec Record, target any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("admin: encode record: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("admin: decode record: %w", err)
	}
	return nil
}
