package repositories

import (
	"context"
	"encoding/json"
	"time"
)

// Record is a single stored document. Data holds the collection-specific
// payload; the id and creation time live beside it, not inside it.
type Record struct {
	ID         string
	Collection string
	Data       json.RawMessage
	CreatedAt  time.Time
}

// Filter narrows a list query. Exactly one of Equals or In should be set.
type Filter struct {
	Field  string
	Equals string
	In     []string
}

// Equal builds an equality filter on a data field.
func Equal(field, value string) Filter {
	return Filter{Field: field, Equals: value}
}

// In builds a set-membership filter on a data field.
func In(field string, values []string) Filter {
	return Filter{Field: field, In: values}
}

// ListOptions controls filtering and ordering of ListRecords.
type ListOptions struct {
	Filters       []Filter
	OrderByField  string
	OrderDesc     bool
	Limit, Offset int
}

// Store is the external document store the ledger persists through. The core
// issues only these primitives; schema, indexing and migrations belong to the
// store's own adapter.
//
// CreateRecord must fail with apperrors.ErrDuplicate when a record with the
// same id already exists in the collection; callers rely on this to make
// retried batch writes idempotent. Transient failures must surface as
// apperrors.ErrStoreUnavailable, never be swallowed. Every call is bounded:
// it completes, times out, or fails.
type Store interface {
	CreateRecord(ctx context.Context, collection, recordID string, data any) (*Record, error)
	GetRecord(ctx context.Context, collection, recordID string) (*Record, error)
	ListRecords(ctx context.Context, collection string, opts ListOptions) ([]Record, error)
	UpdateRecord(ctx context.Context, collection, recordID string, data any) (*Record, error)
}
