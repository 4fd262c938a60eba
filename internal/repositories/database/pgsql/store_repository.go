package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triptab/tripledger/internal/apperrors"
	portsrepo "github.com/triptab/tripledger/internal/core/ports/repositories"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// PgxStore implements the ports.Store document interface over a single
// records table (collection, record_id, jsonb data). Every call is bounded
// by the configured timeout; transient failures surface as
// apperrors.ErrStoreUnavailable and duplicate ids as apperrors.ErrDuplicate.
type PgxStore struct {
	Pool    *pgxpool.Pool
	Timeout time.Duration
}

// NewPgxStore creates a new PgxStore. A zero timeout defaults to 5s.
func NewPgxStore(pool *pgxpool.Pool, timeout time.Duration) *PgxStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PgxStore{Pool: pool, Timeout: timeout}
}

var _ portsrepo.Store = (*PgxStore)(nil)

// CreateRecord inserts a new document into a collection.
func (s *PgxStore) CreateRecord(ctx context.Context, collection, recordID string, data any) (*portsrepo.Record, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record for collection %s: %w", collection, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	now := time.Now().UTC()
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO records (collection, record_id, data, created_at)
		VALUES ($1, $2, $3, $4)`,
		collection, recordID, payload, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrDuplicate, recordID, collection)
		}
		return nil, classifyStoreError("insert record", err)
	}

	return &portsrepo.Record{ID: recordID, Collection: collection, Data: payload, CreatedAt: now}, nil
}

// GetRecord retrieves one document by id.
func (s *PgxStore) GetRecord(ctx context.Context, collection, recordID string) (*portsrepo.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	rec := portsrepo.Record{ID: recordID, Collection: collection}
	err := s.Pool.QueryRow(ctx, `
		SELECT data, created_at FROM records
		WHERE collection = $1 AND record_id = $2`,
		collection, recordID,
	).Scan(&rec.Data, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("record " + recordID + " in " + collection)
		}
		return nil, classifyStoreError("get record", err)
	}
	return &rec, nil
}

// ListRecords retrieves documents matching the given filters. Equality and
// set filters compare the JSON text representation of the field.
func (s *PgxStore) ListRecords(ctx context.Context, collection string, opts portsrepo.ListOptions) ([]portsrepo.Record, error) {
	query := `SELECT record_id, data, created_at FROM records WHERE collection = $1`
	args := []any{collection}
	argNum := 2

	for _, f := range opts.Filters {
		if len(f.In) > 0 {
			query += fmt.Sprintf(" AND data->>%s = ANY($%d)", quoteLiteral(f.Field), argNum)
			args = append(args, f.In)
		} else {
			query += fmt.Sprintf(" AND data->>%s = $%d", quoteLiteral(f.Field), argNum)
			args = append(args, f.Equals)
		}
		argNum++
	}

	query += orderClause(opts)

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
		argNum++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, opts.Offset)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyStoreError("list records", err)
	}
	defer rows.Close()

	var recs []portsrepo.Record
	for rows.Next() {
		rec := portsrepo.Record{Collection: collection}
		if err := rows.Scan(&rec.ID, &rec.Data, &rec.CreatedAt); err != nil {
			return nil, classifyStoreError("scan record", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("iterate records", err)
	}
	return recs, nil
}

// UpdateRecord rewrites the document payload of an existing record.
func (s *PgxStore) UpdateRecord(ctx context.Context, collection, recordID string, data any) (*portsrepo.Record, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record for collection %s: %w", collection, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `
		UPDATE records SET data = $3
		WHERE collection = $1 AND record_id = $2`,
		collection, recordID, payload,
	)
	if err != nil {
		return nil, classifyStoreError("update record", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("record " + recordID + " in " + collection)
	}
	return &portsrepo.Record{ID: recordID, Collection: collection, Data: payload}, nil
}

// orderClause renders the ORDER BY part. The createdAt field maps to the
// indexed created_at column; any other field orders on the JSON text value.
func orderClause(opts portsrepo.ListOptions) string {
	if opts.OrderByField == "" {
		return " ORDER BY created_at"
	}
	col := "data->>" + quoteLiteral(opts.OrderByField)
	if opts.OrderByField == "createdAt" {
		col = "created_at"
	}
	if opts.OrderDesc {
		return " ORDER BY " + col + " DESC"
	}
	return " ORDER BY " + col
}

// quoteLiteral renders a JSON field name as a SQL string literal. Field names
// come from repository code, never from callers, but quoting keeps the
// interpolation safe regardless.
func quoteLiteral(field string) string {
	return "'" + strings.ReplaceAll(field, "'", "''") + "'"
}

// classifyStoreError maps driver failures onto the error taxonomy: anything
// transient (timeouts, broken connections) becomes ErrStoreUnavailable so
// callers know the operation is retryable.
func classifyStoreError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewStoreUnavailableError(fmt.Errorf("%s timed out: %w", op, err))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 is connection exceptions, class 57 operator intervention
		// (shutdown); both are transient from the caller's point of view.
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57") {
			return apperrors.NewStoreUnavailableError(fmt.Errorf("%s: %w", op, err))
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if pgconn.Timeout(err) {
		return apperrors.NewStoreUnavailableError(fmt.Errorf("%s timed out: %w", op, err))
	}
	return apperrors.NewStoreUnavailableError(fmt.Errorf("%s: %w", op, err))
}
