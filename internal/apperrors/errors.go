package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a uniqueness or state conflict on an existing resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("action forbidden")

// ErrUnknownCurrency indicates a currency code absent from the currency table.
// Never downgraded to a default value; an unknown code is a caller bug.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrStoreUnavailable indicates a transient failure of the external record
// store. Callers may retry with backoff.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrPartialWrite indicates an expense was persisted but its obligation batch
// is incomplete. The write is safe to re-drive; see PartialWriteError for the
// identifying expense.
var ErrPartialWrite = errors.New("partial write")

// PartialWriteError carries enough information for the caller to retry the
// idempotent completion path after an obligation batch failed mid-write.
type PartialWriteError struct {
	ExpenseID string
	Written   int
	Expected  int
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write for expense %s: %d of %d obligations persisted: %v", e.ExpenseID, e.Written, e.Expected, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return ErrPartialWrite
}

// NewPartialWriteError wraps a store failure that interrupted an obligation batch.
func NewPartialWriteError(expenseID string, written, expected int, err error) *PartialWriteError {
	return &PartialWriteError{ExpenseID: expenseID, Written: written, Expected: expected, Err: err}
}

// NewValidationError returns an error that satisfies errors.Is(err, ErrValidation).
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewNotFoundError returns an error that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NewUnknownCurrencyError returns an error that satisfies errors.Is(err, ErrUnknownCurrency).
func NewUnknownCurrencyError(code string) error {
	return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
}

// NewStoreUnavailableError wraps a transient store failure so that
// errors.Is(err, ErrStoreUnavailable) holds while keeping the cause.
func NewStoreUnavailableError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
