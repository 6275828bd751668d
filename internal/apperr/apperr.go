// Package apperr holds the error kinds shared by the data access and action layers.
package apperr

import (
	"context"
	"log/slog"
)

// StoreError wraps a backing-store failure. Error returns only the
// user-safe Message; the underlying error is reachable through Unwrap
// and is logged where the StoreError is created.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return e.Message }

func (e *StoreError) Unwrap() error { return e.Err }

// Store logs err with op as context and returns it wrapped behind msg.
func Store(ctx context.Context, op, msg string, err error) error {
	slog.ErrorContext(ctx, "database error", "op", op, "error", err)
	return &StoreError{Message: msg, Err: err}
}
