package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no live record exists for the id.
// Expired records behave as absent.
var ErrNotFound = errors.New("session: record not found")

// Store persists session records keyed by session id.
//
// Put replaces the whole record for its id atomically; two concurrent Puts
// for one id must never interleave field-by-field. Within one id the last
// completed Put wins; no merging is attempted (see the manager docs for the
// accepted double-submit race).
type Store interface {
	// Get returns the live record for id, or ErrNotFound when the id is
	// unknown or its record has expired. Expiry is enforced lazily here;
	// no background sweeper is required.
	Get(ctx context.Context, id string) (*Record, error)

	// Put writes the record through under its id, whole-record replace.
	Put(ctx context.Context, rec *Record) error

	// Delete removes the record for id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// EnsureSchema prepares the backing structure. Idempotent: calling it
	// when the structure already exists is a no-op, not an error.
	EnsureSchema(ctx context.Context) error
}
