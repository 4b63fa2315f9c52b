// Package blob abstracts photo byte storage behind a store/load pair so the
// rest of the system only ever handles opaque references.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type Store interface {
	// Store persists the bytes under the suggested name and returns the
	// reference to load them back later.
	Store(ctx context.Context, r io.Reader, name string) (string, error)
	// Load returns the bytes for a previously stored reference, or
	// ErrNotFound.
	Load(ctx context.Context, ref string) (io.ReadCloser, error)
}
