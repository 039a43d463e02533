package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists for the given ref.
var ErrNotFound = errors.New("blob not found")

// Store abstracts the byte storage behind file nodes. A node's StorageRef
// is opaque to everything outside this package.
type Store interface {
	// Put writes the blob content under the given ref.
	Put(ctx context.Context, ref string, source io.Reader) (int64, error)

	// Get opens the blob content for reading.
	Get(ctx context.Context, ref string) (io.ReadCloser, error)

	// Delete releases the blob's bytes. Deleting a ref that does not exist
	// returns ErrNotFound.
	Delete(ctx context.Context, ref string) error
}
