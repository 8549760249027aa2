package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for asset storage backends.
type BlobStore interface {
	// Upload streams content into the store under the given key
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the content stored under the given key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content stored under the given key
	Delete(ctx context.Context, key string) error

	// GetMeta retrieves metadata for a stored blob
	GetMeta(ctx context.Context, key string) (*BlobMeta, error)
}

// Repository defines the interface for item persistence.
//
// Insert is the authoritative uniqueness enforcement: implementations must
// reject a duplicate name with ErrDuplicateName even when a prior FindByName
// reported the name free, because two concurrent ingestions can both pass the
// fast-path check before either one inserts.
type Repository interface {
	Insert(ctx context.Context, item *Item) error
	FindByName(ctx context.Context, name string) (*Item, error)
	ListPage(ctx context.Context, page, size int) ([]*Item, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
