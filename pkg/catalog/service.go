package catalog

import (
	"context"
	"io"
)

// Service defines the main interface for the asset catalog.
type Service interface {
	// Ingest runs the upload pipeline for one multipart request: receive and
	// validate both files, check name uniqueness, persist the item. Every
	// failure after a file hit the store deletes what was written.
	Ingest(ctx context.Context, req IngestRequest) (*Item, error)

	// ListPage returns one page of items. Pages are 1-based; anything below 1
	// is coerced to the first page.
	ListPage(ctx context.Context, page int) ([]*Item, error)

	// OpenAsset opens a previously stored asset by its generated filename.
	OpenAsset(ctx context.Context, category Category, generatedName string) (io.ReadCloser, *BlobMeta, error)
}
