package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is the domain type for the two kinds of uploaded assets.
type Category string

// Asset category constants (typed).
const (
	CategoryIcon  Category = "icon"
	CategoryModel Category = "model"
)

// Item represents a catalog entry pairing a unique name with a stored model
// asset and a stored icon asset. Items are created exactly once by a
// successful ingestion and are immutable afterwards.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ModelPath string    `json:"modelPath"`
	IconPath  string    `json:"iconPath"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredFile describes a file persisted to one of the asset blob stores
// during ingestion. It is transient: either it ends up referenced by a
// committed Item, or the coordinator deletes it on the failure path.
type StoredFile struct {
	Category      Category
	GeneratedName string
	Path          string // public path the file is served under, e.g. /models/<name>
	DeclaredType  string
	Size          int64
}

// Classification is the outcome of validating a declared MIME type against
// the per-category allow-list.
type Classification struct {
	Category  Category
	MediaType string
	Extension string
}

// BlobMeta contains metadata about a stored blob.
type BlobMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}
