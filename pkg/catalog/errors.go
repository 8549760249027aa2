package catalog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidFileType indicates a declared MIME type outside the allow-list
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrMissingField indicates a required multipart field was absent
	ErrMissingField = errors.New("missing field")

	// ErrDuplicateName indicates an item with that name already exists
	ErrDuplicateName = errors.New("duplicate name")

	// ErrItemNotFound indicates an item was not found
	ErrItemNotFound = errors.New("item not found")

	// ErrFileNotFound indicates a stored asset was not found
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge indicates a single uploaded file exceeded the size cap
	ErrFileTooLarge = errors.New("file too large")
)

// IngestError represents an error raised while ingesting an upload.
type IngestError struct {
	Name string
	Op   string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest operation %s failed for %q: %v", e.Op, e.Name, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
