package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is the fixed listing page size.
const DefaultPageSize = 10

// DefaultMaxUploadBytes caps a single uploaded file at 200 MB.
const DefaultMaxUploadBytes int64 = 200 << 20

// service implements the Service interface
type service struct {
	repository Repository
	blobStores map[string]BlobStore
	pageSize   int
	maxBytes   int64
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore adds a blob storage backend under the given name
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		s.blobStores[name] = store
	}
}

// WithPageSize overrides the listing page size
func WithPageSize(size int) Option {
	return func(s *service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxUploadBytes overrides the per-file upload size cap
func WithMaxUploadBytes(n int64) Option {
	return func(s *service) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// New creates a new service instance with the given options. A repository and
// blob stores for both asset categories are required.
func New(options ...Option) (Service, error) {
	s := &service{
		blobStores: make(map[string]BlobStore),
		pageSize:   DefaultPageSize,
		maxBytes:   DefaultMaxUploadBytes,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	for _, backend := range []string{BackendIcons, BackendModels} {
		if _, ok := s.blobStores[backend]; !ok {
			return nil, fmt.Errorf("blob store %q is required", backend)
		}
	}

	return s, nil
}

// Ingest drives the upload through its states: received, type-checked (inside
// the receiver as parts stream in), name-checked, persisted. The FindByName
// check is a fast path only; the repository's Insert is what actually
// guarantees uniqueness under concurrency.
func (s *service) Ingest(ctx context.Context, req IngestRequest) (*Item, error) {
	receiver := &uploadReceiver{stores: s.blobStores, maxBytes: s.maxBytes}

	up, err := receiver.receive(ctx, req.Parts)
	if err != nil {
		return nil, err
	}

	if up.Name == "" {
		s.discardStored(ctx, up)
		return nil, fmt.Errorf("%w: %q field is required", ErrMissingField, fieldName)
	}

	if _, err := s.repository.FindByName(ctx, up.Name); err == nil {
		s.discardStored(ctx, up)
		return nil, &IngestError{Name: up.Name, Op: "name_check", Err: ErrDuplicateName}
	} else if !errors.Is(err, ErrItemNotFound) {
		s.discardStored(ctx, up)
		return nil, &IngestError{Name: up.Name, Op: "name_check", Err: err}
	}

	item := &Item{
		ID:        uuid.New(),
		Name:      up.Name,
		ModelPath: up.Model.Path,
		IconPath:  up.Icon.Path,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repository.Insert(ctx, item); err != nil {
		s.discardStored(ctx, up)
		if errors.Is(err, ErrDuplicateName) {
			// A concurrent upload with the same name slipped past the fast
			// path; the store's constraint is the authoritative signal.
			return nil, &IngestError{Name: up.Name, Op: "insert", Err: ErrDuplicateName}
		}
		return nil, &IngestError{Name: up.Name, Op: "insert", Err: err}
	}

	return item, nil
}

func (s *service) ListPage(ctx context.Context, page int) ([]*Item, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.repository.ListPage(ctx, page, s.pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) OpenAsset(ctx context.Context, category Category, generatedName string) (io.ReadCloser, *BlobMeta, error) {
	if !validGeneratedName(generatedName) {
		return nil, nil, ErrFileNotFound
	}
	backend, err := backendFor(category)
	if err != nil {
		return nil, nil, ErrFileNotFound
	}
	store := s.blobStores[backend]

	meta, err := store.GetMeta(ctx, generatedName)
	if err != nil {
		return nil, nil, err
	}
	rc, err := store.Download(ctx, generatedName)
	if err != nil {
		return nil, nil, err
	}
	return rc, meta, nil
}

// discardStored removes both stored files on a post-receive failure path.
// Cleanup failure is logged for the operator, never escalated.
func (s *service) discardStored(ctx context.Context, up *ReceivedUpload) {
	for _, f := range up.files() {
		backend, err := backendFor(f.Category)
		if err != nil {
			continue
		}
		if err := s.blobStores[backend].Delete(ctx, f.GeneratedName); err != nil {
			slog.Warn("Failed to remove orphaned file", "backend", backend, "key", f.GeneratedName, "error", err)
		}
	}
}

// validGeneratedName rejects anything that does not look like a filename this
// service generated, keeping path traversal out of the blob stores.
func validGeneratedName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
