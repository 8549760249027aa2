package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

// Backend is a filesystem implementation of the catalog.BlobStore interface.
// Keys are flat generated filenames; nothing nests below the base directory.
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Directory the assets are stored in
}

// New creates a new filesystem storage backend, creating the base directory
// if it does not exist.
func New(config Config) (catalog.BlobStore, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// Upload streams content into a file under the base directory.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) error {
	path, err := b.resolve(key)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return &catalog.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return &catalog.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}

	return nil
}

// Download opens the stored file for reading.
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, catalog.ErrFileNotFound
	} else if err != nil {
		return nil, &catalog.StorageError{Backend: "fs", Key: key, Op: "download", Err: err}
	}

	return file, nil
}

// Delete removes the stored file.
func (b *Backend) Delete(ctx context.Context, key string) error {
	path, err := b.resolve(key)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return catalog.ErrFileNotFound
	}

	if err := os.Remove(path); err != nil {
		return &catalog.StorageError{Backend: "fs", Key: key, Op: "delete", Err: err}
	}

	return nil
}

// GetMeta retrieves size, modification time and a content type for a stored
// file. The content type comes from the filename extension when recognized,
// with a sniff of the leading bytes as the fallback.
func (b *Backend) GetMeta(ctx context.Context, key string) (*catalog.BlobMeta, error) {
	path, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, catalog.ErrFileNotFound
	} else if err != nil {
		return nil, &catalog.StorageError{Backend: "fs", Key: key, Op: "stat", Err: err}
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
		if file, err := os.Open(path); err == nil {
			defer file.Close()
			buffer := make([]byte, 512)
			if n, err := file.Read(buffer); err == nil {
				contentType = http.DetectContentType(buffer[:n])
			}
		}
	}

	return &catalog.BlobMeta{
		Key:         key,
		Size:        info.Size(),
		ContentType: contentType,
		UpdatedAt:   info.ModTime(),
	}, nil
}

// resolve joins the key to the base directory, rejecting anything that could
// escape it.
func (b *Backend) resolve(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", &catalog.StorageError{Backend: "fs", Key: key, Op: "resolve", Err: errors.New("invalid key")}
	}
	return filepath.Join(b.baseDir, key), nil
}
