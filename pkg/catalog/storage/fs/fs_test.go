package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

func newTestBackend(t *testing.T) catalog.BlobStore {
	t.Helper()

	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return backend
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets", "models")

	_, err := New(Config{BaseDir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUploadDownload(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	content := "glTF binary payload"
	err := backend.Upload(ctx, "file.gltb", strings.NewReader(content))
	require.NoError(t, err)

	reader, err := backend.Download(ctx, "file.gltb")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDownloadMissing(t *testing.T) {
	backend := newTestBackend(t)

	_, err := backend.Download(context.Background(), "missing.png")
	assert.ErrorIs(t, err, catalog.ErrFileNotFound)
}

func TestDelete(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "file.png", strings.NewReader("png bytes")))
	require.NoError(t, backend.Delete(ctx, "file.png"))

	_, err := backend.Download(ctx, "file.png")
	assert.ErrorIs(t, err, catalog.ErrFileNotFound)

	assert.ErrorIs(t, backend.Delete(ctx, "file.png"), catalog.ErrFileNotFound)
}

func TestGetMeta(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	content := "fake png"
	require.NoError(t, backend.Upload(ctx, "file.png", strings.NewReader(content)))

	meta, err := backend.GetMeta(ctx, "file.png")
	require.NoError(t, err)
	assert.Equal(t, "file.png", meta.Key)
	assert.Equal(t, int64(len(content)), meta.Size)
	assert.Contains(t, meta.ContentType, "image/png")
	assert.False(t, meta.UpdatedAt.IsZero())
}

func TestGetMetaMissing(t *testing.T) {
	backend := newTestBackend(t)

	_, err := backend.GetMeta(context.Background(), "missing.svg")
	assert.ErrorIs(t, err, catalog.ErrFileNotFound)
}

func TestRejectsTraversalKeys(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		err := backend.Upload(ctx, key, strings.NewReader("x"))
		assert.Error(t, err, "key %q", key)

		var storageErr *catalog.StorageError
		assert.ErrorAs(t, err, &storageErr, "key %q", key)
	}
}
