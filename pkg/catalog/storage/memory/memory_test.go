package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

func TestUploadDownloadDelete(t *testing.T) {
	backend := New()
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "key.png", strings.NewReader("content")))
	assert.Equal(t, 1, backend.Len())

	reader, err := backend.Download(ctx, "key.png")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	meta, err := backend.GetMeta(ctx, "key.png")
	require.NoError(t, err)
	assert.Equal(t, int64(len("content")), meta.Size)

	require.NoError(t, backend.Delete(ctx, "key.png"))
	assert.Equal(t, 0, backend.Len())
}

func TestMissingKey(t *testing.T) {
	backend := New()
	ctx := context.Background()

	_, err := backend.Download(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrFileNotFound)

	_, err = backend.GetMeta(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrFileNotFound)

	assert.ErrorIs(t, backend.Delete(ctx, "missing"), catalog.ErrFileNotFound)
}
