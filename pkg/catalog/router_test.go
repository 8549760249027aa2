package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteFileIcon(t *testing.T) {
	ref, err := RouteFile(Classification{Category: CategoryIcon, MediaType: "image/png", Extension: ".png"})
	require.NoError(t, err)

	assert.Equal(t, BackendIcons, ref.Backend)
	assert.True(t, strings.HasSuffix(ref.GeneratedName, ".png"))

	_, err = uuid.Parse(strings.TrimSuffix(ref.GeneratedName, ".png"))
	assert.NoError(t, err, "generated name should be a UUID plus extension")
}

func TestRouteFileModel(t *testing.T) {
	ref, err := RouteFile(Classification{Category: CategoryModel, MediaType: "model/gltf-binary", Extension: ".gltb"})
	require.NoError(t, err)

	assert.Equal(t, BackendModels, ref.Backend)
	assert.True(t, strings.HasSuffix(ref.GeneratedName, ".gltb"))
}

func TestRouteFileEmptyExtension(t *testing.T) {
	// octet-stream fallbacks carry no extension; the name is a bare UUID.
	ref, err := RouteFile(Classification{Category: CategoryModel, MediaType: "application/octet-stream", Extension: ""})
	require.NoError(t, err)

	_, err = uuid.Parse(ref.GeneratedName)
	assert.NoError(t, err)
}

func TestRouteFileNamesAreUnique(t *testing.T) {
	c := Classification{Category: CategoryModel, MediaType: "model/gltf+json", Extension: ".gltf"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := RouteFile(c)
		require.NoError(t, err)
		assert.False(t, seen[ref.GeneratedName])
		seen[ref.GeneratedName] = true
	}
}

func TestRouteFileUnknownCategory(t *testing.T) {
	_, err := RouteFile(Classification{Category: Category("texture")})
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestPublicPath(t *testing.T) {
	assert.Equal(t, "/models/abc.gltf", publicPath(BackendModels, "abc.gltf"))
	assert.Equal(t, "/icons/abc.png", publicPath(BackendIcons, "abc.png"))
}
