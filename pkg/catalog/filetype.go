package catalog

import (
	"fmt"
	"strings"
)

// Per-category MIME allow-lists mapping a declared media type to the
// extension appended to the generated filename.
var (
	iconTypes = map[string]string{
		"image/png":     ".png",
		"image/svg+xml": ".svg",
	}

	modelTypes = map[string]string{
		"model/gltf-binary":        ".gltb",
		"model/gltf+json":          ".gltf",
		"application/octet-stream": "",
	}
)

// modelFallbackExtensions are the original-filename suffixes that make an
// application/octet-stream upload acceptable as a model. Many clients mislabel
// binary glTF uploads, so the generic type is allowed only when the filename
// still identifies the format.
var modelFallbackExtensions = []string{".gltf", ".glb"}

// Classify validates a declared MIME type (and the original filename) against
// the allow-list for the given category. It returns ErrInvalidFileType for an
// empty or unrecognized type, so a caller never writes a byte for a rejected
// part.
func Classify(category Category, declaredType, filename string) (Classification, error) {
	mediaType := normalizeMediaType(declaredType)
	if mediaType == "" {
		return Classification{}, fmt.Errorf("%w: empty media type", ErrInvalidFileType)
	}

	switch category {
	case CategoryIcon:
		if ext, ok := iconTypes[mediaType]; ok {
			return Classification{Category: category, MediaType: mediaType, Extension: ext}, nil
		}
	case CategoryModel:
		ext, ok := modelTypes[mediaType]
		if ok && mediaType == "application/octet-stream" && !hasModelExtension(filename) {
			ok = false
		}
		if ok {
			return Classification{Category: category, MediaType: mediaType, Extension: ext}, nil
		}
	default:
		return Classification{}, fmt.Errorf("%w: unknown category %q", ErrInvalidFileType, category)
	}

	return Classification{}, fmt.Errorf("%w: %s not allowed for %s", ErrInvalidFileType, mediaType, category)
}

// normalizeMediaType lowercases the declared type and strips any parameters
// ("image/png; charset=binary" -> "image/png").
func normalizeMediaType(declaredType string) string {
	mediaType, _, _ := strings.Cut(declaredType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func hasModelExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range modelFallbackExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
