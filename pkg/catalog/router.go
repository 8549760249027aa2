package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

// Blob store names for the two asset categories. Each maps to its own
// directory, kept apart from anything a web server would treat as source.
const (
	BackendIcons  = "icons"
	BackendModels = "models"
)

// StoredFileRef names the destination of an accepted file: which blob store
// it goes to and the collision-free filename it is written under.
type StoredFileRef struct {
	Backend       string
	GeneratedName string
}

// RouteFile picks the destination for a classified file and generates its
// storage filename: a fresh random UUID plus the extension derived from the
// declared type. Collisions are treated as negligible; there is no retry.
func RouteFile(c Classification) (StoredFileRef, error) {
	backend, err := backendFor(c.Category)
	if err != nil {
		return StoredFileRef{}, err
	}
	return StoredFileRef{
		Backend:       backend,
		GeneratedName: uuid.NewString() + c.Extension,
	}, nil
}

func backendFor(category Category) (string, error) {
	switch category {
	case CategoryIcon:
		return BackendIcons, nil
	case CategoryModel:
		return BackendModels, nil
	default:
		return "", fmt.Errorf("%w: no storage destination for category %q", ErrInvalidFileType, category)
	}
}

// publicPath returns the path an asset is served under once stored.
func publicPath(backend, generatedName string) string {
	return "/" + backend + "/" + generatedName
}
