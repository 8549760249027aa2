package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/idrizp/magicify-backend/pkg/catalog"
)

// Repository implements catalog.Repository using in-memory storage. The name
// index is maintained under the same write lock as the insert, so Insert
// rejects concurrent duplicates the way a database unique constraint would.
type Repository struct {
	mu     sync.RWMutex
	items  map[uuid.UUID]*catalog.Item
	byName map[string]uuid.UUID
	order  []uuid.UUID // insertion order, drives listing
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		items:  make(map[uuid.UUID]*catalog.Item),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *Repository) Insert(ctx context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[item.Name]; exists {
		return catalog.ErrDuplicateName
	}

	// Create a copy to avoid external modifications
	itemCopy := *item
	r.items[item.ID] = &itemCopy
	r.byName[item.Name] = item.ID
	r.order = append(r.order, item.ID)

	return nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*catalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byName[name]
	if !exists {
		return nil, catalog.ErrItemNotFound
	}

	itemCopy := *r.items[id]
	return &itemCopy, nil
}

func (r *Repository) ListPage(ctx context.Context, page, size int) ([]*catalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start >= len(r.order) {
		return []*catalog.Item{}, nil
	}
	end := start + size
	if end > len(r.order) {
		end = len(r.order)
	}

	result := make([]*catalog.Item, 0, end-start)
	for _, id := range r.order[start:end] {
		itemCopy := *r.items[id]
		result = append(result, &itemCopy)
	}

	return result, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return catalog.ErrItemNotFound
	}

	delete(r.items, id)
	delete(r.byName, item.Name)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
