package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrizp/magicify-backend/pkg/catalog"
)

func newItem(name string) *catalog.Item {
	id := uuid.New()
	return &catalog.Item{
		ID:        id,
		Name:      name,
		ModelPath: "/models/" + id.String() + ".gltf",
		IconPath:  "/icons/" + id.String() + ".png",
		CreatedAt: time.Now().UTC(),
	}
}

func TestInsertAndFindByName(t *testing.T) {
	repo := New()
	ctx := context.Background()

	item := newItem("castle")
	require.NoError(t, repo.Insert(ctx, item))

	found, err := repo.FindByName(ctx, "castle")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, item.ModelPath, found.ModelPath)

	// The repository hands out copies, not its internal pointers.
	found.Name = "mutated"
	again, err := repo.FindByName(ctx, "castle")
	require.NoError(t, err)
	assert.Equal(t, "castle", again.Name)
}

func TestInsertDuplicateName(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newItem("castle")))

	err := repo.Insert(ctx, newItem("castle"))
	assert.ErrorIs(t, err, catalog.ErrDuplicateName)
}

func TestInsertConcurrentSameName(t *testing.T) {
	repo := New()
	ctx := context.Background()

	const workers = 16
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Insert(ctx, newItem("castle"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, catalog.ErrDuplicateName)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestFindMissing(t *testing.T) {
	repo := New()

	_, err := repo.FindByName(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestListPage(t *testing.T) {
	repo := New()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Insert(ctx, newItem(fmt.Sprintf("item-%02d", i))))
	}

	first, err := repo.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "item-00", first[0].Name)
	assert.Equal(t, "item-09", first[9].Name)

	third, err := repo.ListPage(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, third, 5)
	assert.Equal(t, "item-24", third[4].Name)

	beyond, err := repo.ListPage(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestListPageCoercesLowPage(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newItem("only")))

	for _, page := range []int{0, -1} {
		items, err := repo.ListPage(ctx, page, 10)
		require.NoError(t, err)
		require.Len(t, items, 1, "page %d", page)
		assert.Equal(t, "only", items[0].Name)
	}
}

func TestDeleteByID(t *testing.T) {
	repo := New()
	ctx := context.Background()

	item := newItem("castle")
	require.NoError(t, repo.Insert(ctx, item))
	require.NoError(t, repo.DeleteByID(ctx, item.ID))

	_, err := repo.FindByName(ctx, "castle")
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)

	// The name is reusable once the item is gone.
	require.NoError(t, repo.Insert(ctx, newItem("castle")))

	assert.ErrorIs(t, repo.DeleteByID(ctx, item.ID), catalog.ErrItemNotFound)
}
