package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lazyfm/internal/models"
)

func entryNames(entries []models.FileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func staticFetcher(entries []models.FileEntry, err error) Fetcher {
	return func(context.Context, string) ([]models.FileEntry, error) {
		return append([]models.FileEntry(nil), entries...), err
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := New(staticFetcher(nil, nil))
	_, ok := c.Get("/docs")
	assert.False(t, ok)
}

func TestRevalidateStoresSortedListing(t *testing.T) {
	server := []models.FileEntry{
		{Name: "z.txt", IsFile: true},
		{Name: "attic", IsFile: false},
	}
	c := New(staticFetcher(server, nil))

	entries, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"attic", "z.txt"}, entryNames(entries))

	cached, ok := c.Get("/docs")
	require.True(t, ok)
	assert.Equal(t, []string{"attic", "z.txt"}, entryNames(cached))
}

func TestRevalidateErrorKeepsCachedListing(t *testing.T) {
	var fail atomic.Bool
	c := New(func(context.Context, string) ([]models.FileEntry, error) {
		if fail.Load() {
			return nil, errors.New("server gone")
		}
		return []models.FileEntry{{Name: "kept.txt", IsFile: true}}, nil
	})

	_, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)

	fail.Store(true)
	_, err = c.Revalidate(context.Background(), "/docs")
	require.Error(t, err)

	cached, ok := c.Get("/docs")
	require.True(t, ok)
	assert.Equal(t, []string{"kept.txt"}, entryNames(cached))
}

func TestMutateOptimisticTransformAppliesWithoutFetch(t *testing.T) {
	var fetches atomic.Int32
	target := uuid.New()
	c := New(func(context.Context, string) ([]models.FileEntry, error) {
		fetches.Add(1)
		return []models.FileEntry{
			{Name: "doomed.txt", UUID: target, IsFile: true},
			{Name: "other.txt", UUID: uuid.New(), IsFile: true},
		}, nil
	})

	_, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)
	require.Equal(t, int32(1), fetches.Load())

	entries, err := c.Mutate(context.Background(), "/docs", func(in []models.FileEntry) []models.FileEntry {
		out := in[:0]
		for _, e := range in {
			if e.UUID != target {
				out = append(out, e)
			}
		}
		return out
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"other.txt"}, entryNames(entries))
	// No network round-trip for a pure optimistic mutation.
	assert.Equal(t, int32(1), fetches.Load())
}

func TestMutateRevalidateRestoresAuthoritativeState(t *testing.T) {
	c := New(staticFetcher([]models.FileEntry{
		{Name: "restored.txt", IsFile: true},
	}, nil))

	_, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)

	// Drop everything locally, then reconcile against the server.
	entries, err := c.Mutate(context.Background(), "/docs",
		func([]models.FileEntry) []models.FileEntry { return nil }, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"restored.txt"}, entryNames(entries))
}

func TestMutateOnUncachedDirIsHarmless(t *testing.T) {
	c := New(staticFetcher(nil, nil))
	entries, err := c.Mutate(context.Background(), "/nowhere",
		func(in []models.FileEntry) []models.FileEntry { return in }, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInvalidate(t *testing.T) {
	c := New(staticFetcher([]models.FileEntry{{Name: "a", IsFile: true}}, nil))
	_, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)

	c.Invalidate("/docs")
	_, ok := c.Get("/docs")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	c := New(staticFetcher([]models.FileEntry{{Name: "a", IsFile: true}}, nil))
	_, err := c.Revalidate(context.Background(), "/docs")
	require.NoError(t, err)

	first, _ := c.Get("/docs")
	first[0].Name = "mutated"

	second, _ := c.Get("/docs")
	assert.Equal(t, "a", second[0].Name)
}
