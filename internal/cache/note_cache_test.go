package cache

import (
	"context"
	"testing"
	"time"

	dom "github.com/adi-1080/notesapp/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*NoteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewNoteCache(rdb, time.Minute), mr
}

func sampleNotes(ownerID int64) []dom.Note {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []dom.Note{
		{ID: 2, OwnerID: ownerID, Title: "b", Content: "second", CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second)},
		{ID: 1, OwnerID: ownerID, Title: "a", Content: "first", CreatedAt: now, UpdatedAt: now},
	}
}

func TestNoteCache_ListRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	miss, err := c.GetList(ctx, 1, 0, 50)
	require.NoError(t, err)
	assert.Nil(t, miss)

	want := sampleNotes(1)
	require.NoError(t, c.SetList(ctx, 1, 0, 50, want))

	got, err := c.GetList(ctx, 1, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A different page is a separate entry.
	other, err := c.GetList(ctx, 1, 2, 50)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestNoteCache_SearchRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := sampleNotes(1)
	require.NoError(t, c.SetSearch(ctx, 1, "  MiLk ", want))

	// Query is normalized before keying.
	got, err := c.GetSearch(ctx, 1, "milk")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNoteCache_InvalidateOwner(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, 0, 50, sampleNotes(1)))
	require.NoError(t, c.SetSearch(ctx, 1, "milk", sampleNotes(1)))
	require.NoError(t, c.SetList(ctx, 2, 0, 50, sampleNotes(2)))

	require.NoError(t, c.InvalidateOwner(ctx, 1))

	gone, err := c.GetList(ctx, 1, 0, 50)
	require.NoError(t, err)
	assert.Nil(t, gone)

	gone, err = c.GetSearch(ctx, 1, "milk")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Owner 2's entries survive.
	kept, err := c.GetList(ctx, 2, 0, 50)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestNoteCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, 0, 50, sampleNotes(1)))

	mr.FastForward(2 * time.Minute)

	gone, err := c.GetList(ctx, 1, 0, 50)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
