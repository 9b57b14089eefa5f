package docstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resale/internal/types"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return New(db)
}

func doc(id, body string) types.Document {
	return types.Document{ID: id, Data: json.RawMessage(body)}
}

func TestStore_InsertFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InsertMany(ctx, Products, []types.Document{
		doc("b", `{"title":"Pixel 8"}`),
		doc("a", `{"title":"iPhone 14"}`),
	})
	require.NoError(t, err)

	all, err := s.Find(ctx, Products, Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)

	count, err := s.Count(ctx, Products, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// other collections are not visible
	other, err := s.Find(ctx, Customers, Query{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_FindOne_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindOne(context.Background(), Products, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpsertUpdatesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, Products, doc("p1", `{"v":1}`)))
	first, err := s.FindOne(ctx, Products, "p1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Upsert(ctx, Products, doc("p1", `{"v":2}`)))

	updated, err := s.FindOne(ctx, Products, "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(updated.Data))
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	count, err := s.Count(ctx, Products, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_FindUpdatedSince(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, Submissions, doc("old", `{}`)))
	time.Sleep(20 * time.Millisecond)
	mark := time.Now()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Upsert(ctx, Submissions, doc("new", `{}`)))

	changed, err := s.Find(ctx, Submissions, Query{UpdatedSince: &mark})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "new", changed[0].ID)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertMany(ctx, Wishlists, []types.Document{
		doc("w1", `{}`), doc("w2", `{}`), doc("w3", `{}`),
	}))

	removed, err := s.DeleteOne(ctx, Wishlists, "w2")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteOne(ctx, Wishlists, "w2")
	require.NoError(t, err)
	assert.False(t, removed)

	n, err := s.DeleteMany(ctx, Wishlists)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
