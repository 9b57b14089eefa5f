package backup

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resale/internal/docstore"
	"resale/internal/types"
)

func TestStoreSaveAssignsSizeAndArchive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "p1")
	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeFull, CreatedBy: "test"})
	require.NoError(t, err)

	id, err := env.store.Save(ctx, record)
	require.NoError(t, err)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())

	saved, err := env.store.Get(ctx, id.String())
	require.NoError(t, err)
	assert.Greater(t, saved.Size, int64(0))
	assert.NotEmpty(t, saved.SizeFormatted)
	assert.NotEmpty(t, saved.Location)
	assert.Equal(t, "File", saved.StorageType)

	// the archive must round-trip to the same record, and its byte length
	// is exactly what the record reports
	file, err := env.store.Download(ctx, id.String())
	require.NoError(t, err)
	defer file.Content.Close()

	content, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, saved.Size, int64(len(content)))

	archived := &types.BackupRecord{}
	require.NoError(t, json.Unmarshal(content, archived))
	assert.Equal(t, saved.ID, archived.ID)
	assert.Equal(t, saved.Collections, archived.Collections)
}

func TestStoreListExcludesPayloads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "p1")
	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeFull, CreatedBy: "admin"})
	require.NoError(t, err)
	_, err = env.store.Save(ctx, record)
	require.NoError(t, err)

	summaries, err := env.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, record.ID, summary.ID)
	assert.Equal(t, "admin", summary.CreatedBy)
	require.NotEmpty(t, summary.Collections)
	require.NotEmpty(t, summary.ExternalContent)

	// summaries carry counts only
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"fixture"`)
}

func TestStoreRejectsMalformedID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidBackupID)

	_, err = env.store.Download(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidBackupID)
}

func TestStoreGetUnknownID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.Get(context.Background(), "7db66f1f-6cf5-40ad-ad6c-47e1e53fac51")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestStoreDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record := env.seedRecord(t, types.BackupTypeIncremental, time.Now(), docstore.Products)

	deleted, err := env.store.Delete(ctx, record.ID.String())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = env.store.Delete(ctx, record.ID.String())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPurgeOlderThan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Now()
	oldFull := env.seedRecord(t, types.BackupTypeFull, now.AddDate(0, 0, -60), docstore.Products)
	oldIncremental := env.seedRecord(t, types.BackupTypeIncremental, now.AddDate(0, 0, -45), docstore.Products)
	recentIncremental := env.seedRecord(t, types.BackupTypeIncremental, now.AddDate(0, 0, -5), docstore.Products)

	purged, err := env.store.PurgeOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	// the stale incremental is gone
	_, err = env.store.Get(ctx, oldIncremental.ID.String())
	assert.ErrorIs(t, err, ErrBackupNotFound)

	// the only full backup survives even though it is far past retention
	_, err = env.store.Get(ctx, oldFull.ID.String())
	assert.NoError(t, err)

	// records inside the window are untouched
	_, err = env.store.Get(ctx, recentIncremental.ID.String())
	assert.NoError(t, err)
}

func TestPurgeProtectsOnlyLatestFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Now()
	olderFull := env.seedRecord(t, types.BackupTypeFull, now.AddDate(0, 0, -90), docstore.Products)
	newerFull := env.seedRecord(t, types.BackupTypeFull, now.AddDate(0, 0, -60), docstore.Products)

	purged, err := env.store.PurgeOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = env.store.Get(ctx, olderFull.ID.String())
	assert.ErrorIs(t, err, ErrBackupNotFound)
	_, err = env.store.Get(ctx, newerFull.ID.String())
	assert.NoError(t, err)
}

func TestPurgeDisabledRetention(t *testing.T) {
	env := newTestEnv(t)

	env.seedRecord(t, types.BackupTypeIncremental, time.Now().AddDate(0, 0, -500), docstore.Products)

	purged, err := env.store.PurgeOlderThan(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
