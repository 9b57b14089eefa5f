package backup

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resale/internal/docstore"
	"resale/internal/types"
)

func TestBuildFullCapturesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "p1")
	env.insertDoc(t, docstore.Products, "p2")
	env.insertDoc(t, docstore.Customers, "c1")

	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeFull, CreatedBy: "admin@resale.dev"})
	require.NoError(t, err)

	assert.Equal(t, types.BackupTypeFull, record.Type)
	assert.Equal(t, "admin@resale.dev", record.CreatedBy)
	require.Len(t, record.Collections, len(TrackedCollections))

	byName := map[string]types.CollectionSnapshot{}
	for _, c := range record.Collections {
		byName[c.Name] = c
	}
	assert.Equal(t, 2, byName[docstore.Products].Count)
	assert.Equal(t, 1, byName[docstore.Customers].Count)
	assert.Equal(t, 0, byName[docstore.Staff].Count)

	// full backups always include external content
	require.NotNil(t, record.ExternalContent)
	assert.Equal(t, 2, record.ExternalContent.CatalogItems.Count)
	assert.Empty(t, record.ExternalContent.CatalogItems.Error)
}

func TestBuildIncrementalUsesPerCollectionHighWaterMark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "old-product")
	env.insertDoc(t, docstore.Customers, "old-customer")
	time.Sleep(20 * time.Millisecond)

	// products captured recently, customers last captured long ago
	env.seedRecord(t, types.BackupTypeFull, time.Now(), docstore.Products)
	env.seedRecord(t, types.BackupTypeIncremental, time.Now().Add(-time.Hour), docstore.Customers)
	time.Sleep(20 * time.Millisecond)

	env.insertDoc(t, docstore.Products, "new-product")

	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeIncremental, CreatedBy: "test"})
	require.NoError(t, err)
	assert.Nil(t, record.ExternalContent)

	byName := map[string]types.CollectionSnapshot{}
	for _, c := range record.Collections {
		byName[c.Name] = c
	}

	// products: only the document changed after its own mark
	require.Equal(t, 1, byName[docstore.Products].Count)
	assert.Equal(t, "new-product", byName[docstore.Products].Data[0].ID)

	// customers: its mark is an hour old, so the old document still counts
	// as changed
	require.Equal(t, 1, byName[docstore.Customers].Count)
	assert.Equal(t, "old-customer", byName[docstore.Customers].Data[0].ID)
}

func TestBuildIncrementalFallsBackToFullForUncapturedCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Staff, "s1")
	time.Sleep(20 * time.Millisecond)
	// history exists but never captured the staff collection
	env.seedRecord(t, types.BackupTypeFull, time.Now(), docstore.Products)

	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeIncremental, CreatedBy: "test"})
	require.NoError(t, err)

	for _, c := range record.Collections {
		if c.Name == docstore.Staff {
			assert.Equal(t, 1, c.Count)
		}
	}
}

func TestBuildIncrementalNothingChanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "p1")
	time.Sleep(20 * time.Millisecond)
	env.seedRecord(t, types.BackupTypeFull, time.Now(), TrackedCollections...)

	_, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeIncremental, CreatedBy: "test"})
	assert.ErrorIs(t, err, ErrNothingToBackup)
}

func TestBuildPartialExternalFailureIsContained(t *testing.T) {
	env := newTestEnv(t)
	env.commerce.failures = map[string]error{
		"themeAssets": errors.New("502 bad gateway"),
	}

	record, err := env.builder.Build(context.Background(), BuildParams{Type: types.BackupTypeFull, CreatedBy: "test"})
	require.NoError(t, err)
	require.NotNil(t, record.ExternalContent)

	assert.Equal(t, "502 bad gateway", record.ExternalContent.ThemeAssets.Error)
	assert.Zero(t, record.ExternalContent.ThemeAssets.Count)

	assert.Equal(t, 2, record.ExternalContent.CatalogItems.Count)
	assert.Equal(t, 2, record.ExternalContent.EmbeddedScripts.Count)
	assert.Equal(t, 2, record.ExternalContent.StructuredContent.Count)
	assert.Equal(t, 2, record.ExternalContent.PublishedContent.Count)
	assert.Len(t, env.commerce.calls, 5)
}

func TestBuildIncrementalSkipsExternalUnlessForced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.insertDoc(t, docstore.Products, "p1")

	record, err := env.builder.Build(ctx, BuildParams{Type: types.BackupTypeIncremental, CreatedBy: "test"})
	require.NoError(t, err)
	assert.Nil(t, record.ExternalContent)

	record, err = env.builder.Build(ctx, BuildParams{
		Type:                   types.BackupTypeIncremental,
		CreatedBy:              "test",
		IncludeExternalContent: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, record.ExternalContent)
}

func TestBuildRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.builder.Build(context.Background(), BuildParams{Type: "differential"})
	assert.Error(t, err)
}
