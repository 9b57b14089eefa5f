package backup

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/eventbus"
	"resale/internal/storage"
	"resale/internal/types"
	"resale/logger"
)

func init() {
	if err := logger.InitLogger("development"); err != nil {
		panic(err)
	}
}

type testEnv struct {
	db       *gorm.DB
	docs     docstore.Store
	backups  database.BackupRepository
	configs  database.BackupConfigRepository
	store    Store
	lock     LockManager
	commerce *fakeCommerce
	builder  Builder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	docs := docstore.New(db)
	backups := database.NewBackupRepository(docs)
	commerce := &fakeCommerce{items: 2}

	return &testEnv{
		db:       db,
		docs:     docs,
		backups:  backups,
		configs:  database.NewBackupConfigRepository(docs),
		store:    NewStore(backups, storage.NewFileStorage(t.TempDir()), storage.TypeFS),
		lock:     NewLockManager(db),
		commerce: commerce,
		builder:  NewBuilder(docs, backups, commerce),
	}
}

func (e *testEnv) insertDoc(t *testing.T, collection, id string) {
	t.Helper()
	err := e.docs.Upsert(context.Background(), collection, types.Document{
		ID:   id,
		Data: json.RawMessage(`{"fixture":true}`),
	})
	require.NoError(t, err)
}

// seedRecord persists a fabricated history entry directly through the
// repository so tests can control timestamps.
func (e *testEnv) seedRecord(t *testing.T, backupType types.BackupType, createdAt time.Time, collections ...string) *types.BackupRecord {
	t.Helper()

	record := &types.BackupRecord{
		ID:        uuid.New(),
		Type:      backupType,
		CreatedAt: createdAt,
		CreatedBy: "test",
	}
	for _, name := range collections {
		record.Collections = append(record.Collections, types.CollectionSnapshot{Name: name})
	}
	require.NoError(t, e.backups.Save(context.Background(), record))
	return record
}

// fakeCommerce serves canned platform content and fails on demand per
// category.
type fakeCommerce struct {
	mu       sync.Mutex
	items    int
	failures map[string]error
	calls    []string
}

func (f *fakeCommerce) list(category string) (types.ContentCategory, error) {
	f.mu.Lock()
	f.calls = append(f.calls, category)
	f.mu.Unlock()
	if err, ok := f.failures[category]; ok {
		return types.ContentCategory{}, err
	}

	items := make([]json.RawMessage, f.items)
	for i := range items {
		items[i] = json.RawMessage(`{"fixture":true}`)
	}
	return types.ContentCategory{Items: items, Count: len(items)}, nil
}

func (f *fakeCommerce) ListCatalogItems(context.Context) (types.ContentCategory, error) {
	return f.list("catalogItems")
}

func (f *fakeCommerce) ListThemeAssets(context.Context) (types.ContentCategory, error) {
	return f.list("themeAssets")
}

func (f *fakeCommerce) ListEmbeddedScripts(context.Context) (types.ContentCategory, error) {
	return f.list("embeddedScripts")
}

func (f *fakeCommerce) ListStructuredContentObjects(context.Context) (types.ContentCategory, error) {
	return f.list("structuredContent")
}

func (f *fakeCommerce) ListPublishedContent(context.Context) (types.ContentCategory, error) {
	return f.list("publishedContent")
}

func (e *testEnv) newScheduler(bus eventbus.Bus) *Scheduler {
	return NewScheduler(e.configs, e.backups, e.builder, e.store, e.lock, bus)
}
