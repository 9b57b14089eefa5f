package database

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"resale/internal/docstore"
	"resale/internal/types"
)

type (
	backupRepository struct {
		records collection[types.BackupRecord]
		store   docstore.Store
	}

	backupConfigRepository struct {
		store docstore.Store
	}
)

// backupConfigID keys the singleton configuration document.
const backupConfigID = "backup-config"

func NewBackupRepository(store docstore.Store) BackupRepository {
	return &backupRepository{
		records: collection[types.BackupRecord]{store: store, name: docstore.Backups},
		store:   store,
	}
}

func (b backupRepository) Save(ctx context.Context, record *types.BackupRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to encode backup record")
	}

	// records are immutable, insert-only
	return b.store.InsertMany(ctx, docstore.Backups, []types.Document{
		{ID: record.ID.String(), Data: data},
	})
}

func (b backupRepository) FindAll(ctx context.Context) ([]*types.BackupRecord, error) {
	all, err := b.records.all(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (b backupRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.BackupRecord, error) {
	return b.records.get(ctx, id.String())
}

func (b backupRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return b.records.delete(ctx, id.String())
}

func (b backupRepository) LatestAny(ctx context.Context) (*types.BackupRecord, error) {
	return b.latest(ctx, func(*types.BackupRecord) bool { return true })
}

func (b backupRepository) LatestFull(ctx context.Context) (*types.BackupRecord, error) {
	return b.latest(ctx, func(r *types.BackupRecord) bool {
		return r.Type == types.BackupTypeFull
	})
}

func (b backupRepository) LatestContaining(ctx context.Context, collection string) (*types.BackupRecord, error) {
	return b.latest(ctx, func(r *types.BackupRecord) bool {
		return r.HasCollection(collection)
	})
}

func (b backupRepository) latest(ctx context.Context, match func(*types.BackupRecord) bool) (*types.BackupRecord, error) {
	all, err := b.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range all {
		if match(record) {
			return record, nil
		}
	}
	return nil, nil
}

func NewBackupConfigRepository(store docstore.Store) BackupConfigRepository {
	return &backupConfigRepository{store: store}
}

func (b backupConfigRepository) Get(ctx context.Context) (*types.BackupConfig, error) {
	doc, err := b.store.FindOne(ctx, docstore.BackupConfig, backupConfigID)
	if errors.Is(err, docstore.ErrNotFound) {
		cfg := types.DefaultBackupConfig()
		if err := b.Update(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &types.BackupConfig{}
	if err := json.Unmarshal(doc.Data, cfg); err != nil {
		return nil, errors.Wrap(err, "corrupt backup config document")
	}
	return cfg, nil
}

func (b backupConfigRepository) Update(ctx context.Context, cfg *types.BackupConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode backup config")
	}
	return b.store.Upsert(ctx, docstore.BackupConfig, types.Document{ID: backupConfigID, Data: data})
}
