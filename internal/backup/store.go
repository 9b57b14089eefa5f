package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	errors2 "github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/misc"
	"resale/internal/storage"
	"resale/internal/types"
	"resale/logger"
)

type (
	// Store persists backup records and their JSON archives. save is
	// all-or-nothing: a record is only visible once its archive write and
	// the document insert both succeeded.
	Store interface {
		Save(ctx context.Context, record *types.BackupRecord) (uuid.UUID, error)
		List(ctx context.Context) ([]types.BackupSummary, error)
		Get(ctx context.Context, id string) (*types.BackupRecord, error)
		Download(ctx context.Context, id string) (*types.File, error)
		Delete(ctx context.Context, id string) (bool, error)
		PurgeOlderThan(ctx context.Context, days int) (int, error)
	}

	store struct {
		backups     database.BackupRepository
		archives    storage.Storage
		storageType storage.Type
	}
)

func NewStore(backups database.BackupRepository, archives storage.Storage, storageType storage.Type) Store {
	return &store{backups: backups, archives: archives, storageType: storageType}
}

func (s store) Save(ctx context.Context, record *types.BackupRecord) (uuid.UUID, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.Location = fmt.Sprintf("backup-%s-%s-%s.json",
		record.Type, record.CreatedAt.Format("2006_01_02_03_04pm"), record.ID)
	record.StorageType = s.storageType.String()

	// measure, never estimate: serialize once and record the exact byte
	// length of the written archive
	archive, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, errors2.Wrap(err, "failed to serialize backup archive")
	}
	record.Size = int64(len(archive))
	record.SizeFormatted = misc.FormatBytes(record.Size)

	file := types.File{
		Content: types.NoOpReadCloser{Reader: bytes.NewReader(archive)},
		Stat: types.FileStat{
			Size:        int64(len(archive)),
			Name:        record.Location,
			ContentType: "application/json",
		},
	}
	if err := s.archives.Save(ctx, record.Location, file); err != nil {
		return uuid.Nil, errors2.Wrap(err, "failed to write backup archive")
	}

	if err := s.backups.Save(ctx, record); err != nil {
		// keep save all-or-nothing: drop the orphaned archive
		if cleanupErr := s.archives.Delete(ctx, record.Location); cleanupErr != nil {
			logger.Warn("failed to remove orphaned backup archive",
				zap.String("location", record.Location),
				zap.Error(cleanupErr))
		}
		return uuid.Nil, errors2.Wrap(err, "failed to persist backup record")
	}

	logger.Info("backup saved",
		zap.String("id", record.ID.String()),
		zap.String("type", string(record.Type)),
		zap.String("size", record.SizeFormatted))
	return record.ID, nil
}

func (s store) List(ctx context.Context) ([]types.BackupSummary, error) {
	all, err := s.backups.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(all, func(record *types.BackupRecord, _ int) types.BackupSummary {
		return record.Summary()
	}), nil
}

func (s store) Get(ctx context.Context, id string) (*types.BackupRecord, error) {
	backupID, err := ParseBackupID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.backups.FindByID(ctx, backupID)
	if errors2.Is(err, docstore.ErrNotFound) {
		return nil, ErrBackupNotFound
	}
	return record, err
}

func (s store) Download(ctx context.Context, id string) (*types.File, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Location == "" {
		return nil, errors2.New("backup has no archive")
	}
	return s.archives.Get(ctx, record.Location)
}

func (s store) Delete(ctx context.Context, id string) (bool, error) {
	record, err := s.Get(ctx, id)
	if errors2.Is(err, ErrBackupNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	deleted, err := s.backups.Delete(ctx, record.ID)
	if err != nil || !deleted {
		return deleted, err
	}

	if record.Location != "" {
		if err := s.archives.Delete(ctx, record.Location); err != nil {
			logger.Warn("failed to delete backup archive",
				zap.String("location", record.Location),
				zap.Error(err))
		}
	}
	return true, nil
}

// PurgeOlderThan deletes records older than the retention window. The most
// recent full backup always survives, regardless of age: deleting it could
// leave no restorable baseline.
func (s store) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, nil
	}

	all, err := s.backups.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	latestFull, _ := lo.Find(all, func(record *types.BackupRecord) bool {
		return record.Type == types.BackupTypeFull
	})

	cutoff := time.Now().AddDate(0, 0, -days)
	purged := 0
	for _, record := range all {
		if !record.CreatedAt.Before(cutoff) {
			continue
		}
		if latestFull != nil && record.ID == latestFull.ID {
			continue
		}

		if _, err := s.Delete(ctx, record.ID.String()); err != nil {
			return purged, err
		}
		purged++
	}

	if purged > 0 {
		logger.Info("purged expired backups",
			zap.Int("count", purged),
			zap.Int("retention_days", days))
	}
	return purged, nil
}

// ParseBackupID validates that id is a syntactically legal record identifier
// before it is allowed anywhere near the store.
func ParseBackupID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidBackupID
	}
	return parsed, nil
}
