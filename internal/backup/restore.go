package backup

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"resale/internal/docstore"
	"resale/internal/misc"
	"resale/internal/types"
	"resale/logger"
)

const externalRestoreStatus = "external content is reported only; restoring it " +
	"requires platform write permissions and must be performed manually"

type (
	// Restorer replaces live collection contents with a snapshot's. The
	// replace is delete-then-insert, not a merge: live documents outside the
	// snapshot are lost for every restored collection.
	Restorer interface {
		Restore(ctx context.Context, backupID string, collections []string) (*types.RestoreResult, error)
	}

	restorer struct {
		docs    docstore.Store
		backups Store
		lock    LockManager
	}
)

func NewRestorer(docs docstore.Store, backups Store, lock LockManager) Restorer {
	return &restorer{docs: docs, backups: backups, lock: lock}
}

func (r restorer) Restore(ctx context.Context, backupID string, collections []string) (*types.RestoreResult, error) {
	record, err := r.backups.Get(ctx, backupID)
	if err != nil {
		return nil, err
	}

	targets := record.Collections
	if len(collections) > 0 {
		targets = lo.Filter(record.Collections, func(c types.CollectionSnapshot, _ int) bool {
			return misc.StrContains(c.Name, collections)
		})
		if len(targets) == 0 {
			return nil, errors.New("backup contains none of the requested collections")
		}
	}

	// hold the backup lock for the whole replace so no backup observes a
	// half-restored store
	acq, err := r.lock.Acquire(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire backup lock")
	}
	if !acq.Acquired {
		return nil, ErrBackupInProgress
	}
	defer func() {
		if err := r.lock.Release(ctx); err != nil {
			logger.Error("failed to release backup lock after restore", zap.Error(err))
		}
	}()

	logger.Info("starting restore",
		zap.String("backup_id", record.ID.String()),
		zap.Int("collections", len(targets)))

	result := &types.RestoreResult{
		BackupID:       record.ID,
		ExternalStatus: externalRestoreStatus,
	}
	for _, snapshot := range targets {
		if _, err := r.docs.DeleteMany(ctx, snapshot.Name); err != nil {
			return nil, errors.Wrap(err, "failed to clear collection "+snapshot.Name)
		}
		if err := r.docs.InsertMany(ctx, snapshot.Name, snapshot.Data); err != nil {
			return nil, errors.Wrap(err, "failed to restore collection "+snapshot.Name)
		}

		result.RestoredCollections = append(result.RestoredCollections, types.CollectionSummary{
			Name:  snapshot.Name,
			Count: len(snapshot.Data),
		})
	}

	if record.ExternalContent != nil {
		result.ExternalContent = record.ExternalContent.Summaries()
	}

	logger.Info("restore completed", zap.String("backup_id", record.ID.String()))
	return result, nil
}
