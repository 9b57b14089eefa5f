package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	errors2 "github.com/pkg/errors"
	"go.uber.org/zap"

	"resale/internal/backup"
	"resale/internal/database"
	"resale/internal/eventbus"
	"resale/internal/types"
	"resale/logger"
)

var ErrInvalidBackupConfig = errors.New("invalid backup configuration")

type (
	// BackupService is the application-facing surface over the backup
	// engine: manual backups, restores, record management, configuration and
	// the idempotent trigger used by both the timer and the external
	// endpoint.
	BackupService interface {
		Create(ctx context.Context, initiator string, params types.CreateBackupParams) (*types.BackupRecord, error)
		List(ctx context.Context) ([]types.BackupSummary, error)
		Get(ctx context.Context, id string) (*types.BackupRecord, error)
		Download(ctx context.Context, id string) (*types.File, error)
		Delete(ctx context.Context, initiator, id string) error
		Restore(ctx context.Context, initiator, id string, params types.RestoreParams) (*types.RestoreResult, error)
		Trigger(ctx context.Context, initiator string) backup.TickOutcome
		GetConfig(ctx context.Context) (*types.BackupConfig, error)
		UpdateConfig(ctx context.Context, initiator string, params types.UpdateBackupConfigParams) (*types.BackupConfig, error)
	}

	backupService struct {
		builder   backup.Builder
		store     backup.Store
		restorer  backup.Restorer
		lock      backup.LockManager
		scheduler *backup.Scheduler
		configs   database.BackupConfigRepository
		backups   database.BackupRepository
		audit     AuditService
		bus       eventbus.Bus
	}
)

func NewBackupService(builder backup.Builder, store backup.Store, restorer backup.Restorer,
	lock backup.LockManager, scheduler *backup.Scheduler, configs database.BackupConfigRepository,
	backups database.BackupRepository, audit AuditService, bus eventbus.Bus) BackupService {
	return &backupService{
		builder:   builder,
		store:     store,
		restorer:  restorer,
		lock:      lock,
		scheduler: scheduler,
		configs:   configs,
		backups:   backups,
		audit:     audit,
		bus:       bus,
	}
}

// Create runs a manual backup. An explicit type is honored; otherwise the
// policy engine picks full or incremental from the history.
func (b *backupService) Create(ctx context.Context, initiator string, params types.CreateBackupParams) (*types.BackupRecord, error) {
	acq, err := b.lock.Acquire(ctx)
	if err != nil {
		return nil, errors2.Wrap(err, "failed to acquire backup lock")
	}
	if !acq.Acquired {
		return nil, backup.ErrBackupInProgress
	}
	defer func() {
		if err := b.lock.Release(ctx); err != nil {
			logger.Error("failed to release backup lock", zap.Error(err))
		}
	}()

	backupType := params.Type
	if backupType == "" {
		backupType, err = b.decideType(ctx)
		if err != nil {
			return nil, err
		}
	}

	record, err := b.builder.Build(ctx, backup.BuildParams{
		Type:                   backupType,
		CreatedBy:              initiator,
		IncludeExternalContent: params.IncludeExternalContent,
	})
	if err != nil {
		return nil, err
	}

	if _, err := b.store.Save(ctx, record); err != nil {
		return nil, err
	}

	b.audit.Record(ctx, initiator, "backup.create", record.ID.String(), string(record.Type))
	b.bus.Publish(eventbus.TopicBackupCompleted,
		fmt.Sprintf("%s backup %s saved (%s)", record.Type, record.ID, record.SizeFormatted))
	return record, nil
}

// decideType mirrors the scheduler's choice but ignores the incremental
// window: a manual backup always runs.
func (b *backupService) decideType(ctx context.Context) (types.BackupType, error) {
	cfg, err := b.configs.Get(ctx)
	if err != nil {
		return "", err
	}
	lastFull, err := b.backups.LatestFull(ctx)
	if err != nil {
		return "", err
	}

	if lastFull == nil {
		return types.BackupTypeFull, nil
	}
	if time.Since(lastFull.CreatedAt) >= backup.FullInterval(cfg.FullBackupFrequency) {
		return types.BackupTypeFull, nil
	}
	return types.BackupTypeIncremental, nil
}

func (b *backupService) List(ctx context.Context) ([]types.BackupSummary, error) {
	return b.store.List(ctx)
}

func (b *backupService) Get(ctx context.Context, id string) (*types.BackupRecord, error) {
	return b.store.Get(ctx, id)
}

func (b *backupService) Download(ctx context.Context, id string) (*types.File, error) {
	return b.store.Download(ctx, id)
}

func (b *backupService) Delete(ctx context.Context, initiator, id string) error {
	deleted, err := b.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return backup.ErrBackupNotFound
	}
	b.audit.Record(ctx, initiator, "backup.delete", id, "")
	return nil
}

func (b *backupService) Restore(ctx context.Context, initiator, id string, params types.RestoreParams) (*types.RestoreResult, error) {
	result, err := b.restorer.Restore(ctx, id, params.Collections)
	if err != nil {
		return nil, err
	}

	b.audit.Record(ctx, initiator, "backup.restore", id,
		fmt.Sprintf("%d collections", len(result.RestoredCollections)))
	b.bus.Publish(eventbus.TopicRestoreCompleted, id)
	return result, nil
}

// Trigger runs one scheduler tick on behalf of an external caller. Safe to
// invoke at any frequency: the tick re-reads config, history and the lock, so
// a redundant call degrades to a skip.
func (b *backupService) Trigger(ctx context.Context, initiator string) backup.TickOutcome {
	outcome := b.scheduler.RunOnce(ctx, initiator)
	if outcome.Status == backup.TickRan {
		b.audit.Record(ctx, initiator, "backup.create", outcome.BackupID.String(), string(outcome.Type))
	}
	return outcome
}

func (b *backupService) GetConfig(ctx context.Context) (*types.BackupConfig, error) {
	return b.configs.Get(ctx)
}

// UpdateConfig applies a partial update and restarts the scheduler so the new
// cadence takes effect immediately.
func (b *backupService) UpdateConfig(ctx context.Context, initiator string, params types.UpdateBackupConfigParams) (*types.BackupConfig, error) {
	cfg, err := b.configs.Get(ctx)
	if err != nil {
		return nil, err
	}

	if params.FullBackupFrequency != nil {
		if !params.FullBackupFrequency.Valid() {
			return nil, errors2.Wrapf(ErrInvalidBackupConfig, "unknown full backup frequency: %s", *params.FullBackupFrequency)
		}
		cfg.FullBackupFrequency = *params.FullBackupFrequency
	}
	if params.IncrementalBackupFrequency != nil {
		if !params.IncrementalBackupFrequency.Valid() {
			return nil, errors2.Wrapf(ErrInvalidBackupConfig, "unknown incremental backup frequency: %s", *params.IncrementalBackupFrequency)
		}
		cfg.IncrementalBackupFrequency = *params.IncrementalBackupFrequency
	}
	if params.AutoBackupEnabled != nil {
		cfg.AutoBackupEnabled = *params.AutoBackupEnabled
	}
	if params.RetentionDays != nil {
		if *params.RetentionDays < 1 {
			return nil, errors2.Wrap(ErrInvalidBackupConfig, "retention must be at least one day")
		}
		cfg.RetentionDays = *params.RetentionDays
	}
	if params.CronExpression != nil {
		if *params.CronExpression != "" {
			if err := backup.ValidateCronExpression(*params.CronExpression); err != nil {
				return nil, errors2.Wrap(ErrInvalidBackupConfig, err.Error())
			}
		}
		cfg.CronExpression = *params.CronExpression
	}
	cfg.UpdatedAt = time.Now()
	cfg.UpdatedBy = initiator

	if err := b.configs.Update(ctx, cfg); err != nil {
		return nil, err
	}

	// restart on a fresh context: the timer must outlive this request
	b.scheduler.Stop()
	if err := b.scheduler.Start(context.Background()); err != nil {
		logger.Error("failed to restart backup scheduler", zap.Error(err))
	}

	b.audit.Record(ctx, initiator, "backup.config.update", "backup-config", "")
	return cfg, nil
}
