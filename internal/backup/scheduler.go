package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	errors2 "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"resale/internal/database"
	"resale/internal/eventbus"
	"resale/internal/types"
	"resale/logger"
)

type (
	TickStatus string

	// TickOutcome is the machine-readable result of one backup attempt, for
	// both the in-process timer and the external trigger endpoint.
	TickOutcome struct {
		Status   TickStatus       `json:"status"`
		Message  string           `json:"message"`
		BackupID uuid.UUID        `json:"backup_id,omitempty"`
		Type     types.BackupType `json:"type,omitempty"`
	}

	// Scheduler owns the recurring backup timer. All correctness state
	// (config, history, lock) lives in the store, so a tick is equally valid
	// from the timer or from a stateless external trigger.
	Scheduler struct {
		configs database.BackupConfigRepository
		backups database.BackupRepository
		builder Builder
		store   Store
		lock    LockManager
		bus     eventbus.Bus

		mu        sync.Mutex
		scheduler gocron.Scheduler
		running   bool
	}
)

const (
	TickRan     TickStatus = "ran"
	TickSkipped TickStatus = "skipped"
	TickError   TickStatus = "error"
)

func NewScheduler(configs database.BackupConfigRepository, backups database.BackupRepository,
	builder Builder, store Store, lock LockManager, bus eventbus.Bus) *Scheduler {
	return &Scheduler{
		configs: configs,
		backups: backups,
		builder: builder,
		store:   store,
		lock:    lock,
		bus:     bus,
	}
}

// Start arms the recurring timer. It is a no-op when auto backup is disabled
// or the scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return errors2.Wrap(err, "failed to load backup config")
	}
	if !cfg.AutoBackupEnabled {
		logger.Info("auto backup disabled, scheduler not started")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	definition, err := jobDefinition(cfg)
	if err != nil {
		return err
	}

	task := func() {
		outcome := s.RunOnce(ctx, types.SchedulerActor)
		logger.Info("scheduled backup tick",
			zap.String("status", string(outcome.Status)),
			zap.String("message", outcome.Message))
	}

	if _, err := scheduler.NewJob(definition, gocron.NewTask(task)); err != nil {
		return err
	}

	scheduler.Start()
	// one immediate attempt; the job definition covers the cadence from here
	go task()

	s.scheduler = scheduler
	s.running = true
	logger.Info("backup scheduler started",
		zap.String("incremental_frequency", string(cfg.IncrementalBackupFrequency)),
		zap.String("cron_override", cfg.CronExpression))
	return nil
}

// Stop cancels the timer. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	if err := s.scheduler.Shutdown(); err != nil {
		logger.Error("scheduler shutdown failed", zap.Error(err))
	}
	s.scheduler = nil
	s.running = false
	logger.Info("backup scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce performs one complete acquire→decide→build→save→purge→release
// sequence. Every exit path releases the lock once acquired.
func (s *Scheduler) RunOnce(ctx context.Context, initiator string) TickOutcome {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return TickOutcome{Status: TickError, Message: "failed to load backup config: " + err.Error()}
	}

	acq, err := s.lock.Acquire(ctx)
	if err != nil {
		// store unreachable: skip this attempt, never proceed unlocked
		return TickOutcome{Status: TickSkipped, Message: "could not acquire backup lock: " + err.Error()}
	}
	if !acq.Acquired {
		remaining := time.Until(acq.ExpiresAt).Round(time.Second)
		return TickOutcome{
			Status:  TickSkipped,
			Message: fmt.Sprintf("another backup is in progress, lock expires in %s", remaining),
		}
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			logger.Error("failed to release backup lock", zap.Error(err))
		}
	}()

	lastAny, err := s.backups.LatestAny(ctx)
	if err != nil {
		return TickOutcome{Status: TickError, Message: "failed to read backup history: " + err.Error()}
	}
	lastFull, err := s.backups.LatestFull(ctx)
	if err != nil {
		return TickOutcome{Status: TickError, Message: "failed to read backup history: " + err.Error()}
	}

	decision := Decide(lastAny, lastFull, time.Now(), cfg)
	if !decision.ShouldRun {
		return TickOutcome{Status: TickSkipped, Message: decision.Reason}
	}

	record, err := s.builder.Build(ctx, BuildParams{Type: decision.Type, CreatedBy: initiator})
	if errors2.Is(err, ErrNothingToBackup) {
		return TickOutcome{Status: TickSkipped, Message: "no changes since the last backup"}
	}
	if err != nil {
		s.bus.Publish(eventbus.TopicBackupFailed, err.Error())
		return TickOutcome{Status: TickError, Message: "snapshot build failed: " + err.Error()}
	}

	id, err := s.store.Save(ctx, record)
	if err != nil {
		s.bus.Publish(eventbus.TopicBackupFailed, err.Error())
		return TickOutcome{Status: TickError, Message: "failed to save backup: " + err.Error()}
	}

	if _, err := s.store.PurgeOlderThan(ctx, cfg.RetentionDays); err != nil {
		logger.Error("retention purge failed", zap.Error(err))
	}

	s.bus.Publish(eventbus.TopicBackupCompleted,
		fmt.Sprintf("%s backup %s saved (%s)", record.Type, id, record.SizeFormatted))
	return TickOutcome{
		Status:   TickRan,
		Message:  fmt.Sprintf("%s backup completed", record.Type),
		BackupID: id,
		Type:     record.Type,
	}
}

func jobDefinition(cfg *types.BackupConfig) (gocron.JobDefinition, error) {
	if cfg.CronExpression != "" {
		if err := ValidateCronExpression(cfg.CronExpression); err != nil {
			return nil, err
		}
		return gocron.CronJob(cfg.CronExpression, false), nil
	}
	return gocron.DurationJob(IncrementalInterval(cfg.IncrementalBackupFrequency)), nil
}

func ValidateCronExpression(expression string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(expression); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
