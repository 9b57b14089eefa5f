package backup

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resale/internal/types"
)

const (
	lockKey = "backup-lock"

	// LockDuration bounds staleness when a holder crashes mid-backup: a
	// later attempt reclaims the lock once this window has passed. It must
	// exceed the worst-case backup duration.
	LockDuration = 30 * time.Minute
)

type (
	Acquisition struct {
		Acquired bool
		// ExpiresAt is this caller's expiry when acquired, or the current
		// holder's expiry when not.
		ExpiresAt time.Time
	}

	// LockManager serializes backup and restore runs system-wide. Acquire is
	// a single atomic test-expiry-and-set against the store; a check-then-set
	// split would race between stateless invocations.
	LockManager interface {
		Acquire(ctx context.Context) (Acquisition, error)
		Release(ctx context.Context) error
	}

	lockManager struct {
		db *gorm.DB
	}
)

func NewLockManager(db *gorm.DB) LockManager {
	return &lockManager{db: db}
}

func (l lockManager) Acquire(ctx context.Context) (Acquisition, error) {
	now := time.Now()
	lock := types.BackupLock{Key: lockKey, ExpiresAt: now.Add(LockDuration)}

	acq := Acquisition{}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// reclaim an expired lock and take it in the same transaction
		if err := tx.Where("key = ? AND expires_at < ?", lockKey, now).
			Delete(&types.BackupLock{}).Error; err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lock)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			acq = Acquisition{Acquired: true, ExpiresAt: lock.ExpiresAt}
			return nil
		}

		held := types.BackupLock{}
		if err := tx.Where("key = ?", lockKey).First(&held).Error; err != nil {
			return err
		}
		acq = Acquisition{Acquired: false, ExpiresAt: held.ExpiresAt}
		return nil
	})
	if err != nil {
		// store unreachable: report not-acquired, the caller skips this run
		return Acquisition{}, err
	}
	return acq, nil
}

// Release deletes the lock unconditionally; it is safe to call without
// holding the lock.
func (l lockManager) Release(ctx context.Context) error {
	return l.db.WithContext(ctx).Where("key = ?", lockKey).Delete(&types.BackupLock{}).Error
}
