package backup

import (
	"fmt"
	"time"

	"resale/internal/types"
)

type Decision struct {
	Type      types.BackupType
	ShouldRun bool
	// Wait is how long until the next incremental window opens; only set
	// when ShouldRun is false.
	Wait   time.Duration
	Reason string
}

var fullIntervals = map[types.FullFrequency]time.Duration{
	types.FullDaily:  24 * time.Hour,
	types.FullWeekly: 7 * 24 * time.Hour,
}

var incrementalIntervals = map[types.IncrementalFrequency]time.Duration{
	types.IncrementalHourly:      time.Hour,
	types.IncrementalEvery2Hours: 2 * time.Hour,
	types.IncrementalEvery4Hours: 4 * time.Hour,
	types.IncrementalDaily:       24 * time.Hour,
}

// Decide picks the next backup type from the most recent record of any type,
// the most recent full record, and the configuration. It is pure: no clock
// reads, no store access.
func Decide(lastAny, lastFull *types.BackupRecord, now time.Time, cfg *types.BackupConfig) Decision {
	if lastFull == nil {
		// bootstrap: the first backup can never be incremental
		return Decision{
			Type:      types.BackupTypeFull,
			ShouldRun: true,
			Reason:    "no full backup exists yet",
		}
	}

	sinceFull := now.Sub(lastFull.CreatedAt)
	if sinceFull >= FullInterval(cfg.FullBackupFrequency) {
		return Decision{
			Type:      types.BackupTypeFull,
			ShouldRun: true,
			Reason:    fmt.Sprintf("last full backup was %s ago", sinceFull.Round(time.Minute)),
		}
	}

	incrementalEvery := IncrementalInterval(cfg.IncrementalBackupFrequency)
	if lastAny != nil {
		if elapsed := now.Sub(lastAny.CreatedAt); elapsed < incrementalEvery {
			wait := incrementalEvery - elapsed
			return Decision{
				Type:      types.BackupTypeIncremental,
				ShouldRun: false,
				Wait:      wait,
				Reason:    fmt.Sprintf("next backup window opens in %s", wait.Round(time.Second)),
			}
		}
	}

	return Decision{
		Type:      types.BackupTypeIncremental,
		ShouldRun: true,
		Reason:    "incremental interval elapsed",
	}
}

func FullInterval(f types.FullFrequency) time.Duration {
	if interval, ok := fullIntervals[f]; ok {
		return interval
	}
	return fullIntervals[types.FullWeekly]
}

func IncrementalInterval(f types.IncrementalFrequency) time.Duration {
	if interval, ok := incrementalIntervals[f]; ok {
		return interval
	}
	return incrementalIntervals[types.IncrementalHourly]
}
