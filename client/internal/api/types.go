package api

import (
	"time"

	"github.com/google/uuid"
)

type (
	LoginParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	AuthResponse struct {
		Token string `json:"token"`
	}

	CollectionSummary struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	ContentCategorySummary struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
		Error string `json:"error,omitempty"`
	}

	Backup struct {
		ID              uuid.UUID                `json:"id"`
		Type            string                   `json:"type"`
		CreatedAt       time.Time                `json:"created_at"`
		CreatedBy       string                   `json:"created_by"`
		Collections     []CollectionSummary      `json:"collections"`
		ExternalContent []ContentCategorySummary `json:"externalContent,omitempty"`
		Size            int64                    `json:"size"`
		SizeFormatted   string                   `json:"size_formatted"`
		StorageType     string                   `json:"storage_type,omitempty"`
	}

	CreateBackupParams struct {
		Type                   string `json:"type,omitempty"`
		IncludeExternalContent bool   `json:"include_external_content,omitempty"`
	}

	RestoreParams struct {
		Collections []string `json:"collections,omitempty"`
	}

	RestoreResult struct {
		BackupID            uuid.UUID                `json:"backup_id"`
		RestoredCollections []CollectionSummary      `json:"restored_collections"`
		ExternalContent     []ContentCategorySummary `json:"external_content,omitempty"`
		ExternalStatus      string                   `json:"external_status,omitempty"`
	}

	BackupConfig struct {
		FullBackupFrequency        string    `json:"fullBackupFrequency"`
		IncrementalBackupFrequency string    `json:"incrementalBackupFrequency"`
		AutoBackupEnabled          bool      `json:"autoBackupEnabled"`
		RetentionDays              int       `json:"retentionDays"`
		CronExpression             string    `json:"cronExpression,omitempty"`
		UpdatedAt                  time.Time `json:"updated_at"`
		UpdatedBy                  string    `json:"updated_by,omitempty"`
	}

	UpdateBackupConfigParams struct {
		FullBackupFrequency        *string `json:"fullBackupFrequency,omitempty"`
		IncrementalBackupFrequency *string `json:"incrementalBackupFrequency,omitempty"`
		AutoBackupEnabled          *bool   `json:"autoBackupEnabled,omitempty"`
		RetentionDays              *int    `json:"retentionDays,omitempty"`
		CronExpression             *string `json:"cronExpression,omitempty"`
	}

	ServerStatus struct {
		CPUCount      int     `json:"cpu_count"`
		MemoryTotal   uint64  `json:"memory_total"`
		MemoryUsedPct float64 `json:"memory_used_pct"`
		UptimeSeconds uint64  `json:"uptime_seconds"`
		Time          string  `json:"time"`
	}
)
