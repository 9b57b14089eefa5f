package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type (
	BackupType string

	FullFrequency        string
	IncrementalFrequency string

	// CollectionSnapshot is one tracked collection captured at backup time.
	// For a full backup Data holds every document, for an incremental backup
	// only the documents changed since the collection's high-water mark.
	CollectionSnapshot struct {
		Name  string     `json:"name"`
		Count int        `json:"count"`
		Data  []Document `json:"data"`
	}

	// ContentCategory holds the result of one commerce platform fetch. A
	// failed fetch keeps Items empty and records the failure in Error; the
	// other categories are unaffected.
	ContentCategory struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
		Error string            `json:"error,omitempty"`
	}

	ExternalContent struct {
		CatalogItems      ContentCategory `json:"catalogItems"`
		ThemeAssets       ContentCategory `json:"themeAssets"`
		EmbeddedScripts   ContentCategory `json:"embeddedScripts"`
		StructuredContent ContentCategory `json:"structuredContent"`
		PublishedContent  ContentCategory `json:"publishedContent"`
	}

	// BackupRecord is immutable once saved. Restores and deletions operate on
	// it as a whole, it is never rewritten in place.
	BackupRecord struct {
		ID              uuid.UUID            `json:"id"`
		Type            BackupType           `json:"type"`
		CreatedAt       time.Time            `json:"created_at"`
		CreatedBy       string               `json:"created_by"`
		Collections     []CollectionSnapshot `json:"collections"`
		ExternalContent *ExternalContent     `json:"externalContent,omitempty"`
		// Size is the exact byte length of the stored archive. The archive
		// is serialized before the size fields are stamped, so within the
		// archive itself they read as zero.
		Size          int64  `json:"size"`
		SizeFormatted string `json:"size_formatted"`
		Location      string `json:"location,omitempty"`
		StorageType   string `json:"storage_type,omitempty"`
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

	// BackupSummary is the list-view rendering of a BackupRecord, without the
	// document payloads and raw external content.
	BackupSummary struct {
		ID              uuid.UUID                `json:"id"`
		Type            BackupType               `json:"type"`
		CreatedAt       time.Time                `json:"created_at"`
		CreatedBy       string                   `json:"created_by"`
		Collections     []CollectionSummary      `json:"collections"`
		ExternalContent []ContentCategorySummary `json:"externalContent,omitempty"`
		Size            int64                    `json:"size"`
		SizeFormatted   string                   `json:"size_formatted"`
		StorageType     string                   `json:"storage_type,omitempty"`
	}

	// BackupConfig is a singleton document, created with defaults on first
	// read and updated through the admin API.
	BackupConfig struct {
		FullBackupFrequency        FullFrequency        `json:"fullBackupFrequency"`
		IncrementalBackupFrequency IncrementalFrequency `json:"incrementalBackupFrequency"`
		AutoBackupEnabled          bool                 `json:"autoBackupEnabled"`
		RetentionDays              int                  `json:"retentionDays"`
		// CronExpression optionally overrides the cadence derived from
		// IncrementalBackupFrequency for the in-process scheduler.
		CronExpression string    `json:"cronExpression,omitempty"`
		UpdatedAt      time.Time `json:"updated_at"`
		UpdatedBy      string    `json:"updated_by,omitempty"`
	}

	RestoreResult struct {
		BackupID            uuid.UUID                `json:"backup_id"`
		RestoredCollections []CollectionSummary      `json:"restored_collections"`
		ExternalContent     []ContentCategorySummary `json:"external_content,omitempty"`
		ExternalStatus      string                   `json:"external_status,omitempty"`
	}
)

const (
	BackupTypeFull        BackupType = "full"
	BackupTypeIncremental BackupType = "incremental"

	FullDaily  FullFrequency = "daily"
	FullWeekly FullFrequency = "weekly"

	IncrementalHourly      IncrementalFrequency = "hourly"
	IncrementalEvery2Hours IncrementalFrequency = "every2hours"
	IncrementalEvery4Hours IncrementalFrequency = "every4hours"
	IncrementalDaily       IncrementalFrequency = "daily"
)

func (t BackupType) Valid() bool {
	return t == BackupTypeFull || t == BackupTypeIncremental
}

func (f FullFrequency) Valid() bool {
	return f == FullDaily || f == FullWeekly
}

func (f IncrementalFrequency) Valid() bool {
	switch f {
	case IncrementalHourly, IncrementalEvery2Hours, IncrementalEvery4Hours, IncrementalDaily:
		return true
	}
	return false
}

func DefaultBackupConfig() *BackupConfig {
	return &BackupConfig{
		FullBackupFrequency:        FullWeekly,
		IncrementalBackupFrequency: IncrementalHourly,
		AutoBackupEnabled:          false,
		RetentionDays:              30,
	}
}

// Summary strips document payloads and raw external items for list responses.
func (r *BackupRecord) Summary() BackupSummary {
	s := BackupSummary{
		ID:            r.ID,
		Type:          r.Type,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		Size:          r.Size,
		SizeFormatted: r.SizeFormatted,
		StorageType:   r.StorageType,
	}
	for _, c := range r.Collections {
		s.Collections = append(s.Collections, CollectionSummary{Name: c.Name, Count: c.Count})
	}
	if r.ExternalContent != nil {
		s.ExternalContent = r.ExternalContent.Summaries()
	}
	return s
}

func (e *ExternalContent) Summaries() []ContentCategorySummary {
	return []ContentCategorySummary{
		{Name: "catalogItems", Count: e.CatalogItems.Count, Error: e.CatalogItems.Error},
		{Name: "themeAssets", Count: e.ThemeAssets.Count, Error: e.ThemeAssets.Error},
		{Name: "embeddedScripts", Count: e.EmbeddedScripts.Count, Error: e.EmbeddedScripts.Error},
		{Name: "structuredContent", Count: e.StructuredContent.Count, Error: e.StructuredContent.Error},
		{Name: "publishedContent", Count: e.PublishedContent.Count, Error: e.PublishedContent.Error},
	}
}

// HasCollection reports whether this record captured the named collection.
func (r *BackupRecord) HasCollection(name string) bool {
	for _, c := range r.Collections {
		if c.Name == name {
			return true
		}
	}
	return false
}
