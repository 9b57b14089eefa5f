package types

import (
	"encoding/json"
	"time"
)

type (
	// Document is a single row in the document store. Every domain entity
	// (product, submission, customer, staff, audit entry, backup record) is
	// persisted as one Document with its JSON body in Data.
	Document struct {
		ID         string          `gorm:"primaryKey" json:"id"`
		Collection string          `gorm:"primaryKey;index" json:"collection"`
		Data       json.RawMessage `gorm:"type:text" json:"data"`
		CreatedAt  time.Time       `json:"created_at"`
		UpdatedAt  time.Time       `json:"updated_at"`
	}

	// BackupLock is the single global mutual-exclusion record gating backup
	// and restore runs. At most one non-expired row may exist.
	BackupLock struct {
		Key       string    `gorm:"primaryKey" json:"key"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)
