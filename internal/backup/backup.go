package backup

import (
	"errors"

	"resale/internal/docstore"
)

// TrackedCollections is the fixed set of document-store collections captured
// by every snapshot, in capture order.
var TrackedCollections = []string{
	docstore.Products,
	docstore.Submissions,
	docstore.Customers,
	docstore.Wishlists,
	docstore.Staff,
	docstore.AuditLogs,
}

var (
	// ErrNothingToBackup signals an incremental run that found zero changed
	// documents. It is an outcome, not a failure; callers skip persisting.
	ErrNothingToBackup = errors.New("no documents changed since the last backup")

	ErrInvalidBackupID = errors.New("malformed backup identifier")
	ErrBackupNotFound  = errors.New("backup not found")

	// ErrBackupInProgress reports lock contention between concurrent backup
	// or restore attempts.
	ErrBackupInProgress = errors.New("another backup or restore is in progress")
)
