package types

import (
	"time"

	"github.com/google/uuid"
)

type (
	Permission string

	Staff struct {
		ID           uuid.UUID    `json:"id"`
		Email        string       `json:"email"`
		Name         string       `json:"name"`
		Role         string       `json:"role"`
		Permissions  []Permission `json:"permissions"`
		PasswordHash string       `json:"-"`
		Disabled     bool         `json:"disabled"`
		CreatedAt    time.Time    `json:"created_at"`
		UpdatedAt    time.Time    `json:"updated_at"`
	}
)

const (
	RoleAdmin = "admin"

	PermissionBackupCreate  Permission = "backupCreate"
	PermissionBackupView    Permission = "backupView"
	PermissionBackupRestore Permission = "backupRestore"
	PermissionBackupDelete  Permission = "backupDelete"
	PermissionBackupConfig  Permission = "backupConfig"
	PermissionCatalogManage Permission = "catalogManage"
	PermissionStaffManage   Permission = "staffManage"
	PermissionAuditView     Permission = "auditView"
	PermissionTradeInReview Permission = "tradeInReview"
)

// SchedulerActor marks backups initiated by the scheduler rather than a staff
// identity.
const SchedulerActor = "system:scheduler"

// HasPermission reports whether this staff identity may perform the gated
// operation. Admins pass every gate.
func (s *Staff) HasPermission(p Permission) bool {
	if s.Disabled {
		return false
	}
	if s.Role == RoleAdmin {
		return true
	}
	for _, granted := range s.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
