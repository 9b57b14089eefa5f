package database

import (
	"context"

	"github.com/google/uuid"

	"resale/internal/types"
)

type ProductRepository interface {
	Save(ctx context.Context, product *types.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*types.Product, error)
	FindAll(ctx context.Context) ([]*types.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CustomerRepository interface {
	Save(ctx context.Context, customer *types.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*types.Customer, error)
	FindByEmail(ctx context.Context, email string) (*types.Customer, error)
}

type WishlistRepository interface {
	Save(ctx context.Context, wishlist *types.Wishlist) error
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*types.Wishlist, error)
}

type SubmissionRepository interface {
	Save(ctx context.Context, submission *types.TradeInSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*types.TradeInSubmission, error)
	FindAll(ctx context.Context) ([]*types.TradeInSubmission, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*types.TradeInSubmission, error)
}

type StaffRepository interface {
	Save(ctx context.Context, staff *types.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*types.Staff, error)
	FindByEmail(ctx context.Context, email string) (*types.Staff, error)
	FindAll(ctx context.Context) ([]*types.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type AuditRepository interface {
	Save(ctx context.Context, entry *types.AuditEntry) error
	FindAll(ctx context.Context) ([]*types.AuditEntry, error)
}

type BackupRepository interface {
	Save(ctx context.Context, record *types.BackupRecord) error
	FindAll(ctx context.Context) ([]*types.BackupRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*types.BackupRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// LatestAny and LatestFull feed the policy engine; LatestContaining is
	// the per-collection high-water mark source. All return nil when no
	// matching record exists.
	LatestAny(ctx context.Context) (*types.BackupRecord, error)
	LatestFull(ctx context.Context) (*types.BackupRecord, error)
	LatestContaining(ctx context.Context, collection string) (*types.BackupRecord, error)
}

type BackupConfigRepository interface {
	// Get creates and persists the default configuration when none exists.
	Get(ctx context.Context) (*types.BackupConfig, error)
	Update(ctx context.Context, cfg *types.BackupConfig) error
}
