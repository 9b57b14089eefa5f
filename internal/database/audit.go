package database

import (
	"context"
	"sort"

	"resale/internal/docstore"
	"resale/internal/types"
)

type auditRepository struct {
	entries collection[types.AuditEntry]
}

func NewAuditRepository(store docstore.Store) AuditRepository {
	return &auditRepository{
		entries: collection[types.AuditEntry]{store: store, name: docstore.AuditLogs},
	}
}

func (r auditRepository) Save(ctx context.Context, entry *types.AuditEntry) error {
	return r.entries.save(ctx, entry.ID.String(), entry)
}

func (r auditRepository) FindAll(ctx context.Context) ([]*types.AuditEntry, error) {
	all, err := r.entries.all(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}
