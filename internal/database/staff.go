package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"resale/internal/docstore"
	"resale/internal/types"
)

type (
	staffRepository struct {
		staff collection[staffDocument]
	}

	// staffDocument is the persisted shape. It carries the password hash
	// the domain type hides from JSON.
	staffDocument struct {
		types.Staff
		PasswordHash string `json:"password_hash"`
	}
)

func (d staffDocument) domain() *types.Staff {
	staff := d.Staff
	staff.PasswordHash = d.PasswordHash
	return &staff
}

func NewStaffRepository(store docstore.Store) StaffRepository {
	return &staffRepository{
		staff: collection[staffDocument]{store: store, name: docstore.Staff},
	}
}

func (r staffRepository) Save(ctx context.Context, staff *types.Staff) error {
	doc := staffDocument{Staff: *staff, PasswordHash: staff.PasswordHash}
	return r.staff.save(ctx, staff.ID.String(), &doc)
}

func (r staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.Staff, error) {
	doc, err := r.staff.get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return doc.domain(), nil
}

func (r staffRepository) FindByEmail(ctx context.Context, email string) (*types.Staff, error) {
	all, err := r.staff.all(ctx)
	if err != nil {
		return nil, err
	}

	match, ok := lo.Find(all, func(item *staffDocument) bool {
		return item.Email == email
	})
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return match.domain(), nil
}

func (r staffRepository) FindAll(ctx context.Context) ([]*types.Staff, error) {
	all, err := r.staff.all(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(all, func(item *staffDocument, _ int) *types.Staff {
		return item.domain()
	}), nil
}

func (r staffRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.staff.delete(ctx, id.String())
}
