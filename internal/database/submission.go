package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"resale/internal/docstore"
	"resale/internal/types"
)

type submissionRepository struct {
	submissions collection[types.TradeInSubmission]
}

func NewSubmissionRepository(store docstore.Store) SubmissionRepository {
	return &submissionRepository{
		submissions: collection[types.TradeInSubmission]{store: store, name: docstore.Submissions},
	}
}

func (r submissionRepository) Save(ctx context.Context, submission *types.TradeInSubmission) error {
	return r.submissions.save(ctx, submission.ID.String(), submission)
}

func (r submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.TradeInSubmission, error) {
	return r.submissions.get(ctx, id.String())
}

func (r submissionRepository) FindAll(ctx context.Context) ([]*types.TradeInSubmission, error) {
	return r.submissions.all(ctx)
}

func (r submissionRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*types.TradeInSubmission, error) {
	all, err := r.submissions.all(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Filter(all, func(item *types.TradeInSubmission, _ int) bool {
		return item.CustomerID == customerID
	}), nil
}
