package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resale/internal/database"
	"resale/internal/eventbus"
	"resale/internal/types"
	"resale/logger"
)

var (
	ErrUnknownCondition    = errors.New("unknown device condition")
	ErrSubmissionFinalized = errors.New("submission has already been finalized")
)

// quoteValidity is how long a quoted price stays honored.
const quoteValidity = 7 * 24 * time.Hour

// conditionMultipliers scale the device's base value, in percent.
var conditionMultipliers = map[types.DeviceCondition]int64{
	types.ConditionMint:   85,
	types.ConditionGood:   65,
	types.ConditionFair:   40,
	types.ConditionBroken: 10,
}

// deviceBaseValues are fallback trade-in values in minor currency units,
// keyed by a keyword in the device model. Matching a published catalog
// product by title overrides these.
var deviceBaseValues = []struct {
	keyword string
	value   int64
}{
	{"pro max", 60000},
	{"pro", 45000},
	{"ultra", 55000},
	{"plus", 35000},
	{"mini", 25000},
}

const defaultBaseValue = 20000

type (
	TradeInService interface {
		Quote(ctx context.Context, params types.QuoteParams) (*types.Quote, error)
		CreateSubmission(ctx context.Context, customerID uuid.UUID, params types.CreateSubmissionParams) (*types.TradeInSubmission, error)
		ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*types.TradeInSubmission, error)
		List(ctx context.Context) ([]*types.TradeInSubmission, error)
		Get(ctx context.Context, id uuid.UUID) (*types.TradeInSubmission, error)
		Review(ctx context.Context, id uuid.UUID, params types.ReviewSubmissionParams) (*types.TradeInSubmission, error)
	}

	tradeInService struct {
		submissionRepository database.SubmissionRepository
		catalogService       CatalogService
		bus                  eventbus.Bus
	}
)

func NewTradeInService(submissionRepo database.SubmissionRepository,
	catalog CatalogService, bus eventbus.Bus) TradeInService {
	return &tradeInService{
		submissionRepository: submissionRepo,
		catalogService:       catalog,
		bus:                  bus,
	}
}

func (t *tradeInService) Quote(ctx context.Context, params types.QuoteParams) (*types.Quote, error) {
	if !params.Condition.Valid() {
		return nil, ErrUnknownCondition
	}

	base := t.baseValue(ctx, params.DeviceModel)
	price := base * conditionMultipliers[params.Condition] / 100

	return &types.Quote{
		DeviceModel: params.DeviceModel,
		Condition:   params.Condition,
		Price:       price,
		ValidUntil:  time.Now().Add(quoteValidity),
	}, nil
}

// baseValue prefers the catalog price of a matching published product, then
// falls back to the keyword table.
func (t *tradeInService) baseValue(ctx context.Context, deviceModel string) int64 {
	model := strings.ToLower(deviceModel)

	products, err := t.catalogService.ListPublished(ctx)
	if err != nil {
		logger.Warn("catalog lookup failed during quote", zap.Error(err))
	} else {
		for _, p := range products {
			if strings.Contains(model, strings.ToLower(p.Title)) {
				return p.BasePrice
			}
		}
	}

	for _, entry := range deviceBaseValues {
		if strings.Contains(model, entry.keyword) {
			return entry.value
		}
	}
	return defaultBaseValue
}

func (t *tradeInService) CreateSubmission(ctx context.Context, customerID uuid.UUID, params types.CreateSubmissionParams) (*types.TradeInSubmission, error) {
	quote, err := t.Quote(ctx, types.QuoteParams{
		DeviceModel: params.DeviceModel,
		Condition:   params.Condition,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &types.TradeInSubmission{
		ID:          uuid.New(),
		CustomerID:  customerID,
		DeviceModel: params.DeviceModel,
		Condition:   params.Condition,
		QuotedPrice: quote.Price,
		Status:      types.SubmissionPending,
		Notes:       params.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.submissionRepository.Save(ctx, submission); err != nil {
		return nil, err
	}

	t.bus.Publish(eventbus.TopicSubmissionReceived, submission.ID.String())
	return submission, nil
}

func (t *tradeInService) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*types.TradeInSubmission, error) {
	return t.submissionRepository.FindByCustomerID(ctx, customerID)
}

func (t *tradeInService) List(ctx context.Context) ([]*types.TradeInSubmission, error) {
	return t.submissionRepository.FindAll(ctx)
}

func (t *tradeInService) Get(ctx context.Context, id uuid.UUID) (*types.TradeInSubmission, error) {
	return t.submissionRepository.FindByID(ctx, id)
}

func (t *tradeInService) Review(ctx context.Context, id uuid.UUID, params types.ReviewSubmissionParams) (*types.TradeInSubmission, error) {
	submission, err := t.submissionRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validTransition(submission.Status, params.Status); err != nil {
		return nil, err
	}

	submission.Status = params.Status
	if params.Notes != "" {
		submission.Notes = params.Notes
	}
	submission.UpdatedAt = time.Now()
	if err := t.submissionRepository.Save(ctx, submission); err != nil {
		return nil, err
	}

	t.bus.Publish(eventbus.TopicSubmissionReviewed, submission.ID.String())
	return submission, nil
}

// validTransition enforces pending -> accepted|rejected and accepted -> paid.
func validTransition(from, to types.SubmissionStatus) error {
	switch from {
	case types.SubmissionPending:
		if to == types.SubmissionAccepted || to == types.SubmissionRejected {
			return nil
		}
	case types.SubmissionAccepted:
		if to == types.SubmissionPaid {
			return nil
		}
	}
	return ErrSubmissionFinalized
}
