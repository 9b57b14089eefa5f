package types

import (
	"time"

	"github.com/google/uuid"
)

type (
	Product struct {
		ID          uuid.UUID `json:"id"`
		SKU         string    `json:"sku"`
		Title       string    `json:"title"`
		Brand       string    `json:"brand"`
		Category    string    `json:"category"`
		Description string    `json:"description,omitempty"`
		BasePrice   int64     `json:"base_price"` // minor currency units
		Published   bool      `json:"published"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	DeviceCondition string

	// TradeInSubmission is a customer's trade-in request, priced at quote
	// time and advanced through review states by staff.
	TradeInSubmission struct {
		ID          uuid.UUID        `json:"id"`
		CustomerID  uuid.UUID        `json:"customer_id"`
		DeviceModel string           `json:"device_model"`
		Condition   DeviceCondition  `json:"condition"`
		QuotedPrice int64            `json:"quoted_price"`
		Status      SubmissionStatus `json:"status"`
		Notes       string           `json:"notes,omitempty"`
		CreatedAt   time.Time        `json:"created_at"`
		UpdatedAt   time.Time        `json:"updated_at"`
	}

	SubmissionStatus string

	Quote struct {
		DeviceModel string          `json:"device_model"`
		Condition   DeviceCondition `json:"condition"`
		Price       int64           `json:"price"`
		ValidUntil  time.Time       `json:"valid_until"`
	}
)

const (
	ConditionMint    DeviceCondition = "mint"
	ConditionGood    DeviceCondition = "good"
	ConditionFair    DeviceCondition = "fair"
	ConditionBroken  DeviceCondition = "broken"

	SubmissionPending  SubmissionStatus = "pending"
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionRejected SubmissionStatus = "rejected"
	SubmissionPaid     SubmissionStatus = "paid"
)

func (c DeviceCondition) Valid() bool {
	switch c {
	case ConditionMint, ConditionGood, ConditionFair, ConditionBroken:
		return true
	}
	return false
}
