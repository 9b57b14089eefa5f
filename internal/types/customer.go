package types

import (
	"time"

	"github.com/google/uuid"
)

type (
	Customer struct {
		ID           uuid.UUID `json:"id"`
		Email        string    `json:"email"`
		FirstName    string    `json:"first_name,omitempty"`
		LastName     string    `json:"last_name,omitempty"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	// Wishlist is one document per customer; product ids are storefront
	// catalog references.
	Wishlist struct {
		ID         uuid.UUID   `json:"id"`
		CustomerID uuid.UUID   `json:"customer_id"`
		ProductIDs []uuid.UUID `json:"product_ids"`
		CreatedAt  time.Time   `json:"created_at"`
		UpdatedAt  time.Time   `json:"updated_at"`
	}
)
