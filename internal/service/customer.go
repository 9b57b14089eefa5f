package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/security"
	"resale/internal/types"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	CustomerService interface {
		Register(ctx context.Context, params types.RegisterParams) (*types.Customer, error)
		Login(ctx context.Context, params types.LoginParams) (*types.AuthResponse, error)
		Get(ctx context.Context, id uuid.UUID) (*types.Customer, error)
		GetWishlist(ctx context.Context, customerID uuid.UUID) (*types.Wishlist, error)
		UpdateWishlist(ctx context.Context, customerID uuid.UUID, params types.UpdateWishlistParams) (*types.Wishlist, error)
	}

	customerService struct {
		customerRepository database.CustomerRepository
		wishlistRepository database.WishlistRepository
		tokens             *security.TokenManager
	}
)

func NewCustomerService(customerRepo database.CustomerRepository,
	wishlistRepo database.WishlistRepository, tokens *security.TokenManager) CustomerService {
	return &customerService{
		customerRepository: customerRepo,
		wishlistRepository: wishlistRepo,
		tokens:             tokens,
	}
}

func (c *customerService) Register(ctx context.Context, params types.RegisterParams) (*types.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	existing, err := c.customerRepository.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := &types.Customer{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.customerRepository.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (c *customerService) Login(ctx context.Context, params types.LoginParams) (*types.AuthResponse, error) {
	customer, err := c.customerRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(params.Email)))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(params.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := c.tokens.Issue(customer.ID, security.KindCustomer)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Token: token}, nil
}

func (c *customerService) Get(ctx context.Context, id uuid.UUID) (*types.Customer, error) {
	return c.customerRepository.FindByID(ctx, id)
}

// GetWishlist returns an empty wishlist rather than an error for customers
// who never saved one.
func (c *customerService) GetWishlist(ctx context.Context, customerID uuid.UUID) (*types.Wishlist, error) {
	wishlist, err := c.wishlistRepository.FindByCustomerID(ctx, customerID)
	if errors.Is(err, docstore.ErrNotFound) {
		return &types.Wishlist{CustomerID: customerID, ProductIDs: []uuid.UUID{}}, nil
	}
	return wishlist, err
}

func (c *customerService) UpdateWishlist(ctx context.Context, customerID uuid.UUID, params types.UpdateWishlistParams) (*types.Wishlist, error) {
	wishlist, err := c.wishlistRepository.FindByCustomerID(ctx, customerID)
	if errors.Is(err, docstore.ErrNotFound) {
		wishlist = &types.Wishlist{
			ID:         uuid.New(),
			CustomerID: customerID,
			CreatedAt:  time.Now(),
		}
	} else if err != nil {
		return nil, err
	}

	wishlist.ProductIDs = params.ProductIDs
	wishlist.UpdatedAt = time.Now()
	if err := c.wishlistRepository.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}
