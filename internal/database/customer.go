package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"resale/internal/docstore"
	"resale/internal/types"
)

type (
	customerRepository struct {
		customers collection[customerDocument]
	}

	wishlistRepository struct {
		wishlists collection[types.Wishlist]
	}

	// customerDocument is the persisted shape. The domain type keeps the
	// password hash out of JSON so handlers can return it directly; the
	// repository re-attaches the hash here.
	customerDocument struct {
		types.Customer
		PasswordHash string `json:"password_hash"`
	}
)

func (d customerDocument) domain() *types.Customer {
	customer := d.Customer
	customer.PasswordHash = d.PasswordHash
	return &customer
}

func NewCustomerRepository(store docstore.Store) CustomerRepository {
	return &customerRepository{
		customers: collection[customerDocument]{store: store, name: docstore.Customers},
	}
}

func (r customerRepository) Save(ctx context.Context, customer *types.Customer) error {
	doc := customerDocument{Customer: *customer, PasswordHash: customer.PasswordHash}
	return r.customers.save(ctx, customer.ID.String(), &doc)
}

func (r customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.Customer, error) {
	doc, err := r.customers.get(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return doc.domain(), nil
}

func (r customerRepository) FindByEmail(ctx context.Context, email string) (*types.Customer, error) {
	all, err := r.customers.all(ctx)
	if err != nil {
		return nil, err
	}

	match, ok := lo.Find(all, func(item *customerDocument) bool {
		return item.Email == email
	})
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return match.domain(), nil
}

func NewWishlistRepository(store docstore.Store) WishlistRepository {
	return &wishlistRepository{
		wishlists: collection[types.Wishlist]{store: store, name: docstore.Wishlists},
	}
}

func (r wishlistRepository) Save(ctx context.Context, wishlist *types.Wishlist) error {
	return r.wishlists.save(ctx, wishlist.ID.String(), wishlist)
}

func (r wishlistRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*types.Wishlist, error) {
	all, err := r.wishlists.all(ctx)
	if err != nil {
		return nil, err
	}

	match, ok := lo.Find(all, func(item *types.Wishlist) bool {
		return item.CustomerID == customerID
	})
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return match, nil
}
