package database

import (
	"context"

	"github.com/google/uuid"

	"resale/internal/docstore"
	"resale/internal/types"
)

type productRepository struct {
	products collection[types.Product]
}

func NewProductRepository(store docstore.Store) ProductRepository {
	return &productRepository{
		products: collection[types.Product]{store: store, name: docstore.Products},
	}
}

func (r productRepository) Save(ctx context.Context, product *types.Product) error {
	return r.products.save(ctx, product.ID.String(), product)
}

func (r productRepository) FindByID(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	return r.products.get(ctx, id.String())
}

func (r productRepository) FindAll(ctx context.Context) ([]*types.Product, error) {
	return r.products.all(ctx)
}

func (r productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.products.delete(ctx, id.String())
}
