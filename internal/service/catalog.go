package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/types"
)

type (
	CatalogService interface {
		CreateProduct(ctx context.Context, params types.CreateProductParams) (*types.Product, error)
		UpdateProduct(ctx context.Context, id uuid.UUID, params types.UpdateProductParams) (*types.Product, error)
		DeleteProduct(ctx context.Context, id uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*types.Product, error)
		// List returns the full catalog; ListPublished is the storefront view.
		List(ctx context.Context) ([]*types.Product, error)
		ListPublished(ctx context.Context) ([]*types.Product, error)
	}

	catalogService struct {
		productRepository database.ProductRepository
	}
)

func NewCatalogService(productRepo database.ProductRepository) CatalogService {
	return &catalogService{productRepository: productRepo}
}

func (c *catalogService) CreateProduct(ctx context.Context, params types.CreateProductParams) (*types.Product, error) {
	now := time.Now()
	product := &types.Product{
		ID:          uuid.New(),
		SKU:         params.SKU,
		Title:       params.Title,
		Brand:       params.Brand,
		Category:    params.Category,
		Description: params.Description,
		BasePrice:   params.BasePrice,
		Published:   params.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.productRepository.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, params types.UpdateProductParams) (*types.Product, error) {
	product, err := c.productRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		product.Title = *params.Title
	}
	if params.Brand != nil {
		product.Brand = *params.Brand
	}
	if params.Category != nil {
		product.Category = *params.Category
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.BasePrice != nil {
		product.BasePrice = *params.BasePrice
	}
	if params.Published != nil {
		product.Published = *params.Published
	}
	product.UpdatedAt = time.Now()

	if err := c.productRepository.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.productRepository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *catalogService) Get(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	return c.productRepository.FindByID(ctx, id)
}

func (c *catalogService) List(ctx context.Context) ([]*types.Product, error) {
	return c.productRepository.FindAll(ctx)
}

func (c *catalogService) ListPublished(ctx context.Context) ([]*types.Product, error) {
	all, err := c.productRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(p *types.Product, _ int) bool {
		return p.Published
	}), nil
}
