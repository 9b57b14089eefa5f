package database

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"resale/internal/docstore"
	"resale/internal/types"
)

// collection gives the typed repositories a common encode/decode path over a
// single document-store collection.
type collection[T any] struct {
	store docstore.Store
	name  string
}

func (c collection[T]) save(ctx context.Context, id string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to encode "+c.name+" document")
	}
	return c.store.Upsert(ctx, c.name, types.Document{ID: id, Data: data})
}

func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.FindOne(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(*doc)
}

func (c collection[T]) all(ctx context.Context) ([]*T, error) {
	docs, err := c.store.Find(ctx, c.name, docstore.Query{})
	if err != nil {
		return nil, err
	}

	result := make([]*T, 0, len(docs))
	for _, doc := range docs {
		value, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func (c collection[T]) delete(ctx context.Context, id string) (bool, error) {
	return c.store.DeleteOne(ctx, c.name, id)
}

func (c collection[T]) decode(doc types.Document) (*T, error) {
	value := new(T)
	if err := json.Unmarshal(doc.Data, value); err != nil {
		return nil, errors.Wrap(err, "corrupt "+c.name+" document: "+doc.ID)
	}
	return value, nil
}
