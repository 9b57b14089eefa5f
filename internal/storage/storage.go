package storage

import (
	"context"

	"resale/internal/types"
)

type (
	Type string

	// Storage persists backup archives. Archives are written once on save
	// and read back for download; they are never rewritten.
	Storage interface {
		Save(ctx context.Context, location string, f types.File) error
		Get(ctx context.Context, location string) (*types.File, error)
		Delete(ctx context.Context, location string) error
		Ping(ctx context.Context) error
	}
)

const (
	TypeFS Type = "File"
	TypeS3 Type = "S3"
)

func (t Type) String() string {
	return string(t)
}
