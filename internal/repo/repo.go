package repo

import (
	"context"

	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

type Repo[T any] interface {
	Insert(ctx context.Context, data T) (id string, err error)

	// Select returns documents matching all filters in insertion order.
	Select(ctx context.Context, filters ...Filter) (selected []T, err error)

	Update(ctx context.Context, update func(*T), filters ...Filter) (err error)
	Delete(ctx context.Context, id string) (deleted bool, err error)

	Close(ctx context.Context) error
}

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

func New[T any](ctx context.Context, cfg Config, collection string, log logger.Logger) (Repo[T], error) {
	switch cfg.Storage {
	case "", StorageMemory:
		return NewMemory[T](log), nil
	case StorageMongo:
		return newMongo[T](ctx, cfg.Mongo, collection, log)
	default:
		return nil, errors.Errorf("unknown storage kind %q", cfg.Storage)
	}
}
