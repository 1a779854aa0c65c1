package tokens

import (
	"context"
	"sync"

	"github.com/tokenlore/storyd/internal/repo"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

type ownerRecord struct {
	TokenID uint64  `bson:"tokenid"`
	Owner   Address `bson:"owner"`
}

// Registry is the single-owner reference collection. Token ids start at 1
// and follow mint order.
type Registry struct {
	mu   sync.Mutex
	repo repo.Repo[ownerRecord]
	log  logger.Logger
}

func NewRegistry(ctx context.Context, log logger.Logger, cfg repo.Config, collection string) (*Registry, error) {
	db, err := repo.New[ownerRecord](ctx, cfg, collection, log)
	if err != nil {
		return nil, errors.WrapFail(err, "init tokens repo")
	}

	return &Registry{repo: db, log: log.With("token_registry")}, nil
}

func (r *Registry) Mint(ctx context.Context, to Address) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	minted, err := r.repo.Select(ctx)
	if err != nil {
		return 0, errors.WrapFail(err, "count minted tokens")
	}

	tokenID := uint64(len(minted)) + 1

	_, err = r.repo.Insert(ctx, ownerRecord{TokenID: tokenID, Owner: to})
	if err != nil {
		return 0, errors.WrapFail(err, "insert token record")
	}

	r.log.Infof("minted token %d to %s", tokenID, to)
	return tokenID, nil
}

func (r *Registry) Transfer(ctx context.Context, from, to Address, tokenID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := r.ownerOf(ctx, tokenID)
	if err != nil {
		return err
	}

	if owner != from {
		return ErrNotTokenOwner
	}

	err = r.repo.Update(
		ctx,
		func(rec *ownerRecord) { rec.Owner = to },
		repo.ByField("tokenid", tokenID),
	)
	return errors.WrapFail(err, "update token owner")
}

func (r *Registry) OwnerOf(ctx context.Context, tokenID uint64) (Address, error) {
	return r.ownerOf(ctx, tokenID)
}

func (r *Registry) Exists(ctx context.Context, tokenID uint64) (bool, error) {
	_, err := r.ownerOf(ctx, tokenID)
	if errors.Is(err, ErrNonexistentToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Registry) Close(ctx context.Context) error {
	return r.repo.Close(ctx)
}

func (r *Registry) ownerOf(ctx context.Context, tokenID uint64) (Address, error) {
	records, err := r.repo.Select(ctx, repo.ByField("tokenid", tokenID))
	if err != nil {
		return "", errors.WrapFail(err, "select token record")
	}

	if len(records) == 0 {
		return "", ErrNonexistentToken
	}

	return records[0].Owner, nil
}
