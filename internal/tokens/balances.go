package tokens

import (
	"context"
	"sync"

	"github.com/tokenlore/storyd/internal/repo"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

type holdingRecord struct {
	TokenID uint64  `bson:"tokenid"`
	Holder  Address `bson:"holder"`
	Amount  uint64  `bson:"amount"`
}

// Balances is the multi-holder reference collection. Holdings are never
// deleted, only decremented, so an issued token id keeps existing even
// after every unit moved on.
type Balances struct {
	mu   sync.Mutex
	repo repo.Repo[holdingRecord]
	log  logger.Logger
}

func NewBalances(ctx context.Context, log logger.Logger, cfg repo.Config, collection string) (*Balances, error) {
	db, err := repo.New[holdingRecord](ctx, cfg, collection, log)
	if err != nil {
		return nil, errors.WrapFail(err, "init holdings repo")
	}

	return &Balances{repo: db, log: log.With("token_balances")}, nil
}

func (b *Balances) Issue(ctx context.Context, to Address, amount uint64) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.repo.Select(ctx)
	if err != nil {
		return 0, errors.WrapFail(err, "select holdings")
	}

	var last uint64
	for i := range all {
		if all[i].TokenID > last {
			last = all[i].TokenID
		}
	}
	tokenID := last + 1

	_, err = b.repo.Insert(ctx, holdingRecord{TokenID: tokenID, Holder: to, Amount: amount})
	if err != nil {
		return 0, errors.WrapFail(err, "insert holding record")
	}

	b.log.Infof("issued %d of token %d to %s", amount, tokenID, to)
	return tokenID, nil
}

func (b *Balances) Send(ctx context.Context, from, to Address, tokenID uint64, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	held, err := b.balanceOf(ctx, from, tokenID)
	if err != nil {
		return err
	}

	if held < amount {
		return ErrInsufficientBalance
	}

	err = b.repo.Update(
		ctx,
		func(rec *holdingRecord) { rec.Amount -= amount },
		repo.ByField("tokenid", tokenID),
		repo.ByField("holder", from),
	)
	if err != nil {
		return errors.WrapFail(err, "decrement sender holding")
	}

	return b.credit(ctx, to, tokenID, amount)
}

func (b *Balances) BalanceOf(ctx context.Context, holder Address, tokenID uint64) (uint64, error) {
	return b.balanceOf(ctx, holder, tokenID)
}

func (b *Balances) Exists(ctx context.Context, tokenID uint64) (bool, error) {
	holdings, err := b.repo.Select(ctx, repo.ByField("tokenid", tokenID))
	if err != nil {
		return false, errors.WrapFail(err, "select holdings")
	}
	return len(holdings) > 0, nil
}

func (b *Balances) Close(ctx context.Context) error {
	return b.repo.Close(ctx)
}

func (b *Balances) balanceOf(ctx context.Context, holder Address, tokenID uint64) (uint64, error) {
	holdings, err := b.repo.Select(
		ctx,
		repo.ByField("tokenid", tokenID),
		repo.ByField("holder", holder),
	)
	if err != nil {
		return 0, errors.WrapFail(err, "select holding record")
	}

	var total uint64
	for i := range holdings {
		total += holdings[i].Amount
	}
	return total, nil
}

func (b *Balances) credit(ctx context.Context, to Address, tokenID uint64, amount uint64) error {
	existing, err := b.repo.Select(
		ctx,
		repo.ByField("tokenid", tokenID),
		repo.ByField("holder", to),
	)
	if err != nil {
		return errors.WrapFail(err, "select recipient holding")
	}

	if len(existing) == 0 {
		_, err = b.repo.Insert(ctx, holdingRecord{TokenID: tokenID, Holder: to, Amount: amount})
		return errors.WrapFail(err, "insert recipient holding")
	}

	err = b.repo.Update(
		ctx,
		func(rec *holdingRecord) { rec.Amount += amount },
		repo.ByField("tokenid", tokenID),
		repo.ByField("holder", to),
	)
	return errors.WrapFail(err, "increment recipient holding")
}
