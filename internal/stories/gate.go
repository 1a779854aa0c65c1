package stories

import (
	"context"

	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/errors"
)

// Gate decides whether a caller may append a story of the given kind.
//
// Checks run in a fixed order: creator identity (creator stories only),
// then the toggle, then existence or holding. So a non-creator calling a
// creator append sees ErrUnauthorized even while stories are disabled,
// and every other disabled path fails before any oracle lookup.
type Gate struct {
	creator tokens.Address
	toggle  *Toggle
	oracle  tokens.Oracle
}

func NewGate(creator tokens.Address, toggle *Toggle, oracle tokens.Oracle) *Gate {
	return &Gate{
		creator: creator,
		toggle:  toggle,
		oracle:  oracle,
	}
}

func (g *Gate) Authorize(ctx context.Context, tokenID uint64, caller tokens.Address, kind Kind) error {
	if kind == KindCreator && caller != g.creator {
		return ErrUnauthorized
	}

	if !g.toggle.Enabled() {
		return ErrStoryDisabled
	}

	switch kind {
	case KindCreator:
		exists, err := g.oracle.Exists(ctx, tokenID)
		if err != nil {
			return errors.WrapFail(err, "check token existence")
		}
		if !exists {
			return ErrNonexistentToken
		}
		return nil

	case KindCollector:
		return g.authorizeHolder(ctx, tokenID, caller)

	default:
		return errors.Errorf("unknown story kind %d", kind)
	}
}

// authorizeHolder dispatches on the active ownership model. The two models
// fail differently on purpose: single-owner surfaces ErrNonexistentToken
// for unknown ids, multi-holder reports ErrInsufficientHolding whether the
// id was never issued or merely never held by the caller.
func (g *Gate) authorizeHolder(ctx context.Context, tokenID uint64, caller tokens.Address) error {
	switch oracle := g.oracle.(type) {
	case tokens.SingleOwner:
		owner, err := oracle.OwnerOf(ctx, tokenID)
		if err != nil {
			return errors.WrapFail(err, "resolve token owner")
		}
		if owner != caller {
			return ErrUnauthorized
		}
		return nil

	case tokens.MultiHolder:
		balance, err := oracle.BalanceOf(ctx, caller, tokenID)
		if err != nil {
			return errors.WrapFail(err, "resolve caller balance")
		}
		if balance == 0 {
			return ErrInsufficientHolding
		}
		return nil

	default:
		return errors.Error("oracle implements no known ownership model")
	}
}
