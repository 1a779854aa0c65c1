package tokens

import (
	"context"

	"github.com/tokenlore/storyd/pkg/errors"
)

// Address identifies an account in the external collection.
type Address string

var (
	ErrNonexistentToken    = errors.Error("nonexistent token")
	ErrNotTokenOwner       = errors.Error("not the token owner")
	ErrInsufficientBalance = errors.Error("insufficient balance")
)

// Oracle is the read-only view of the collection the story subsystem
// consumes. Exactly one of the two variants below is active per deployment.
type Oracle interface {
	Exists(ctx context.Context, tokenID uint64) (bool, error)
}

// SingleOwner maps every token id to exactly one current holder.
type SingleOwner interface {
	Oracle

	// OwnerOf fails with ErrNonexistentToken for unknown ids.
	OwnerOf(ctx context.Context, tokenID uint64) (Address, error)
}

// MultiHolder maps (token id, address) pairs to balances; anyone with a
// positive balance is a holder.
type MultiHolder interface {
	Oracle

	// BalanceOf returns 0 (never an error) for non-holders and for ids
	// that were never issued.
	BalanceOf(ctx context.Context, holder Address, tokenID uint64) (uint64, error)
}
