package stories

import (
	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/errors"
)

var (
	// ErrUnauthorized: the caller lacks the role or ownership the
	// operation requires.
	ErrUnauthorized = errors.Error("unauthorized")

	// ErrStoryDisabled: the global toggle is off.
	ErrStoryDisabled = errors.Error("story disabled")

	// ErrNonexistentToken: the oracle does not recognize the token id.
	// Surfaced by creator-story checks and by the single-owner model only.
	ErrNonexistentToken = tokens.ErrNonexistentToken

	// ErrInsufficientHolding: the caller holds zero balance under the
	// multi-holder model. The oracle cannot tell a never-issued id from an
	// issued one the caller never held, so both report this.
	ErrInsufficientHolding = errors.Error("insufficient holding")
)
