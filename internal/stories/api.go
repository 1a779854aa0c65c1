package stories

import (
	"context"

	"github.com/tokenlore/storyd/internal/tokens"
)

type API interface {
	// SetStoryEnabled flips the global toggle. Creator identity only.
	SetStoryEnabled(ctx context.Context, caller tokens.Address, enabled bool) error

	// StoryEnabled reads the toggle. Unrestricted.
	StoryEnabled() bool

	// AddCreatorStory appends a creator entry. Caller must be the creator
	// identity; the token must exist.
	AddCreatorStory(ctx context.Context, caller tokens.Address, tokenID uint64, name, text string) (Entry, error)

	// AddStory appends a collector entry. Caller must hold the token under
	// the active ownership model.
	AddStory(ctx context.Context, caller tokens.Address, tokenID uint64, name, text string) (Entry, error)

	// CreatorStories returns creator entries for a token in insertion
	// order. Unrestricted; empty for tokens with no entries.
	CreatorStories(ctx context.Context, tokenID uint64) ([]Entry, error)

	// Stories returns collector entries for a token in insertion order.
	Stories(ctx context.Context, tokenID uint64) ([]Entry, error)

	Close(ctx context.Context) error
}

// Notifier receives one Event per successful append.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
