package stories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenlore/storyd/internal/repo"
	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/logger"
)

const (
	creator   = tokens.Address("creator")
	collector = tokens.Address("collector")
	stranger  = tokens.Address("stranger")
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(_ context.Context, event Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) all() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

// singleOwnerFixture: token 1 minted to creator, transferred to collector.
func singleOwnerFixture(t *testing.T) (*Service, *recordingNotifier, uint64) {
	t.Helper()
	ctx := context.Background()

	registry, err := tokens.NewRegistry(ctx, logger.NewStub(), repo.Config{}, "tokens")
	require.NoError(t, err)

	tokenID, err := registry.Mint(ctx, creator)
	require.NoError(t, err)
	require.NoError(t, registry.Transfer(ctx, creator, collector, tokenID))

	notifier := &recordingNotifier{}
	service := NewService(logger.NewStub(), repo.NewMemory[Entry](logger.NewStub()), creator, registry, notifier)
	return service, notifier, tokenID
}

// multiHolderFixture: token 1 issued with 20 units to creator, 10 of them
// sent to collector, so both hold a positive balance.
func multiHolderFixture(t *testing.T) (*Service, *recordingNotifier, uint64) {
	t.Helper()
	ctx := context.Background()

	balances, err := tokens.NewBalances(ctx, logger.NewStub(), repo.Config{}, "holdings")
	require.NoError(t, err)

	tokenID, err := balances.Issue(ctx, creator, 20)
	require.NoError(t, err)
	require.NoError(t, balances.Send(ctx, creator, collector, tokenID, 10))

	notifier := &recordingNotifier{}
	service := NewService(logger.NewStub(), repo.NewMemory[Entry](logger.NewStub()), creator, balances, notifier)
	return service, notifier, tokenID
}

func TestService_AddCreatorStory(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := singleOwnerFixture(t)

	entry, err := service.AddCreatorStory(ctx, creator, tokenID, "[insert artist name]", "heres a story")
	require.NoError(t, err)
	require.Equal(t, KindCreator, entry.Kind)
	require.Equal(t, creator, entry.Author)
	require.NotEmpty(t, entry.ID)

	events := notifier.all()
	require.Len(t, events, 1)
	require.Equal(t, Event{
		EntryID: entry.ID,
		Kind:    KindCreator,
		TokenID: tokenID,
		Author:  creator,
		Name:    "[insert artist name]",
		Text:    "heres a story",
	}, events[0])
}

func TestService_AddCreatorStory_OnlyCreator(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := singleOwnerFixture(t)

	type testcase struct {
		name    string
		caller  tokens.Address
		tokenID uint64
	}

	tests := [...]testcase{
		{name: "collector on existing token", caller: collector, tokenID: tokenID},
		{name: "stranger on existing token", caller: stranger, tokenID: tokenID},
		{name: "stranger on nonexistent token", caller: stranger, tokenID: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddCreatorStory(ctx, tt.caller, tt.tokenID, "name", "text")
			require.ErrorIs(t, err, ErrUnauthorized)
		})
	}

	require.Empty(t, notifier.all())
}

func TestService_AddCreatorStory_NonexistentToken(t *testing.T) {
	ctx := context.Background()
	service, _, tokenID := singleOwnerFixture(t)

	_, err := service.AddCreatorStory(ctx, creator, tokenID+1, "name", "text")
	require.ErrorIs(t, err, ErrNonexistentToken)
}

func TestService_SetStoryEnabled_OnlyCreator(t *testing.T) {
	ctx := context.Background()
	service, _, _ := singleOwnerFixture(t)

	err := service.SetStoryEnabled(ctx, collector, false)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.True(t, service.StoryEnabled())

	err = service.SetStoryEnabled(ctx, creator, false)
	require.NoError(t, err)
	require.False(t, service.StoryEnabled())
}

func TestService_ToggleGatesAppends(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := singleOwnerFixture(t)

	require.NoError(t, service.SetStoryEnabled(ctx, creator, false))

	_, err := service.AddCreatorStory(ctx, creator, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrStoryDisabled)

	_, err = service.AddStory(ctx, collector, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrStoryDisabled)

	require.Empty(t, notifier.all())

	// Re-enabling restores prior behavior.
	require.NoError(t, service.SetStoryEnabled(ctx, creator, true))

	_, err = service.AddCreatorStory(ctx, creator, tokenID, "name", "text")
	require.NoError(t, err)

	_, err = service.AddStory(ctx, collector, tokenID, "name", "text")
	require.NoError(t, err)

	require.Len(t, notifier.all(), 2)
}

func TestService_DisabledPrecedence(t *testing.T) {
	ctx := context.Background()
	service, _, tokenID := singleOwnerFixture(t)

	require.NoError(t, service.SetStoryEnabled(ctx, creator, false))

	// Creator-role check fires before the toggle: a non-creator sees
	// unauthorized even while disabled.
	_, err := service.AddCreatorStory(ctx, stranger, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrUnauthorized)

	// The toggle fires before any oracle lookup: the creator on a
	// nonexistent token sees disabled, not nonexistent.
	_, err = service.AddCreatorStory(ctx, creator, 99, "name", "text")
	require.ErrorIs(t, err, ErrStoryDisabled)

	// Same for collector stories: disabled before ownership.
	_, err = service.AddStory(ctx, stranger, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrStoryDisabled)
}

func TestService_AddStory_SingleOwner(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := singleOwnerFixture(t)

	// The previous owner is no longer authorized after the transfer.
	_, err := service.AddStory(ctx, creator, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.AddStory(ctx, stranger, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrUnauthorized)

	// Unknown ids surface the oracle failure, not unauthorized.
	_, err = service.AddStory(ctx, collector, 99, "name", "text")
	require.ErrorIs(t, err, ErrNonexistentToken)

	entry, err := service.AddStory(ctx, collector, tokenID, "[insert collector name]", "heres a story")
	require.NoError(t, err)
	require.Equal(t, KindCollector, entry.Kind)
	require.Equal(t, collector, entry.Author)

	events := notifier.all()
	require.Len(t, events, 1)
	require.Equal(t, collector, events[0].Author)
	require.Equal(t, "[insert collector name]", events[0].Name)
}

func TestService_AddStory_MultiHolder(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := multiHolderFixture(t)

	// Both current holders may append; the creator holds a balance too.
	_, err := service.AddCreatorStory(ctx, creator, tokenID, "name", "s1")
	require.NoError(t, err)

	entry, err := service.AddStory(ctx, collector, tokenID, "name", "s2")
	require.NoError(t, err)
	require.Equal(t, collector, entry.Author)

	// Zero balance fails the same way for existing and unknown ids.
	_, err = service.AddStory(ctx, stranger, tokenID, "name", "s3")
	require.ErrorIs(t, err, ErrInsufficientHolding)

	_, err = service.AddStory(ctx, stranger, 99, "name", "s3")
	require.ErrorIs(t, err, ErrInsufficientHolding)

	require.Len(t, notifier.all(), 2)
}

func TestService_ReadsPreserveInsertionOrder(t *testing.T) {
	ctx := context.Background()
	service, _, tokenID := multiHolderFixture(t)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		_, err := service.AddStory(ctx, collector, tokenID, "name", text)
		require.NoError(t, err)

		_, err = service.AddCreatorStory(ctx, creator, tokenID, "name", "creator "+text)
		require.NoError(t, err)
	}

	collected, err := service.Stories(ctx, tokenID)
	require.NoError(t, err)
	require.Len(t, collected, len(texts))
	for i := range collected {
		require.Equal(t, texts[i], collected[i].Text)
		require.Equal(t, KindCollector, collected[i].Kind)
	}

	authored, err := service.CreatorStories(ctx, tokenID)
	require.NoError(t, err)
	require.Len(t, authored, len(texts))
	for i := range authored {
		require.Equal(t, "creator "+texts[i], authored[i].Text)
		require.Equal(t, KindCreator, authored[i].Kind)
	}

	// Reads are restartable and nothing disappears.
	again, err := service.Stories(ctx, tokenID)
	require.NoError(t, err)
	require.Equal(t, collected, again)
}

func TestService_ReadsAreUnrestrictedAndEmptyByDefault(t *testing.T) {
	ctx := context.Background()
	service, _, tokenID := singleOwnerFixture(t)

	// No entries yet, nonexistent ids included.
	for _, id := range []uint64{tokenID, 99} {
		collected, err := service.Stories(ctx, id)
		require.NoError(t, err)
		require.Empty(t, collected)

		authored, err := service.CreatorStories(ctx, id)
		require.NoError(t, err)
		require.Empty(t, authored)
	}

	// Reads work while the toggle is off.
	require.NoError(t, service.SetStoryEnabled(ctx, creator, false))

	collected, err := service.Stories(ctx, tokenID)
	require.NoError(t, err)
	require.Empty(t, collected)
}

func TestService_FailedAppendLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	service, notifier, tokenID := singleOwnerFixture(t)

	_, err := service.AddStory(ctx, stranger, tokenID, "name", "text")
	require.ErrorIs(t, err, ErrUnauthorized)

	collected, err := service.Stories(ctx, tokenID)
	require.NoError(t, err)
	require.Empty(t, collected)
	require.Empty(t, notifier.all())
}
