package stories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tokenlore/storyd/internal/repo"
	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

func New(
	ctx context.Context,
	log logger.Logger,
	cfg repo.Config,
	collection string,
	creator tokens.Address,
	oracle tokens.Oracle,
	notifier Notifier,
) (API, error) {
	entries, err := repo.New[Entry](ctx, cfg, collection, log)
	if err != nil {
		return nil, errors.WrapFail(err, "init stories repo")
	}

	return NewService(log, entries, creator, oracle, notifier), nil
}

func NewService(
	log logger.Logger,
	entries repo.Repo[Entry],
	creator tokens.Address,
	oracle tokens.Oracle,
	notifier Notifier,
) *Service {
	toggle := NewToggle()

	return &Service{
		creator:  creator,
		toggle:   toggle,
		gate:     NewGate(creator, toggle, oracle),
		entries:  entries,
		notifier: notifier,
		log:      log.With("stories"),
	}
}

// Service is the story ledger behind the public API. The mutex makes each
// authorize-then-append pair atomic relative to other appends and toggle
// flips; reads go straight to the repo.
type Service struct {
	mu sync.Mutex

	creator  tokens.Address
	toggle   *Toggle
	gate     *Gate
	entries  repo.Repo[Entry]
	notifier Notifier
	log      logger.Logger
}

func (s *Service) SetStoryEnabled(_ context.Context, caller tokens.Address, enabled bool) error {
	if caller != s.creator {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.toggle.set(enabled)
	s.log.Infof("story toggle set to %t by %s", enabled, caller)
	return nil
}

func (s *Service) StoryEnabled() bool {
	return s.toggle.Enabled()
}

func (s *Service) AddCreatorStory(ctx context.Context, caller tokens.Address, tokenID uint64, name, text string) (Entry, error) {
	return s.append(ctx, caller, tokenID, name, text, KindCreator)
}

func (s *Service) AddStory(ctx context.Context, caller tokens.Address, tokenID uint64, name, text string) (Entry, error) {
	return s.append(ctx, caller, tokenID, name, text, KindCollector)
}

func (s *Service) CreatorStories(ctx context.Context, tokenID uint64) ([]Entry, error) {
	return s.storiesOf(ctx, tokenID, KindCreator)
}

func (s *Service) Stories(ctx context.Context, tokenID uint64) ([]Entry, error) {
	return s.storiesOf(ctx, tokenID, KindCollector)
}

func (s *Service) Close(ctx context.Context) error {
	return s.entries.Close(ctx)
}

func (s *Service) append(ctx context.Context, caller tokens.Address, tokenID uint64, name, text string, kind Kind) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.gate.Authorize(ctx, tokenID, caller, kind)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		TokenID:   tokenID,
		Author:    caller,
		Name:      name,
		Text:      text,
		Kind:      kind,
		WrittenAt: time.Now().UTC(),
	}

	_, err = s.entries.Insert(ctx, entry)
	if err != nil {
		return Entry{}, errors.WrapFail(err, "append story entry")
	}

	// The append has committed; a lost notification is logged, not
	// propagated.
	err = s.notifier.Notify(ctx, Event{
		EntryID: entry.ID,
		Kind:    entry.Kind,
		TokenID: entry.TokenID,
		Author:  entry.Author,
		Name:    entry.Name,
		Text:    entry.Text,
	})
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "notify story append"))
	}

	return entry, nil
}

func (s *Service) storiesOf(ctx context.Context, tokenID uint64, kind Kind) ([]Entry, error) {
	selected, err := s.entries.Select(
		ctx,
		repo.ByField("tokenid", tokenID),
		repo.ByField("kind", kind),
	)
	if err != nil {
		return nil, errors.WrapFail(err, "select story entries")
	}

	if selected == nil {
		selected = []Entry{}
	}
	return selected, nil
}
