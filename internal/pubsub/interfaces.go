package pubsub

import (
	"context"

	"github.com/tokenlore/storyd/internal/stories"
)

type Feed interface {
	HandleEvents(ctx context.Context, consumeFunc func(stories.Event))
}
