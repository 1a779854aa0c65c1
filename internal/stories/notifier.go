package stories

import (
	"context"

	"github.com/tokenlore/storyd/pkg/logger"
)

// NewLogNotifier returns a Notifier that only logs events. Used when no
// feed is configured.
func NewLogNotifier(log logger.Logger) Notifier {
	return &logNotifier{log: log.With("story_feed")}
}

type logNotifier struct {
	log logger.Logger
}

func (n *logNotifier) Notify(_ context.Context, event Event) error {
	n.log.Infof("%s story on token %d by %s (%q)", event.Kind, event.TokenID, event.Author, event.Name)
	return nil
}
