package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokenlore/storyd/internal/api"
	"github.com/tokenlore/storyd/internal/pubsub"
	"github.com/tokenlore/storyd/internal/stories"
	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	oracle, err := newOracle(ctx, cfg, log)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init ownership oracle"))
	}

	var notifier stories.Notifier
	if cfg.Feed.Enabled() {
		notifier = pubsub.NewKafkaNotifier(cfg.Feed, log)
	} else {
		notifier = stories.NewLogNotifier(log)
	}

	storiesAPI, err := stories.New(
		ctx,
		log,
		cfg.Database,
		cfg.Story.Collections.Stories,
		tokens.Address(cfg.Story.Creator),
		oracle,
		notifier,
	)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init stories api"))
	}

	if cfg.Feed.Enabled() && cfg.Feed.Follow {
		feedLog := log.With("story_audit")
		pubsub.NewKafkaFeed(cfg.Feed, log).HandleEvents(ctx, func(event stories.Event) {
			feedLog.Infof("%s story on token %d by %s (%q)", event.Kind, event.TokenID, event.Author, event.Name)
		})
	}

	server := api.NewServer(cfg.API, log, storiesAPI)

	stopped := make(chan struct{})
	context.AfterFunc(ctx, func() {
		stdlog.Println("Graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Error(errors.WrapFail(err, "shutdown server"))
		}
		close(stopped)
	})

	stdlog.Println("Serving story API on", cfg.API.HTTP.Addr)
	err = server.Serve(ctx)
	if err != nil {
		log.Warn(err)
	}

	<-stopped
	stdlog.Println("Shutdown complete")
}

func newOracle(ctx context.Context, cfg *Config, log logger.Logger) (tokens.Oracle, error) {
	switch cfg.Story.Model {
	case ModelMulti:
		return tokens.NewBalances(ctx, log, cfg.Database, cfg.Story.Collections.Tokens)
	case "", ModelSingle:
		return tokens.NewRegistry(ctx, log, cfg.Database, cfg.Story.Collections.Tokens)
	default:
		return nil, errors.Errorf("unknown ownership model %q", cfg.Story.Model)
	}
}
