package pubsub

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/tokenlore/storyd/internal/stories"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

func NewKafkaFeed(cfg Config, log logger.Logger) Feed {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.Group,
		StartOffset:    kafka.LastOffset,
		QueueCapacity:  1024,
		IsolationLevel: kafka.ReadCommitted,
		MaxAttempts:    3,
	})

	return &kafkaFeed{
		reader: reader,
		logger: log.With("kafka_feed"),
	}
}

type kafkaFeed struct {
	reader *kafka.Reader
	logger logger.Logger
}

func (c *kafkaFeed) HandleEvents(ctx context.Context, consumeFunc func(stories.Event)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				err := c.reader.Close()
				if err != nil {
					c.logger.Error(errors.WrapFail(err, "close reader"))
				}
				return
			default:
				msg, err := c.reader.FetchMessage(ctx)
				if err != nil {
					c.logger.Error(errors.WrapFail(err, "fetch message"))
					continue
				}

				var event stories.Event
				err = json.Unmarshal(msg.Value, &event)
				if err != nil {
					c.logger.Warn(errors.WrapFail(err, "decode story event"))
				} else {
					consumeFunc(event)
				}

				err = c.reader.CommitMessages(ctx, msg)
				if err != nil {
					c.logger.Error(errors.WrapFail(err, "commit message"))
				}
			}
		}
	}()
}
