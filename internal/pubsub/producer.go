package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tokenlore/storyd/internal/stories"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

// NewKafkaNotifier broadcasts story events to the configured topic as JSON
// records keyed by entry id.
func NewKafkaNotifier(cfg Config, log logger.Logger) stories.Notifier {
	c := &kafka.Client{
		Addr:    kafka.TCP(cfg.Brokers...),
		Timeout: time.Second * 5,
	}

	return &kafkaNotifier{
		client: c,
		topic:  cfg.Topic,
		logger: log.With("kafka_notifier"),
	}
}

type kafkaNotifier struct {
	client *kafka.Client
	topic  string
	logger logger.Logger
}

func (p *kafkaNotifier) Notify(ctx context.Context, event stories.Event) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return errors.WrapFail(err, "marshal event to json")
	}

	record := kafka.Record{
		Key:   kafka.NewBytes([]byte(event.EntryID)),
		Value: kafka.NewBytes(bytes),
	}

	_, err = p.client.Produce(ctx, &kafka.ProduceRequest{
		Topic:        p.topic,
		RequiredAcks: 1,
		Records:      kafka.NewRecordReader(record),
	})
	return errors.WrapFail(err, "produce story event")
}
