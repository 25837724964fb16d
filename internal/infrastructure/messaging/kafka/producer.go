package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Producer publishes domain events.  Event publication is best-effort from
// the caller's perspective: services log publish failures but never fail the
// user-facing operation over them.
type Producer interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type writerProducer struct {
	writer *kafkago.Writer
	log    logging.Logger
}

// NewProducer builds a Producer over the configured brokers.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafkago.RequireOne,
	}
	return &writerProducer{writer: w, log: log.Named("kafka")}
}

func (p *writerProducer) Publish(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeMessagingError, "marshal event")
	}
	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeMessagingError, "publish event").
			WithDetail("topic=" + topic)
	}
	p.log.Debug("event published",
		logging.String("topic", topic),
		logging.String("key", key))
	return nil
}

func (p *writerProducer) Close() error {
	return p.writer.Close()
}

// nopProducer drops events. Used when kafka is disabled.
type nopProducer struct{}

func (nopProducer) Publish(context.Context, string, string, any) error { return nil }
func (nopProducer) Close() error                                       { return nil }

// NopProducer returns a Producer that discards all events.
func NopProducer() Producer { return nopProducer{} }
