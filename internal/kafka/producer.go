package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"family-calendar/internal/models"

	"github.com/segmentio/kafka-go"
)

// Publisher receives every successful write to the event store.
type Publisher interface {
	PublishEventChange(ctx context.Context, change models.EventChange) error
	Close() error
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

// PublishEventChange streams a created/deleted notification, keyed by event id
// so changes to one event stay ordered within a partition.
func (p *Producer) PublishEventChange(ctx context.Context, change models.EventChange) error {
	msgBytes, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(strconv.FormatInt(change.EventID, 10)),
			Value: msgBytes,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(change.Type)},
			},
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NoopPublisher is used when the change feed is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishEventChange(context.Context, models.EventChange) error { return nil }

func (NoopPublisher) Close() error { return nil }
