package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"family-calendar/internal/logger"
	"family-calendar/internal/models"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
	log    *logger.Logger
}

// NewConsumer creates a new Kafka consumer for the given topic and group
func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, log: log}
}

// Run hands every decoded change to handler until ctx is cancelled.
// Undecodable messages are logged and skipped.
func (c *Consumer) Run(ctx context.Context, handler func(models.EventChange)) error {
	c.log.Info("KAFKA", "change feed consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			c.log.Error("KAFKA", "error reading message: "+err.Error())
			return err
		}

		change, err := DecodeChange(msg.Value)
		if err != nil {
			c.log.Warn("KAFKA", "failed to unmarshal message: "+err.Error())
			continue
		}
		handler(change)
	}
}

func DecodeChange(value []byte) (models.EventChange, error) {
	var change models.EventChange
	if err := json.Unmarshal(value, &change); err != nil {
		return models.EventChange{}, err
	}
	if change.Type != models.ChangeEventCreated && change.Type != models.ChangeEventDeleted {
		return models.EventChange{}, errors.New("unknown change type " + change.Type)
	}
	return change, nil
}

// Close gracefully shuts down the Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
