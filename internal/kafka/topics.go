package kafka

import (
	"errors"
	"net"
	"strconv"

	"family-calendar/internal/logger"

	"github.com/segmentio/kafka-go"
)

// EnsureTopic creates the change feed topic on the cluster controller if it
// does not exist yet.
func EnsureTopic(brokers []string, topic string, log *logger.Logger) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		if errors.Is(err, kafka.TopicAlreadyExists) {
			log.Debug("KAFKA", "topic "+topic+" already exists")
			return nil
		}
		return err
	}
	log.Info("KAFKA", "created topic "+topic)
	return nil
}
