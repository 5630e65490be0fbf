package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Shopify/sarama"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
	"github.com/orderdesk/orderdesk-api/pkg/retry"
)

// Publisher announces committed order mutations to interested consumers.
// Publishing is fire-and-forget: the database commit is the source of
// truth, so a failed publish is logged and never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, event *models.OrderEvent)
	Close() error
}

// KafkaPublisher publishes order events to a Kafka topic
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	retryCfg *retry.Config
	logger   logger.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic
func NewKafkaPublisher(brokers []string, topic string, logger logger.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Retry.Backoff = 250 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)

	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		retryCfg: &retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.NewDefaultExponentialBackoff(),
			Logger:      logger,
		},
		logger: logger,
	}, nil
}

// Publish sends the event keyed by order id so one order's events stay in
// partition order
func (p *KafkaPublisher) Publish(ctx context.Context, event *models.OrderEvent) {
	payload, err := event.Marshal()

	if err != nil {
		p.logger.Error("Failed to marshal order event", "error", err, "eventType", event.EventType)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	err = retry.Do(ctx, func() error {
		partition, offset, sendErr := p.producer.SendMessage(msg)

		if sendErr != nil {
			return sendErr
		}

		p.logger.Debug("Order event published",
			"eventType", event.EventType,
			"orderID", event.OrderID,
			"partition", partition,
			"offset", offset)
		return nil
	}, p.retryCfg)

	if err != nil {
		p.logger.Error("Failed to publish order event",
			"error", err,
			"eventType", event.EventType,
			"orderID", event.OrderID)
	}
}

// Close closes the underlying producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops everything. Used when no
// brokers are configured and in tests.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, *models.OrderEvent) {}
func (nopPublisher) Close() error                                { return nil }
