package notifications

import (
	"context"
	"fmt"
	"time"

	"stagepass/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer defines the contract for the notification worker pool
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

// ConsumerConfig contains configuration for the Kafka consumer group
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	MaxRetries       int
	RetryBackoff     time.Duration
}

// DefaultConsumerConfig returns a default consumer configuration
func DefaultConsumerConfig(brokers []string, groupID string, topics []string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          brokers,
		GroupID:          groupID,
		Topics:           topics,
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
	}
}

// KafkaConsumer runs a consumer group that delivers queued notifications
// over email
type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	email         EmailSender
	cancel        context.CancelFunc
	log           *logger.Logger
}

// NewKafkaConsumer creates a new Kafka notification consumer
func NewKafkaConsumer(config *ConsumerConfig, email EmailSender) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		email:         email,
		log:           logger.GetDefault(),
	}, nil
}

// Start launches the consumer workers. Non-blocking.
func (kc *KafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, kc.cancel = context.WithCancel(ctx)

	go kc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		go kc.runWorker(ctx, i)
	}

	kc.log.Info("notification consumer workers started", "workers", numWorkers, "topics", kc.config.Topics)
	return nil
}

func (kc *KafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		email:        kc.email,
		maxRetries:   kc.config.MaxRetries,
		retryBackoff: kc.config.RetryBackoff,
		log:          kc.log,
	}

	for {
		select {
		case <-ctx.Done():
			kc.log.Info("notification worker shutting down", "worker", workerID)
			return
		default:
			if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
				kc.log.WithError(err).Warn("consumer error, retrying", "worker", workerID)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kc *KafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		kc.log.WithError(err).Warn("consumer group error")
	}
}

// Stop cancels the workers and closes the consumer group
func (kc *KafkaConsumer) Stop() error {
	if kc.cancel != nil {
		kc.cancel()
	}
	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	email        EmailSender
	maxRetries   int
	retryBackoff time.Duration
	log          *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.processMessage(session.Context(), message); err != nil {
			// Delivery is best effort: log and move on, never stall the
			// partition behind one bad message.
			h.log.WithError(err).Warn("notification delivery failed", "key", string(message.Key))
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	notification, err := FromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to decode notification: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.retryBackoff * time.Duration(attempt)):
			}
		}
		if lastErr = h.email.SendBookingNotification(ctx, notification); lastErr == nil {
			notification.Status = StatusSent
			return nil
		}
	}

	notification.Status = StatusFailed
	h.log.LogNotificationFailure(ctx, notification.BookingID.String(), lastErr)
	return fmt.Errorf("failed after %d attempts: %w", h.maxRetries+1, lastErr)
}
