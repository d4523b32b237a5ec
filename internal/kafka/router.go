package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	appuser "userhub/internal/app/user"
	"userhub/internal/config"
	"userhub/internal/logging"
)

type Router struct {
	router *message.Router
}

func NewRouter(
	ctx context.Context,
	cfg config.KafkaConfig,
	baseLogger logging.Logger,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	usersTopic := UsersTopic(cfg.TopicPrefix)

	router.AddHandler(
		"user-audit-log",
		usersTopic,
		subscriber,
		"",  // no output topic, we're just handling side-effects
		nil, // no publisher (no out topic)
		userAuditHandler(baseLogger.With("component", "user_audit", "topic", usersTopic)),
	)

	return &Router{router: router}, nil
}

// userAuditHandler writes one structured log line per user lifecycle event.
// Undecodable messages are logged and acked so they cannot block the partition.
func userAuditHandler(logger logging.Logger) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		env, u, err := decodeUserEvent(msg.Payload)
		if err != nil {
			logger.Error("dropping undecodable user event", "uuid", msg.UUID, "error", err)
			return nil, nil
		}

		logger.Info("user event",
			"type", env.Type,
			"message_id", env.MessageID,
			"correlation_id", env.CorrelationID,
			"occurred_at", env.OccurredAt,
			"user_id", u.Id,
		)
		return nil, nil
	}
}

func decodeUserEvent(body []byte) (Envelope, appuser.UserDto, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, appuser.UserDto{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	var u appuser.UserDto
	if err := json.Unmarshal(env.Payload, &u); err != nil {
		return Envelope{}, appuser.UserDto{}, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	return env, u, nil
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

func (r *Router) Close() error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}
