package kafka

import (
	"context"
	"fmt"

	appuser "userhub/internal/app/user"
	"userhub/internal/config"
	"userhub/internal/logging"
)

const (
	UserCreatedType = "UserCreated"
	UserUpdatedType = "UserUpdated"
	UserDeletedType = "UserDeleted"
)

type userEvents struct {
	bus         Bus
	topicPrefix string
	logger      logging.Logger
}

func NewUserEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) appuser.Events {
	return &userEvents{
		bus:         bus,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.With("component", "user_events"),
	}
}

// UsersTopic is the topic user lifecycle events are published to.
func UsersTopic(prefix string) string {
	return prefix + "users"
}

func (e *userEvents) UserCreated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, UsersTopic(e.topicPrefix), UserCreatedType, u); err != nil {
		return fmt.Errorf("publish UserCreated: %w", err)
	}
	return nil
}

func (e *userEvents) UserUpdated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, UsersTopic(e.topicPrefix), UserUpdatedType, u); err != nil {
		return fmt.Errorf("publish UserUpdated: %w", err)
	}
	return nil
}

func (e *userEvents) UserDeleted(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, UsersTopic(e.topicPrefix), UserDeletedType, u); err != nil {
		return fmt.Errorf("publish UserDeleted: %w", err)
	}
	return nil
}
