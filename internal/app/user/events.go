package user

import "context"

type Events interface {
	UserCreated(ctx context.Context, u *UserDto) error
	UserUpdated(ctx context.Context, u *UserDto) error
	UserDeleted(ctx context.Context, u *UserDto) error
}

// NoopEvents No-op implementation, used when Kafka is disabled and in tests.
type NoopEvents struct{}

func (NoopEvents) UserCreated(ctx context.Context, u *UserDto) error { return nil }
func (NoopEvents) UserUpdated(ctx context.Context, u *UserDto) error { return nil }
func (NoopEvents) UserDeleted(ctx context.Context, u *UserDto) error { return nil }
