package user

import (
	"context"
	"encoding/json"
	"time"

	"userhub/internal/cache"
	dom "userhub/internal/domain/user"
	"userhub/internal/logging"
)

type Service interface {
	List(ctx context.Context) ([]UserDto, error)
	GetById(ctx context.Context, id int64) (*UserDto, error)
	Create(ctx context.Context, input UserInput) (*UserDto, error)
	Update(ctx context.Context, id int64, input UserInput) (*UserDto, error)
	Delete(ctx context.Context, id int64) (*UserDto, error)
}

type service struct {
	repo   dom.Repository
	cache  cache.UserCache
	events Events
	logger logging.Logger
}

const defaultUserCacheTTL = 5 * time.Minute

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	events Events,
	logger logging.Logger,
) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger.With("component", "user_service"),
	}
}

func (s *service) List(ctx context.Context) ([]UserDto, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(users), nil
}

func (s *service) GetById(ctx context.Context, id int64) (*UserDto, error) {
	// 1) Check cache
	if data, err := s.cache.GetByID(ctx, id); err == nil && data != nil {
		var dto UserDto
		uerr := json.Unmarshal(data, &dto)
		if uerr == nil {
			return &dto, nil
		}
		s.logger.Error("failed to unmarshal user from cache", "error", uerr, "id", id)
	} else if err != nil {
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
	}

	// 2) Fallback to DB
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto)
	return dto, nil
}

func (s *service) Create(ctx context.Context, input UserInput) (*UserDto, error) {
	u, err := s.repo.Create(ctx, dom.Fields{Name: input.Name, Email: input.Email})
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto)

	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UserInput) (*UserDto, error) {
	u, err := s.repo.Update(ctx, id, dom.Fields{Name: input.Name, Email: input.Email})
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto)

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*UserDto, error) {
	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user cache after delete", "error", err, "id", id)
	}

	dto := toDTO(u)
	if err := s.events.UserDeleted(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return dto, nil
}

// cacheUser is best-effort: failures are logged, never returned.
func (s *service) cacheUser(ctx context.Context, dto *UserDto) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", dto.Id)
		return
	}
	if err := s.cache.Set(ctx, dto.Id, data, defaultUserCacheTTL); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", dto.Id)
	}
}
