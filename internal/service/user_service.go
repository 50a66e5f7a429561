package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/store"
)

// UserService answers read queries over user accounts. Accounts are
// created at seed time; there is no signup surface.
type UserService interface {
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context, role string) ([]models.User, error)
}

type userService struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(store *store.Store, logger zerolog.Logger) UserService {
	return &userService{
		store:  store,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Get(_ context.Context, id string) (models.User, error) {
	user, ok := s.store.GetUser(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// List returns all users, optionally narrowed to a role.
func (s *userService) List(_ context.Context, role string) ([]models.User, error) {
	users := s.store.ListUsers()
	if role == "" {
		return users, nil
	}

	filtered := make([]models.User, 0, len(users))
	for _, user := range users {
		if string(user.Role) == role {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}
