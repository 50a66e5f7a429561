package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/store"
)

func TestGetUser(t *testing.T) {
	s := store.New()
	s.PutUser(models.User{ID: "u-1", Name: "Ada", Role: models.RoleTeacher})
	service := NewUserService(s, testLogger())

	user, err := service.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersFiltersByRole(t *testing.T) {
	s := store.New()
	s.PutUser(models.User{ID: "u-1", Role: models.RoleTeacher})
	s.PutUser(models.User{ID: "u-2", Role: models.RoleStudent})
	s.PutUser(models.User{ID: "u-3", Role: models.RoleStudent})
	service := NewUserService(s, testLogger())

	ctx := context.Background()

	all, err := service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	students, err := service.List(ctx, "STUDENT")
	require.NoError(t, err)
	assert.Len(t, students, 2)

	admins, err := service.List(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Empty(t, admins)
}
