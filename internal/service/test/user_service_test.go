package test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goblog/internal/apperrors"
	"goblog/internal/cache"
	"goblog/internal/models"
	"goblog/internal/service"
)

func newUserService(userRepo *MockUserRepository) service.UserService {
	mem := cache.NewMemoryCache()
	inv := cache.NewInvalidator(mem, cache.SweepBounds{MaxPages: 10, LimitStep: 10, MaxLimit: 100})
	return service.NewUserService(userRepo, inv)
}

func existingUser() *models.User {
	return &models.User{
		UserID:   5,
		Username: "ivan",
		Email:    "ivan@example.com",
		Roles:    pq.StringArray{models.DefaultRole},
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Частичное обновление: меняется только username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(5)).Return(existingUser(), nil)
		userRepo.On("UpdateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		newName := "ivan.ivanov"
		updated, err := userService.UpdateUser(ctx, service.UpdateUserRequest{
			UserID:       5,
			ActingUserID: 5,
			Username:     &newName,
		})

		require.NoError(t, err)
		assert.Equal(t, "ivan.ivanov", updated.Username)
		assert.Equal(t, "ivan@example.com", updated.Email)

		// email не менялся, проверка уникальности не нужна
		userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Новый email проверяется на уникальность", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(5)).Return(existingUser(), nil)
		userRepo.On("GetUserByEmail", mock.Anything, "taken@example.com").
			Return(&models.User{UserID: 6, Email: "taken@example.com"}, nil)

		newEmail := "taken@example.com"
		_, err := userService.UpdateUser(ctx, service.UpdateUserRequest{
			UserID:       5,
			ActingUserID: 5,
			Email:        &newEmail,
		})

		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "EMAIL_EXISTS", appErr.Code)

		userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})

	t.Run("Чужой профиль не редактируется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(5)).Return(existingUser(), nil)

		newName := "hacker"
		_, err := userService.UpdateUser(ctx, service.UpdateUserRequest{
			UserID:       5,
			ActingUserID: 6,
			Username:     &newName,
		})

		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ACCESS_DENIED", appErr.Code)

		userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Владелец удаляет свой аккаунт", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(5)).Return(existingUser(), nil)
		userRepo.On("DeleteUser", mock.Anything, int64(5)).Return(nil)

		require.NoError(t, userService.DeleteUser(ctx, 5, 5))

		userRepo.AssertExpectations(t)
	})

	t.Run("Чужой аккаунт не удаляется", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(5)).Return(existingUser(), nil)

		err := userService.DeleteUser(ctx, 5, 6)

		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ACCESS_DENIED", appErr.Code)

		userRepo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("Отсутствующий пользователь", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userService := newUserService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(99)).
			Return(nil, apperrors.UserNotFound(99))

		err := userService.DeleteUser(ctx, 99, 99)

		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "USER_NOT_FOUND", appErr.Code)
	})
}
