package service

import (
	"context"
	"strings"

	"goblog/internal/cache"
	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/validation"
)

// UpdateUserRequest - частичное обновление профиля, nil означает "не менять"
type UpdateUserRequest struct {
	UserID       int64
	ActingUserID int64
	Username     *string
	Email        *string
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID, actingUserID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	inv      *cache.Invalidator
}

func NewUserService(userRepo repository.UserRepository, inv *cache.Invalidator) UserService {
	return &userService{
		userRepo: userRepo,
		inv:      inv,
	}
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// only the owner edits the profile
	if err := validation.CheckOwnership(user.UserID, req.ActingUserID); err != nil {
		return nil, err
	}

	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			return nil, validation.RequireFields(map[string]string{"username": ""})
		}
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, validation.RequireFields(map[string]string{"email": ""})
		}
		newEmail := strings.TrimSpace(*req.Email)
		if newEmail != user.Email {
			if err := validation.CheckEmailUnique(ctx, s.userRepo, newEmail); err != nil {
				return nil, err
			}
		}
		user.Email = newEmail
	}

	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID, actingUserID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := validation.CheckOwnership(user.UserID, actingUserID); err != nil {
		return err
	}

	// posts and comments of the user go away by FK cascade; their detail
	// keys expire by TTL, the list pages are swept here
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	return s.inv.SweepPostsList(ctx)
}
