package service

import (
	"goblog/internal/cache"
	"goblog/internal/config"
	"goblog/internal/repository"
	"goblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
}

func NewService(repo *repository.Repository, cfg *config.Config, c cache.Cache, store storage.Storage) *Service {
	inv := cache.NewInvalidator(c, cache.SweepBounds{
		MaxPages:  cfg.Cache.MaxPagesToClear,
		LimitStep: cfg.Cache.LimitStep,
		MaxLimit:  cfg.Pagination.MaxLimit,
	})

	return &Service{
		Auth:    NewAuthService(repo.User, cfg),
		User:    NewUserService(repo.User, inv),
		Post:    NewPostService(repo.Post, repo.Image, store, c, inv, cfg),
		Comment: NewCommentService(repo.Comment, repo.Post, c, inv, cfg),
	}
}
