package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"goblog/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID int64) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetPage(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountAll(ctx context.Context) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetPageByPost(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID int64) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID int64) (*models.Image, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.Image, error)
	Delete(ctx context.Context, imageID int64) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Image   ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Image:   NewImageRepository(db),
	}
}
