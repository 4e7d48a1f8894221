package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultRole присваивается каждому пользователю при регистрации
const DefaultRole = "member"

type User struct {
	UserID                 int64          `json:"userId" db:"user_id"`
	Username               string         `json:"username" db:"username"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	Roles                  pq.StringArray `json:"roles" db:"roles"`
	RefreshToken           string         `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time      `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID        int64      `json:"postId" db:"post_id"`
	AuthorID      int64      `json:"authorId" db:"author_id"`
	Title         string     `json:"title" db:"title"`
	Content       string     `json:"content" db:"content"`
	CommentsCount int        `json:"commentsCount" db:"comments_count"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	Images        []Image    `json:"images,omitempty" db:"-"`
}

type Comment struct {
	CommentID int64      `json:"commentId" db:"comment_id"`
	PostID    int64      `json:"postId" db:"post_id"`
	AuthorID  int64      `json:"authorId" db:"author_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

type Image struct {
	ImageID    int64     `json:"imageId" db:"image_id"`
	PostID     int64     `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Pagination - метаданные страничной выдачи
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type CommentPage struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}
