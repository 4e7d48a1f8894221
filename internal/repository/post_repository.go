package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"goblog/internal/apperrors"
	"goblog/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, title, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING post_id
	`

	post.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
		post.CreatedAt,
	).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `
		SELECT p.*,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comments_count
		FROM posts p
		WHERE p.post_id = $1
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.PostNotFound(postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetPage возвращает страницу постов, новые первыми
func (r *postRepository) GetPage(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT p.*,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS comments_count
		FROM posts p
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении страницы постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CountAll(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	now := time.Now()
	post.UpdatedAt = &now

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.PostNotFound(post.PostID)
	}

	return nil
}

// Delete удаляет пост; комментарии и записи изображений уходят каскадом по FK
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.PostNotFound(postID)
	}

	return nil
}
