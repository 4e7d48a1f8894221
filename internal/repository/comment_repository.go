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

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING comment_id
	`

	comment.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.CommentID)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	query := `SELECT * FROM comments WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.CommentNotFound(commentID)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

// GetPageByPost возвращает страницу комментариев поста, старые первыми
func (r *commentRepository) GetPageByPost(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, error) {
	query := `
		SELECT * FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев поста: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM comments WHERE post_id = $1`

	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	return count, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET
			content = :content,
			updated_at = :updated_at
		WHERE comment_id = :comment_id
	`

	now := time.Now()
	comment.UpdatedAt = &now

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.CommentNotFound(comment.CommentID)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.CommentNotFound(commentID)
	}

	return nil
}
