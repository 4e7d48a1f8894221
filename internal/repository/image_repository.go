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

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (post_id, object_name, image_url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING image_id
	`

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		image.PostID,
		image.ObjectName,
		image.ImageURL,
		image.CreatedAt,
	).Scan(&image.ImageID)
	if err != nil {
		return fmt.Errorf("ошибка при создании изображения: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, imageID int64) (*models.Image, error) {
	query := `SELECT * FROM images WHERE image_id = $1`

	var image models.Image
	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ImageNotFound(imageID)
		}
		return nil, fmt.Errorf("ошибка при получении изображения: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Image, error) {
	query := `SELECT * FROM images WHERE post_id = $1 ORDER BY created_at`

	images := []models.Image{}
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID int64) error {
	query := `DELETE FROM images WHERE image_id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ImageNotFound(imageID)
	}

	return nil
}
