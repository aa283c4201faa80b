package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

type imageRepository struct {
	db Querier
}

func NewImageRepository(db Querier) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.ArticleImage) error {
	query := `
		INSERT INTO article_images (image_id, article_id, object_name, image_url, created_at)
		VALUES (:image_id, :article_id, :object_name, :image_url, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByImageID(ctx context.Context, imageID string) (*models.ArticleImage, error) {
	query := `SELECT image_id, article_id, object_name, image_url, created_at FROM article_images WHERE image_id = $1`

	var image models.ArticleImage
	if err := r.db.GetContext(ctx, &image, query, imageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get image %s: %w", imageID, err)
	}

	return &image, nil
}

func (r *imageRepository) GetByArticleID(ctx context.Context, articleID int64) ([]models.ArticleImage, error) {
	query := `
		SELECT image_id, article_id, object_name, image_url, created_at
		FROM article_images WHERE article_id = $1 ORDER BY created_at
	`

	images := []models.ArticleImage{}
	if err := r.db.SelectContext(ctx, &images, query, articleID); err != nil {
		return nil, fmt.Errorf("list images of article %d: %w", articleID, err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM article_images WHERE image_id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete image %s: %w", imageID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
