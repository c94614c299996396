// Package images stores the pictures attached to updates. Images are
// references to externally hosted files; no bytes are kept here.
package images

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
)

const imageColumns = `id, update_id, image_url, alt_text, display_order, is_main, position, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUpdate returns the images of one update ordered by display_order.
func (r *PostgresRepository) ListByUpdate(ctx context.Context, updateID string) ([]*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images
		WHERE update_id = $1
		ORDER BY display_order ASC`

	rows, err := r.db.QueryContext(ctx, query, updateID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Image{}
	for rows.Next() {
		img := &models.Image{}
		if err := rows.Scan(&img.ID, &img.UpdateID, &img.ImageURL, &img.AltText,
			&img.DisplayOrder, &img.IsMain, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	query := `INSERT INTO images (update_id, image_url, alt_text, display_order, is_main, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		image.UpdateID, image.ImageURL, image.AltText, image.DisplayOrder, image.IsMain, image.Position).
		Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return image, nil
}

func (r *PostgresRepository) DeleteByUpdate(ctx context.Context, updateID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE update_id = $1`, updateID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
