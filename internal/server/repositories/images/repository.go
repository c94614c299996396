package images

import (
	"context"

	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type Repository interface {
	ListByUpdate(ctx context.Context, updateID string) ([]*models.Image, error)
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	DeleteByUpdate(ctx context.Context, updateID string) error
}
