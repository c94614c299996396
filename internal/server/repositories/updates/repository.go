package updates

import (
	"context"

	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type Repository interface {
	ListPublished(ctx context.Context, limit int) ([]*models.Update, error)
	ListAll(ctx context.Context) ([]*models.Update, error)
	GetByID(ctx context.Context, id string) (*models.Update, error)
	Create(ctx context.Context, update *models.Update) (*models.Update, error)
	Update(ctx context.Context, id, title, content string, published *bool) (*models.Update, error)
	Delete(ctx context.Context, id string) error
}
