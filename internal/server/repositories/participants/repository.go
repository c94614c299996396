package participants

import (
	"context"

	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Participant, error)
	Create(ctx context.Context, participant *models.Participant) (*models.Participant, error)
}
