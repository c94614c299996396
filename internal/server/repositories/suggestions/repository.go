package suggestions

import (
	"context"

	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type Repository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error)
	ListAll(ctx context.Context) ([]*models.Suggestion, error)
	Create(ctx context.Context, suggestion *models.Suggestion) (*models.Suggestion, error)
	UpdateStatus(ctx context.Context, id string, status models.SuggestionStatus, feedback *string) (*models.Suggestion, error)
}
