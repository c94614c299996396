package languages

import (
	"context"

	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.ProgrammingLanguage, error)
}
