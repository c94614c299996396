package languages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the programming languages in display order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.ProgrammingLanguage, error) {
	query := `SELECT id, name, icon_url, description, display_order, created_at
		FROM programming_languages
		ORDER BY display_order ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.ProgrammingLanguage{}
	for rows.Next() {
		l := &models.ProgrammingLanguage{}
		if err := rows.Scan(&l.ID, &l.Name, &l.IconURL, &l.Description, &l.DisplayOrder, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
