package participants

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

// List returns participants in registration order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Participant, error) {
	query := `SELECT id, name, school, team_name, created_at FROM participants
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Participant{}
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.Name, &p.School, &p.TeamName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, participant *models.Participant) (*models.Participant, error) {
	query := `INSERT INTO participants (name, school, team_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, participant.Name, participant.School, participant.TeamName).
		Scan(&participant.ID, &participant.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return participant, nil
}
