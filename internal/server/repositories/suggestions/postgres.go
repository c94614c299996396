// Package suggestions stores teacher suggestions and their review state.
package suggestions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
)

const suggestionColumns = `id, teacher_id, title, content, status, admin_feedback, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(s scanner) (*models.Suggestion, error) {
	x := &models.Suggestion{}
	err := s.Scan(&x.ID, &x.TeacherID, &x.Title, &x.Content, &x.Status, &x.AdminFeedback, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Suggestion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Suggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListByTeacher returns the suggestions one teacher submitted, newest first.
func (r *PostgresRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions
		WHERE teacher_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, teacherID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM suggestions
		ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// Create stores a new suggestion. The status column is always written as pending.
func (r *PostgresRepository) Create(ctx context.Context, suggestion *models.Suggestion) (*models.Suggestion, error) {
	query := `INSERT INTO suggestions (teacher_id, title, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + suggestionColumns

	s, err := scanSuggestion(r.db.QueryRowContext(ctx, query,
		suggestion.TeacherID, suggestion.Title, suggestion.Content, models.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.SuggestionStatus, feedback *string) (*models.Suggestion, error) {
	query := `UPDATE suggestions
		SET status = $2, admin_feedback = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + suggestionColumns

	s, err := scanSuggestion(r.db.QueryRowContext(ctx, query, id, status, feedback))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
