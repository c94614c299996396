// Package updates stores the announcements shown on the public site.
package updates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
)

const updateColumns = `id, title, content, author_id, published, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUpdate(s scanner) (*models.Update, error) {
	u := &models.Update{}
	if err := s.Scan(&u.ID, &u.Title, &u.Content, &u.AuthorID, &u.Published, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Update, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Update{}
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListPublished returns at most limit published updates, newest first.
func (r *PostgresRepository) ListPublished(ctx context.Context, limit int) ([]*models.Update, error) {
	query := `SELECT ` + updateColumns + ` FROM updates
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListAll returns every update regardless of its published flag, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Update, error) {
	query := `SELECT ` + updateColumns + ` FROM updates
		ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Update, error) {
	query := `SELECT ` + updateColumns + ` FROM updates
		WHERE id = $1`

	u, err := scanUpdate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, update *models.Update) (*models.Update, error) {
	query := `INSERT INTO updates (title, content, author_id, published)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + updateColumns

	u, err := scanUpdate(r.db.QueryRowContext(ctx, query,
		update.Title, update.Content, update.AuthorID, update.Published))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Update rewrites title and content. A nil published keeps the stored flag.
func (r *PostgresRepository) Update(ctx context.Context, id, title, content string, published *bool) (*models.Update, error) {
	query := `UPDATE updates
		SET title = $2, content = $3, published = COALESCE($4, published), updated_at = now()
		WHERE id = $1
		RETURNING ` + updateColumns

	u, err := scanUpdate(r.db.QueryRowContext(ctx, query, id, title, content, published))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Delete removes the update. Its images go with it through ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM updates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
