// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors, the connection pool and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/migrations"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/images"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/languages"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/participants"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/updates"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Updates(db dbx.DBTX) updates.Repository {
	return updates.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Images(db dbx.DBTX) images.Repository {
	return images.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Suggestions(db dbx.DBTX) suggestions.Repository {
	return suggestions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Participants(db dbx.DBTX) participants.Repository {
	return participants.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Languages(db dbx.DBTX) languages.Repository {
	return languages.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Open creates the pgx-backed pool and checks that the database answers.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}
