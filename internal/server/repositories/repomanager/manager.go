package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/images"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/languages"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/participants"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/updates"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a DBTX so services can run the same
// code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Updates(db dbx.DBTX) updates.Repository
	Images(db dbx.DBTX) images.Repository
	Suggestions(db dbx.DBTX) suggestions.Repository
	Participants(db dbx.DBTX) participants.Repository
	Languages(db dbx.DBTX) languages.Repository
}
