package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/repomanager"
)

// SiteService serves the static-ish site content: participants and the
// programming languages taught at the event.
type SiteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSiteService(db *sql.DB, m repomanager.RepositoryManager) *SiteService {
	return &SiteService{db: db, repomanager: m}
}

func (s *SiteService) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	return s.repomanager.Participants(s.db).List(ctx)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (s *SiteService) AddParticipant(ctx context.Context, name, school, teamName string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return s.repomanager.Participants(s.db).Create(ctx, &models.Participant{
		Name:     name,
		School:   optional(school),
		TeamName: optional(teamName),
	})
}

func (s *SiteService) ListLanguages(ctx context.Context) ([]*models.ProgrammingLanguage, error) {
	return s.repomanager.Languages(s.db).List(ctx)
}
