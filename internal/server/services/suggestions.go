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

// SuggestionService handles teacher submissions and their admin review.
type SuggestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSuggestionService(db *sql.DB, m repomanager.RepositoryManager) *SuggestionService {
	return &SuggestionService{db: db, repomanager: m}
}

func (s *SuggestionService) ListForTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error) {
	return s.repomanager.Suggestions(s.db).ListByTeacher(ctx, teacherID)
}

func (s *SuggestionService) ListAll(ctx context.Context) ([]*models.Suggestion, error) {
	return s.repomanager.Suggestions(s.db).ListAll(ctx)
}

// Submit files a new pending suggestion owned by teacherID.
func (s *SuggestionService) Submit(ctx context.Context, teacherID, title, content string) (*models.Suggestion, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}
	return s.repomanager.Suggestions(s.db).Create(ctx, &models.Suggestion{
		TeacherID: teacherID,
		Title:     title,
		Content:   content,
		Status:    models.StatusPending,
	})
}

// Review sets the status and admin feedback of a suggestion. Blank feedback
// is stored as NULL.
func (s *SuggestionService) Review(ctx context.Context, id string, status models.SuggestionStatus, feedback string) (*models.Suggestion, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", common.ErrorValidation, status)
	}

	var fb *string
	if f := strings.TrimSpace(feedback); f != "" {
		fb = &f
	}

	return s.repomanager.Suggestions(s.db).UpdateStatus(ctx, id, status, fb)
}
