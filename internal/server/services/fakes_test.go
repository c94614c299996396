package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/images"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/languages"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/participants"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/updates"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User

	getErr    error
	createErr error
	updateErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	f.byName[c.UserName] = &c
	return &c, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) UpdateCredentials(ctx context.Context, userName, passwordHash string, role models.Role) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	u.Role = role
	c := *u
	return &c, nil
}

type fakeUpdatesRepo struct {
	mu    sync.Mutex
	rows  map[string]*models.Update
	clock time.Time

	createErr error
}

func newFakeUpdatesRepo() *fakeUpdatesRepo {
	return &fakeUpdatesRepo{rows: map[string]*models.Update{}, clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeUpdatesRepo) sorted(keep func(*models.Update) bool) []*models.Update {
	out := []*models.Update{}
	for _, u := range f.rows {
		if keep(u) {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeUpdatesRepo) ListPublished(ctx context.Context, limit int) ([]*models.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted(func(u *models.Update) bool { return u.Published })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUpdatesRepo) ListAll(ctx context.Context) ([]*models.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(*models.Update) bool { return true }), nil
}

func (f *fakeUpdatesRepo) GetByID(ctx context.Context, id string) (*models.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUpdatesRepo) Create(ctx context.Context, u *models.Update) (*models.Update, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Minute)
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = f.clock, f.clock
	f.rows[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUpdatesRepo) Update(ctx context.Context, id, title, content string, published *bool) (*models.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Title, u.Content = title, content
	if published != nil {
		u.Published = *published
	}
	c := *u
	return &c, nil
}

func (f *fakeUpdatesRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeImagesRepo struct {
	mu   sync.Mutex
	rows []*models.Image

	createErr error
}

func (f *fakeImagesRepo) ListByUpdate(ctx context.Context, updateID string) ([]*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Image{}
	for _, img := range f.rows {
		if img.UpdateID == updateID {
			c := *img
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakeImagesRepo) Create(ctx context.Context, img *models.Image) (*models.Image, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *img
	c.ID = uuid.NewString()
	f.rows = append(f.rows, &c)
	out := c
	return &out, nil
}

func (f *fakeImagesRepo) DeleteByUpdate(ctx context.Context, updateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, img := range f.rows {
		if img.UpdateID != updateID {
			kept = append(kept, img)
		}
	}
	f.rows = kept
	return nil
}

type fakeSuggestionsRepo struct {
	mu   sync.Mutex
	rows []*models.Suggestion

	lastFeedback *string
}

func (f *fakeSuggestionsRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Suggestion{}
	for _, s := range f.rows {
		if s.TeacherID == teacherID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSuggestionsRepo) ListAll(ctx context.Context) ([]*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Suggestion{}
	for _, s := range f.rows {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeSuggestionsRepo) Create(ctx context.Context, s *models.Suggestion) (*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *s
	c.ID = uuid.NewString()
	c.Status = models.StatusPending
	f.rows = append(f.rows, &c)
	out := c
	return &out, nil
}

func (f *fakeSuggestionsRepo) UpdateStatus(ctx context.Context, id string, status models.SuggestionStatus, feedback *string) (*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFeedback = feedback
	for _, s := range f.rows {
		if s.ID == id {
			s.Status, s.AdminFeedback = status, feedback
			c := *s
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeParticipantsRepo struct {
	rows []*models.Participant
}

func (f *fakeParticipantsRepo) List(ctx context.Context) ([]*models.Participant, error) {
	return f.rows, nil
}

func (f *fakeParticipantsRepo) Create(ctx context.Context, p *models.Participant) (*models.Participant, error) {
	c := *p
	c.ID = uuid.NewString()
	f.rows = append(f.rows, &c)
	return &c, nil
}

type fakeLanguagesRepo struct {
	rows []*models.ProgrammingLanguage
	err  error
}

func (f *fakeLanguagesRepo) List(ctx context.Context) ([]*models.ProgrammingLanguage, error) {
	return f.rows, f.err
}

type fakeRepoManager struct {
	users        *fakeUsersRepo
	updates      *fakeUpdatesRepo
	images       *fakeImagesRepo
	suggestions  *fakeSuggestionsRepo
	participants *fakeParticipantsRepo
	languages    *fakeLanguagesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:        newFakeUsersRepo(),
		updates:      newFakeUpdatesRepo(),
		images:       &fakeImagesRepo{},
		suggestions:  &fakeSuggestionsRepo{},
		participants: &fakeParticipantsRepo{},
		languages:    &fakeLanguagesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return m.users }
func (m *fakeRepoManager) Updates(db dbx.DBTX) updates.Repository           { return m.updates }
func (m *fakeRepoManager) Images(db dbx.DBTX) images.Repository             { return m.images }
func (m *fakeRepoManager) Suggestions(db dbx.DBTX) suggestions.Repository   { return m.suggestions }
func (m *fakeRepoManager) Participants(db dbx.DBTX) participants.Repository { return m.participants }
func (m *fakeRepoManager) Languages(db dbx.DBTX) languages.Repository       { return m.languages }
