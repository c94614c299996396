package httpserver

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/images"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/languages"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/participants"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/updates"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/users"
	"github.com/dmitrijs2005/robotika/internal/server/services"
	"github.com/google/uuid"
)

// memUsers backs a real services.UserService so login goes through bcrypt
// and token issuing for real.
type memUsers struct {
	byName map[string]*models.User
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	c := *u
	c.ID = uuid.NewString()
	m.byName[c.UserName] = &c
	return &c, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	u, ok := m.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) UpdateCredentials(ctx context.Context, userName, passwordHash string, role models.Role) (*models.User, error) {
	u, ok := m.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.PasswordHash, u.Role = passwordHash, role
	c := *u
	return &c, nil
}

type usersOnlyManager struct {
	users *memUsers
}

func (m usersOnlyManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m usersOnlyManager) Users(dbx.DBTX) users.Repository               { return m.users }
func (m usersOnlyManager) Updates(dbx.DBTX) updates.Repository           { return nil }
func (m usersOnlyManager) Images(dbx.DBTX) images.Repository             { return nil }
func (m usersOnlyManager) Suggestions(dbx.DBTX) suggestions.Repository   { return nil }
func (m usersOnlyManager) Participants(dbx.DBTX) participants.Repository { return nil }
func (m usersOnlyManager) Languages(dbx.DBTX) languages.Repository       { return nil }

type fakeUpdates struct {
	mu    sync.Mutex
	rows  []*models.UpdateWithImages
	clock time.Time
	err   error
}

func (f *fakeUpdates) find(id string) *models.UpdateWithImages {
	for _, u := range f.rows {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (f *fakeUpdates) newestFirst(keep func(*models.UpdateWithImages) bool) []*models.UpdateWithImages {
	out := []*models.UpdateWithImages{}
	for _, u := range f.rows {
		if keep(u) {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeUpdates) ListPublished(ctx context.Context, limit int) ([]*models.UpdateWithImages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if limit <= 0 {
		limit = services.DefaultUpdatesLimit
	}
	out := f.newestFirst(func(u *models.UpdateWithImages) bool { return u.Published })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUpdates) GetPublished(ctx context.Context, id string) (*models.UpdateWithImages, error) {
	u, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Published {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUpdates) ListAll(ctx context.Context) ([]*models.UpdateWithImages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.newestFirst(func(*models.UpdateWithImages) bool { return true }), nil
}

func (f *fakeUpdates) Get(ctx context.Context, id string) (*models.UpdateWithImages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.find(id)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUpdates) Create(ctx context.Context, authorID string, in services.UpdateInput) (*models.UpdateWithImages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Minute)
	published := true
	if in.Published != nil {
		published = *in.Published
	}
	imgs := []*models.Image{}
	if in.Images != nil {
		for i, img := range *in.Images {
			imgs = append(imgs, &models.Image{ID: uuid.NewString(), ImageURL: img.URL, DisplayOrder: i})
		}
	}
	u := &models.UpdateWithImages{
		Update: models.Update{
			ID: uuid.NewString(), Title: in.Title, Content: in.Content,
			AuthorID: &authorID, Published: published, CreatedAt: f.clock, UpdatedAt: f.clock,
		},
		Images: imgs,
	}
	f.rows = append(f.rows, u)
	c := *u
	return &c, nil
}

func (f *fakeUpdates) Update(ctx context.Context, id string, in services.UpdateInput) (*models.UpdateWithImages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.find(id)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	u.Title, u.Content = in.Title, in.Content
	if in.Published != nil {
		u.Published = *in.Published
	}
	c := *u
	return &c, nil
}

func (f *fakeUpdates) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.rows {
		if u.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeSuggestions struct {
	mu   sync.Mutex
	rows []*models.Suggestion
}

func (f *fakeSuggestions) ListForTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error) {
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

func (f *fakeSuggestions) ListAll(ctx context.Context) ([]*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Suggestion{}
	for _, s := range f.rows {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeSuggestions) Submit(ctx context.Context, teacherID, title, content string) (*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Suggestion{ID: uuid.NewString(), TeacherID: teacherID, Title: title, Content: content, Status: models.StatusPending}
	f.rows = append(f.rows, s)
	c := *s
	return &c, nil
}

func (f *fakeSuggestions) Review(ctx context.Context, id string, status models.SuggestionStatus, feedback string) (*models.Suggestion, error) {
	if !status.Valid() {
		return nil, common.ErrorValidation
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.ID == id {
			s.Status = status
			s.AdminFeedback = nil
			if feedback != "" {
				fb := feedback
				s.AdminFeedback = &fb
			}
			c := *s
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeSite struct {
	participants []*models.Participant
	languages    []*models.ProgrammingLanguage
}

func (f *fakeSite) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	return f.participants, nil
}

func (f *fakeSite) AddParticipant(ctx context.Context, name, school, teamName string) (*models.Participant, error) {
	p := &models.Participant{ID: uuid.NewString(), Name: name}
	if school != "" {
		p.School = &school
	}
	if teamName != "" {
		p.TeamName = &teamName
	}
	f.participants = append(f.participants, p)
	return p, nil
}

func (f *fakeSite) ListLanguages(ctx context.Context) ([]*models.ProgrammingLanguage, error) {
	return f.languages, nil
}

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	handler     *Handler
	tokens      *auth.TokenService
	updates     *fakeUpdates
	suggestions *fakeSuggestions
	site        *fakeSite
	adminID     string
	teacherID   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens := auth.NewTokenService([]byte(testSecret), 7*24*time.Hour)
	mu := &memUsers{byName: map[string]*models.User{}}
	for _, u := range []struct {
		name, password string
		role           models.Role
	}{
		{"admin", "admin-pass-123", models.RoleAdmin},
		{"mesuese", "teacher-pass-123", models.RoleTeacher},
	} {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if _, err := mu.Create(context.Background(), &models.User{UserName: u.name, PasswordHash: hash, Role: u.role}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	env := &testEnv{
		tokens:      tokens,
		updates:     &fakeUpdates{clock: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)},
		suggestions: &fakeSuggestions{},
		site:        &fakeSite{},
		adminID:     mu.byName["admin"].ID,
		teacherID:   mu.byName["mesuese"].ID,
	}
	env.handler = NewHandler(Options{
		Users:       services.NewUserService(nil, usersOnlyManager{users: mu}, tokens),
		Updates:     env.updates,
		Suggestions: env.suggestions,
		Site:        env.site,
		Tokens:      tokens,
	})
	return env
}

func (e *testEnv) token(t *testing.T, id, name string, role models.Role) string {
	t.Helper()
	tok, err := e.tokens.Issue(auth.Identity{ID: id, Username: name, Role: role})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, e.adminID, "admin", models.RoleAdmin)
}

func (e *testEnv) teacherToken(t *testing.T) string {
	return e.token(t, e.teacherID, "mesuese", models.RoleTeacher)
}
