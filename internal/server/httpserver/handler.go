package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Login(ctx context.Context, userName, password string) (*services.LoginResult, error)
}

type UpdateService interface {
	ListPublished(ctx context.Context, limit int) ([]*models.UpdateWithImages, error)
	GetPublished(ctx context.Context, id string) (*models.UpdateWithImages, error)
	ListAll(ctx context.Context) ([]*models.UpdateWithImages, error)
	Get(ctx context.Context, id string) (*models.UpdateWithImages, error)
	Create(ctx context.Context, authorID string, in services.UpdateInput) (*models.UpdateWithImages, error)
	Update(ctx context.Context, id string, in services.UpdateInput) (*models.UpdateWithImages, error)
	Delete(ctx context.Context, id string) error
}

type SuggestionService interface {
	ListForTeacher(ctx context.Context, teacherID string) ([]*models.Suggestion, error)
	ListAll(ctx context.Context) ([]*models.Suggestion, error)
	Submit(ctx context.Context, teacherID, title, content string) (*models.Suggestion, error)
	Review(ctx context.Context, id string, status models.SuggestionStatus, feedback string) (*models.Suggestion, error)
}

type SiteService interface {
	ListParticipants(ctx context.Context) ([]*models.Participant, error)
	AddParticipant(ctx context.Context, name, school, teamName string) (*models.Participant, error)
	ListLanguages(ctx context.Context) ([]*models.ProgrammingLanguage, error)
}

// Handler holds the dependencies of every route.
type Handler struct {
	users        UserService
	updates      UpdateService
	suggestions  SuggestionService
	site         SiteService
	tokens       auth.TokenVerifier
	secureCookie bool
	logger       logging.Logger
}

type Options struct {
	Users        UserService
	Updates      UpdateService
	Suggestions  SuggestionService
	Site         SiteService
	Tokens       auth.TokenVerifier
	SecureCookie bool
	Logger       logging.Logger
}

func NewHandler(o Options) *Handler {
	l := o.Logger
	if l == nil {
		l = logging.Nop{}
	}
	return &Handler{
		users:        o.Users,
		updates:      o.Updates,
		suggestions:  o.Suggestions,
		site:         o.Site,
		tokens:       o.Tokens,
		secureCookie: o.SecureCookie,
		logger:       l.With("module", "http_handler"),
	}
}

// Router builds the gin engine with every API route.
//
//	/api/auth/*      login, logout, current identity
//	/api/*           public reads
//	/api/teacher/*   role=teacher
//	/api/admin/*     role=admin
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(recovery(h.logger), accessLog(h.logger))
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) { abortWithError(c, http.StatusNotFound, msgNotFound) })
	r.NoMethod(func(c *gin.Context) { abortWithError(c, http.StatusMethodNotAllowed, "method not allowed") })

	api := r.Group("/api")
	api.GET("/health", h.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)
	authGroup.GET("/me", h.me)

	api.GET("/updates", h.listPublishedUpdates)
	api.GET("/updates/:id", h.getPublishedUpdate)
	api.GET("/participants", h.listParticipants)
	api.GET("/languages", h.listLanguages)

	teacher := api.Group("/teacher", requireRole(h.tokens, models.RoleTeacher))
	teacher.GET("/suggestions", h.listOwnSuggestions)
	teacher.POST("/suggestions", h.submitSuggestion)

	admin := api.Group("/admin", requireRole(h.tokens, models.RoleAdmin))
	admin.GET("/updates", h.listAllUpdates)
	admin.POST("/updates", h.createUpdate)
	admin.GET("/updates/:id", h.getUpdate)
	admin.PUT("/updates/:id", h.updateUpdate)
	admin.DELETE("/updates/:id", h.deleteUpdate)
	admin.GET("/suggestions", h.listAllSuggestions)
	admin.PUT("/suggestions/:id", h.reviewSuggestion)
	admin.POST("/participants", h.addParticipant)

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
