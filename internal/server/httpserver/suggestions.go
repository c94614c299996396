package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/gin-gonic/gin"
)

type suggestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type reviewRequest struct {
	Status        models.SuggestionStatus `json:"status" binding:"required"`
	AdminFeedback string                  `json:"admin_feedback"`
}

func (h *Handler) listOwnSuggestions(c *gin.Context) {
	list, err := h.suggestions.ListForTeacher(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// submitSuggestion files a suggestion owned by the calling teacher. Any
// teacher_id or status in the body is ignored.
func (h *Handler) submitSuggestion(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "title and content are required")
		return
	}

	s, err := h.suggestions.Submit(c.Request.Context(), identityFrom(c).ID, req.Title, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) listAllSuggestions(c *gin.Context) {
	list, err := h.suggestions.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) reviewSuggestion(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "status is required")
		return
	}

	s, err := h.suggestions.Review(c.Request.Context(), id, req.Status, req.AdminFeedback)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
