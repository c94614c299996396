package httpserver

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/robotika/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type updateRequest struct {
	Title     string                 `json:"title" binding:"required"`
	Content   string                 `json:"content" binding:"required"`
	Published *bool                  `json:"published"`
	Images    *[]services.ImageInput `json:"images"`
}

func (r updateRequest) input() services.UpdateInput {
	return services.UpdateInput{
		Title:     r.Title,
		Content:   r.Content,
		Published: r.Published,
		Images:    r.Images,
	}
}

// idParam returns the :id path parameter. Anything that is not a UUID
// cannot name a row, so it is answered with 404 right away.
func idParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		abortWithError(c, http.StatusNotFound, msgNotFound)
		return "", false
	}
	return id, true
}

func (h *Handler) listPublishedUpdates(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := h.updates.ListPublished(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getPublishedUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.updates.GetPublished(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) listAllUpdates(c *gin.Context) {
	list, err := h.updates.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.updates.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) createUpdate(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "title and content are required")
		return
	}

	identity := identityFrom(c)
	u, err := h.updates.Create(c.Request.Context(), identity.ID, req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) updateUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "title and content are required")
		return
	}

	u, err := h.updates.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.updates.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
