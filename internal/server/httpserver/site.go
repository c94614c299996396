package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type participantRequest struct {
	Name     string `json:"name" binding:"required"`
	School   string `json:"school"`
	TeamName string `json:"team_name"`
}

func (h *Handler) listParticipants(c *gin.Context) {
	list, err := h.site.ListParticipants(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) addParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.site.AddParticipant(c.Request.Context(), req.Name, req.School, req.TeamName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) listLanguages(c *gin.Context) {
	list, err := h.site.ListLanguages(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
