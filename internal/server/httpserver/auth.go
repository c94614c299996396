package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			abortWithError(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.writeError(c, err)
		return
	}

	http.SetCookie(c.Writer, auth.NewSessionCookie(res.Token, h.secureCookie))
	c.JSON(http.StatusOK, gin.H{"user": res.Identity})
}

func (h *Handler) logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.ExpiredSessionCookie(h.secureCookie))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// me reports who the session cookie belongs to.
func (h *Handler) me(c *gin.Context) {
	identity, ok := auth.Authenticate(c.Request, h.tokens)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}
