package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgUnauthorized       = "unauthorized"
	msgInvalidCredentials = "invalid credentials"
	msgNotFound           = "not found"
	msgInternal           = "internal server error"
)

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// writeError maps service errors to HTTP statuses. Anything unrecognised is
// logged and reported as a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		abortWithError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		abortWithError(c, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		abortWithError(c, http.StatusNotFound, msgNotFound)
	default:
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, msgInternal)
	}
}

// validationMessage drops the "validation error: " prefix the services add.
func validationMessage(err error) string {
	prefix := common.ErrorValidation.Error() + ": "
	msg := err.Error()
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
