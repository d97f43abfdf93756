package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/internal/http/middleware"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 with msg.
func respondError(c *gin.Context, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, service.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
	case errors.Is(err, service.ErrAttachmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
	case errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
	case errors.Is(err, service.ErrReferenceConflict):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "please retry"})
	default:
		slog.ErrorContext(c.Request.Context(), msg, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// respondBodyError reports a body that could not be read or bound. A body cut
// off by LimitBody gets 413 with the limit, anything else gets 400 with msg.
func respondBodyError(c *gin.Context, err error, msg string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":       fmt.Sprintf("request body exceeds the limit of %d bytes", tooLarge.Limit),
			"limit_bytes": tooLarge.Limit,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pathID parses a snowflake id from the route. It writes the response itself on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

// actor returns the authenticated caller. Routes using it sit behind RequireAuth.
func actor(c *gin.Context) (model.Actor, bool) {
	user := middleware.GetUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return model.Actor{}, false
	}
	return user.Actor(), true
}
