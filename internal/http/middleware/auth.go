package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
)

type contextKey string

const (
	SessionCookieName = "claimdesk_session"
	SessionIDHeader   = "X-Session-ID"

	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

var ErrNoSession = errors.New("no session")

// RequireAuth resolves the session from the cookie or the X-Session-ID header
// and rejects the request when it is missing or expired.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				ClearSessionCookie(c, false)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		SetUser(c, user, sessionID)
		c.Next()
	}
}

// SetUser attaches the authenticated user to the request context.
func SetUser(c *gin.Context, user *model.User, sessionID int64) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})
	logger.AnnotateSpan(ctx)
	c.Request = c.Request.WithContext(ctx)
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

// SessionID reads the session id, preferring the cookie over the header.
func SessionID(c *gin.Context) (int64, error) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		raw = c.GetHeader(SessionIDHeader)
	}
	if raw == "" {
		return 0, ErrNoSession
	}
	return id.Parse(raw)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
