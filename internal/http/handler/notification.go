package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/internal/http/dto"
	"claimdesk.app/server/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	notifications, err := h.notificationService.List(c.Request.Context(), a, unreadOnly)
	if err != nil {
		respondError(c, err, "failed to list notifications")
		return
	}

	unread, err := h.notificationService.CountUnread(c.Request.Context(), a)
	if err != nil {
		respondError(c, err, "failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Notifications: dto.ToNotificationResponses(notifications),
		UnreadCount:   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.notificationService.MarkRead(c.Request.Context(), a, notificationID); err != nil {
		respondError(c, err, "failed to mark notification read")
		return
	}

	c.Status(http.StatusNoContent)
}
