package router

import (
	"github.com/gin-gonic/gin"

	"claimdesk.app/server/internal/http/handler"
	"claimdesk.app/server/internal/http/middleware"
)

func ClaimRouter(rg *gin.RouterGroup, h *handler.ClaimHandler, maxBodyBytes int64) {
	rg.GET("", h.List)
	rg.POST("", middleware.LimitBody(maxBodyBytes), h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.ChangeStatus)
	rg.POST("/:id/comments", h.AddComment)
	rg.GET("/:id/attachments/:attachmentId", h.DownloadAttachment)
}
