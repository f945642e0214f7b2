package router

import (
	"livewall-server/internal/middleware"
	submissionhandler "livewall-server/internal/modules/submission/handler"
	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerUploadRoutes(api *gin.RouterGroup, h *submissionhandler.Handler, appService *service.AppService) {
	uploads := api.Group("/uploads")

	rateCfg := appService.Config().RateLimit
	// 上传限流：公开投稿与批量上传共用一个实例
	uploadLimiter := middleware.RateLimitMiddleware(appService, "upload", rateCfg.UploadRPS, rateCfg.UploadBurst)
	jsonLimit := middleware.BodyLimitMiddleware(appService)

	uploads.POST("", uploadLimiter, middleware.UploadBodyLimitMiddleware(appService, false), h.CreateUpload)
	uploads.POST("/batch", uploadLimiter, middleware.UploadBodyLimitMiddleware(appService, true), h.CreateBatchUpload)

	uploads.GET("", h.ListUploads)
	uploads.GET("/:id", h.GetUpload)
	uploads.PATCH("/bulk", jsonLimit, h.BulkUpdateUploadStatus)
	uploads.PATCH("/:id", jsonLimit, h.UpdateUploadStatus)
	uploads.PATCH("/:id/displayed", h.MarkUploadDisplayed)
	uploads.DELETE("/:id", h.DeleteUpload)
}
