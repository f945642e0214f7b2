package router

import (
	"livewall-server/internal/middleware"
	accounthandler "livewall-server/internal/modules/account/handler"
	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *accounthandler.Handler, appService *service.AppService) {
	users := api.Group("/users")
	users.Use(middleware.BodyLimitMiddleware(appService))

	rateCfg := appService.Config().RateLimit
	// 登录限流
	loginLimiter := middleware.RateLimitMiddleware(appService, "login", rateCfg.LoginRPS, rateCfg.LoginBurst)

	users.POST("/login", loginLimiter, h.Login)
	users.POST("/admin/create", loginLimiter, middleware.AdminSecret(appService), h.CreateAdmin)

	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}
