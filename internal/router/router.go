package router

import (
	"livewall-server/internal/middleware"
	"livewall-server/internal/modules"
	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	service *service.AppService
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService) *Router {
	return &Router{
		modules: appModules,
		service: appService,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 注册全局安全标头与跨域中间件
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(rt.service))

	api := r.Group("/api")

	registerPublicRoutes(api)
	registerUploadRoutes(api, rt.modules.Submission.Handler, rt.service)
	registerUserRoutes(api, rt.modules.Account.Handler, rt.service)
}
