package di

import (
	"livewall-server/internal/modules"
	"livewall-server/internal/platform/service"
	"livewall-server/internal/router"
)

type Application struct {
	Router  *router.Router
	Service *service.AppService
	Modules *modules.AppModules
}

func NewApplication(r *router.Router, s *service.AppService, m *modules.AppModules) *Application {
	return &Application{
		Router:  r,
		Service: s,
		Modules: m,
	}
}
