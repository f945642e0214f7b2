package middleware

import (
	"net/http"
	"net/http/httptest"

	"livewall-server/internal/config"
	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func newTestAppService(cfg config.Config) *service.AppService {
	return service.NewAppService(cfg, nil)
}

func serveFrom(r *gin.Engine, req *http.Request, remoteAddr string) *httptest.ResponseRecorder {
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
