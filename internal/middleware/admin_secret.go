package middleware

import (
	"crypto/subtle"
	"net/http"

	"livewall-server/internal/consts"
	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// AdminSecret 校验 x-admin-secret 请求头；服务端未配置密钥时拒绝所有请求
func AdminSecret(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		required := appService.Config().Admin.CreateSecret
		if required == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin creation is not configured on this server"})
			c.Abort()
			return
		}

		provided := c.GetHeader(consts.AdminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(required)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin creation secret"})
			c.Abort()
			return
		}

		c.Next()
	}
}
