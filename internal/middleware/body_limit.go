package middleware

import (
	"fmt"
	"net/http"

	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

const megabyte = 1024 * 1024

// BodyLimitMiddleware 限制 JSON 请求体大小（upload.max_request_body_mb，默认 2MB）
func BodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := appService.Config().Upload.MaxRequestBodyMB
		if maxSizeMB <= 0 {
			maxSizeMB = 2
		}
		limitBody(c, int64(maxSizeMB)*megabyte)
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小。
// batch 为 true 时按单文件上限乘以批量文件数计算，另留 1MB 给表单字段与边界。
func UploadBodyLimitMiddleware(appService *service.AppService, batch bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		limits := appService.Config().Upload
		maxBytes := limits.MaxFileSizeBytes()
		if batch {
			maxBytes *= int64(limits.BatchLimit())
		}
		limitBody(c, maxBytes+megabyte)
	}
}

// limitBody 声明长度超限时直接 413；未声明长度时由 MaxBytesReader 在读取时截断
func limitBody(c *gin.Context, maxBytes int64) {
	if c.Request.ContentLength > maxBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Request body too large. Maximum is %dMB", maxBytes/megabyte),
		})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	c.Next()
}
