package httpx

import (
	"log"
	"net/http"

	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

var statusByCode = map[service.ErrorCode]int{
	service.ErrorCodeValidation:   http.StatusBadRequest,
	service.ErrorCodeUnauthorized: http.StatusUnauthorized,
	service.ErrorCodeForbidden:    http.StatusForbidden,
	service.ErrorCodeNotFound:     http.StatusNotFound,
	service.ErrorCodeConflict:     http.StatusConflict,
	service.ErrorCodeUnavailable:  http.StatusInternalServerError,
	service.ErrorCodeInternal:     http.StatusInternalServerError,
}

// WriteServiceError 将业务错误写为 {"error": "..."}。
// 非 ServiceError 一律按 500 处理，只返回 fallbackMessage。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	serviceErr, ok := service.AsServiceError(err)
	if !ok {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		writeError(c, http.StatusInternalServerError, fallbackMessage)
		return
	}

	if serviceErr.Err != nil {
		log.Printf("❌ %s %s: %s: %v", c.Request.Method, c.FullPath(), serviceErr.Message, serviceErr.Err)
	}

	status, known := statusByCode[serviceErr.Code]
	if !known {
		status = http.StatusInternalServerError
	}
	writeError(c, status, serviceErr.Message)
}

// WriteBadRequest 用于请求参数绑定失败等边界校验错误
func WriteBadRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, message)
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
