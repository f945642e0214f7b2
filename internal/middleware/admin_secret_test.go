package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"livewall-server/internal/config"

	"github.com/gin-gonic/gin"
)

func newAdminSecretRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	appService := newTestAppService(config.Config{Admin: config.AdminConfig{CreateSecret: secret}})

	r := gin.New()
	r.POST("/admin", AdminSecret(appService), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

// 测试内容：验证未配置密钥时拒绝所有请求（即使请求头为空也不放行）。
func TestAdminSecret_UnconfiguredFailsClosed(t *testing.T) {
	r := newAdminSecretRouter("")

	for _, header := range []string{"", "anything"} {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		if header != "" {
			req.Header.Set("x-admin-secret", header)
		}
		w := serveFrom(r, req, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("期望 401，实际为 %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "not configured") {
			t.Fatalf("错误信息不正确: %s", w.Body.String())
		}
	}
}

func TestAdminSecret_ChecksHeader(t *testing.T) {
	r := newAdminSecretRouter("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("x-admin-secret", "wrong")
	w := serveFrom(r, req, "")
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid admin creation secret") {
		t.Fatalf("错误密钥期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("X-Admin-Secret", "s3cret")
	if w := serveFrom(r, req, ""); w.Code != http.StatusCreated {
		t.Fatalf("正确密钥期望 201，实际为 %d", w.Code)
	}
}
