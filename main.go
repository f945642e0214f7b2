package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"livewall-server/internal/config"
	"livewall-server/internal/consts"
	"livewall-server/internal/db"
	"livewall-server/internal/di"
	"livewall-server/internal/platform/service"
	"livewall-server/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	flag.Parse()

	config.InitConfig(*configDir)
	cfg := config.Get()
	db.InitDB()

	// 导出模式只需要路由表，不连接对象存储
	var objectStore storage.ObjectStore
	if !*exportRoutes {
		objectStore = mustObjectStore(cfg.Storage)
	}

	redisClient := service.NewRedisClient(cfg.Redis)

	app, err := di.InitializeApplication(db.DB, cfg, redisClient, objectStore)
	if err != nil {
		log.Fatalf("❌ 初始化应用失败: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	applyTrustedProxies(r, cfg.Server.TrustedProxies)
	app.Router.Init(r)
	r.NoRoute(noRouteHandler)

	// 导出模式
	if *exportRoutes {
		exportAPI(r)
		return // 导出后直接退出程序，不启动 Web 服务
	}

	// 打印启动欢迎语
	printWelcomeMessage(cfg)

	// 停机配置
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		// 服务连接
		log.Printf("🚀 服务启动成功，运行在 :%s\n", cfg.Server.Port)
		if err := listen(srv, cfg.Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}
	if err := app.Service.Close(); err != nil {
		log.Printf("⚠️ %v", err)
	}
	log.Println("✅ 服务已退出")
}

// mustObjectStore 对象存储配置不完整时直接退出
func mustObjectStore(cfg config.StorageConfig) storage.ObjectStore {
	store, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Fatalf("❌ 对象存储初始化失败: %v", err)
	}
	return store
}

func listen(srv *http.Server, cfg config.ServerConfig) error {
	if cfg.HTTPS {
		return srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	}
	return srv.ListenAndServe()
}

// applyTrustedProxies 空列表禁用代理信任；列表无效时同样回退为不信任
func applyTrustedProxies(r *gin.Engine, proxies []string) {
	cleaned := make([]string, 0, len(proxies))
	for _, p := range proxies {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	if len(cleaned) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(cleaned); err != nil {
		log.Printf("⚠️ trusted_proxies 配置无效，已禁用代理信任: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
}

func noRouteHandler(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func printWelcomeMessage(cfg config.Config) {
	scheme := "http"
	if cfg.Server.HTTPS {
		scheme = "https"
	}

	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  后端版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🔥  服务地址 : %s://0.0.0.0:%s\n", scheme, cfg.Server.Port)
	fmt.Printf(" │   🪣  存储桶   : %s\n", cfg.Storage.Bucket)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine) {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	_ = os.WriteFile("routes.json", file, 0644)

	println("✅ 路由已成功导出到 routes.json")
}
