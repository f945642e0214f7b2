package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"livewall-server/internal/config"

	"github.com/redis/go-redis/v9"
)

// AppService 进程级共享依赖：启动时构造的配置快照与可选的 Redis 客户端
type AppService struct {
	cfg         config.Config
	redisClient *redis.Client
}

func NewAppService(cfg config.Config, redisClient *redis.Client) *AppService {
	return &AppService{cfg: cfg, redisClient: redisClient}
}

func (s *AppService) Config() config.Config {
	return s.cfg
}

// RedisClient 未启用或不可用时返回 nil
func (s *AppService) RedisClient() *redis.Client {
	return s.redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func (s *AppService) RedisKey(parts ...string) string {
	prefix := s.cfg.Redis.Prefix
	if prefix == "" {
		prefix = "livewall"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// NewRedisClient 按配置连接 Redis；未启用或连接失败时返回 nil，调用方降级为内存模式
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return nil
	}

	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Addr, cfg.DB)
	return client
}

// Close 释放 Redis 连接
func (s *AppService) Close() error {
	if s.redisClient == nil {
		return nil
	}
	if err := s.redisClient.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
