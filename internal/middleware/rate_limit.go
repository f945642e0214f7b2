package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"livewall-server/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var errRedisUnavailable = errors.New("redis client unavailable")

const redisRateLimitTimeout = 200 * time.Millisecond

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// RateLimitMiddleware 按客户端 IP 限流。
// 启用 Redis 时使用共享的固定窗口计数，Redis 出错时回退到进程内令牌桶。
func RateLimitMiddleware(appService *service.AppService, scope string, rps float64, burst int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !appService.Config().RateLimit.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		allowed := false
		if redisClient := appService.RedisClient(); redisClient != nil {
			ok, err := allowByRedisRateLimit(redisClient, appService.RedisKey("rate", scope, ip), rps, burst)
			if err != nil {
				log.Printf("⚠️ Redis 限流失败，回退到内存限流: %v", err)
				allowed = limiter.Allow(ip)
			} else {
				allowed = ok
			}
		} else {
			allowed = limiter.Allow(ip)
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowByRedisRateLimit 固定窗口计数：窗口长度为 burst/rps 秒（至少 1 秒），窗口内最多 burst 次。
// rps 或 burst 非正时视为不限流。
func allowByRedisRateLimit(client *redis.Client, key string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}
	if client == nil {
		return false, errRedisUnavailable
	}

	window := time.Duration(float64(burst) / rps * float64(time.Second))
	if window < time.Second {
		window = time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisRateLimitTimeout)
	defer cancel()

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(burst), nil
}
