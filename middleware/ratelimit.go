package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 登录接口限流中间件
// 每 IP 每个窗口最多 maxAttempts 次尝试，超过则返回 429
// 过期记录在请求路径上按窗口周期清理
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu        sync.Mutex
		store     = make(map[string]*entry)
		lastSweep = time.Now()
	)

	prune := func(e *entry, cutoff time.Time) {
		newTs := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				newTs = append(newTs, t)
			}
		}
		e.timestamps = newTs
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		if now.Sub(lastSweep) >= window {
			for key, e := range store {
				prune(e, cutoff)
				if len(e.timestamps) == 0 {
					delete(store, key)
				}
			}
			lastSweep = now
		}

		e, ok := store[ip]
		if !ok {
			e = &entry{}
			store[ip] = e
		}
		prune(e, cutoff)
		if len(e.timestamps) >= maxAttempts {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Trop de tentatives, veuillez réessayer plus tard.",
			})
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}
