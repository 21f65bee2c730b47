package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window 单个客户端在窗口内的请求时间点
type window struct {
	timestamps []time.Time
}

// prune 移除 cutoff 之前的记录
func (w *window) prune(cutoff time.Time) {
	kept := w.timestamps[:0]
	for _, t := range w.timestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.timestamps = kept
}

// WriteRateLimit 写接口限流中间件
// 每 IP 在 period 内最多 limit 次写请求（POST/PUT/DELETE/PATCH），超过返回 429；读请求不计数
// limit <= 0 时不限流
func WriteRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu    sync.Mutex
		store = make(map[string]*window)
	)
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-period)
			for ip, w := range store {
				w.prune(cutoff)
				if len(w.timestamps) == 0 {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		now := time.Now()
		mu.Lock()
		w, ok := store[ip]
		if !ok {
			w = &window{}
			store[ip] = w
		}
		w.prune(now.Add(-period))
		if len(w.timestamps) >= limit {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "操作过于频繁，请稍后再试",
			})
			return
		}
		w.timestamps = append(w.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}
