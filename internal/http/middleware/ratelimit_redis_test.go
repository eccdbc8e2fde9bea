package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Needs a live Redis; set REDIS_ADDR to run.
func TestRedisRateLimitBlocksAfterLimit(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db)

	const limit = 3

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tasks", RedisRateLimit(limit, 2*time.Second), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tasks": []any{}})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < limit; i++ {
		res, err := http.Get(srv.URL + "/tasks")
		if err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, res.StatusCode, http.StatusOK)
		}
	}

	res, err := http.Get(srv.URL + "/tasks")
	if err != nil {
		t.Fatalf("over-limit request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: status = %d, want %d", res.StatusCode, http.StatusTooManyRequests)
	}
}
