// internal/handlers/health/health_handler.go
package health

import (
	"net/http"

	"decora-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandler(db *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check pings both stores. Redis being down degrades realtime but the
// API keeps working, so it reports degraded rather than failing.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.Ping(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}

	status := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		status = "degraded"
	}

	response.Success(c, http.StatusOK, "health checked", gin.H{"status": status})
}
