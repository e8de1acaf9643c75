package handlers

import (
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/zenflow/backend/internal/api/dto"
	"gorm.io/gorm"
)

// HealthHandler reports liveness of the storage and queue backends. The
// inspector and redis client may be nil when the server runs without a
// mail queue; health then covers the database only.
type HealthHandler struct {
	db        *gorm.DB
	redis     *redis.Client
	inspector *asynq.Inspector
}

func NewHealthHandler(db *gorm.DB, redis *redis.Client, inspector *asynq.Inspector) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, inspector: inspector}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Queues   map[string]int    `json:"queues,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		resp.Services["database"] = "unhealthy"
		resp.Status = "unhealthy"
	} else {
		resp.Services["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			resp.Services["redis"] = "unhealthy"
			resp.Status = "unhealthy"
		} else {
			resp.Services["redis"] = "healthy"
		}
	}

	// Pending counts per queue. Queues appear in Redis lazily, so a
	// missing queue is skipped rather than reported as a failure.
	if h.inspector != nil {
		resp.Queues = make(map[string]int)
		for _, name := range []string{"default", "mail"} {
			info, err := h.inspector.GetQueueInfo(name)
			if err != nil {
				continue
			}
			resp.Queues[name] = info.Pending
		}
	}

	status := http.StatusOK
	if resp.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "ready"})
}
