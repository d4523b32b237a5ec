package health

import (
	"context"
	"net/http"
	"time"

	"userhub/internal/http/responses"
)

// Pinger is satisfied by *db.Client and *cache.RedisClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db    Pinger
	cache Pinger
}

// NewHandler builds the health handler. cache may be nil when redis is disabled.
func NewHandler(db Pinger, cache Pinger) *Handler {
	return &Handler{
		db:    db,
		cache: cache,
	}
}

// Check pings the database (and redis when enabled) and reports 503 if any is down.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{
		"status": "ok",
		"db":     "ok",
	}

	if err := h.db.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["db"] = err.Error()
	}

	if h.cache != nil {
		body["redis"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["redis"] = err.Error()
		}
	}

	if status != http.StatusOK {
		body["status"] = "degraded"
	}

	responses.WriteJSON(w, status, body)
}
