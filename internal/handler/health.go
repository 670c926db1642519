package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/event-booking/internal/apperror"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	timeout time.Duration
	logger  *slog.Logger
}

func NewHealthHandler(store Pinger, timeout time.Duration, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, timeout: timeout, logger: logger}
}

// HandleHealth answers 200 {"status":"ok"} when the store responds within
// the timeout and 503 otherwise.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		writeError(w, apperror.Persistence("reach the store"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
