package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and user data store connectivity
type HealthHandler struct {
	store Pinger
	board LiveBoard
}

func NewHealthHandler(store Pinger, board LiveBoard) *HealthHandler {
	return &HealthHandler{store: store, board: board}
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]interface{}{
		"timestamp": time.Now().UTC(),
	}
	if at := h.board.LastLiveRefresh(); !at.IsZero() {
		body["liveRefreshedAt"] = at.UTC()
	}

	if err := h.store.Ping(ctx); err != nil {
		body["status"] = "error"
		body["database"] = "disconnected"
		body["error"] = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, "", body)
		return
	}

	body["status"] = "ok"
	body["database"] = "connected"
	writeJSON(w, http.StatusOK, "", body)
}
