package handler

import (
	"net/http"
	"time"
)

type playerCounter interface {
	Players() int
}

type HealthHandler struct {
	players playerCounter
	started time.Time
}

func NewHealthHandler(players playerCounter) *HealthHandler {
	return &HealthHandler{players: players, started: time.Now().UTC()}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        "1.0.0",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"players":        h.players.Players(),
	})
}
