package controllers

import (
	"fmt"
	"net/http"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/services"
)

// HealthController reports liveness together with the state of the event
// store. Revision and Date are the first two components of every view cache
// key, so a client holding a cached dashboard can tell from /health whether
// it is still current.
type HealthController struct {
	service   services.EmotionServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Records        int     `json:"records"`
	ResolvedAlerts int     `json:"resolved_alerts"`
	Revision       uint64  `json:"revision"`
	Date           string  `json:"date"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		Records:        hc.service.Len(),
		ResolvedAlerts: len(hc.service.ResolvedAlerts()),
		Revision:       hc.service.Revision(),
		Date:           models.FormatDate(hc.service.Now()),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.EmotionServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
