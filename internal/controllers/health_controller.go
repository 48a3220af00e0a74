package controllers

import (
	"fmt"
	"net/http"
	"rockbot/internal/catalog"
	"rockbot/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	rounds    services.RoundServiceInterface
	stats     services.StatsServiceInterface
	catalog   catalog.CatalogInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	ActiveRounds  int     `json:"active_rounds"`
	CatalogSize   int     `json:"catalog_size"`
	Players       int     `json:"players"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		ActiveRounds:  hc.rounds.ActiveRounds(),
		CatalogSize:   hc.catalog.Len(),
		Players:       hc.stats.Len(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(rounds services.RoundServiceInterface, stats services.StatsServiceInterface, rocks catalog.CatalogInterface) *HealthController {
	return &HealthController{
		rounds:    rounds,
		stats:     stats,
		catalog:   rocks,
		startTime: time.Now(),
	}
}
