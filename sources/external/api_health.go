package external

import (
	"net/http"
	"runtime"
	"sort"
	"taskprovision/sources/repository"
	"time"
)

// handleHealth is the liveness/readiness probe: overall status plus the
// state of every hard dependency.
func (x *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := map[string]repository.ComponentHealth{
		"database": x.health.CheckDatabase(x.log),
		"redis":    x.health.CheckRedis(x.log),
		"ollama":   x.health.CheckOllama(x.log),
	}

	status := "ok"
	code := http.StatusOK
	for name, component := range components {
		if component.Healthy {
			continue
		}
		// The local model host is optional, cloud providers keep serving.
		if name == "ollama" {
			if status == "ok" {
				status = "degraded"
			}
			continue
		}
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":     status,
		"service":    "taskprovision",
		"components": components,
	})
}

type statusStatistics struct {
	TotalAccounts    int64   `json:"total_accounts"`
	TotalGenerations int64   `json:"total_generations"`
	TotalLeads       int64   `json:"total_leads"`
	AverageQuality   float64 `json:"average_quality"`
}

type statusResponse struct {
	Service    string           `json:"service"`
	Version    string           `json:"version"`
	Platform   string           `json:"platform"`
	Uptime     string           `json:"uptime"`
	Providers  []string         `json:"providers"`
	Statistics statusStatistics `json:"statistics"`
}

func (x *Router) handleStatus(w http.ResponseWriter, r *http.Request) {
	statistics := statusStatistics{}
	statistics.TotalAccounts, _ = x.accounts.GetTotalAccountsCount(x.log)
	statistics.TotalGenerations, _ = x.generations.GetTotalGenerationsCount(x.log)
	statistics.TotalLeads, _ = x.leads.GetTotalLeadsCount(x.log)
	statistics.AverageQuality, _ = x.generations.GetAverageQualityScore(x.log)

	providers := make([]string, 0, len(x.balancer.Providers()))
	for name := range x.balancer.Providers() {
		providers = append(providers, name)
	}
	sort.Strings(providers)

	writeJSON(w, http.StatusOK, statusResponse{
		Service:    "taskprovision",
		Version:    Version,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Uptime:     time.Since(x.startedAt).Round(time.Second).String(),
		Providers:  providers,
		Statistics: statistics,
	})
}

func (x *Router) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "api is reachable"})
}
