package external

import (
	"net/http"
	"strconv"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/tracing"
)

func (x *Router) handleListLeads(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	query := r.URL.Query()

	minScore, _ := strconv.ParseFloat(query.Get("min_score"), 64)
	limit, _ := strconv.Atoi(query.Get("limit"))

	leads, err := x.leads.GetLeads(x.log, minScore, query.Get("priority"), limit)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// handleMineLeads kicks off a mining run in the background, the ticker driven
// runs keep their own schedule.
func (x *Router) handleMineLeads(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	maxLeads := x.config.GitHub.MaxLeadsPerRun
	if raw := r.URL.Query().Get("max_leads"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed < maxLeads {
			maxLeads = parsed
		}
	}

	go func() {
		if _, err := x.miner.MineLeads(x.log, maxLeads); err != nil {
			x.log.E("Manual mining run failed", tracing.InnerError, err)
		}
	}()

	x.log.I("Manual mining run started", tracing.AccountId, account.ID)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}
