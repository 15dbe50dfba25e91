package repository

import (
	"net/http"
	"net/http/httptest"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
	"testing"
)

func TestCheckOllama(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantHealthy bool
	}{
		{name: "tags endpoint reachable", status: http.StatusOK, wantHealthy: true},
		{name: "tags endpoint failing", status: http.StatusInternalServerError, wantHealthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/tags" {
					t.Errorf("path = %q, want /api/tags", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			config := &configuration.Config{}
			config.AI.OllamaBaseURL = server.URL + "/"
			repository := &HealthRepository{client: server.Client(), config: config}

			health := repository.CheckOllama(tracing.NewConsoleLogger())
			if health.Healthy != tt.wantHealthy {
				t.Errorf("Healthy = %v, want %v (error %q)", health.Healthy, tt.wantHealthy, health.Error)
			}
		})
	}
}

func TestCheckOllamaUnreachable(t *testing.T) {
	config := &configuration.Config{}
	config.AI.OllamaBaseURL = "http://127.0.0.1:1"
	repository := &HealthRepository{client: &http.Client{}, config: config}

	health := repository.CheckOllama(tracing.NewConsoleLogger())
	if health.Healthy {
		t.Error("Healthy = true, want false for unreachable host")
	}
	if health.Error == "" {
		t.Error("Error is empty, want the transport failure recorded")
	}
}
