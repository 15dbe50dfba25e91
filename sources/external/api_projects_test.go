package external

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/tracing"
	"testing"

	"github.com/google/uuid"
)

func TestCreateProjectRequiresName(t *testing.T) {
	router := &Router{log: tracing.NewConsoleLogger()}

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"repo_url":"https://github.com/acme/api"}`},
		{name: "malformed json", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.handleCreateProject(w, r, &entities.Account{ID: uuid.New()})

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
