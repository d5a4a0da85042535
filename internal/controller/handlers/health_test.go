package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchplane/internal/store"
)

func TestProbes(t *testing.T) {
	catalog := []store.Planet{{KeplerName: "Kepler-442 b"}, {KeplerName: "Kepler-62 f"}}

	tests := []struct {
		name           string
		endpoint       string
		pingErr        error
		planets        []store.Planet
		planetsErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Healthz Always OK",
			endpoint:       "/healthz",
			pingErr:        errors.New("db down"),
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "Readyz Success",
			endpoint:       "/readyz",
			planets:        catalog,
			expectedStatus: http.StatusOK,
			expectedBody:   `"planets":2`,
		},
		{
			name:           "Readyz Database Fail",
			endpoint:       "/readyz",
			pingErr:        errors.New("db down"),
			planets:        catalog,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "Database unavailable",
		},
		{
			name:           "Readyz Catalog Error",
			endpoint:       "/readyz",
			planetsErr:     errors.New("db down"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "Planet catalog unavailable",
		},
		{
			name:           "Readyz Empty Catalog",
			endpoint:       "/readyz",
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "Planet catalog is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{planetsResp: tt.planets, planetsErr: tt.planetsErr}
			h := New(svc, &mockPinger{pingErr: tt.pingErr}, nil, 0)

			req := httptest.NewRequest(http.MethodGet, tt.endpoint, nil)
			rr := httptest.NewRecorder()

			if tt.endpoint == "/healthz" {
				h.Healthz(rr, req)
			} else {
				h.Readyz(rr, req)
			}

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
			if !strings.Contains(rr.Body.String(), tt.expectedBody) {
				t.Errorf("body %q does not contain %q", rr.Body.String(), tt.expectedBody)
			}
		})
	}
}
