package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"heater_control/internal/service"
)

func TestUserIdMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		parseErr error
		want     int
	}{
		{"missing_header", "", nil, http.StatusUnauthorized},
		{"malformed_header", "Token abc", nil, http.StatusUnauthorized},
		{"bearer_only", "Bearer", nil, http.StatusUnauthorized},
		{"invalid_token", "Bearer bad", errors.New("expired"), http.StatusUnauthorized},
		{"valid_token", "Bearer good", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{
				Authorization: &mockAuth{parseID: 42, parseErr: tc.parseErr},
				Monitoring:    &mockMonitoring{},
			}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/heater/state", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
