package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"heater_control/internal/models"
	"heater_control/internal/service"
)

func TestGetLogs_FiltersAndResponds(t *testing.T) {
	occurred := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	ev := &mockEventLog{resp: []models.ControlEvent{
		{EventID: "e-1", OccurredAt: occurred, Type: "STATE_CHANGE", Description: "IDLE -> HEATING"},
	}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		EventLog:      ev,
	}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/logs/?from=2025-08-01&to=2025-08-31&type=state_change", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count  int                  `json:"count"`
		Events []models.ControlEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal logs: %v", err)
	}
	if resp.Count != 1 || len(resp.Events) != 1 || resp.Events[0].EventID != "e-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if ev.lastType != "STATE_CHANGE" {
		t.Fatalf("type filter = %q, want STATE_CHANGE", ev.lastType)
	}
	if ev.lastFrom.IsZero() || ev.lastTo.IsZero() {
		t.Fatalf("time filters not forwarded: from=%v to=%v", ev.lastFrom, ev.lastTo)
	}
	// date-only 'to' becomes end-of-day inclusive
	if ev.lastTo.Day() != 31 || ev.lastTo.Hour() != 23 {
		t.Fatalf("'to' not end-of-day: %v", ev.lastTo)
	}
}

func TestGetLogs_BadTimeRange(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		EventLog:      &mockEventLog{},
	}
	r := newTestRouter(s)

	if w := doRequest(r, http.MethodGet, "/api/v1/logs/?from=not-a-time", "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid from: status=%d, want 400", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/v1/logs/?from=2025-08-31&to=2025-08-01", "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("inverted range: status=%d, want 400", w.Code)
	}
}
