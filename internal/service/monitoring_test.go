package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"heater_control/internal/controller"
	"heater_control/internal/models"
)

func TestMonitoring_GetState_ReturnsPersistedSnapshot(t *testing.T) {
	updated := time.Date(2025, 8, 1, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	repo := &stateRepoStub{loadResp: models.HeaterState{
		ID: 1, State: "HEATING", TemperatureC: 36.2, TargetC: 40, HeaterOn: true, IsRunning: true, UpdatedAt: updated,
	}}
	svc := NewMonitoringService(repo, controller.Config{TargetC: 40})

	got, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState(): %v", err)
	}
	if got.State != "HEATING" || !got.HeaterOn {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not normalized to UTC: %v", got.UpdatedAt)
	}
}

func TestMonitoring_GetState_BaselineWhenEmpty(t *testing.T) {
	svc := NewMonitoringService(&stateRepoStub{}, controller.Config{TargetC: 40})

	got, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState(): %v", err)
	}
	if got.ID != 1 || got.State != "IDLE" || got.IsRunning {
		t.Fatalf("unexpected baseline: %+v", got)
	}
	if got.TargetC != 40 {
		t.Fatalf("baseline TargetC = %.1f, want 40", got.TargetC)
	}
}

func TestMonitoring_GetState_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("db locked")
	svc := NewMonitoringService(&stateRepoStub{loadErr: wantErr}, controller.Config{TargetC: 40})

	if _, err := svc.GetState(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("GetState() err = %v, want %v", err, wantErr)
	}
}
