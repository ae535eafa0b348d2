package service

import (
	"context"
	"time"

	"heater_control/internal/controller"
	"heater_control/internal/models"
	"heater_control/internal/repository"
)

const defaultAmbientTempC = 25.0

type MonitoringService struct {
	stateRepo repository.StateRepo
	cfg       controller.Config
}

func NewMonitoringService(stateRepo repository.StateRepo, cfg controller.Config) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, cfg: cfg}
}

// GetState returns the latest persisted snapshot.
// If nothing is persisted yet, returns a baseline IDLE snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.HeaterState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.HeaterState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the snapshot reported before the loop has ever ticked.
func (s *MonitoringService) baselineState() models.HeaterState {
	return models.HeaterState{
		ID:           1, // DB schema enforces single-row state with id=1
		State:        controller.StateIdle.String(),
		TemperatureC: defaultAmbientTempC,
		TargetC:      s.cfg.TargetC,
		IsRunning:    false,
		UpdatedAt:    time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
