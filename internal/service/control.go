package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"heater_control/internal/actuator"
	"heater_control/internal/clock"
	"heater_control/internal/controller"
	"heater_control/internal/logger"
	"heater_control/internal/models"
	"heater_control/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRunning = errors.New("control loop is already running")
	ErrNotRunning     = errors.New("control loop is not running")
)

// ControlService owns the controller instance and drives it from a single
// ticker goroutine. Start/Stop arm and disarm the loop from HTTP handlers;
// the mutex serializes them against the ticker. The FSM itself is only ever
// ticked from the loop.
type ControlService struct {
	mu      sync.Mutex
	running bool

	ctrl *controller.Controller
	act  actuator.Actuator
	clk  clock.Clock

	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger

	lastTempC  float64
	sensorDown bool
}

func NewControlService(d Deps) (*ControlService, error) {
	s := &ControlService{
		act:       d.Actuator,
		clk:       d.Clock,
		stateRepo: d.Repos.StateRepo,
		eventRepo: d.Repos.EventRepo,
		log:       d.Log,
	}
	// The service is the controller's diagnostic sink: transitions become
	// persisted events, samples feed the monitoring snapshot.
	ctrl, err := controller.New(d.Config, d.Sensor, s, d.Clock.NowMillis())
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

// Start arms the loop. The FSM restarts from IDLE, as at power-on.
func (s *ControlService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.ctrl.Reset(s.clk.NowMillis())
	s.running = true

	return s.eventRepo.Append(ctx, models.ControlEvent{
		EventID:     uuid.NewString(),
		Type:        models.EventStart,
		Description: "Control loop started",
	})
}

// Stop disarms the loop and forces both outputs off.
func (s *ControlService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}
	s.running = false
	s.ctrl.Reset(s.clk.NowMillis())

	if err := s.act.SetHeater(false); err != nil && s.log != nil {
		s.log.Errorw("heater_off_failed", "err", err)
	}
	if err := s.act.SetWarning(false); err != nil && s.log != nil {
		s.log.Errorw("warning_off_failed", "err", err)
	}

	now := time.Now().UTC()
	snapshot := models.HeaterState{
		ID:           1,
		State:        s.ctrl.State().String(),
		TemperatureC: s.lastTempC,
		TargetC:      s.ctrl.Config().TargetC,
		IsRunning:    false,
		UpdatedAt:    now,
	}
	if err := s.stateRepo.Save(ctx, snapshot); err != nil && s.log != nil {
		s.log.Errorw("snapshot_save_failed", "err", err)
	}

	return s.eventRepo.Append(ctx, models.ControlEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        models.EventStop,
		Description: "Control loop stopped; heater off",
	})
}

// Run ticks at the given interval until ctx is canceled. Ticks while the
// loop is disarmed do nothing.
func (s *ControlService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now)
		}
	}
}

// step performs one poll cycle: tick the FSM, apply the command, persist the
// snapshot. A failed sensor read holds the previous command (the controller
// freezes), so the actuator is still re-asserted.
func (s *ControlService) step(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	cmd, err := s.ctrl.Tick(s.clk.NowMillis())
	if err != nil {
		s.noteSensorFault(ctx, err)
		s.applyCommand(cmd)
		return
	}
	s.noteSensorRecovery(ctx)
	s.applyCommand(cmd)

	snapshot := models.HeaterState{
		ID:           1,
		State:        cmd.State.String(),
		TemperatureC: s.lastTempC,
		TargetC:      s.ctrl.Config().TargetC,
		HeaterOn:     cmd.HeaterOn,
		WarningOn:    cmd.WarningOn,
		IsRunning:    true,
		UpdatedAt:    now.UTC(),
	}
	if err := s.stateRepo.Save(ctx, snapshot); err != nil && s.log != nil {
		s.log.Errorw("snapshot_save_failed", "err", err)
	}
}

func (s *ControlService) applyCommand(cmd controller.Command) {
	if err := s.act.SetHeater(cmd.HeaterOn); err != nil && s.log != nil {
		s.log.Errorw("set_heater_failed", "err", err, "on", cmd.HeaterOn)
	}
	if err := s.act.SetWarning(cmd.WarningOn); err != nil && s.log != nil {
		s.log.Errorw("set_warning_failed", "err", err, "on", cmd.WarningOn)
	}
}

// noteSensorFault logs every failed read but appends a SENSOR_FAULT event
// only at the start of a fault streak.
func (s *ControlService) noteSensorFault(ctx context.Context, err error) {
	if s.log != nil {
		s.log.Warnw("sensor_read_failed", "err", err)
	}
	if s.sensorDown {
		return
	}
	s.sensorDown = true
	_ = s.eventRepo.Append(ctx, models.ControlEvent{
		EventID:     uuid.NewString(),
		Type:        models.EventSensorFault,
		Description: "Sensor unavailable; holding last command",
		Metadata:    map[string]any{"err": err.Error()},
	})
}

func (s *ControlService) noteSensorRecovery(ctx context.Context) {
	if !s.sensorDown {
		return
	}
	s.sensorDown = false
	if s.log != nil {
		s.log.Infow("sensor_recovered")
	}
	_ = s.eventRepo.Append(ctx, models.ControlEvent{
		EventID:     uuid.NewString(),
		Type:        models.EventSensorFault,
		Description: "Sensor recovered",
	})
}

// OnSample implements controller.Sink. Called synchronously from Tick inside
// step, which already holds the mutex.
func (s *ControlService) OnSample(temperatureC float64, state controller.State) {
	s.lastTempC = temperatureC
	if s.log != nil {
		s.log.Debugw("sample", "temp_c", temperatureC, "state", state.String())
	}
}

// OnStateChange implements controller.Sink: every transition becomes a
// persisted, observable event.
func (s *ControlService) OnStateChange(t controller.Transition) {
	if s.log != nil {
		s.log.Infow("state_changed",
			"from", t.From.String(),
			"to", t.To.String(),
			"temp_c", t.TemperatureC,
			"at_ms", t.AtMillis,
		)
	}
	err := s.eventRepo.Append(context.Background(), models.ControlEvent{
		EventID:     uuid.NewString(),
		Type:        models.EventStateChange,
		Description: t.From.String() + " -> " + t.To.String(),
		Metadata: map[string]any{
			"from":   t.From.String(),
			"to":     t.To.String(),
			"temp_c": t.TemperatureC,
			"at_ms":  t.AtMillis,
		},
	})
	if err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "err", err)
	}
}
