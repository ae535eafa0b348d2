package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"heater_control/internal/actuator"
	"heater_control/internal/clock"
	"heater_control/internal/controller"
	"heater_control/internal/models"
	"heater_control/internal/repository"
	"heater_control/internal/sensor"
)

// ---- Test doubles ----

// stateRepoStub is a minimal stub for repository.StateRepo.
type stateRepoStub struct {
	loadResp models.HeaterState
	loadErr  error
	saves    []models.HeaterState
}

func (s *stateRepoStub) Save(ctx context.Context, st models.HeaterState) error {
	s.saves = append(s.saves, st)
	return nil
}
func (s *stateRepoStub) Load(ctx context.Context) (models.HeaterState, error) {
	return s.loadResp, s.loadErr
}

// eventRepoStub is a minimal stub for repository.EventRepo.
type eventRepoStub struct {
	appends []models.ControlEvent
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.ControlEvent) error {
	e.appends = append(e.appends, ev)
	return nil
}
func (e *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlEvent, error) {
	return nil, nil
}

func (e *eventRepoStub) byType(typ string) []models.ControlEvent {
	var out []models.ControlEvent
	for _, ev := range e.appends {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type controlFixture struct {
	svc    *ControlService
	fake   *sensor.Fake
	act    *actuator.Fake
	clk    *clock.Manual
	states *stateRepoStub
	events *eventRepoStub
}

func newControlFixture(t *testing.T, samples ...float64) *controlFixture {
	t.Helper()
	f := &controlFixture{
		fake:   sensor.NewFake(samples...),
		act:    &actuator.Fake{},
		clk:    &clock.Manual{},
		states: &stateRepoStub{},
		events: &eventRepoStub{},
	}
	svc, err := NewControlService(Deps{
		Repos: &repository.Repository{StateRepo: f.states, EventRepo: f.events},
		Config: controller.Config{
			TargetC:           40.0,
			HysteresisC:       2.0,
			OverheatC:         50.0,
			StabilizingMillis: 5000,
		},
		Sensor:   f.fake,
		Actuator: f.act,
		Clock:    f.clk,
	})
	if err != nil {
		t.Fatalf("NewControlService(): %v", err)
	}
	f.svc = svc
	return f
}

// ---- Tests ----

func TestControlService_StartStop(t *testing.T) {
	ctx := context.Background()
	f := newControlFixture(t, 25.0)

	if err := f.svc.Start(ctx); err != nil {
		t.Fatalf("Start(): %v", err)
	}
	if err := f.svc.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start() = %v, want ErrAlreadyRunning", err)
	}
	if got := f.events.byType(models.EventStart); len(got) != 1 {
		t.Fatalf("START events = %d, want 1", len(got))
	}

	if err := f.svc.Stop(ctx); err != nil {
		t.Fatalf("Stop(): %v", err)
	}
	if err := f.svc.Stop(ctx); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("second Stop() = %v, want ErrNotRunning", err)
	}
	if f.act.HeaterOn || f.act.WarningOn {
		t.Fatalf("Stop() must force outputs off: heater=%v warning=%v", f.act.HeaterOn, f.act.WarningOn)
	}
	last := f.states.saves[len(f.states.saves)-1]
	if last.IsRunning {
		t.Fatalf("stopped snapshot still running: %+v", last)
	}
}

func TestControlService_StepWhileDisarmedDoesNothing(t *testing.T) {
	f := newControlFixture(t, 35.0)
	f.svc.step(context.Background(), time.Now())
	if f.fake.Reads != 0 {
		t.Fatalf("disarmed step read the sensor")
	}
	if len(f.act.HeaterHistory) != 0 || len(f.states.saves) != 0 {
		t.Fatalf("disarmed step produced side effects")
	}
}

func TestControlService_StepDrivesActuatorAndSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newControlFixture(t, 35.0, 41.0)

	if err := f.svc.Start(ctx); err != nil {
		t.Fatalf("Start(): %v", err)
	}

	f.clk.Advance(500)
	f.svc.step(ctx, time.Now())
	if !f.act.HeaterOn {
		t.Fatalf("heater should be on after cold sample")
	}
	snap := f.states.saves[len(f.states.saves)-1]
	if snap.State != "HEATING" || snap.TemperatureC != 35.0 || !snap.IsRunning {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	f.clk.Advance(500)
	f.svc.step(ctx, time.Now())
	if f.act.HeaterOn {
		t.Fatalf("heater should switch off entering STABILIZING")
	}
	changes := f.events.byType(models.EventStateChange)
	if len(changes) != 2 {
		t.Fatalf("STATE_CHANGE events = %d, want 2", len(changes))
	}
	if changes[1].Description != "HEATING -> STABILIZING" {
		t.Fatalf("unexpected transition description: %q", changes[1].Description)
	}
}

func TestControlService_SensorFaultHoldsCommandAndLogsOnce(t *testing.T) {
	ctx := context.Background()
	f := newControlFixture(t, 35.0)

	if err := f.svc.Start(ctx); err != nil {
		t.Fatalf("Start(): %v", err)
	}
	f.clk.Advance(500)
	f.svc.step(ctx, time.Now()) // heater on
	snapshots := len(f.states.saves)

	f.fake.ReadError = errors.New("bus timeout")
	for i := 0; i < 3; i++ {
		f.clk.Advance(500)
		f.svc.step(ctx, time.Now())
	}

	if !f.act.HeaterOn {
		t.Fatalf("fault must hold the last command (fail-safe-by-freeze)")
	}
	if len(f.states.saves) != snapshots {
		t.Fatalf("faulted ticks persisted snapshots")
	}
	if got := f.events.byType(models.EventSensorFault); len(got) != 1 {
		t.Fatalf("SENSOR_FAULT events = %d, want 1 per streak", len(got))
	}

	// Recovery appends a second fault-channel event and resumes snapshots.
	f.fake.ReadError = nil
	f.clk.Advance(500)
	f.svc.step(ctx, time.Now())
	if got := f.events.byType(models.EventSensorFault); len(got) != 2 {
		t.Fatalf("SENSOR_FAULT events after recovery = %d, want 2", len(got))
	}
	if len(f.states.saves) != snapshots+1 {
		t.Fatalf("recovered tick did not persist a snapshot")
	}
}

func TestControlService_RunStopsOnContextCancel(t *testing.T) {
	f := newControlFixture(t, 25.0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.svc.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
