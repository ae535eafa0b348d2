package service

import (
	"context"
	"time"

	"heater_control/internal/actuator"
	"heater_control/internal/clock"
	"heater_control/internal/controller"
	"heater_control/internal/logger"
	"heater_control/internal/models"
	"heater_control/internal/repository"
	"heater_control/internal/sensor"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Control arms and disarms the heater control loop.
type Control interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Monitoring exposes the latest observed snapshot (state, temperature, outputs).
type Monitoring interface {
	GetState(ctx context.Context) (models.HeaterState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

// Loop runs the polling loop that ticks the controller and drives the
// actuator. Stop via context cancellation in main() for graceful shutdown.
type Loop interface {
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Control
	Monitoring
	EventLog
	Loop
	Authorization
}

// Deps carries everything the service layer is wired from.
type Deps struct {
	Repos      *repository.Repository
	Config     controller.Config
	Sensor     sensor.Sensor
	Actuator   actuator.Actuator
	Clock      clock.Clock
	Log        *logger.Logger
	SigningKey string
}

// NewService wires repositories and drivers into concrete services. The
// control service doubles as the Loop implementation: Start/Stop and the
// ticker share one FSM instance.
func NewService(d Deps) (*Service, error) {
	ctl, err := NewControlService(d)
	if err != nil {
		return nil, err
	}
	return &Service{
		Control:       ctl,
		Loop:          ctl,
		Monitoring:    NewMonitoringService(d.Repos.StateRepo, d.Config),
		EventLog:      NewEventLogService(d.Repos.EventRepo),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}, nil
}
