package repository

import (
	"context"
	"database/sql"
	"time"

	"heater_control/internal/models"
)

// Authorization stores operator accounts.
type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// StateRepo persists the latest heater snapshot. Diagnostics only: the
// control loop never reads it back to make decisions.
type StateRepo interface {
	Save(ctx context.Context, s models.HeaterState) error
	Load(ctx context.Context) (models.HeaterState, error)
}

// EventRepo is the append-only control event log.
type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlEvent, error)
}

// Repository aggregates the SQLite-backed stores.
type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
