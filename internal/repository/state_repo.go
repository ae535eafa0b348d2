package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"heater_control/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	heaterStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO heater_state (id, state, temp_c, target_c, heater_on, warning_on, running, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state=excluded.state,
			temp_c=excluded.temp_c,
			target_c=excluded.target_c,
			heater_on=excluded.heater_on,
			warning_on=excluded.warning_on,
			running=excluded.running,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, state, temp_c, target_c, heater_on, warning_on, running, updated_at
		FROM heater_state WHERE id=?
	`
)

// Save upserts the heater_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.HeaterState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		heaterStateRowID,
		state.State,
		state.TemperatureC,
		state.TargetC,
		state.HeaterOn,
		state.WarningOn,
		state.IsRunning,
		tsUTC,
	)
	return err
}

// Load fetches the single heater_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.HeaterState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, heaterStateRowID)

	var s models.HeaterState
	if err := row.Scan(
		&s.ID,
		&s.State,
		&s.TemperatureC,
		&s.TargetC,
		&s.HeaterOn,
		&s.WarningOn,
		&s.IsRunning,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HeaterState{}, nil // no snapshot yet
		}
		return models.HeaterState{}, err
	}

	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
