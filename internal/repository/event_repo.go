package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"heater_control/internal/models"

	"github.com/google/uuid"
)

// EventSQLite is the append-only store for control events (start/stop,
// state transitions, sensor faults).
type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a new event. Missing EventID and OccurredAt are filled in
// so callers only have to provide what they care about.
func (r *EventSQLite) Append(ctx context.Context, e models.ControlEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO control_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.OccurredAt.Format("2006-01-02 15:04:05"), // SQLite TIMESTAMP format
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		marshalMeta(e.Metadata),
	)

	return err
}

// marshalMeta encodes event metadata as JSON, or nil when absent or
// unencodable.
func marshalMeta(meta any) *string {
	if meta == nil {
		return nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// List returns events filtered by [from, to] (inclusive) and/or type,
// oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, message, meta FROM control_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ControlEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ControlEvent{}
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (models.ControlEvent, error) {
	var ev models.ControlEvent
	var metaStr sql.NullString
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &metaStr); err != nil {
		return ev, err
	}
	ev.OccurredAt = ev.OccurredAt.UTC()

	if metaStr.Valid && metaStr.String != "" {
		var v any
		if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
			ev.Metadata = v
		} else {
			ev.Metadata = metaStr.String // keep raw if malformed
		}
	}
	return ev, nil
}
