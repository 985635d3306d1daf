package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kanban-cli/internal/model"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AppendEvent records one board mutation in the append-only event log.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("event: missing type")
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return errors.New("event: missing entity id")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, ts_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UTC().UnixMilli(), typ, entityID, string(pb))
	return err
}

// ReadEvents returns events oldest-first. limit <= 0 returns all of them.
func (s Store) ReadEvents(ctx context.Context, limit int) ([]model.Event, error) {
	return s.readEvents(ctx, "", limit)
}

// ReadEventsForEntity returns the last limit events for entityID, oldest-first.
func (s Store) ReadEventsForEntity(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return []model.Event{}, nil
	}
	return s.readEvents(ctx, entityID, limit)
}

func (s Store) readEvents(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	if !s.hasDatabase() {
		return []model.Event{}, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, ts_unixms, type, entity_id, payload_json FROM events`
	args := []any{}
	if entityID != "" {
		q += ` WHERE entity_id = ?`
		args = append(args, entityID)
	}
	// rowid breaks ties between events written in the same millisecond.
	q += ` ORDER BY ts_unixms DESC, rowid DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var id, typ, entity, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &typ, &entity, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			// Keep the raw text so the event still shows up.
			log.WithError(err).WithField("event", id).Warn("undecodable event payload")
			payload = payloadJSON
		}
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Type:     typ,
			EntityID: entity,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest-first from the query; callers get chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
