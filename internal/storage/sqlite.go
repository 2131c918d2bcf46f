package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore is the default local persistence backend.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) LoadState(ctx context.Context, saveKey string) (*PlayerState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT xp_values, debt_values, stats, daily_quests, derived, updated_at
		FROM player_state
		WHERE save_key = ?
	`, saveKey)

	var xpRaw, debtRaw string
	var statsRaw, questsRaw, derivedRaw sql.NullString
	var updatedAt time.Time
	if err := row.Scan(&xpRaw, &debtRaw, &statsRaw, &questsRaw, &derivedRaw, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("state load: %w", err)
	}

	return &PlayerState{
		SaveKey:     saveKey,
		XPValues:    decodeNumberMap([]byte(xpRaw)),
		DebtValues:  decodeNumberMap([]byte(debtRaw)),
		Stats:       decodeStats([]byte(statsRaw.String)),
		DailyQuests: decodeQuests([]byte(questsRaw.String)),
		Derived:     decodeSnapshot([]byte(derivedRaw.String)),
		UpdatedAt:   updatedAt,
	}, nil
}

// Save commits the state upsert and the log inserts in one transaction: a
// failed entry rolls back the snapshot and vice versa.
func (s *SQLiteStore) Save(ctx context.Context, state *PlayerState, entries []LogEntry) error {
	xpRaw, err := encodeJSON(state.XPValues)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	debtRaw, err := encodeJSON(state.DebtValues)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	statsRaw, err := encodeJSON(state.Stats)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	questsRaw, err := encodeJSON(state.DailyQuests)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	derivedRaw, err := encodeJSON(state.Derived)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}

	type logRow struct {
		entry      LogEntry
		payloadRaw string
		snapRaw    string
		createdAt  time.Time
	}
	rows := make([]logRow, 0, len(entries))
	for _, entry := range entries {
		payloadRaw, err := encodeJSON(entry.Payload)
		if err != nil {
			return fmt.Errorf("log encode: %w", err)
		}
		snapRaw, err := encodeJSON(entry.Snapshot)
		if err != nil {
			return fmt.Errorf("log encode: %w", err)
		}
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		rows = append(rows, logRow{
			entry:      entry,
			payloadRaw: payloadRaw,
			snapRaw:    snapRaw,
			createdAt:  createdAt.UTC().Truncate(time.Millisecond),
		})
	}

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_state (save_key, xp_values, debt_values, stats, daily_quests, derived, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(save_key) DO UPDATE SET
				xp_values = excluded.xp_values,
				debt_values = excluded.debt_values,
				stats = excluded.stats,
				daily_quests = excluded.daily_quests,
				derived = excluded.derived,
				updated_at = excluded.updated_at
		`, state.SaveKey, xpRaw, debtRaw, statsRaw, questsRaw, derivedRaw, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("state upsert: %w", err)
		}
		for _, row := range rows {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO activity_log (id, save_key, kind, payload, snapshot, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, row.entry.ID, row.entry.SaveKey, row.entry.Kind, row.payloadRaw, row.snapRaw, row.createdAt)
			if err != nil {
				return fmt.Errorf("log insert: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadLogEntries(ctx context.Context, saveKey string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, payload, snapshot, created_at
		FROM activity_log
		WHERE save_key = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, saveKey, limit)
	if err != nil {
		return nil, fmt.Errorf("log query: %w", err)
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var payloadRaw, snapshotRaw sql.NullString
		if err := rows.Scan(&e.ID, &e.Kind, &payloadRaw, &snapshotRaw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		e.SaveKey = saveKey
		e.Payload = decodeAnyMap([]byte(payloadRaw.String))
		e.Snapshot = decodeSnapshot([]byte(snapshotRaw.String))
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}
