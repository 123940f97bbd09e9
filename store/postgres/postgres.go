// Package postgres persists conversation state in PostgreSQL. Each operation
// is a single statement, so per-conversation updates are atomic without an
// explicit transaction. The schema lives in the repository migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	selectState = `SELECT state FROM form_sessions WHERE conversation_id = $1`
	upsertState = `INSERT INTO form_sessions (conversation_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (conversation_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()`
	selectData = `SELECT data_key, value FROM form_answers WHERE conversation_id = $1`
	upsertData = `INSERT INTO form_answers (conversation_id, data_key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (conversation_id, data_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteState = `DELETE FROM form_sessions WHERE conversation_id = $1`
	deleteData  = `DELETE FROM form_answers WHERE conversation_id = $1`
)

// Store implements the forms store interface over a sqlx connection pool.
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection pool. The pool stays owned by the caller.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// State returns the stored machine state, or the empty string when the
// conversation has no session row.
func (s *Store) State(ctx context.Context, conversationID int64) (string, error) {
	var state string
	err := s.db.GetContext(ctx, &state, selectState, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("postgres: select state: %w", err)
	}
	return state, nil
}

// SetState upserts the machine state for a conversation.
func (s *Store) SetState(ctx context.Context, conversationID int64, state string) error {
	if _, err := s.db.ExecContext(ctx, upsertState, conversationID, state); err != nil {
		return fmt.Errorf("postgres: upsert state: %w", err)
	}
	return nil
}

// Data returns all stored answers for a conversation.
func (s *Store) Data(ctx context.Context, conversationID int64) (map[string]string, error) {
	var rows []struct {
		DataKey string `db:"data_key"`
		Value   string `db:"value"`
	}
	if err := s.db.SelectContext(ctx, &rows, selectData, conversationID); err != nil {
		return nil, fmt.Errorf("postgres: select answers: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.DataKey] = r.Value
	}
	return out, nil
}

// UpdateData upserts one answer under its data key.
func (s *Store) UpdateData(ctx context.Context, conversationID int64, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertData, conversationID, key, value); err != nil {
		return fmt.Errorf("postgres: upsert answer: %w", err)
	}
	return nil
}

// Clear removes the session row and all stored answers for a conversation.
func (s *Store) Clear(ctx context.Context, conversationID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteData, conversationID); err != nil {
		return fmt.Errorf("postgres: delete answers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteState, conversationID); err != nil {
		return fmt.Errorf("postgres: delete session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit clear: %w", err)
	}
	return nil
}
