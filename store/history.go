package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yllada/voice-intelligence/common"
)

// HistoryEntry is one processed dictation.
type HistoryEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Mode      string `json:"mode"`
}

// SaveHistory records an entry and trims the table to the newest
// MaxHistoryEntries.
func (s *Store) SaveHistory(ctx context.Context, input, output, mode string) (HistoryEntry, error) {
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Output:    output,
		Mode:      mode,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return HistoryEntry{}, common.ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (id, timestamp, input, output, mode) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Input, entry.Output, entry.Mode); err != nil {
		return HistoryEntry{}, fmt.Errorf("failed to save history entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)`, common.MaxHistoryEntries); err != nil {
		return HistoryEntry{}, fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return HistoryEntry{}, fmt.Errorf("failed to commit history entry: %w", err)
	}
	return entry, nil
}

// History returns all entries, newest first.
func (s *Store) History(ctx context.Context) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, common.ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, input, output, mode FROM history ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, common.MaxHistoryEntries)
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Input, &e.Output, &e.Mode); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HistoryEntry looks up a single entry by ID.
func (s *Store) HistoryEntry(ctx context.Context, id string) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return HistoryEntry{}, common.ErrStoreClosed
	}

	var e HistoryEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, input, output, mode FROM history WHERE id = ?`, id).
		Scan(&e.ID, &e.Timestamp, &e.Input, &e.Output, &e.Mode)
	if errors.Is(err, sql.ErrNoRows) {
		return HistoryEntry{}, fmt.Errorf("%w: %s", common.ErrEntryNotFound, id)
	}
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("failed to load history entry: %w", err)
	}
	return e, nil
}

// ClearHistory removes every entry.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.log.Info("History cleared")
	return nil
}
