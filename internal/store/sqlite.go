// internal/store/sqlite.go
//
// SQLite-backed Store. The full session is serialized as JSON in the
// state column; the columns used by queries (players, status, winner)
// are kept alongside it. Shape validation happens here, at the storage
// boundary, not on every access.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Melissportakall/WordGameAPP/internal/game"
)

// SQLiteStore persists sessions in the games table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateSession implements Store.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess *game.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, player1, player2, status, winner, created_at, state)
		VALUES (?,?,?,?,?,?,?)`,
		sess.ID, sess.Player1, sess.Player2, sess.Status, sess.Winner,
		sess.CreatedAt.UTC().Format(time.RFC3339), string(state))
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// GetSession implements Store.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*game.Session, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM games WHERE id=?`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: game %s", game.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	return decodeSession(state)
}

// UpdateSession implements Store.
func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *game.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE games SET status=?, winner=?, state=? WHERE id=?`,
		sess.Status, sess.Winner, string(state), sess.ID)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: game %s", game.ErrNotFound, sess.ID)
	}
	return nil
}

// HasActiveBetween implements Store.
func (s *SQLiteStore) HasActiveBetween(ctx context.Context, a, b string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM games
		WHERE status=? AND ((player1=? AND player2=?) OR (player1=? AND player2=?))`,
		game.StatusActive, a, b, b, a).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("active pair query: %w", err)
	}
	return cnt > 0, nil
}

// SessionsByPlayer implements Store.
func (s *SQLiteStore) SessionsByPlayer(ctx context.Context, playerID, status string) ([]*game.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state FROM games
		WHERE (player1=? OR player2=?) AND status=?
		ORDER BY created_at DESC`,
		playerID, playerID, status)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []*game.Session
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, err
		}
		sess, err := decodeSession(state)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// decodeSession unmarshals a state blob and normalizes the maps a session
// relies on, so the engine never sees nil where it expects a container.
func decodeSession(state string) (*game.Session, error) {
	var sess game.Session
	if err := json.Unmarshal([]byte(state), &sess); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	if sess.Board == nil {
		sess.Board = game.Board{}
	}
	if sess.Hidden == nil {
		sess.Hidden = game.HiddenBoard{}
	}
	if sess.Hands == nil {
		sess.Hands = map[string][]string{}
	}
	if sess.Rewards == nil {
		sess.Rewards = map[string][]game.ItemType{}
	}
	if sess.Scores == nil {
		sess.Scores = map[string]int{}
	}
	return &sess, nil
}
