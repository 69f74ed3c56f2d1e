// internal/store/store.go
//
// Persistence interface for game sessions. Implementations may be backed
// by SQLite (production) or memory (tests/development).

package store

import (
	"context"

	"github.com/Melissportakall/WordGameAPP/internal/game"
)

// Store defines durable storage for game sessions.
type Store interface {
	// CreateSession persists a freshly created session.
	CreateSession(ctx context.Context, s *game.Session) error

	// GetSession loads a session by id.
	// Returns game.ErrNotFound if it does not exist.
	GetSession(ctx context.Context, id string) (*game.Session, error)

	// UpdateSession writes back a mutated session as a single unit.
	UpdateSession(ctx context.Context, s *game.Session) error

	// HasActiveBetween reports whether an active session already exists
	// between the two players, in either seat order.
	HasActiveBetween(ctx context.Context, a, b string) (bool, error)

	// SessionsByPlayer lists a player's sessions with the given status,
	// newest first.
	SessionsByPlayer(ctx context.Context, playerID, status string) ([]*game.Session, error)
}
