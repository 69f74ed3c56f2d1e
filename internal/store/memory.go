// internal/store/memory.go
//
// In-memory Store implementation. Used in tests and when durability is
// not required; state is lost on restart. Sessions cross the boundary as
// deep copies, so a loaded session that is never passed back to
// UpdateSession leaves the stored state untouched, same as the sqlite
// backend.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Melissportakall/WordGameAPP/internal/game"
)

type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Session)}
}

func (m *memory) CreateSession(ctx context.Context, s *game.Session) error {
	stored, err := cloneSession(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[s.ID]; exists {
		return fmt.Errorf("%w: game %s already exists", game.ErrConflict, s.ID)
	}
	m.games[s.ID] = stored
	return nil
}

func (m *memory) GetSession(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.games[id]; ok {
		return cloneSession(s)
	}
	return nil, fmt.Errorf("%w: game %s", game.ErrNotFound, id)
}

func (m *memory) UpdateSession(ctx context.Context, s *game.Session) error {
	stored, err := cloneSession(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[s.ID]; !ok {
		return fmt.Errorf("%w: game %s", game.ErrNotFound, s.ID)
	}
	m.games[s.ID] = stored
	return nil
}

func (m *memory) HasActiveBetween(ctx context.Context, a, b string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.games {
		if s.Status != game.StatusActive {
			continue
		}
		if (s.Player1 == a && s.Player2 == b) || (s.Player1 == b && s.Player2 == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memory) SessionsByPlayer(ctx context.Context, playerID, status string) ([]*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*game.Session
	for _, s := range m.games {
		if s.Status == status && s.IsParticipant(playerID) {
			copied, err := cloneSession(s)
			if err != nil {
				return nil, err
			}
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// cloneSession deep-copies a session through its JSON form, the same
// round trip the sqlite backend performs on every load.
func cloneSession(s *game.Session) (*game.Session, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("clone session: %w", err)
	}
	var out game.Session
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("clone session: %w", err)
	}
	return &out, nil
}
