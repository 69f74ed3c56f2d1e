package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Melissportakall/WordGameAPP/internal/game"
)

func newSession(id, p1, p2, status string, createdAt time.Time) *game.Session {
	return &game.Session{
		ID:        id,
		Player1:   p1,
		Player2:   p2,
		Mode:      game.ModeFiveMin,
		Board:     game.Board{},
		Hidden:    game.HiddenBoard{},
		Pool:      game.NewLetterPool(),
		Hands:     map[string][]string{p1: {}, p2: {}},
		Rewards:   map[string][]game.ItemType{p1: {}, p2: {}},
		Scores:    map[string]int{p1: 0, p2: 0},
		TurnOwner: p1,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestMemoryCreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := newSession("g1", "p1", "p2", game.StatusActive, time.Now())
	if err := m.CreateSession(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := m.CreateSession(ctx, s); !errors.Is(err, game.ErrConflict) {
		t.Fatalf("duplicate create err = %v, want ErrConflict", err)
	}

	got, err := m.GetSession(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "g1" || got.Player1 != "p1" {
		t.Fatalf("got %+v", got)
	}

	s.Status = game.StatusFinished
	if err := m.UpdateSession(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, _ = m.GetSession(ctx, "g1")
	if got.Status != game.StatusFinished {
		t.Fatalf("status = %q after update", got.Status)
	}
}

func TestMemoryGetReturnsIsolatedCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_ = m.CreateSession(ctx, newSession("g1", "p1", "p2", game.StatusActive, time.Now()))

	a, err := m.GetSession(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	// Mutations on a loaded copy must stay invisible until UpdateSession.
	a.Scores["p1"] = 99
	a.Board["0_0"] = "E"
	a.Status = game.StatusFinished

	b, err := m.GetSession(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if b.Scores["p1"] != 0 || len(b.Board) != 0 || b.Status != game.StatusActive {
		t.Fatalf("unpersisted mutation leaked into the store: %+v", b)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.GetSession(ctx, "nope"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("get err = %v, want ErrNotFound", err)
	}
	s := newSession("nope", "p1", "p2", game.StatusActive, time.Now())
	if err := m.UpdateSession(ctx, s); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
}

func TestMemoryHasActiveBetween(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_ = m.CreateSession(ctx, newSession("g1", "p1", "p2", game.StatusActive, time.Now()))
	_ = m.CreateSession(ctx, newSession("g2", "p3", "p4", game.StatusFinished, time.Now()))

	if ok, _ := m.HasActiveBetween(ctx, "p1", "p2"); !ok {
		t.Fatal("active pair not found")
	}
	if ok, _ := m.HasActiveBetween(ctx, "p2", "p1"); !ok {
		t.Fatal("pair lookup should be order independent")
	}
	if ok, _ := m.HasActiveBetween(ctx, "p3", "p4"); ok {
		t.Fatal("finished game counted as active")
	}
	if ok, _ := m.HasActiveBetween(ctx, "p1", "p3"); ok {
		t.Fatal("unrelated pair reported active")
	}
}

func TestMemorySessionsByPlayer(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	base := time.Now()

	_ = m.CreateSession(ctx, newSession("g1", "p1", "p2", game.StatusActive, base.Add(-2*time.Hour)))
	_ = m.CreateSession(ctx, newSession("g2", "p1", "p3", game.StatusActive, base.Add(-1*time.Hour)))
	_ = m.CreateSession(ctx, newSession("g3", "p1", "p4", game.StatusFinished, base))
	_ = m.CreateSession(ctx, newSession("g4", "p5", "p6", game.StatusActive, base))

	active, err := m.SessionsByPlayer(ctx, "p1", game.StatusActive)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Fatalf("active count = %d, want 2", len(active))
	}
	// Newest first.
	if active[0].ID != "g2" || active[1].ID != "g1" {
		t.Fatalf("order = %s, %s, want g2, g1", active[0].ID, active[1].ID)
	}

	finished, _ := m.SessionsByPlayer(ctx, "p1", game.StatusFinished)
	if len(finished) != 1 || finished[0].ID != "g3" {
		t.Fatalf("finished = %+v", finished)
	}

	none, _ := m.SessionsByPlayer(ctx, "p9", game.StatusActive)
	if len(none) != 0 {
		t.Fatalf("unexpected sessions for p9: %+v", none)
	}
}
