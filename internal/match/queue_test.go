package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Melissportakall/WordGameAPP/internal/game"
	"github.com/Melissportakall/WordGameAPP/internal/store"
)

// newTestQueue wires a queue over the in-memory store with tick and
// timeout shrunk so tests finish quickly.
func newTestQueue(t *testing.T) (*Queue, store.Store) {
	t.Helper()
	sessions := store.NewMemoryStore()
	q := NewQueue(sessions, func(ctx context.Context, initiator, opponent string, mode game.Mode) (*game.Session, error) {
		sess := game.NewSession(initiator, opponent, mode)
		if err := sessions.CreateSession(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	})
	q.SetPollTick(10 * time.Millisecond)
	q.SetTimeout(500 * time.Millisecond)
	return q, sessions
}

func search(q *Queue, player string, mode game.Mode) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		res, err := q.EnqueueAndWait(context.Background(), player, mode)
		if err != nil {
			res = Result{}
		}
		out <- res
	}()
	return out
}

func TestTwoSearchersPair(t *testing.T) {
	q, sessions := newTestQueue(t)

	c1 := search(q, "p1", game.ModeTwoMin)
	c2 := search(q, "p2", game.ModeTwoMin)

	r1, r2 := <-c1, <-c2
	if !r1.Matched || !r2.Matched {
		t.Fatalf("results not matched: %+v / %+v", r1, r2)
	}
	if r1.GameID == "" || r1.GameID != r2.GameID {
		t.Fatalf("game ids differ: %q vs %q", r1.GameID, r2.GameID)
	}
	if r1.OpponentID != "p2" || r2.OpponentID != "p1" {
		t.Fatalf("opponents = %q / %q", r1.OpponentID, r2.OpponentID)
	}

	sess, err := sessions.GetSession(context.Background(), r1.GameID)
	if err != nil {
		t.Fatalf("paired session not persisted: %v", err)
	}
	if !sess.IsParticipant("p1") || !sess.IsParticipant("p2") {
		t.Fatalf("session players = %q / %q", sess.Player1, sess.Player2)
	}
}

func TestDifferentModesDoNotPair(t *testing.T) {
	q, _ := newTestQueue(t)
	q.SetTimeout(100 * time.Millisecond)

	c1 := search(q, "p1", game.ModeTwoMin)
	c2 := search(q, "p2", game.ModeFiveMin)

	r1, r2 := <-c1, <-c2
	if !r1.TimedOut || !r2.TimedOut {
		t.Fatalf("cross-mode searchers paired: %+v / %+v", r1, r2)
	}
}

func TestSoloSearchTimesOut(t *testing.T) {
	q, _ := newTestQueue(t)
	q.SetTimeout(100 * time.Millisecond)

	res := <-search(q, "p1", game.ModeFiveMin)
	if !res.TimedOut || res.Matched {
		t.Fatalf("result = %+v, want timeout", res)
	}
}

func TestCancelStopsSearch(t *testing.T) {
	q, _ := newTestQueue(t)

	c := search(q, "p1", game.ModeFiveMin)
	time.Sleep(30 * time.Millisecond) // let the search enroll
	q.Cancel("p1")

	res := <-c
	if !res.Cancelled || res.Matched || res.TimedOut {
		t.Fatalf("result = %+v, want cancelled", res)
	}
}

func TestCancelledWaiterIsNotPaired(t *testing.T) {
	q, _ := newTestQueue(t)
	q.SetTimeout(150 * time.Millisecond)

	c1 := search(q, "p1", game.ModeFiveMin)
	time.Sleep(30 * time.Millisecond)
	q.Cancel("p1")
	time.Sleep(30 * time.Millisecond) // cancel consumed before p2 arrives

	c2 := search(q, "p2", game.ModeFiveMin)

	r1, r2 := <-c1, <-c2
	if !r1.Cancelled {
		t.Fatalf("p1 result = %+v, want cancelled", r1)
	}
	if r2.Matched {
		t.Fatalf("p2 paired with a cancelled waiter: %+v", r2)
	}
}

func TestExistingActiveGameBlocksRematch(t *testing.T) {
	q, sessions := newTestQueue(t)
	q.SetTimeout(150 * time.Millisecond)

	existing := game.NewSession("p1", "p2", game.ModeFiveMin)
	if err := sessions.CreateSession(context.Background(), existing); err != nil {
		t.Fatal(err)
	}

	c1 := search(q, "p1", game.ModeFiveMin)
	c2 := search(q, "p2", game.ModeFiveMin)

	r1, r2 := <-c1, <-c2
	if r1.Matched || r2.Matched {
		t.Fatalf("rematch created despite active game: %+v / %+v", r1, r2)
	}
	if !r1.TimedOut || !r2.TimedOut {
		t.Fatalf("results = %+v / %+v, want timeouts", r1, r2)
	}
}

func TestInvalidModeRejected(t *testing.T) {
	q, _ := newTestQueue(t)
	if _, err := q.EnqueueAndWait(context.Background(), "p1", game.Mode("HOURLY")); err == nil {
		t.Fatal("expected error for unknown duration class")
	}
}

type failingChecker struct{}

func (failingChecker) HasActiveBetween(context.Context, string, string) (bool, error) {
	return false, errors.New("lookup unavailable")
}

func TestScanErrorDequeuesSearcher(t *testing.T) {
	q := NewQueue(failingChecker{}, func(ctx context.Context, initiator, opponent string, mode game.Mode) (*game.Session, error) {
		return nil, errors.New("unreachable")
	})
	q.SetPollTick(time.Hour) // first searcher parks after its empty scan

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Result, 1)
	go func() {
		res, _ := q.EnqueueAndWait(ctx, "p1", game.ModeFiveMin)
		out <- res
	}()
	time.Sleep(30 * time.Millisecond) // let p1 enroll and park

	if _, err := q.EnqueueAndWait(context.Background(), "p2", game.ModeFiveMin); err == nil {
		t.Fatal("expected the scan error to surface")
	}

	q.mu.Lock()
	waiting := append([]string(nil), q.waiting[game.ModeFiveMin]...)
	_, stillFlagged := q.cancels["p2"]
	q.mu.Unlock()
	if len(waiting) != 1 || waiting[0] != "p1" {
		t.Fatalf("waiting = %v, want only the live searcher", waiting)
	}
	if stillFlagged {
		t.Fatal("departed searcher left its cancel flag behind")
	}

	cancel()
	if res := <-out; !res.Cancelled {
		t.Fatalf("live searcher result = %+v", res)
	}
}

func TestAbandonedSearchDropsPendingMatch(t *testing.T) {
	q, _ := newTestQueue(t)
	q.SetTimeout(100 * time.Millisecond)

	// A pairing delivered after the waiter gave up must not be consumed
	// by a later search as a fresh match.
	q.mu.Lock()
	q.matched["p1"] = pendingMatch{gameID: "g-stale", opponentID: "p2"}
	q.mu.Unlock()
	q.remove("p1", game.ModeFiveMin)

	res := <-search(q, "p1", game.ModeFiveMin)
	if res.Matched {
		t.Fatalf("stale pairing consumed: %+v", res)
	}
	if !res.TimedOut {
		t.Fatalf("result = %+v, want timeout", res)
	}
}

func TestContextCancellationEndsSearch(t *testing.T) {
	q, _ := newTestQueue(t)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Result, 1)
	go func() {
		res, _ := q.EnqueueAndWait(ctx, "p1", game.ModeFiveMin)
		out <- res
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	res := <-out
	if !res.Cancelled {
		t.Fatalf("result = %+v, want cancelled", res)
	}
}
