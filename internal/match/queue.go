// internal/match/queue.go
//
// Matchmaking: per-duration-class waiting lists with cancellation,
// liveness timeout, and a pending-match mailbox. This is a deliberate
// busy-poll design: one process-wide mutex serializes every scan and
// mutation, and it is released before each 1s sleep so concurrent
// searchers keep making progress. Pairing-detection latency is bounded
// by one poll tick.

package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Melissportakall/WordGameAPP/internal/game"
)

// DefaultTimeout bounds a single search from enqueue to give-up.
const DefaultTimeout = 15 * time.Second

// defaultPollTick is the sleep between scan passes.
const defaultPollTick = time.Second

// ActivePairChecker answers whether two players already share an active
// game; such pairs are never rematched.
type ActivePairChecker interface {
	HasActiveBetween(ctx context.Context, a, b string) (bool, error)
}

// Factory creates and persists a session for a freshly paired duo. It is
// called while the queue lock is held, so pairing and session creation
// are one atomic step.
type Factory func(ctx context.Context, initiator, opponent string, mode game.Mode) (*game.Session, error)

// Result reports how a search ended. Exactly one of the three terminal
// flags is set.
type Result struct {
	Matched    bool   `json:"opponentFound"`
	GameID     string `json:"gameId,omitempty"`
	OpponentID string `json:"opponentId,omitempty"`
	Cancelled  bool   `json:"cancelled,omitempty"`
	TimedOut   bool   `json:"timeout,omitempty"`
}

type pendingMatch struct {
	gameID     string
	opponentID string
}

// Queue pairs waiting players per duration class.
type Queue struct {
	mu      sync.Mutex
	waiting map[game.Mode][]string
	cancels map[string]bool
	matched map[string]pendingMatch

	games    ActivePairChecker
	create   Factory
	timeout  time.Duration
	pollTick time.Duration
}

// NewQueue builds a queue over the given active-pair source and session
// factory.
func NewQueue(games ActivePairChecker, create Factory) *Queue {
	q := &Queue{
		waiting:  make(map[game.Mode][]string),
		cancels:  make(map[string]bool),
		matched:  make(map[string]pendingMatch),
		games:    games,
		create:   create,
		timeout:  DefaultTimeout,
		pollTick: defaultPollTick,
	}
	for _, m := range game.Modes {
		q.waiting[m] = []string{}
	}
	return q
}

// SetTimeout overrides the search timeout (used by config and tests).
func (q *Queue) SetTimeout(d time.Duration) { q.timeout = d }

// SetPollTick overrides the poll interval (tests only).
func (q *Queue) SetPollTick(d time.Duration) { q.pollTick = d }

// EnqueueAndWait enrolls playerID in the duration class and polls until a
// pairing, cancellation, or timeout. Enqueueing twice in the same class is
// idempotent; each new search resets the cancellation flag.
func (q *Queue) EnqueueAndWait(ctx context.Context, playerID string, mode game.Mode) (Result, error) {
	if !mode.Valid() {
		return Result{}, fmt.Errorf("%w: unknown duration class %q", game.ErrValidation, mode)
	}

	q.mu.Lock()
	if !contains(q.waiting[mode], playerID) {
		q.waiting[mode] = append(q.waiting[mode], playerID)
		log.Info().Str("player", playerID).Str("mode", string(mode)).Msg("enqueued for matchmaking")
	}
	q.cancels[playerID] = false
	q.mu.Unlock()

	deadline := time.Now().Add(q.timeout)
	for {
		res, done, err := q.scan(ctx, playerID, mode)
		if err != nil {
			// Dequeue before surfacing the error: a waiter with no poll
			// loop behind it would otherwise be paired as a ghost.
			q.remove(playerID, mode)
			return Result{}, err
		}
		if done {
			return res, nil
		}
		if time.Now().After(deadline) {
			q.remove(playerID, mode)
			log.Info().Str("player", playerID).Msg("matchmaking timed out")
			return Result{TimedOut: true}, nil
		}
		select {
		case <-ctx.Done():
			q.remove(playerID, mode)
			return Result{Cancelled: true}, nil
		case <-time.After(q.pollTick):
		}
	}
}

// Cancel flags an in-flight search for cancellation. The flag is consumed
// by the searcher's own poll loop on its next pass; a pairing formed in
// the same tick wins, making the cancel a no-op.
func (q *Queue) Cancel(playerID string) {
	q.mu.Lock()
	if _, searching := q.cancels[playerID]; searching {
		q.cancels[playerID] = true
	}
	q.mu.Unlock()
}

// scan runs one pass under the queue lock: mailbox first, then the
// cancellation flag, then a sweep of the class's other waiters.
func (q *Queue) scan(ctx context.Context, playerID string, mode game.Mode) (Result, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if pm, ok := q.matched[playerID]; ok {
		delete(q.matched, playerID)
		delete(q.cancels, playerID)
		return Result{Matched: true, GameID: pm.gameID, OpponentID: pm.opponentID}, true, nil
	}

	if q.cancels[playerID] {
		q.waiting[mode] = removeID(q.waiting[mode], playerID)
		delete(q.cancels, playerID)
		log.Info().Str("player", playerID).Msg("matchmaking cancelled")
		return Result{Cancelled: true}, true, nil
	}

	queue := q.waiting[mode]
	myIdx := indexOf(queue, playerID)
	if myIdx < 0 {
		// Removed by another path; the mailbox pass above will pick up
		// any pairing on the next tick.
		return Result{}, false, nil
	}

	for i, candidate := range queue {
		if i == myIdx || q.cancels[candidate] {
			continue
		}
		active, err := q.games.HasActiveBetween(ctx, playerID, candidate)
		if err != nil {
			return Result{}, false, fmt.Errorf("active game lookup: %w", err)
		}
		if active {
			log.Debug().Str("player", playerID).Str("candidate", candidate).
				Msg("skipping candidate with existing active game")
			continue
		}

		sess, err := q.create(ctx, playerID, candidate, mode)
		if err != nil {
			return Result{}, false, fmt.Errorf("create session: %w", err)
		}

		// Remove both waiters, highest index first so the lower index
		// stays valid.
		hi, lo := myIdx, i
		if hi < lo {
			hi, lo = lo, hi
		}
		queue = append(queue[:hi], queue[hi+1:]...)
		queue = append(queue[:lo], queue[lo+1:]...)
		q.waiting[mode] = queue

		// The opponent's own poll loop discovers the match through its
		// mailbox entry; the pairing caller returns directly.
		q.matched[candidate] = pendingMatch{gameID: sess.ID, opponentID: playerID}
		delete(q.cancels, playerID)
		delete(q.cancels, candidate)

		log.Info().Str("game", sess.ID).Str("player", playerID).Str("opponent", candidate).
			Str("mode", string(mode)).Msg("players paired")
		return Result{Matched: true, GameID: sess.ID, OpponentID: candidate}, true, nil
	}
	return Result{}, false, nil
}

// remove takes playerID out of the class queue and clears its flag and
// any pairing delivered after the player stopped polling, so a stale
// mailbox entry cannot be consumed by a later search.
func (q *Queue) remove(playerID string, mode game.Mode) {
	q.mu.Lock()
	q.waiting[mode] = removeID(q.waiting[mode], playerID)
	delete(q.cancels, playerID)
	delete(q.matched, playerID)
	q.mu.Unlock()
}

func contains(ids []string, id string) bool { return indexOf(ids, id) >= 0 }

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}
