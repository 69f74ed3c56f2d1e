// internal/game/session.go
//
// Session lifecycle and the single mutating move pipeline. ApplyMove
// validates everything before touching state: once mutation starts the
// move is accepted, and the caller persists the session as one unit.
// Callers must hold the session's exclusive lock around ApplyMove/Resign.

package game

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// scoreDivideFactor is the multiplier applied by the score-divide trap.
const scoreDivideFactor = 0.3

// TriggerInfo describes one hidden item fired by a move.
type TriggerInfo struct {
	Type    ItemType `json:"type"`
	Message string   `json:"message"`
}

// MoveOutcome reports the result of an accepted move.
type MoveOutcome struct {
	GameID              string              `json:"gameId"`
	PlayerID            string              `json:"playerId"`
	PlacedTiles         []PlacedTile        `json:"placedTiles"`
	ScoreGained         int                 `json:"scoreGained"`
	OpponentScoreGained int                 `json:"opponentScoreGained"`
	Scores              map[string]int      `json:"scores"`
	NextTurn            string              `json:"nextTurn"`
	Board               Board               `json:"board"`
	NewHand             []string            `json:"newHand"`
	TriggeredTraps      []TriggerInfo       `json:"triggeredTraps"`
	EarnedRewards       []TriggerInfo       `json:"earnedRewards"`
	ExtraTurnUsed       bool                `json:"extraTurnUsed"`
	HandDiscarded       bool                `json:"handDiscarded"`
}

// NewSession creates an active match between two players: fresh letter
// pool, balanced opening deal, hidden item board, and the first turn
// belonging to the player who initiated the pairing.
func NewSession(initiator, opponent string, mode Mode) *Session {
	hand1, hand2, pool := InitialDeal(NewLetterPool())
	now := time.Now().UTC()
	return &Session{
		ID:      uuid.NewString(),
		Player1: initiator,
		Player2: opponent,
		Mode:    mode,
		Board:   Board{},
		Hidden:  GenerateHiddenBoard(),
		Pool:    pool,
		Hands: map[string][]string{
			initiator: hand1,
			opponent:  hand2,
		},
		Rewards: map[string][]ItemType{
			initiator: {},
			opponent:  {},
		},
		Scores: map[string]int{
			initiator: 0,
			opponent:  0,
		},
		TurnOwner: initiator,
		Status:    StatusActive,
		CreatedAt: now,
		Deadline:  now.Add(mode.Clock()),
	}
}

// ApplyMove validates and applies one move by playerID.
//
// Pipeline: participant/turn/status checks, hand coverage (blank plays
// consume a wildcard tile), external placement validation, hidden item
// consumption, scoring with trap effects, hand replacement draw, board
// commit, and turn handoff (spending one EXTRA_TURN reward if held).
func (s *Session) ApplyMove(playerID string, placed []PlacedTile, validator PlacementValidator) (*MoveOutcome, error) {
	if len(placed) == 0 {
		return nil, fmt.Errorf("%w: no tiles placed", ErrValidation)
	}
	if !s.IsParticipant(playerID) {
		return nil, fmt.Errorf("%w: not a player in this game", ErrForbidden)
	}
	if s.TurnOwner != playerID {
		return nil, fmt.Errorf("%w: not your turn", ErrForbidden)
	}
	if s.Status != StatusActive {
		return nil, fmt.Errorf("%w: game is not active", ErrForbidden)
	}

	// Hand coverage check on a working copy: a blank play must be backed
	// by a wildcard tile, anything else by the literal letter. The move
	// is rejected as a whole on the first unmatched tile.
	remaining := append([]string(nil), s.Hands[playerID]...)
	playedFromHand := make([]string, 0, len(placed))
	for _, tile := range placed {
		if tile.Letter == "" || !tile.Coord().InBounds() {
			return nil, fmt.Errorf("%w: bad tile data", ErrInvalidMove)
		}
		want := strings.ToUpper(tile.Letter)
		if tile.IsBlank {
			want = Wildcard
		}
		idx := -1
		for i, held := range remaining {
			if held == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: missing letter %q", ErrInvalidMove, want)
		}
		playedFromHand = append(playedFromHand, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	validWords, err := validator.Validate(placed, s.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	// All checks passed; mutation starts here.
	opponent := s.Opponent(playerID)

	var traps, rewards []TriggerInfo
	scoreModifier := 1.0
	transferScore := false
	cancelWord := false
	blockBonuses := false
	discardHand := false

	for _, tile := range placed {
		key := tile.Coord().Key()
		item, ok := s.Hidden[key]
		if !ok {
			continue
		}
		delete(s.Hidden, key) // consumed on first touch, kept word or not

		switch item {
		case TrapScoreDivide:
			scoreModifier = scoreDivideFactor
			traps = append(traps, TriggerInfo{item, "Move score reduced to 30%!"})
		case TrapScoreTransfer:
			transferScore = true
			traps = append(traps, TriggerInfo{item, "Move score goes to your opponent!"})
		case TrapLetterLoss:
			discardHand = true
			traps = append(traps, TriggerInfo{item, "Your hand is discarded and redrawn!"})
		case TrapBonusBlocker:
			blockBonuses = true
			traps = append(traps, TriggerInfo{item, "Bonus squares have no effect this move!"})
		case TrapWordCancel:
			cancelWord = true
			traps = append(traps, TriggerInfo{item, "Word score cancelled!"})
		case RewardAreaBan:
			s.Rewards[playerID] = append(s.Rewards[playerID], item)
			rewards = append(rewards, TriggerInfo{item, "You earned an area ban joker!"})
		case RewardLetterBan:
			s.Rewards[playerID] = append(s.Rewards[playerID], item)
			rewards = append(rewards, TriggerInfo{item, "You earned a letter ban joker!"})
		case RewardExtraTurn:
			s.Rewards[playerID] = append(s.Rewards[playerID], item)
			rewards = append(rewards, TriggerInfo{item, "You earned an extra turn joker!"})
		}
	}

	gained := 0
	if !cancelWord {
		raw := ScoreMove(validWords, placed, DefaultBonusLayout(), s.Pool.Scores(), blockBonuses)
		gained = int(math.Round(float64(raw) * scoreModifier))
	}
	if transferScore {
		s.Scores[opponent] += gained
	} else {
		s.Scores[playerID] += gained
	}

	// Reduce the pool by the tiles just played, then draw replacements.
	// A discarded hand starts empty and draws a full seven, not 7+played.
	for _, letter := range playedFromHand {
		s.Pool.take(letter)
	}
	newHand := remaining
	drawCount := len(placed)
	if discardHand {
		newHand = nil
		drawCount = handSize
	}
	newHand, s.Pool = DrawReplacement(s.Pool, newHand, drawCount)
	s.Hands[playerID] = newHand

	// Commit tiles. Blanks are stored as their declared letter; the board
	// does not retain blank-ness.
	for _, tile := range placed {
		s.Board[tile.Coord().Key()] = strings.ToUpper(tile.Letter)
	}

	nextTurn := opponent
	extraTurnUsed := false
	if idx := indexOfItem(s.Rewards[playerID], RewardExtraTurn); idx >= 0 {
		s.Rewards[playerID] = append(s.Rewards[playerID][:idx], s.Rewards[playerID][idx+1:]...)
		nextTurn = playerID
		extraTurnUsed = true
	}
	s.TurnOwner = nextTurn

	opponentGained := 0
	if transferScore {
		opponentGained, gained = gained, 0
	}
	return &MoveOutcome{
		GameID:              s.ID,
		PlayerID:            playerID,
		PlacedTiles:         placed,
		ScoreGained:         gained,
		OpponentScoreGained: opponentGained,
		Scores:              copyScores(s.Scores),
		NextTurn:            nextTurn,
		Board:               s.Board,
		NewHand:             newHand,
		TriggeredTraps:      traps,
		EarnedRewards:       rewards,
		ExtraTurnUsed:       extraTurnUsed,
		HandDiscarded:       discardHand,
	}, nil
}

// Resign finishes the game in favor of the other participant.
func (s *Session) Resign(playerID string) error {
	if !s.IsParticipant(playerID) {
		return fmt.Errorf("%w: not a player in this game", ErrForbidden)
	}
	if s.Status != StatusActive {
		return fmt.Errorf("%w: game is not active", ErrForbidden)
	}
	s.Status = StatusFinished
	s.Winner = s.Opponent(playerID)
	return nil
}

func indexOfItem(items []ItemType, want ItemType) int {
	for i, it := range items {
		if it == want {
			return i
		}
	}
	return -1
}

func copyScores(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
