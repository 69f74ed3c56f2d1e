// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - Coord: a 0-indexed board position with its two key encodings.
//   - Board: committed tiles keyed by coordinate.
//   - PlacedTile: a tile laid down in the current move.
//   - Mode: matchmaking duration class.
//   - Session: full state of one two-player match.

package game

import (
	"fmt"
	"time"
)

// BoardSize is the edge length of the square board.
const BoardSize = 15

// Wildcard is the blank tile symbol. It counts as an ordinary tile when
// drawing but always scores 0.
const Wildcard = "*"

// Coord is a 0-indexed (row, column) board position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns the "row_col" form used for board and hidden-item maps.
func (c Coord) Key() string { return fmt.Sprintf("%d_%d", c.Row, c.Col) }

// A1 returns the letter-file + 1-based-rank form used by the bonus layout
// (column A..O, row 1..15), or "" when out of bounds.
func (c Coord) A1() string {
	if !c.InBounds() {
		return ""
	}
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Board maps coordinate keys ("row_col") to the committed letter.
// Occupied cells are never overwritten by game logic.
type Board map[string]string

// At returns the letter at c, or "" when the cell is empty.
func (b Board) At(c Coord) string { return b[c.Key()] }

// PlacedTile is a single tile the mover lays down this turn. For blank
// plays Letter carries the declared letter and IsBlank is true.
type PlacedTile struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Letter  string `json:"letter"`
	IsBlank bool   `json:"isBlank"`
}

// Coord returns the tile's board position.
func (t PlacedTile) Coord() Coord { return Coord{Row: t.Row, Col: t.Col} }

// Mode is a matchmaking duration class, mapping to a total game clock.
type Mode string

const (
	ModeTwoMin         Mode = "TWO_MIN"
	ModeFiveMin        Mode = "FIVE_MIN"
	ModeTwelveHour     Mode = "TWELVE_HOUR"
	ModeTwentyFourHour Mode = "TWENTYFOUR_HOUR"
)

// Modes lists every supported duration class.
var Modes = []Mode{ModeTwoMin, ModeFiveMin, ModeTwelveHour, ModeTwentyFourHour}

// Valid reports whether m is a supported duration class.
func (m Mode) Valid() bool {
	switch m {
	case ModeTwoMin, ModeFiveMin, ModeTwelveHour, ModeTwentyFourHour:
		return true
	}
	return false
}

// Clock returns the total game clock for the class.
func (m Mode) Clock() time.Duration {
	switch m {
	case ModeTwoMin:
		return 2 * time.Minute
	case ModeFiveMin:
		return 5 * time.Minute
	case ModeTwelveHour:
		return 12 * time.Hour
	case ModeTwentyFourHour:
		return 24 * time.Hour
	}
	return 0
}

// Session status values.
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Session holds the authoritative state of one match. All mutation goes
// through ApplyMove and Resign; callers serialize access per session.
type Session struct {
	ID        string                `json:"id"`
	Player1   string                `json:"player1"`
	Player2   string                `json:"player2"`
	Mode      Mode                  `json:"mode"`
	Board     Board                 `json:"board"`
	Hidden    HiddenBoard           `json:"hiddenBoard"`
	Pool      LetterPool            `json:"remainingLetters"`
	Hands     map[string][]string   `json:"hands"`
	Rewards   map[string][]ItemType `json:"rewards"`
	Scores    map[string]int        `json:"scores"`
	TurnOwner string                `json:"turnOwner"`
	Status    string                `json:"status"`
	Winner    string                `json:"winner,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	Deadline  time.Time             `json:"deadline"`
}

// IsParticipant reports whether playerID is one of the two players.
func (s *Session) IsParticipant(playerID string) bool {
	return playerID == s.Player1 || playerID == s.Player2
}

// Opponent returns the other participant's id.
func (s *Session) Opponent(playerID string) string {
	if playerID == s.Player1 {
		return s.Player2
	}
	return s.Player1
}

// SessionView is the client-facing projection of a Session. Hidden items
// stay server side until a placed tile consumes them, so the view carries
// every field except the hidden board. Only the persistence layer
// serializes the full Session.
type SessionView struct {
	ID        string                `json:"id"`
	Player1   string                `json:"player1"`
	Player2   string                `json:"player2"`
	Mode      Mode                  `json:"mode"`
	Board     Board                 `json:"board"`
	Pool      LetterPool            `json:"remainingLetters"`
	Hands     map[string][]string   `json:"hands"`
	Rewards   map[string][]ItemType `json:"rewards"`
	Scores    map[string]int        `json:"scores"`
	TurnOwner string                `json:"turnOwner"`
	Status    string                `json:"status"`
	Winner    string                `json:"winner,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	Deadline  time.Time             `json:"deadline"`
}

// View returns the projection sent to clients and the realtime room.
func (s *Session) View() SessionView {
	return SessionView{
		ID:        s.ID,
		Player1:   s.Player1,
		Player2:   s.Player2,
		Mode:      s.Mode,
		Board:     s.Board,
		Pool:      s.Pool,
		Hands:     s.Hands,
		Rewards:   s.Rewards,
		Scores:    s.Scores,
		TurnOwner: s.TurnOwner,
		Status:    s.Status,
		Winner:    s.Winner,
		CreatedAt: s.CreatedAt,
		Deadline:  s.Deadline,
	}
}
