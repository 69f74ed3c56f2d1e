// internal/game/validate.go
//
// Word-placement validation contract. The engine treats the validator as
// an external oracle: given the newly placed tiles and the committed
// board, it either rejects the placement or returns every word the move
// forms together with its board path.

package game

import "strings"

// PlacementValidator decides whether a set of placed tiles forms a legal
// play on the committed board and, when it does, reports the words formed.
// Implementations must be pure: no session state may be mutated.
type PlacementValidator interface {
	Validate(placed []PlacedTile, board Board) ([]FoundWord, error)
}

// PassthroughValidator accepts any placement and reports the placed tiles,
// in order, as a single word.
//
// TODO: replace with real placement validation (single axis, contiguity,
// center-star opening, cross-words, dictionary lookup) once the Turkish
// lexicon service is available.
type PassthroughValidator struct{}

// Validate implements PlacementValidator.
func (PassthroughValidator) Validate(placed []PlacedTile, board Board) ([]FoundWord, error) {
	if len(placed) == 0 {
		return nil, ErrInvalidMove
	}
	var b strings.Builder
	path := make([]Coord, 0, len(placed))
	for _, t := range placed {
		b.WriteString(strings.ToUpper(t.Letter))
		path = append(path, t.Coord())
	}
	return []FoundWord{{Word: b.String(), Path: path}}, nil
}
