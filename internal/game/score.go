// internal/game/score.go
//
// Move scoring. Bonus squares only fire for tiles placed in the current
// move; tiles committed in earlier turns contribute their base value when
// a new word runs through them. This keeps a shared tile from re-earning
// its bonus every turn.

package game

import "strings"

// FoundWord is one validated word and the ordered coordinates it occupies,
// including committed tiles the word connects through.
type FoundWord struct {
	Word string  `json:"word"`
	Path []Coord `json:"path"`
}

// bingoTiles is the hand size whose full placement earns the bingo bonus.
const bingoTiles = 7

// bingoBonus is added when exactly bingoTiles tiles are placed in one move.
const bingoBonus = 50

// ScoreMove computes the total point value of a move from its validated
// words and newly placed tiles.
//
// Per word: each path coordinate contributes its base letter value (0 for
// blanks) times any letter multiplier, and word multipliers accumulate
// multiplicatively; the word total is the accumulated sum times the word
// multiplier. Letter and word bonuses apply only to tiles placed this move
// and only when bonusesBlocked is false. Exactly seven placed tiles add the
// bingo bonus. The result never goes below zero.
func ScoreMove(validWords []FoundWord, placed []PlacedTile, layout BonusLayout, letterScores map[string]int, bonusesBlocked bool) int {
	if len(validWords) == 0 {
		return 0
	}

	placedAt := make(map[string]PlacedTile, len(placed))
	for _, t := range placed {
		placedAt[t.Coord().Key()] = t
	}

	total := 0
	for _, w := range validWords {
		wordScore := 0
		wordMultiplier := 1
		runes := []rune(strings.ToUpper(w.Word))

		for i, pos := range w.Path {
			tile, newlyPlaced := placedAt[pos.Key()]

			letter := ""
			isBlank := false
			if newlyPlaced {
				letter = strings.ToUpper(tile.Letter)
				isBlank = tile.IsBlank
			} else if i < len(runes) {
				// Committed tile: fall back to the word string at the
				// matching path index.
				letter = string(runes[i])
			}

			base := 0
			if !isBlank {
				base = letterScores[letter]
			}

			letterMultiplier := 1
			if !bonusesBlocked && newlyPlaced {
				switch layout[pos.A1()] {
				case BonusDoubleLetter:
					letterMultiplier = 2
				case BonusTripleLetter:
					letterMultiplier = 3
				case BonusDoubleWord, BonusCenterStar:
					wordMultiplier *= 2
				case BonusTripleWord:
					wordMultiplier *= 3
				}
			}
			wordScore += base * letterMultiplier
		}
		total += wordScore * wordMultiplier
	}

	if len(placed) == bingoTiles {
		total += bingoBonus
	}
	if total < 0 {
		total = 0
	}
	return total
}
