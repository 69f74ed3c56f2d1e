// internal/game/hidden.go
//
// Hidden trap and reward tiles. A fixed multiset of items is scattered
// uniformly over the board at game creation; an item is consumed the
// first time any tile covers its coordinate.

package game

import "math/rand"

// ItemType identifies a hidden trap or reward.
type ItemType string

const (
	TrapScoreDivide   ItemType = "SCORE_DIVIDE"   // move score reduced to 30%
	TrapScoreTransfer ItemType = "SCORE_TRANSFER" // move score credited to the opponent
	TrapLetterLoss    ItemType = "LETTER_LOSS"    // hand discarded and redrawn in full
	TrapBonusBlocker  ItemType = "BONUS_BLOCKER"  // bonus squares inert for this move
	TrapWordCancel    ItemType = "WORD_CANCEL"    // move score cancelled to zero

	RewardAreaBan   ItemType = "AREA_BAN"
	RewardLetterBan ItemType = "LETTER_BAN"
	RewardExtraTurn ItemType = "EXTRA_TURN"
)

// IsReward reports whether the item is banked rather than applied.
func (t ItemType) IsReward() bool {
	switch t {
	case RewardAreaBan, RewardLetterBan, RewardExtraTurn:
		return true
	}
	return false
}

// HiddenBoard maps coordinate keys ("row_col") to the hidden item there.
type HiddenBoard map[string]ItemType

// hiddenItemCounts is the fixed population per item kind.
var hiddenItemCounts = map[ItemType]int{
	TrapScoreDivide:   5,
	TrapScoreTransfer: 4,
	TrapLetterLoss:    3,
	TrapBonusBlocker:  2,
	TrapWordCancel:    2,
	RewardAreaBan:     2,
	RewardLetterBan:   3,
	RewardExtraTurn:   2,
}

// GenerateHiddenBoard places the fixed item multiset on distinct random
// coordinates. The item list is truncated if it ever exceeded the cell
// count, so generation cannot overflow the grid.
func GenerateHiddenBoard() HiddenBoard {
	var items []ItemType
	for kind, count := range hiddenItemCounts {
		for i := 0; i < count; i++ {
			items = append(items, kind)
		}
	}

	coords := make([]string, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			coords = append(coords, Coord{Row: r, Col: c}.Key())
		}
	}
	if len(items) > len(coords) {
		items = items[:len(coords)]
	}

	rand.Shuffle(len(coords), func(i, j int) { coords[i], coords[j] = coords[j], coords[i] })
	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	hidden := make(HiddenBoard, len(items))
	for i, item := range items {
		hidden[coords[i]] = item
	}
	return hidden
}
