// internal/game/bonus.go
//
// Static bonus-square layout for the 15x15 board. The layout is keyed by
// A1-style coordinates (column letter + 1-based row) and shared read-only
// by every session.

package game

// Bonus is a bonus-square class.
type Bonus string

const (
	BonusDoubleLetter Bonus = "DL"
	BonusTripleLetter Bonus = "TL"
	BonusDoubleWord   Bonus = "DW"
	BonusTripleWord   Bonus = "TW"
	BonusCenterStar   Bonus = "★" // center square, scores as a double word
)

// BonusLayout maps A1-style coordinates to their bonus class.
type BonusLayout map[string]Bonus

// standardLayout is the fixed board used by every game.
var standardLayout = BonusLayout{
	"A1": BonusTripleWord, "A8": BonusTripleWord, "A15": BonusTripleWord,
	"B2": BonusDoubleWord, "B6": BonusTripleLetter, "B10": BonusTripleLetter, "B14": BonusDoubleWord,
	"C3": BonusDoubleWord, "C7": BonusDoubleLetter, "C9": BonusDoubleLetter, "C13": BonusDoubleWord,
	"D1": BonusDoubleLetter, "D4": BonusDoubleWord, "D8": BonusDoubleLetter, "D12": BonusDoubleWord, "D15": BonusDoubleLetter,
	"E5": BonusDoubleWord, "E11": BonusDoubleWord,
	"F2": BonusTripleLetter, "F6": BonusTripleLetter, "F10": BonusTripleLetter, "F14": BonusTripleLetter,
	"G3": BonusDoubleLetter, "G7": BonusDoubleLetter, "G9": BonusDoubleLetter, "G13": BonusDoubleLetter,
	"H1": BonusTripleWord, "H4": BonusDoubleLetter, "H8": BonusCenterStar, "H12": BonusDoubleLetter, "H15": BonusTripleWord,
	"I3": BonusDoubleLetter, "I7": BonusDoubleLetter, "I9": BonusDoubleLetter, "I13": BonusDoubleLetter,
	"J2": BonusTripleLetter, "J6": BonusTripleLetter, "J10": BonusTripleLetter, "J14": BonusTripleLetter,
	"K5": BonusDoubleWord, "K11": BonusDoubleWord,
	"L1": BonusDoubleLetter, "L4": BonusDoubleWord, "L8": BonusDoubleLetter, "L12": BonusDoubleWord, "L15": BonusDoubleLetter,
	"M3": BonusDoubleWord, "M7": BonusDoubleLetter, "M9": BonusDoubleLetter, "M13": BonusDoubleWord,
	"N2": BonusDoubleWord, "N6": BonusTripleLetter, "N10": BonusTripleLetter, "N14": BonusDoubleWord,
	"O1": BonusTripleWord, "O4": BonusDoubleLetter, "O8": BonusTripleWord, "O12": BonusDoubleLetter, "O15": BonusTripleWord,
}

// DefaultBonusLayout returns the shared layout for 15x15 boards.
// Callers must treat it as immutable.
func DefaultBonusLayout() BonusLayout { return standardLayout }
