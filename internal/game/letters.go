// internal/game/letters.go
//
// Letter pool management: the Turkish tile distribution, the balanced
// initial deal, and replacement draws from a shrinking bag.

package game

import (
	"math/rand"
	"strings"
)

// TileInfo holds the remaining count and point value for one symbol.
// Score is fixed for the lifetime of a pool; Count only decreases.
type TileInfo struct {
	Count int `json:"count"`
	Score int `json:"score"`
}

// LetterPool maps letter symbols (including the wildcard) to tile info.
type LetterPool map[string]TileInfo

const turkishVowels = "AEIİOÖUÜ"

const (
	handSize            = 7
	maxRedrawAttempts   = 5
	minVowelsInHand     = 2
	minConsonantsInHand = 2
)

// NewLetterPool returns the standard 100-tile Turkish distribution.
func NewLetterPool() LetterPool {
	return LetterPool{
		"A": {12, 1}, "B": {2, 3}, "C": {2, 4}, "Ç": {2, 4}, "D": {2, 3},
		"E": {8, 1}, "F": {1, 7}, "G": {1, 5}, "Ğ": {1, 8}, "H": {1, 5},
		"I": {4, 2}, "İ": {7, 1}, "J": {1, 10}, "K": {7, 1}, "L": {7, 1},
		"M": {4, 2}, "N": {5, 1}, "O": {3, 2}, "Ö": {1, 7}, "P": {1, 5},
		"R": {6, 1}, "S": {3, 2}, "Ş": {2, 4}, "T": {5, 1}, "U": {3, 2},
		"Ü": {2, 3}, "V": {1, 7}, "Y": {2, 3}, "Z": {2, 4},
		Wildcard: {2, 0},
	}
}

// Scores returns the point value per symbol for the pool.
func (p LetterPool) Scores() map[string]int {
	m := make(map[string]int, len(p))
	for letter, info := range p {
		m[letter] = info.Score
	}
	return m
}

// Size returns the total number of tiles left in the pool.
func (p LetterPool) Size() int {
	n := 0
	for _, info := range p {
		n += info.Count
	}
	return n
}

// clone copies the pool so callers get value semantics.
func (p LetterPool) clone() LetterPool {
	out := make(LetterPool, len(p))
	for letter, info := range p {
		out[letter] = info
	}
	return out
}

// bag flattens the pool into one tile per remaining count.
func (p LetterPool) bag() []string {
	out := make([]string, 0, p.Size())
	for letter, info := range p {
		for i := 0; i < info.Count; i++ {
			out = append(out, letter)
		}
	}
	return out
}

// take decrements one tile, clamping at zero.
func (p LetterPool) take(letter string) {
	info, ok := p[letter]
	if !ok || info.Count <= 0 {
		return
	}
	info.Count--
	p[letter] = info
}

// isBalanced checks that a hand has at least minVowelsInHand vowels and
// minConsonantsInHand consonants among its non-blank tiles.
func isBalanced(hand []string) bool {
	vowels, consonants := 0, 0
	for _, letter := range hand {
		if letter == Wildcard {
			continue
		}
		if strings.Contains(turkishVowels, letter) {
			vowels++
		} else {
			consonants++
		}
	}
	return vowels >= minVowelsInHand && consonants >= minConsonantsInHand
}

// InitialDeal deals the opening hands for both players and returns the
// decremented pool. Player 1 gets up to maxRedrawAttempts reshuffles to
// land a balanced hand; if none succeeds the last sample stands. Player 2
// draws from the remainder with no balance requirement. Short bags deal
// short hands rather than failing.
func InitialDeal(pool LetterPool) (hand1, hand2 []string, updated LetterPool) {
	updated = pool.clone()
	bag := updated.bag()

	for attempt := 1; attempt <= maxRedrawAttempts; attempt++ {
		if len(bag) < handSize {
			break
		}
		rand.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		sample := append([]string(nil), bag[:handSize]...)
		if isBalanced(sample) || attempt == maxRedrawAttempts {
			hand1 = sample
			break
		}
	}
	if hand1 == nil && len(bag) > 0 {
		// Bag too small for a full hand: deal whatever is there.
		rand.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		n := min(handSize, len(bag))
		hand1 = append([]string(nil), bag[:n]...)
	}
	for _, letter := range hand1 {
		updated.take(letter)
		bag = removeOne(bag, letter)
	}

	rand.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	for i := 0; i < handSize && i < len(bag); i++ {
		hand2 = append(hand2, bag[i])
		updated.take(bag[i])
	}
	return hand1, hand2, updated
}

// DrawReplacement draws up to count tiles from the pool, appends them to
// hand, and returns the new hand plus the decremented pool. It draws fewer
// tiles when the bag runs short and never fails; count <= 0 is a no-op.
func DrawReplacement(pool LetterPool, hand []string, count int) (newHand []string, updated LetterPool) {
	if count <= 0 {
		return hand, pool
	}
	updated = pool.clone()
	bag := updated.bag()
	rand.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })

	n := min(count, len(bag))
	newHand = append(append([]string(nil), hand...), bag[:n]...)
	for _, letter := range bag[:n] {
		updated.take(letter)
	}
	return newHand, updated
}

// removeOne deletes the first occurrence of letter from tiles.
func removeOne(tiles []string, letter string) []string {
	for i, t := range tiles {
		if t == letter {
			return append(tiles[:i], tiles[i+1:]...)
		}
	}
	return tiles
}
