package game

import "testing"

func poolTotal(p LetterPool) int {
	n := 0
	for _, info := range p {
		n += info.Count
	}
	return n
}

func TestNewLetterPoolHasFullBag(t *testing.T) {
	p := NewLetterPool()
	if got := poolTotal(p); got != 100 {
		t.Fatalf("pool total = %d, want 100", got)
	}
	if info := p[Wildcard]; info.Count != 2 || info.Score != 0 {
		t.Fatalf("wildcard = %+v, want count 2 score 0", info)
	}
}

func TestInitialDealDealsSevenEach(t *testing.T) {
	hand1, hand2, updated := InitialDeal(NewLetterPool())
	if len(hand1) != 7 || len(hand2) != 7 {
		t.Fatalf("hand sizes = %d, %d, want 7, 7", len(hand1), len(hand2))
	}
	if got := poolTotal(updated); got != 86 {
		t.Fatalf("remaining pool = %d, want 86", got)
	}
	for letter, info := range updated {
		if info.Count < 0 {
			t.Fatalf("letter %q has negative count %d", letter, info.Count)
		}
	}
	// Every dealt tile must be accounted for in the decrement.
	dealt := map[string]int{}
	for _, l := range hand1 {
		dealt[l]++
	}
	for _, l := range hand2 {
		dealt[l]++
	}
	fresh := NewLetterPool()
	for letter, n := range dealt {
		if fresh[letter].Count-updated[letter].Count != n {
			t.Errorf("letter %q: pool dropped by %d, dealt %d",
				letter, fresh[letter].Count-updated[letter].Count, n)
		}
	}
}

func TestInitialDealShortBag(t *testing.T) {
	pool := LetterPool{"A": {1, 1}, "B": {1, 3}}
	hand1, hand2, updated := InitialDeal(pool)
	if len(hand1)+len(hand2) != 2 {
		t.Fatalf("dealt %d tiles from a 2-tile bag", len(hand1)+len(hand2))
	}
	if len(hand1) >= 7 || len(hand2) >= 7 {
		t.Fatalf("short bag dealt a full hand: %v / %v", hand1, hand2)
	}
	if got := poolTotal(updated); got != 0 {
		t.Fatalf("remaining pool = %d, want 0", got)
	}
	// Input pool untouched.
	if pool["A"].Count != 1 || pool["B"].Count != 1 {
		t.Fatalf("input pool mutated: %+v", pool)
	}
}

func TestDrawReplacementNoOpOnZeroCount(t *testing.T) {
	pool := NewLetterPool()
	hand := []string{"A", "B"}
	newHand, updated := DrawReplacement(pool, hand, 0)
	if len(newHand) != 2 || poolTotal(updated) != 100 {
		t.Fatalf("zero draw changed state: hand %v, pool %d", newHand, poolTotal(updated))
	}
}

func TestDrawReplacementDrawsAtMostBagSize(t *testing.T) {
	pool := LetterPool{"K": {3, 1}}
	newHand, updated := DrawReplacement(pool, nil, 7)
	if len(newHand) != 3 {
		t.Fatalf("drew %d tiles from a 3-tile bag, want 3", len(newHand))
	}
	if updated["K"].Count != 0 {
		t.Fatalf("K count = %d, want 0", updated["K"].Count)
	}
	for letter, info := range updated {
		if info.Count < 0 {
			t.Fatalf("letter %q has negative count %d", letter, info.Count)
		}
	}
}

func TestDrawReplacementAppendsToHand(t *testing.T) {
	pool := LetterPool{"E": {2, 1}}
	newHand, updated := DrawReplacement(pool, []string{"A"}, 2)
	if len(newHand) != 3 || newHand[0] != "A" {
		t.Fatalf("newHand = %v, want A plus 2 drawn", newHand)
	}
	if poolTotal(updated) != 0 {
		t.Fatalf("pool not emptied: %+v", updated)
	}
}

func TestIsBalancedIgnoresWildcards(t *testing.T) {
	if isBalanced([]string{Wildcard, Wildcard, "A", "E", "K", "L", "M"}) != true {
		t.Error("2 vowels + 3 consonants should be balanced")
	}
	if isBalanced([]string{"A", "E", "İ", "O", "U", "Ü", "I"}) {
		t.Error("all-vowel hand should not be balanced")
	}
	if isBalanced([]string{"K", "L", "M", "N", "P", "R", "S"}) {
		t.Error("all-consonant hand should not be balanced")
	}
}
