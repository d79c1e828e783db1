package game

import "github.com/lox/flipseven/internal/deck"

// CalculateScore computes the final score for a hand.
//
// Scoring order is fixed:
//  1. Busted hands score 0, modifiers included
//  2. Sum the unique number values
//  3. Double the sum if an X2 modifier is present
//  4. Add flat modifier points (+2 through +10)
//  5. Add the 15-point Flip 7 bonus if hasBonus
func CalculateScore(hand *PlayerHand, hasBonus bool) int {
	if hand.busted {
		return 0
	}

	base := 0
	for value := range hand.numbers {
		base += value
	}

	if hasTimesTwo(hand.modifiers) {
		base *= 2
	}

	total := base + modifierPoints(hand.modifiers)

	if hasBonus {
		total += 15
	}

	return total
}

// hasTimesTwo reports X2 presence. The deck holds at most one X2 so
// this is a boolean check, never a count.
func hasTimesTwo(modifiers []deck.Card) bool {
	for _, card := range modifiers {
		if card.ModifierKind == deck.Times2 {
			return true
		}
	}
	return false
}

func modifierPoints(modifiers []deck.Card) int {
	total := 0
	for _, card := range modifiers {
		if card.ModifierKind != deck.Times2 {
			total += card.ModifierValue
		}
	}
	return total
}
