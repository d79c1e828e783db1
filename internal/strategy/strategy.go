// Package strategy computes expected values for Flip 7 hit/stay
// decisions from publicly visible information: the category breakdown
// of the undrawn deck, assuming uniform random draw order.
package strategy

import (
	"math"

	"github.com/lox/flipseven/internal/deck"
	"github.com/lox/flipseven/internal/game"
)

// Action is a strategy recommendation
type Action int

const (
	Stay Action = iota
	Hit
)

// String returns the string representation of a recommendation
func (a Action) String() string {
	if a == Hit {
		return "HIT"
	}
	return "STAY"
}

// Details carries the numbers behind a recommendation
type Details struct {
	Reason          string
	CurrentScore    int
	EVHit           float64 // rounded to 2 decimals
	EVStay          int
	CardsRemaining  int
	BustProbability float64 // percentage, rounded to 1 decimal
	Advantage       float64 // chosen action's margin over the rejected one
}

// RemainingCounts is the category breakdown of the undrawn deck. It is
// the sufficient statistic for every probability the engine computes.
type RemainingCounts struct {
	Numbers   map[int]int
	Modifiers map[deck.ModifierKind]int
	Actions   map[deck.ActionKind]int
	Total     int
}

// CountRemainingCards counts the cards left in the deck by category
func CountRemainingCards(g *game.GameState) RemainingCounts {
	counts := RemainingCounts{
		Numbers:   make(map[int]int),
		Modifiers: make(map[deck.ModifierKind]int),
		Actions:   make(map[deck.ActionKind]int),
	}

	for _, card := range g.Deck().Cards() {
		switch card.Kind {
		case deck.Number:
			counts.Numbers[card.Value]++
		case deck.Modifier:
			counts.Modifiers[card.ModifierKind]++
		case deck.Action:
			counts.Actions[card.ActionKind]++
		}
		counts.Total++
	}

	return counts
}

// CalculateCurrentScore returns what the hand scores if the player
// stays now
func CalculateCurrentScore(hand *game.PlayerHand, hasBonus bool) int {
	return game.CalculateScore(hand, hasBonus)
}

// CalculateExpectedValueOfHit computes the probability-weighted score
// of drawing exactly one more card and then staying (one-step
// lookahead). Hypothetical draws are applied to clones; the real hand
// is never touched.
func CalculateExpectedValueOfHit(g *game.GameState, playerIdx int) (float64, error) {
	hand, err := g.GetPlayerHand(playerIdx)
	if err != nil {
		return 0, err
	}

	if hand.IsFrozen() || hand.HasBusted() {
		return 0, nil
	}

	remaining := g.Deck().CardsRemaining()
	if remaining == 0 {
		return 0, nil
	}

	counts := CountRemainingCards(g)
	ev := 0.0

	for value, count := range counts.Numbers {
		prob := float64(count) / float64(remaining)

		if hand.Holds(value) {
			if hand.SecondChanceAvailable() {
				// Harmless draw: the second chance absorbs it.
				ev += prob * float64(CalculateCurrentScore(hand, hand.HasFlipSeven()))
			} else {
				ev += prob * 0 // instant bust
			}
			continue
		}

		clone := hand.Clone()
		card, _ := deck.NewNumber(value)
		clone.AddCard(card)
		score := CalculateCurrentScore(clone, clone.HasFlipSeven())
		if clone.HasFlipSeven() {
			score += 15
		}
		ev += prob * float64(score)
	}

	for kind, count := range counts.Modifiers {
		prob := float64(count) / float64(remaining)
		clone := hand.Clone()
		card, _ := deck.NewModifier(kind)
		clone.AddCard(card)
		// Modifiers cannot change the unique count, so bonus
		// eligibility is the hand's current Flip 7 status.
		ev += prob * float64(CalculateCurrentScore(clone, hand.HasFlipSeven()))
	}

	for kind, count := range counts.Actions {
		prob := float64(count) / float64(remaining)

		switch kind {
		case deck.Freeze, deck.SecondChance:
			// Score-preserving under the one-step model.
			ev += prob * float64(CalculateCurrentScore(hand, hand.HasFlipSeven()))
		case deck.FlipThree:
			ev += prob * estimateFlipThreeEV(g, hand, counts)
		}
	}

	return ev, nil
}

// estimateFlipThreeEV approximates the value of a forced three-card
// draw. It is a deliberate heuristic, not an exact expectation over
// the shrinking deck: each simulated slot contributes half of a fixed
// 6.5 average card value, while bust probability accumulates from the
// fraction of remaining numbers duplicating the hand. Accumulated bust
// probability at 1.0, or judged too high at 0.8, collapses the
// estimate to 0.
func estimateFlipThreeEV(g *game.GameState, hand *game.PlayerHand, counts RemainingCounts) float64 {
	remaining := g.Deck().CardsRemaining()
	if remaining <= 1 {
		return float64(CalculateCurrentScore(hand, hand.HasFlipSeven()))
	}

	const avgCardValue = 6.5

	draws := min(3, remaining)
	totalBust := 0.0
	value := 0.0
	for _, v := range hand.Numbers() {
		value += float64(v)
	}

	duplicates := 0
	for v, count := range counts.Numbers {
		if hand.Holds(v) {
			duplicates += count
		}
	}

	secondChance := hand.SecondChanceAvailable()

	for i := 0; i < draws; i++ {
		bustThisDraw := float64(duplicates) / float64(remaining)

		// The first exposed draw is covered by a held second chance.
		if secondChance && totalBust == 0 {
			bustThisDraw = 0
			secondChance = false
		}

		totalBust += bustThisDraw * (1 - totalBust)
		if totalBust >= 1.0 {
			return 0
		}

		value += avgCardValue * 0.5
	}

	if totalBust >= 0.8 {
		return 0
	}

	return value * (1 - totalBust)
}

// BustProbability returns the chance the next draw busts the hand: the
// fraction of the remaining deck whose number value the hand already
// holds. A held second chance forces it to 0.
func BustProbability(g *game.GameState, playerIdx int) (float64, error) {
	hand, err := g.GetPlayerHand(playerIdx)
	if err != nil {
		return 0, err
	}

	remaining := g.Deck().CardsRemaining()
	if remaining == 0 {
		return 0, nil
	}

	counts := CountRemainingCards(g)
	duplicates := 0
	for value, count := range counts.Numbers {
		if hand.Holds(value) {
			duplicates += count
		}
	}

	if hand.SecondChanceAvailable() {
		return 0, nil
	}

	return float64(duplicates) / float64(remaining), nil
}

// RecommendAction recommends HIT or STAY for the given player.
//
// Frozen or busted hands always STAY, as does a hand that has already
// made Flip 7. Otherwise the recommendation is HIT exactly when the
// one-step expected value of drawing strictly exceeds the current
// score.
func RecommendAction(g *game.GameState, playerIdx int) (Action, Details, error) {
	hand, err := g.GetPlayerHand(playerIdx)
	if err != nil {
		return Stay, Details{}, err
	}

	if hand.IsFrozen() || hand.HasBusted() {
		return Stay, Details{Reason: "cannot continue (frozen or busted)"}, nil
	}

	currentScore := CalculateCurrentScore(hand, hand.HasFlipSeven())
	evHit, err := CalculateExpectedValueOfHit(g, playerIdx)
	if err != nil {
		return Stay, Details{}, err
	}

	bustProb, err := BustProbability(g, playerIdx)
	if err != nil {
		return Stay, Details{}, err
	}

	details := Details{
		CurrentScore:    currentScore,
		EVHit:           roundTo(evHit, 2),
		EVStay:          currentScore,
		CardsRemaining:  g.Deck().CardsRemaining(),
		BustProbability: roundTo(bustProb*100, 1),
	}

	if hand.HasFlipSeven() {
		details.Reason = "Flip 7 achieved - take the bonus!"
		return Stay, details, nil
	}

	if evHit > float64(currentScore) {
		details.Advantage = roundTo(evHit-float64(currentScore), 2)
		return Hit, details, nil
	}

	details.Advantage = roundTo(float64(currentScore)-evHit, 2)
	return Stay, details, nil
}

func roundTo(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
