package game

import "github.com/lox/flipseven/internal/deck"

// HandleFreeze applies a Freeze action: the hand banks its current
// points and draws no more this round.
func HandleFreeze(hand *PlayerHand) {
	hand.Freeze()
}

// HandleFlipThree resolves a Flip Three action for the given player:
// up to three forced draws, fewer if the deck runs low.
//
// A drawn Flip Three recursively resolves another full triplet whose
// results are spliced into the output before the outer triplet
// continues; recursion is bounded because the deck holds only three
// such cards. A Frozen, Bust or DuplicateWithSecondChance outcome is
// appended and ends the triplet immediately, forfeiting its remaining
// draws. The returned slice is a flat, order-preserving log of every
// add-card outcome, nested draws included.
func HandleFlipThree(g *GameState, playerIdx int) ([]AddCardResult, error) {
	hand, err := g.GetPlayerHand(playerIdx)
	if err != nil {
		return nil, err
	}

	var results []AddCardResult
	draws := min(3, g.deck.CardsRemaining())

	for i := 0; i < draws; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			// Nested triplets can drain the deck mid-budget.
			break
		}

		if card.IsAction(deck.FlipThree) {
			nested, err := HandleFlipThree(g, playerIdx)
			if err != nil {
				return results, err
			}
			results = append(results, nested...)
			continue
		}

		result := hand.AddCard(card)
		results = append(results, result)

		if result == Frozen || result == Bust || result == DuplicateWithSecondChance {
			break
		}
	}

	return results, nil
}

// HandleSecondChance plays the hand's second chance against a
// duplicate draw. Any validation failure reads as false so callers
// treat "declined" and "unavailable" the same way.
func HandleSecondChance(hand *PlayerHand, duplicate deck.Card) bool {
	if !hand.SecondChanceAvailable() {
		return false
	}
	return hand.UseSecondChance(duplicate) == nil
}
