package game

import (
	"testing"

	"github.com/lox/flipseven/internal/deck"
	"github.com/lox/flipseven/internal/randutil"
)

// stackedGame builds a single-player game whose deck draws the given
// cards in order. StartRound is not used because it would reset the
// stacked deck.
func stackedGame(t *testing.T, cards ...deck.Card) *GameState {
	t.Helper()
	return NewGameStateWithDeck(deck.NewStacked(randutil.New(1), cards...), 1)
}

func mustHand(t *testing.T, g *GameState, idx int) *PlayerHand {
	t.Helper()
	hand, err := g.GetPlayerHand(idx)
	if err != nil {
		t.Fatal(err)
	}
	return hand
}

func TestHandleFreeze(t *testing.T) {
	hand := NewPlayerHand()
	HandleFreeze(hand)
	if !hand.IsFrozen() {
		t.Error("hand should be frozen")
	}
}

func TestHandleFlipThreeDrawsThree(t *testing.T) {
	g := stackedGame(t, number(t, 1), number(t, 2), number(t, 3), number(t, 4))
	hand := mustHand(t, g, 0)

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("results = %v, want 3 successes", results)
	}
	for i, r := range results {
		if r != Success {
			t.Errorf("result %d = %v, want Success", i, r)
		}
	}
	if hand.NumberCount() != 3 {
		t.Errorf("NumberCount() = %d, want 3", hand.NumberCount())
	}
	if g.Deck().CardsRemaining() != 1 {
		t.Errorf("CardsRemaining() = %d, want 1", g.Deck().CardsRemaining())
	}
}

func TestHandleFlipThreeStopsOnBust(t *testing.T) {
	g := stackedGame(t, number(t, 1), number(t, 1), number(t, 2))
	hand := mustHand(t, g, 0)

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []AddCardResult{Success, Bust}
	if len(results) != len(want) {
		t.Fatalf("results = %v, want %v", results, want)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("results = %v, want %v", results, want)
		}
	}
	if !hand.HasBusted() {
		t.Error("hand should be busted")
	}
	// The third draw is forfeited.
	if g.Deck().CardsRemaining() != 1 {
		t.Errorf("CardsRemaining() = %d, want 1", g.Deck().CardsRemaining())
	}
}

func TestHandleFlipThreeStopsOnFreeze(t *testing.T) {
	g := stackedGame(t, action(t, deck.Freeze), number(t, 2), number(t, 3))
	hand := mustHand(t, g, 0)

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 || results[0] != Frozen {
		t.Fatalf("results = %v, want [Frozen]", results)
	}
	if !hand.IsFrozen() {
		t.Error("hand should be frozen")
	}
}

func TestHandleFlipThreeStopsOnDuplicateWithSecondChance(t *testing.T) {
	g := stackedGame(t, number(t, 5), number(t, 5), number(t, 6))
	hand := mustHand(t, g, 0)
	hand.AddCard(action(t, deck.SecondChance))

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []AddCardResult{Success, DuplicateWithSecondChance}
	if len(results) != len(want) || results[0] != want[0] || results[1] != want[1] {
		t.Fatalf("results = %v, want %v", results, want)
	}
	if hand.HasBusted() {
		t.Error("resolution is deferred; hand must not be busted")
	}
	if !hand.SecondChanceAvailable() {
		t.Error("second chance must stay held; the triplet never plays it")
	}
	if hand.NumberCount() != 1 {
		t.Errorf("NumberCount() = %d, want 1 (duplicate discarded)", hand.NumberCount())
	}
}

func TestHandleFlipThreeDoesNotStopAtSevenUniques(t *testing.T) {
	g := stackedGame(t, number(t, 7), number(t, 8), number(t, 9))
	hand := mustHand(t, g, 0)
	for v := 1; v <= 6; v++ {
		hand.AddCard(number(t, v))
	}

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Forced draws play the full budget even past seven uniques,
	// overshooting the bonus.
	if len(results) != 3 {
		t.Fatalf("results = %v, want 3 successes", results)
	}
	if hand.NumberCount() != 9 {
		t.Errorf("NumberCount() = %d, want 9", hand.NumberCount())
	}
	if hand.HasFlipSeven() {
		t.Error("nine uniques is not Flip 7")
	}
}

func TestHandleFlipThreeRecursesOnNestedFlipThree(t *testing.T) {
	// Second draw is another FlipThree: its full triplet resolves and
	// splices before the outer triplet's remaining draw.
	g := stackedGame(t,
		number(t, 1),
		action(t, deck.FlipThree),
		number(t, 2), number(t, 3), number(t, 4), // nested triplet
		number(t, 5), // outer triplet's final draw
		number(t, 6),
	)
	hand := mustHand(t, g, 0)

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	// 1 + 3 nested + 1 remaining outer draw, all successes, flat.
	if len(results) != 5 {
		t.Fatalf("results = %v, want 5 flat successes", results)
	}
	for i, r := range results {
		if r != Success {
			t.Errorf("result %d = %v, want Success", i, r)
		}
	}
	if hand.NumberCount() != 5 {
		t.Errorf("NumberCount() = %d, want 5", hand.NumberCount())
	}
	if g.Deck().CardsRemaining() != 1 {
		t.Errorf("CardsRemaining() = %d, want 1", g.Deck().CardsRemaining())
	}
}

func TestHandleFlipThreeDeckNearlyEmpty(t *testing.T) {
	g := stackedGame(t, number(t, 1), number(t, 2))

	results, err := HandleFlipThree(g, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("results = %v, want 2", results)
	}
	if g.Deck().CardsRemaining() != 0 {
		t.Errorf("CardsRemaining() = %d, want 0", g.Deck().CardsRemaining())
	}
}

func TestHandleFlipThreeInvalidPlayer(t *testing.T) {
	g := stackedGame(t, number(t, 1))
	if _, err := HandleFlipThree(g, 3); err == nil {
		t.Fatal("expected error for invalid player index")
	}
}

func TestHandleSecondChance(t *testing.T) {
	hand := NewPlayerHand()
	hand.AddCard(number(t, 5))

	if HandleSecondChance(hand, number(t, 5)) {
		t.Error("should be false without a second chance")
	}

	hand.AddCard(action(t, deck.SecondChance))

	if HandleSecondChance(hand, modifier(t, deck.Plus2)) {
		t.Error("should be false for a non-number card")
	}
	if !HandleSecondChance(hand, number(t, 5)) {
		t.Error("should consume the second chance")
	}
	if hand.SecondChanceAvailable() {
		t.Error("second chance should be gone")
	}
}
