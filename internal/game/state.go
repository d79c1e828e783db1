package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/flipseven/internal/deck"
)

var (
	// ErrRoundNotActive is returned for draws outside an active round
	ErrRoundNotActive = errors.New("round is not active")

	// ErrInvalidPlayer is returned for out-of-range player indexes
	ErrInvalidPlayer = errors.New("invalid player index")

	// ErrHandFrozen is returned when a frozen hand tries to draw
	ErrHandFrozen = errors.New("player is frozen and cannot draw")

	// ErrHandBusted is returned when a busted hand tries to draw
	ErrHandBusted = errors.New("player has busted and cannot draw")
)

// GameState manages one round of Flip 7 across a deck and a fixed set
// of player hands. Hands are always mutated one at a time by an
// external driver; GameState carries no internal locking.
type GameState struct {
	deck    *deck.Deck
	players []*PlayerHand

	flipSevenClaimed bool
	flipSevenPlayer  int // -1 while unclaimed
	roundActive      bool
}

// NewGameState creates a game state for the given number of players.
// All shuffle randomness flows through rng.
func NewGameState(rng *rand.Rand, numPlayers int) *GameState {
	return NewGameStateWithDeck(deck.New(rng), numPlayers)
}

// NewGameStateWithDeck creates a game state around a specific deck,
// used by tests that need deterministic draws.
func NewGameStateWithDeck(d *deck.Deck, numPlayers int) *GameState {
	players := make([]*PlayerHand, numPlayers)
	for i := range players {
		players[i] = NewPlayerHand()
	}
	return &GameState{
		deck:            d,
		players:         players,
		flipSevenPlayer: -1,
	}
}

// Deck returns the game's deck
func (g *GameState) Deck() *deck.Deck {
	return g.deck
}

// NumPlayers returns the number of hands in play
func (g *GameState) NumPlayers() int {
	return len(g.players)
}

// RoundActive reports whether a round is in progress
func (g *GameState) RoundActive() bool {
	return g.roundActive
}

// FlipSevenClaimed reports whether a hand has claimed the Flip 7 bonus
// this round
func (g *GameState) FlipSevenClaimed() bool {
	return g.flipSevenClaimed
}

// FlipSevenPlayer returns the index of the hand that claimed Flip 7,
// or false if no hand has
func (g *GameState) FlipSevenPlayer() (int, bool) {
	if !g.flipSevenClaimed {
		return 0, false
	}
	return g.flipSevenPlayer, true
}

// GetPlayerHand returns the hand for the given player index
func (g *GameState) GetPlayerHand(playerIdx int) (*PlayerHand, error) {
	if playerIdx < 0 || playerIdx >= len(g.players) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, playerIdx)
	}
	return g.players[playerIdx], nil
}

// StartRound begins a new round: every hand is cleared, the deck is
// restored to its full composition and shuffled, and the Flip 7 claim
// is reset.
func (g *GameState) StartRound() {
	for _, hand := range g.players {
		hand.Clear()
	}
	g.deck.Reset()
	g.flipSevenClaimed = false
	g.flipSevenPlayer = -1
	g.roundActive = true
}

// DrawCard draws one card for a player and applies it to their hand.
//
// Draws are legal only while the round is active and the hand is
// neither frozen nor busted; illegal draws fail fast with no state
// change. The first hand in the round to reach exactly 7 unique
// numbers claims the Flip 7 bonus and ends the round for everyone.
func (g *GameState) DrawCard(playerIdx int) (deck.Card, AddCardResult, error) {
	if !g.roundActive {
		return deck.Card{}, 0, ErrRoundNotActive
	}

	hand, err := g.GetPlayerHand(playerIdx)
	if err != nil {
		return deck.Card{}, 0, err
	}
	if hand.IsFrozen() {
		return deck.Card{}, 0, ErrHandFrozen
	}
	if hand.HasBusted() {
		return deck.Card{}, 0, ErrHandBusted
	}

	card, err := g.deck.Draw()
	if err != nil {
		return deck.Card{}, 0, err
	}

	result := hand.AddCard(card)

	// First claim wins: a later hand reaching 7 uniques cannot
	// overwrite the claim or reactivate the round.
	if hand.HasFlipSeven() && !g.flipSevenClaimed {
		g.flipSevenClaimed = true
		g.flipSevenPlayer = playerIdx
		g.roundActive = false
	}

	return card, result, nil
}

// EndRound scores every hand and deactivates the round. Only the hand
// that claimed Flip 7 is scored with the bonus.
func (g *GameState) EndRound() map[int]int {
	scores := make(map[int]int, len(g.players))
	for idx, hand := range g.players {
		scores[idx] = CalculateScore(hand, g.flipSevenClaimed && idx == g.flipSevenPlayer)
	}
	g.roundActive = false
	return scores
}

// IsRoundOver reports whether the round should end: either Flip 7 has
// been claimed, or every hand is frozen or busted.
func (g *GameState) IsRoundOver() bool {
	if g.flipSevenClaimed {
		return true
	}
	for _, hand := range g.players {
		if !hand.IsFrozen() && !hand.HasBusted() {
			return false
		}
	}
	return true
}
