package game

import (
	"errors"
	"sort"

	"github.com/lox/flipseven/internal/deck"
)

// AddCardResult represents the outcome of adding a card to a hand
type AddCardResult int

const (
	Success AddCardResult = iota
	Bust
	DuplicateWithSecondChance
	Frozen
)

// String returns the string representation of an add-card result
func (r AddCardResult) String() string {
	switch r {
	case Success:
		return "success"
	case Bust:
		return "bust"
	case DuplicateWithSecondChance:
		return "duplicate-with-second-chance"
	case Frozen:
		return "frozen"
	default:
		return "?"
	}
}

var (
	// ErrNoSecondChance is returned when using a second chance that
	// the hand does not hold.
	ErrNoSecondChance = errors.New("no second chance available")

	// ErrInvalidSecondChanceCard is returned when the card passed to
	// UseSecondChance is not a number card or its value is not held.
	ErrInvalidSecondChanceCard = errors.New("second chance requires a duplicate number card from the hand")
)

// PlayerHand tracks one player's accumulated round state: unique number
// values held, modifier cards, visible action cards, and the frozen,
// busted and second-chance flags.
//
// A hand is cleared at the start of each round and never destroyed.
// It carries no internal locking; callers mutate one hand at a time.
type PlayerHand struct {
	numbers      map[int]struct{}
	modifiers    []deck.Card
	actionCards  []deck.Card
	secondChance bool
	frozen       bool
	busted       bool
}

// NewPlayerHand creates an empty hand
func NewPlayerHand() *PlayerHand {
	return &PlayerHand{numbers: make(map[int]struct{})}
}

// AddCard adds a card to the hand, returning the outcome.
//
// Frozen hands accept nothing. A duplicate number busts the hand unless
// a second chance is available, in which case resolution is deferred to
// the caller: the result is DuplicateWithSecondChance and the hand is
// left untouched. A Freeze action is consumed into the frozen flag
// rather than kept visible; FlipThree only records the card here, its
// draws are triggered by HandleFlipThree.
func (h *PlayerHand) AddCard(card deck.Card) AddCardResult {
	if h.frozen {
		return Frozen
	}

	switch card.Kind {
	case deck.Number:
		if _, held := h.numbers[card.Value]; held {
			if h.secondChance {
				return DuplicateWithSecondChance
			}
			h.busted = true
			return Bust
		}
		h.numbers[card.Value] = struct{}{}
		return Success

	case deck.Modifier:
		h.modifiers = append(h.modifiers, card)
		return Success

	case deck.Action:
		switch card.ActionKind {
		case deck.Freeze:
			h.frozen = true
			return Frozen
		case deck.SecondChance:
			h.secondChance = true
			h.actionCards = append(h.actionCards, card)
			return Success
		default:
			h.actionCards = append(h.actionCards, card)
			return Success
		}
	}

	return Success
}

// UseSecondChance consumes the hand's second chance to discard the
// given duplicate number card. The duplicate must be a number card
// whose value the hand currently holds.
func (h *PlayerHand) UseSecondChance(duplicate deck.Card) error {
	if !h.secondChance {
		return ErrNoSecondChance
	}
	if duplicate.Kind != deck.Number {
		return ErrInvalidSecondChanceCard
	}
	if _, held := h.numbers[duplicate.Value]; !held {
		return ErrInvalidSecondChanceCard
	}

	h.secondChance = false

	// Remove one SecondChance card from the visible actions; they are
	// interchangeable so any instance will do.
	for i, card := range h.actionCards {
		if card.IsAction(deck.SecondChance) {
			h.actionCards = append(h.actionCards[:i], h.actionCards[i+1:]...)
			break
		}
	}
	return nil
}

// HasFlipSeven reports whether the hand holds exactly 7 unique number
// values. The round ends the instant a 7th value lands, so this is an
// equality check, not a threshold.
func (h *PlayerHand) HasFlipSeven() bool {
	return len(h.numbers) == 7
}

// Holds reports whether the hand holds the given number value
func (h *PlayerHand) Holds(value int) bool {
	_, held := h.numbers[value]
	return held
}

// NumberCount returns how many unique number values the hand holds
func (h *PlayerHand) NumberCount() int {
	return len(h.numbers)
}

// Numbers returns the held number values in ascending order
func (h *PlayerHand) Numbers() []int {
	values := make([]int, 0, len(h.numbers))
	for v := range h.numbers {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Modifiers returns a copy of the hand's modifier cards
func (h *PlayerHand) Modifiers() []deck.Card {
	return append([]deck.Card(nil), h.modifiers...)
}

// ActionCards returns a copy of the hand's visible action cards
func (h *PlayerHand) ActionCards() []deck.Card {
	return append([]deck.Card(nil), h.actionCards...)
}

// SecondChanceAvailable reports whether a second chance is held
func (h *PlayerHand) SecondChanceAvailable() bool {
	return h.secondChance
}

// IsFrozen reports whether the hand has been frozen for the round
func (h *PlayerHand) IsFrozen() bool {
	return h.frozen
}

// HasBusted reports whether the hand has busted this round
func (h *PlayerHand) HasBusted() bool {
	return h.busted
}

// Freeze marks the hand frozen, ending its turn for the round
func (h *PlayerHand) Freeze() {
	h.frozen = true
}

// MarkBusted busts the hand. Used when a player declines to play their
// second chance on a duplicate draw.
func (h *PlayerHand) MarkBusted() {
	h.busted = true
}

// Clear resets the hand for a new round
func (h *PlayerHand) Clear() {
	h.numbers = make(map[int]struct{})
	h.modifiers = nil
	h.actionCards = nil
	h.secondChance = false
	h.frozen = false
	h.busted = false
}

// Clone returns a fully independent copy of the hand. The strategy
// engine mutates clones to score hypothetical draws; nothing it does
// can reach back into the real hand.
func (h *PlayerHand) Clone() *PlayerHand {
	clone := &PlayerHand{
		numbers:      make(map[int]struct{}, len(h.numbers)),
		secondChance: h.secondChance,
		frozen:       h.frozen,
		busted:       h.busted,
	}
	for v := range h.numbers {
		clone.numbers[v] = struct{}{}
	}
	clone.modifiers = append(clone.modifiers, h.modifiers...)
	clone.actionCards = append(clone.actionCards, h.actionCards...)
	return clone
}
