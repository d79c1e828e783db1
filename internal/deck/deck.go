package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a full Flip 7 deck.
const Size = 94

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
// The round logic should never let this happen under correct draw
// budgeting, so callers treat it as a hard failure.
var ErrEmptyDeck = errors.New("cannot draw from empty deck")

// Deck manages the 94-card Flip 7 deck.
//
// The deck contains:
//   - Number cards 0-12 (counts: 1,1,2,3,4,5,6,7,8,9,10,11,12)
//   - Modifiers: +2, +4, +6, +8, +10, X2 (one each)
//   - Actions: 3x Freeze, 3x Flip Three, 3x Second Chance
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a new deck with the standard 94-card composition in
// canonical order. Call Shuffle or Reset before play. All randomness
// flows through the provided rng so rounds are replayable.
func New(rng *rand.Rand) *Deck {
	return &Deck{
		cards: standardComposition(),
		rng:   rng,
	}
}

// NewStacked creates a deck containing exactly the given cards in draw
// order. Used by tests that need deterministic draws.
func NewStacked(rng *rand.Rand, cards ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

func standardComposition() []Card {
	cards := make([]Card, 0, Size)

	// Number cards: one 0, one 1, then n copies of n for 2-12
	for value := 0; value <= 12; value++ {
		count := value
		if value <= 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			c, _ := NewNumber(value)
			cards = append(cards, c)
		}
	}

	for kind := Plus2; kind <= Times2; kind++ {
		c, _ := NewModifier(kind)
		cards = append(cards, c)
	}

	for kind := Freeze; kind <= SecondChance; kind++ {
		for i := 0; i < 3; i++ {
			c, _ := NewAction(kind)
			cards = append(cards, c)
		}
	}

	return cards
}

// Shuffle randomizes the order of the remaining cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Cards returns a snapshot copy of the remaining cards. The strategy
// engine counts these by category; mutating the copy has no effect on
// the deck.
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// Reset restores the full 94-card composition and shuffles it
func (d *Deck) Reset() {
	d.cards = standardComposition()
	d.Shuffle()
}
