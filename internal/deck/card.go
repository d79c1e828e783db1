package deck

import "fmt"

// Kind discriminates the three card variants in the Flip 7 deck.
type Kind int

const (
	Number Kind = iota
	Modifier
	Action
)

// String returns the string representation of a card kind
func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Modifier:
		return "Modifier"
	case Action:
		return "Action"
	default:
		return "?"
	}
}

// ActionKind represents an action card effect
type ActionKind int

const (
	Freeze ActionKind = iota
	FlipThree
	SecondChance
)

// String returns the string representation of an action kind
func (a ActionKind) String() string {
	switch a {
	case Freeze:
		return "FREEZE"
	case FlipThree:
		return "FLIP_THREE"
	case SecondChance:
		return "SECOND_CHANCE"
	default:
		return "?"
	}
}

// ModifierKind represents a modifier card
type ModifierKind int

const (
	Plus2 ModifierKind = iota
	Plus4
	Plus6
	Plus8
	Plus10
	Times2
)

// String returns the string representation of a modifier kind
func (m ModifierKind) String() string {
	switch m {
	case Plus2:
		return "+2"
	case Plus4:
		return "+4"
	case Plus6:
		return "+6"
	case Plus8:
		return "+8"
	case Plus10:
		return "+10"
	case Times2:
		return "X2"
	default:
		return "?"
	}
}

// FaceValue returns the flat points a modifier adds to a score.
// Times2 has no face value; it doubles the base sum instead.
func (m ModifierKind) FaceValue() int {
	switch m {
	case Plus2:
		return 2
	case Plus4:
		return 4
	case Plus6:
		return 6
	case Plus8:
		return 8
	case Plus10:
		return 10
	default:
		return 0
	}
}

// Card represents a single Flip 7 card. Cards are immutable values;
// only the fields belonging to their Kind are meaningful.
type Card struct {
	Kind          Kind
	Value         int // Number cards only, 0-12
	ActionKind    ActionKind
	ModifierKind  ModifierKind
	ModifierValue int
}

// NewNumber creates a number card with the given value
func NewNumber(value int) (Card, error) {
	if value < 0 || value > 12 {
		return Card{}, fmt.Errorf("number card value must be 0-12, got %d", value)
	}
	return Card{Kind: Number, Value: value}, nil
}

// NewModifier creates a modifier card of the given kind
func NewModifier(kind ModifierKind) (Card, error) {
	if kind < Plus2 || kind > Times2 {
		return Card{}, fmt.Errorf("invalid modifier kind: %d", kind)
	}
	return Card{Kind: Modifier, ModifierKind: kind, ModifierValue: kind.FaceValue()}, nil
}

// NewAction creates an action card of the given kind
func NewAction(kind ActionKind) (Card, error) {
	if kind < Freeze || kind > SecondChance {
		return Card{}, fmt.Errorf("invalid action kind: %d", kind)
	}
	return Card{Kind: Action, ActionKind: kind}, nil
}

// IsAction reports whether the card is an action card of the given kind
func (c Card) IsAction(kind ActionKind) bool {
	return c.Kind == Action && c.ActionKind == kind
}

// String returns the string representation of a card (e.g. "Number(7)", "Modifier(X2)")
func (c Card) String() string {
	switch c.Kind {
	case Number:
		return fmt.Sprintf("Number(%d)", c.Value)
	case Modifier:
		return fmt.Sprintf("Modifier(%s)", c.ModifierKind)
	case Action:
		return fmt.Sprintf("Action(%s)", c.ActionKind)
	default:
		return "Card(?)"
	}
}
