package deck

import (
	"errors"
	"testing"

	"github.com/lox/flipseven/internal/randutil"
)

func countComposition(t *testing.T, d *Deck) (numbers map[int]int, modifiers map[ModifierKind]int, actions map[ActionKind]int) {
	t.Helper()
	numbers = make(map[int]int)
	modifiers = make(map[ModifierKind]int)
	actions = make(map[ActionKind]int)
	for _, card := range d.Cards() {
		switch card.Kind {
		case Number:
			numbers[card.Value]++
		case Modifier:
			modifiers[card.ModifierKind]++
		case Action:
			actions[card.ActionKind]++
		}
	}
	return numbers, modifiers, actions
}

func assertStandardComposition(t *testing.T, d *Deck) {
	t.Helper()

	if got := d.CardsRemaining(); got != Size {
		t.Fatalf("CardsRemaining() = %d, want %d", got, Size)
	}

	numbers, modifiers, actions := countComposition(t, d)

	for value := 0; value <= 12; value++ {
		want := value
		if value <= 1 {
			want = 1
		}
		if numbers[value] != want {
			t.Errorf("number %d count = %d, want %d", value, numbers[value], want)
		}
	}

	for kind := Plus2; kind <= Times2; kind++ {
		if modifiers[kind] != 1 {
			t.Errorf("modifier %v count = %d, want 1", kind, modifiers[kind])
		}
	}

	for kind := Freeze; kind <= SecondChance; kind++ {
		if actions[kind] != 3 {
			t.Errorf("action %v count = %d, want 3", kind, actions[kind])
		}
	}
}

func TestNewDeckComposition(t *testing.T) {
	assertStandardComposition(t, New(randutil.New(1)))
}

func TestDrawShrinksDeck(t *testing.T) {
	d := New(randutil.New(1))
	d.Shuffle()

	for n := 1; n <= Size; n++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d: %v", n, err)
		}
		if got := d.CardsRemaining(); got != Size-n {
			t.Fatalf("after %d draws CardsRemaining() = %d, want %d", n, got, Size-n)
		}
	}

	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("draw from empty deck error = %v, want ErrEmptyDeck", err)
	}
}

func TestResetRestoresComposition(t *testing.T) {
	d := New(randutil.New(42))
	d.Shuffle()
	for i := 0; i < 30; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatal(err)
		}
	}

	d.Reset()
	assertStandardComposition(t, d)
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	d1 := New(randutil.New(7))
	d2 := New(randutil.New(7))
	d1.Shuffle()
	d2.Shuffle()

	c1 := d1.Cards()
	c2 := d2.Cards()
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("card %d differs: %v vs %v", i, c1[i], c2[i])
		}
	}
}

func TestCardsReturnsSnapshot(t *testing.T) {
	// The canonical (unshuffled) first card is Number(0); mutating the
	// snapshot must not reach the deck.
	d := New(randutil.New(1))
	snapshot := d.Cards()
	snapshot[0], _ = NewNumber(12)

	if got := d.Cards()[0]; got.Kind != Number || got.Value != 0 {
		t.Fatalf("deck first card = %v, want Number(0)", got)
	}
}

func TestNewStacked(t *testing.T) {
	five, _ := NewNumber(5)
	freeze, _ := NewAction(Freeze)
	d := NewStacked(randutil.New(1), five, freeze)

	card, err := d.Draw()
	if err != nil || card != five {
		t.Fatalf("first draw = %v, %v, want %v", card, err, five)
	}
	card, err = d.Draw()
	if err != nil || card != freeze {
		t.Fatalf("second draw = %v, %v, want %v", card, err, freeze)
	}
	if d.CardsRemaining() != 0 {
		t.Fatalf("CardsRemaining() = %d, want 0", d.CardsRemaining())
	}
}
