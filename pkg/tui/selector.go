package tui

import (
	"github.com/jingkaihe/skillet/pkg/skills"
)

// SelectorState is the lifecycle state of one selector interaction
type SelectorState int

const (
	// SelectorLoading is the transient state between the trigger and the
	// catalog arriving
	SelectorLoading SelectorState = iota
	// SelectorEmpty means the catalog arrived with zero skills
	SelectorEmpty
	// SelectorPopulated means cards are shown and one of them is active
	SelectorPopulated
	// SelectorClosed is terminal; the outcome is fixed
	SelectorClosed
)

// Move is a directional navigation input
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
)

// Outcome is the terminal result of a selector interaction. The zero value
// is a cancellation.
type Outcome struct {
	Selected bool
	Name     string
}

// Card is the minimal renderable surface of one catalog entry
type Card struct {
	Name        string
	Description string
	Source      skills.Source
}

// cardWidth is the rendered width of one card including border and margin
const cardWidth = 36

// Selector drives keyboard navigation over a fixed-column grid of cards.
// It starts in SelectorLoading, becomes Empty or Populated once cards are
// bound, and converges to Closed via Confirm or Cancel. All methods are
// no-ops once Closed.
type Selector struct {
	state   SelectorState
	cards   []Card
	cols    int
	active  int
	outcome Outcome
}

// NewSelector creates a selector in the loading state, sized for the given
// viewport width.
func NewSelector(width int) *Selector {
	return &Selector{
		state: SelectorLoading,
		cols:  columnsForWidth(width),
	}
}

func columnsForWidth(width int) int {
	cols := width / cardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// SetCards binds the loaded catalog to the selector, moving it out of the
// loading state. The first card becomes active.
func (s *Selector) SetCards(cards []Card) {
	if s.state == SelectorClosed {
		return
	}
	s.cards = cards
	s.active = 0
	if len(cards) == 0 {
		s.state = SelectorEmpty
	} else {
		s.state = SelectorPopulated
	}
}

// State returns the current lifecycle state
func (s *Selector) State() SelectorState {
	return s.state
}

// Cards returns the bound cards in catalog order
func (s *Selector) Cards() []Card {
	return s.cards
}

// ActiveIndex returns the index of the active card. It is meaningless
// unless the selector is populated.
func (s *Selector) ActiveIndex() int {
	return s.active
}

// ActiveCard returns the active card when the selector is populated
func (s *Selector) ActiveCard() (Card, bool) {
	if s.state != SelectorPopulated {
		return Card{}, false
	}
	return s.cards[s.active], true
}

// Cols returns the current column count
func (s *Selector) Cols() int {
	return s.cols
}

// Rows returns the current row count
func (s *Selector) Rows() int {
	if len(s.cards) == 0 {
		return 0
	}
	return (len(s.cards) + s.cols - 1) / s.cols
}

// Position returns the active card's row and column
func (s *Selector) Position() (row, col int) {
	return s.active / s.cols, s.active % s.cols
}

// Navigate moves the active card in the given direction with wraparound.
// Directional input is a no-op unless the selector is populated.
func (s *Selector) Navigate(move Move) {
	if s.state != SelectorPopulated {
		return
	}

	count := len(s.cards)
	switch move {
	case MoveRight:
		s.active = (s.active + 1) % count
	case MoveLeft:
		s.active = (s.active - 1 + count) % count
	case MoveDown:
		next := s.active + s.cols
		if next >= count {
			// Wrap to the same column in the first row; when the grid has
			// fewer cards than columns, clamp to the last card.
			next = s.active % s.cols
			if next >= count {
				next = count - 1
			}
		}
		s.active = next
	case MoveUp:
		next := s.active - s.cols
		if next < 0 {
			// Wrap to the same column in the last row, clamped when that
			// row is short.
			next = (s.Rows()-1)*s.cols + s.active%s.cols
			if next >= count {
				next = count - 1
			}
		}
		s.active = next
	}
}

// Confirm selects the active card and closes the selector. It reports false
// when the selector is not populated, in which case nothing changes.
func (s *Selector) Confirm() (Outcome, bool) {
	if s.state != SelectorPopulated {
		return Outcome{}, false
	}
	s.outcome = Outcome{Selected: true, Name: s.cards[s.active].Name}
	s.state = SelectorClosed
	return s.outcome, true
}

// Cancel closes the selector without a selection. It is accepted from every
// state, including Loading and Empty.
func (s *Selector) Cancel() Outcome {
	if s.state != SelectorClosed {
		s.outcome = Outcome{}
		s.state = SelectorClosed
	}
	return s.outcome
}

// Outcome returns the terminal outcome once the selector is closed
func (s *Selector) Outcome() (Outcome, bool) {
	if s.state != SelectorClosed {
		return Outcome{}, false
	}
	return s.outcome, true
}

// Reflow recomputes the column count for a new viewport width and remaps
// the active card to the nearest valid position in its row, so the active
// index never leaves the grid.
func (s *Selector) Reflow(width int) {
	cols := columnsForWidth(width)
	if cols == s.cols {
		return
	}

	if s.state != SelectorPopulated {
		s.cols = cols
		return
	}

	row, col := s.Position()
	if col > cols-1 {
		col = cols - 1
	}
	next := row*cols + col
	if next >= len(s.cards) {
		next = len(s.cards) - 1
	}

	s.cols = cols
	s.active = next
}

// cardsFromCatalog projects catalog records onto renderable cards
func cardsFromCatalog(catalog *skills.Catalog) []Card {
	records := catalog.Records()
	cards := make([]Card, 0, len(records))
	for _, record := range records {
		cards = append(cards, Card{
			Name:        record.Name,
			Description: record.ShortDescription,
			Source:      record.Source,
		})
	}
	return cards
}
