package tui

import "github.com/user/gifdeck/internal/search"

// NoSelection is the sentinel for "nothing selected".
const NoSelection = -1

// ColumnsForWidth maps the viewport width (terminal cells) to a grid column
// count via fixed breakpoints.
func ColumnsForWidth(width int) int {
	switch {
	case width <= 40:
		return 1
	case width <= 80:
		return 2
	case width <= 120:
		return 3
	default:
		return 4
	}
}

// Selection tracks a single index over the displayed item sequence. Movement
// clamps at both ends rather than wrapping. The index resets when the
// sequence is replaced wholesale and survives append-only growth.
type Selection struct {
	index int
}

func NewSelection() Selection {
	return Selection{index: NoSelection}
}

func (s Selection) Index() int {
	return s.index
}

func (s *Selection) Reset() {
	s.index = NoSelection
}

func (s *Selection) Select(i int) {
	s.index = i
}

// Move shifts the index by delta within [0, count). From NoSelection any
// movement lands on the first item.
func (s *Selection) Move(delta, count int) {
	if count == 0 {
		s.index = NoSelection
		return
	}
	if s.index == NoSelection {
		s.index = 0
		return
	}

	s.index += delta
	if s.index < 0 {
		s.index = 0
	}
	if s.index >= count {
		s.index = count - 1
	}
}

// MoveRow shifts by one grid row: columns items down (+1) or up (-1).
func (s *Selection) MoveRow(dir, columns, count int) {
	s.Move(dir*columns, count)
}

// Apply reconciles the selection with a new item sequence: an append-only
// extension of the old sequence preserves the index, anything else resets it.
func (s *Selection) Apply(old, updated []search.Item) {
	if !isAppend(old, updated) {
		s.Reset()
		return
	}
	if s.index >= len(updated) {
		s.Reset()
	}
}

// isAppend reports whether updated extends old without disturbing it.
func isAppend(old, updated []search.Item) bool {
	if len(old) == 0 || len(updated) < len(old) {
		return false
	}
	for i := range old {
		if old[i].ID() != updated[i].ID() {
			return false
		}
	}
	return true
}
