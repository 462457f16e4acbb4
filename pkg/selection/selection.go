// Package selection tracks the items the user has chosen on a board.
package selection

import (
	"image"

	"github.com/samber/lo"

	"github.com/wesen/boardedit/pkg/board"
)

// Selection is an ordered set of items. Every member carries
// board.FlagSelected while it is selected.
type Selection struct {
	board        *board.Board
	items        []board.Item
	editChildren bool
}

// New creates an empty selection over b.
func New(b *board.Board) *Selection {
	return &Selection{board: b}
}

// Items returns a copy of the selected items in selection order. Later
// changes to the selection do not affect the returned slice.
func (s *Selection) Items() []board.Item {
	return append([]board.Item(nil), s.items...)
}

func (s *Selection) Len() int    { return len(s.items) }
func (s *Selection) Empty() bool { return len(s.items) == 0 }

// Front returns the first selected item, or nil.
func (s *Selection) Front() board.Item {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[0]
}

func (s *Selection) Contains(item board.Item) bool {
	return lo.Contains(s.items, item)
}

// Add appends item if it is not already selected.
func (s *Selection) Add(item board.Item) {
	if item == nil || s.Contains(item) {
		return
	}
	item.SetFlags(board.FlagSelected)
	s.items = append(s.items, item)
}

// Remove drops item from the selection.
func (s *Selection) Remove(item board.Item) {
	idx := lo.IndexOf(s.items, item)
	if idx < 0 {
		return
	}
	item.ClearFlags(board.FlagSelected)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}

// Toggle adds item if it is absent and removes it otherwise.
func (s *Selection) Toggle(item board.Item) {
	if s.Contains(item) {
		s.Remove(item)
		return
	}
	s.Add(item)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	for _, it := range s.items {
		it.ClearFlags(board.FlagSelected)
	}
	s.items = nil
}

// Prune drops members that are no longer reachable from the board.
func (s *Selection) Prune() {
	for _, it := range s.Items() {
		if !s.board.Contains(it) {
			s.Remove(it)
		}
	}
}

// SetEditChildren makes pointer picks prefer footprint children.
func (s *Selection) SetEditChildren(on bool) { s.editChildren = on }

// PickOneUnderPointer selects the topmost item under p, if any, and
// reports whether something was picked.
func (s *Selection) PickOneUnderPointer(p image.Point) bool {
	it := s.board.HitTest(p, s.editChildren)
	if it == nil {
		return false
	}
	s.Add(it)
	return true
}

// SelectInRect replaces the selection with the top-level items whose
// bounds intersect r.
func (s *Selection) SelectInRect(r image.Rectangle) {
	s.Clear()
	for _, it := range s.board.ItemsInRect(r) {
		s.Add(it)
	}
}
