package board

import (
	"image"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Ownership contract violations.
var (
	ErrAlreadyOwned = errors.New("item already has an owner")
	ErrNotOwned     = errors.New("item is not owned here")
)

// Board owns the top-level items of a document in insertion order, plus
// the net table used by conductors.
type Board struct {
	items    map[ItemID]Item
	orderIDs []ItemID // insertion order for deterministic iteration
	nets     map[int]string
}

// New creates an empty board with the unconnected net 0.
func New() *Board {
	return &Board{
		items: make(map[ItemID]Item),
		nets:  map[int]string{0: ""},
	}
}

// ── Items ──

// Add takes ownership of a top-level item.
func (b *Board) Add(item Item) error {
	if item.Kind().IsChildKind() {
		return errors.Errorf("a %s must be added to a footprint", item.Kind())
	}
	base := item.base()
	if base.owner != ownerNone {
		return errors.Wrapf(ErrAlreadyOwned, "adding %s %s", item.Kind(), item.ID())
	}
	base.owner = ownerBoard
	b.items[item.ID()] = item
	b.orderIDs = append(b.orderIDs, item.ID())
	return nil
}

// Remove releases a top-level item. Footprint children are removed through
// their footprint.
func (b *Board) Remove(item Item) error {
	if _, ok := b.items[item.ID()]; !ok {
		return errors.Wrapf(ErrNotOwned, "removing %s %s", item.Kind(), item.ID())
	}
	delete(b.items, item.ID())
	if i := lo.IndexOf(b.orderIDs, item.ID()); i >= 0 {
		b.orderIDs = append(b.orderIDs[:i], b.orderIDs[i+1:]...)
	}
	item.base().owner = ownerNone
	return nil
}

// Item returns the top-level item with the given ID, or nil.
func (b *Board) Item(id ItemID) Item {
	return b.items[id]
}

// Items returns all top-level items in insertion order.
func (b *Board) Items() []Item {
	result := make([]Item, 0, len(b.orderIDs))
	for _, id := range b.orderIDs {
		if it, ok := b.items[id]; ok {
			result = append(result, it)
		}
	}
	return result
}

// Len returns the number of top-level items.
func (b *Board) Len() int {
	return len(b.orderIDs)
}

// Footprints returns the footprints in insertion order.
func (b *Board) Footprints() []*Footprint {
	var out []*Footprint
	for _, it := range b.Items() {
		if f, ok := it.(*Footprint); ok {
			out = append(out, f)
		}
	}
	return out
}

// Contains reports whether item is reachable from the board, either as a
// top-level item or as a child of a top-level footprint.
func (b *Board) Contains(item Item) bool {
	if p := item.Parent(); p != nil {
		return b.items[p.ID()] == p && lo.Contains(p.children, item)
	}
	return b.items[item.ID()] == item
}

// Walk visits every top-level item and, after each footprint, its
// children. Returning false from fn stops the walk.
func (b *Board) Walk(fn func(Item) bool) {
	for _, it := range b.Items() {
		if !fn(it) {
			return
		}
		if f, ok := it.(*Footprint); ok {
			for _, c := range f.children {
				if !fn(c) {
					return
				}
			}
		}
	}
}

// Conductors returns every item that takes part in connectivity,
// including footprint pads.
func (b *Board) Conductors() []Conductor {
	var out []Conductor
	b.Walk(func(it Item) bool {
		if c, ok := it.(Conductor); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ── Spatial queries ──

// HitTest returns the item under pt. Vias and pads win over everything
// else they overlap, so a via is picked rather than the tracks ending on
// it; otherwise the topmost item wins. With children set, footprint
// children are preferred over their footprint, which is how items are
// picked while editing inside a footprint.
func (b *Board) HitTest(pt image.Point, children bool) Item {
	var best Item
	for i := len(b.orderIDs) - 1; i >= 0; i-- {
		it := b.items[b.orderIDs[i]]
		if it == nil {
			continue
		}
		hit := it
		if f, ok := it.(*Footprint); ok && children {
			if c := f.ChildAt(pt); c != nil {
				hit = c
			}
		}
		if hit == it && !it.HitTest(pt) {
			continue
		}
		if best == nil || pickPriority(hit) > pickPriority(best) {
			best = hit
		}
	}
	return best
}

// pickPriority ranks items that overlap at one point.
func pickPriority(it Item) int {
	switch it.Kind() {
	case KindVia, KindPad:
		return 1
	}
	return 0
}

// ItemsInRect returns the top-level items whose bounds intersect r, in
// insertion order.
func (b *Board) ItemsInRect(r image.Rectangle) []Item {
	return lo.Filter(b.Items(), func(it Item, _ int) bool {
		return it.Bounds().Overlaps(r)
	})
}

// Bounds returns the union of all item bounds.
func (b *Board) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, it := range b.Items() {
		r = r.Union(it.Bounds())
	}
	return r
}

// ── Nets ──

// AddNet registers a net name under code.
func (b *Board) AddNet(code int, name string) {
	b.nets[code] = name
}

// NetName returns the name of a net, or "" for unknown codes.
func (b *Board) NetName(code int) string {
	return b.nets[code]
}

// NetCodes returns the registered net codes in ascending order.
func (b *Board) NetCodes() []int {
	codes := lo.Keys(b.nets)
	sort.Ints(codes)
	return codes
}
