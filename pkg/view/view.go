// Package view keeps render proxies for board items and rasterises them
// into a cellbuf.Buffer.
//
// The proxy cache is not derived from the board automatically: whoever
// mutates the board must Add, Remove or Invalidate the affected items.
// A proxy caches the item's bounds and layer set, so an item whose layers
// changed without an UpdateLayers invalidation is drawn in its old colour.
package view

import (
	"image"

	"github.com/samber/lo"

	"github.com/wesen/boardedit/pkg/board"
)

// UpdateFlag says which cached parts of a proxy are stale.
type UpdateFlag int

const (
	UpdateGeometry UpdateFlag = 1 << iota
	UpdateLayers

	UpdateAll = UpdateGeometry | UpdateLayers
)

func (f UpdateFlag) String() string {
	switch f {
	case 0:
		return "none"
	case UpdateGeometry:
		return "geometry"
	case UpdateLayers:
		return "layers"
	case UpdateAll:
		return "all"
	}
	return "invalid"
}

// Proxy is the render-side copy of one item.
type Proxy struct {
	Item   board.Item
	Bounds image.Rectangle
	Layers board.LayerSet

	// Updates counts invalidations; LastUpdate is the most recent flag.
	Updates    int
	LastUpdate UpdateFlag
}

func (p *Proxy) sync(flag UpdateFlag) {
	if flag&UpdateGeometry != 0 {
		p.Bounds = p.Item.Bounds()
	}
	if flag&UpdateLayers != 0 {
		p.Layers = p.Item.Layers()
	}
}

// Synchronizer is the proxy cache.
type Synchronizer struct {
	proxies  map[board.ItemID]*Proxy
	orderIDs []board.ItemID
	preview  []board.Item
	redraws  int
}

// New creates an empty cache.
func New() *Synchronizer {
	return &Synchronizer{proxies: make(map[board.ItemID]*Proxy)}
}

// Load adds every item of b, footprint children included.
func (s *Synchronizer) Load(b *board.Board) {
	b.Walk(func(it board.Item) bool {
		s.Add(it)
		return true
	})
}

// Add creates a proxy for item. Footprint children are not added; callers
// add them explicitly.
func (s *Synchronizer) Add(item board.Item) {
	if _, ok := s.proxies[item.ID()]; ok {
		return
	}
	p := &Proxy{Item: item}
	p.sync(UpdateAll)
	s.proxies[item.ID()] = p
	s.orderIDs = append(s.orderIDs, item.ID())
}

// Remove drops the proxy of item.
func (s *Synchronizer) Remove(item board.Item) {
	if _, ok := s.proxies[item.ID()]; !ok {
		return
	}
	delete(s.proxies, item.ID())
	if i := lo.IndexOf(s.orderIDs, item.ID()); i >= 0 {
		s.orderIDs = append(s.orderIDs[:i], s.orderIDs[i+1:]...)
	}
}

// Invalidate refreshes the cached parts of item's proxy named by flag.
// Footprints pass the invalidation on to their children. Items without a
// proxy, such as a paste preview, are ignored.
func (s *Synchronizer) Invalidate(item board.Item, flag UpdateFlag) {
	if p, ok := s.proxies[item.ID()]; ok {
		p.sync(flag)
		p.Updates++
		p.LastUpdate = flag
	}
	if f, ok := item.(*board.Footprint); ok {
		f.RunOnChildren(func(c board.Item) { s.Invalidate(c, flag) })
	}
}

// Resync makes the proxies of f's children match its current child list.
// It is needed after an undo swapped a footprint's children wholesale.
func (s *Synchronizer) Resync(f *board.Footprint) {
	for _, p := range s.Proxies() {
		if p.Item.Kind().IsChildKind() && s.orphaned(p.Item) {
			s.Remove(p.Item)
		}
	}
	for _, c := range f.Children() {
		s.Add(c)
	}
	s.Invalidate(f, UpdateAll)
}

// orphaned reports whether a child's footprint is gone from the view.
func (s *Synchronizer) orphaned(child board.Item) bool {
	parent := child.Parent()
	return parent == nil || !s.Contains(parent)
}

// Contains reports whether item has a proxy.
func (s *Synchronizer) Contains(item board.Item) bool {
	_, ok := s.proxies[item.ID()]
	return ok
}

// Proxy returns the proxy of item, or nil.
func (s *Synchronizer) Proxy(item board.Item) *Proxy {
	return s.proxies[item.ID()]
}

// Len returns the number of proxies.
func (s *Synchronizer) Len() int { return len(s.proxies) }

// Proxies returns all proxies in insertion order.
func (s *Synchronizer) Proxies() []*Proxy {
	out := make([]*Proxy, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, s.proxies[id])
	}
	return out
}

// ── Preview ──

// SetPreview shows items as a transient overlay that is not part of the
// board.
func (s *Synchronizer) SetPreview(items ...board.Item) {
	s.preview = append([]board.Item(nil), items...)
}

// ClearPreview hides the overlay.
func (s *Synchronizer) ClearPreview() { s.preview = nil }

// Preview returns the items of the overlay.
func (s *Synchronizer) Preview() []board.Item {
	return append([]board.Item(nil), s.preview...)
}

// ── Redraw ──

// Refresh requests a redraw.
func (s *Synchronizer) Refresh() { s.redraws++ }

// Redraws returns how many redraws were requested.
func (s *Synchronizer) Redraws() int { return s.redraws }
