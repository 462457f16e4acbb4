// Package ratsnest derives the unrouted connections of a board.
//
// Conductors on the same net whose anchors coincide form a cluster. The
// ratsnest of a net is a minimum spanning tree over its clusters, and each
// tree edge is drawn as an airwire between the two closest anchors.
//
// Recompute rebuilds everything and is meant to run once per finished
// gesture. While a gesture is in progress Touch marks moved items and
// UpdateSimple re-derives only the airwires that end on them, which is
// cheap enough to run on every pointer motion.
package ratsnest

import (
	"image"
	"math"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/wesen/boardedit/pkg/board"
)

// Airwire is one unrouted connection between two anchors of a net.
type Airwire struct {
	Net      int
	From, To image.Point

	from, to board.Conductor
}

// Length returns the euclidean length of the airwire.
func (a Airwire) Length() float64 {
	d := a.To.Sub(a.From)
	return math.Hypot(float64(d.X), float64(d.Y))
}

// Engine caches the ratsnest of one board.
type Engine struct {
	board *board.Board

	wires   []Airwire
	simple  []Airwire
	dirty   map[board.ItemID]board.Conductor
	recalcs int
}

// New creates an engine for b. The cache is empty until Recompute.
func New(b *board.Board) *Engine {
	return &Engine{board: b, dirty: make(map[board.ItemID]board.Conductor)}
}

// Airwires returns the result of the last Recompute.
func (e *Engine) Airwires() []Airwire {
	return append([]Airwire(nil), e.wires...)
}

// Simple returns the overlay built by UpdateSimple.
func (e *Engine) Simple() []Airwire {
	return append([]Airwire(nil), e.simple...)
}

// RecomputeCount returns how many full rebuilds ran.
func (e *Engine) RecomputeCount() int { return e.recalcs }

// Dirty reports whether item was touched since the last Recompute.
func (e *Engine) Dirty(item board.Item) bool {
	_, ok := e.dirty[item.ID()]
	return ok
}

// Touch marks the conductors of item as moved. Footprints touch their
// pads; items without connectivity are ignored.
func (e *Engine) Touch(item board.Item) {
	if f, ok := item.(*board.Footprint); ok {
		for _, p := range f.Pads() {
			e.dirty[p.ID()] = p
		}
		return
	}
	if c, ok := item.(board.Conductor); ok {
		e.dirty[c.ID()] = c
	}
}

// UpdateSimple rebuilds the overlay: every cached airwire that ends on a
// touched conductor is re-anchored at the conductor's current position.
// Airwires of untouched conductors are left out of the overlay since they
// are already shown by the cached result.
func (e *Engine) UpdateSimple() {
	e.simple = e.simple[:0]
	for _, w := range e.wires {
		_, fromDirty := e.dirty[w.from.ID()]
		_, toDirty := e.dirty[w.to.ID()]
		if !fromDirty && !toDirty {
			continue
		}
		w.From, w.To = closestAnchors(w.from, w.to)
		e.simple = append(e.simple, w)
	}
}

// Visible returns what a render pass draws: the cached airwires that no
// touched conductor ends on, followed by the overlay.
func (e *Engine) Visible() []Airwire {
	out := lo.Filter(e.wires, func(w Airwire, _ int) bool {
		return !e.Dirty(w.from) && !e.Dirty(w.to)
	})
	return append(out, e.simple...)
}

// ClearSimple drops the overlay.
func (e *Engine) ClearSimple() {
	e.simple = nil
}

// Recompute rebuilds the ratsnest of every net from the board and clears
// the dirty set.
func (e *Engine) Recompute() {
	e.recalcs++
	e.wires = nil
	e.dirty = make(map[board.ItemID]board.Conductor)

	byNet := lo.GroupBy(
		lo.Filter(e.board.Conductors(), func(c board.Conductor, _ int) bool { return c.Net() > 0 }),
		func(c board.Conductor) int { return c.Net() },
	)
	nets := lo.Keys(byNet)
	sort.Ints(nets)
	for _, net := range nets {
		e.wires = append(e.wires, netWires(net, byNet[net])...)
	}
}

// netWires computes the spanning airwires of one net.
func netWires(net int, cs []board.Conductor) []Airwire {
	if len(cs) < 2 {
		return nil
	}

	// cluster conductors that share an anchor
	touch := simple.NewUndirectedGraph()
	for i := range cs {
		touch.AddNode(simple.Node(i))
	}
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			if connected(cs[i], cs[j]) {
				touch.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	clusters := topo.ConnectedComponents(touch)
	if len(clusters) < 2 {
		return nil
	}
	sort.Slice(clusters, func(a, b int) bool { return minID(clusters[a]) < minID(clusters[b]) })

	// shortest link between every pair of clusters
	type link struct{ from, to board.Conductor }
	links := make(map[[2]int64]link)
	full := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range clusters {
		full.AddNode(simple.Node(i))
	}
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			best, l := math.Inf(1), link{}
			for _, a := range clusters[i] {
				for _, b := range clusters[j] {
					ca, cb := cs[a.ID()], cs[b.ID()]
					pa, pb := closestAnchors(ca, cb)
					if d := dist(pa, pb); d < best {
						best, l = d, link{ca, cb}
					}
				}
			}
			full.SetWeightedEdge(full.NewWeightedEdge(simple.Node(i), simple.Node(j), best))
			links[[2]int64{int64(i), int64(j)}] = l
		}
	}

	tree := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Kruskal(tree, full)

	var out []Airwire
	edges := graph.EdgesOf(tree.Edges())
	sort.Slice(edges, func(a, b int) bool {
		ea, eb := ordered(edges[a]), ordered(edges[b])
		if ea[0] != eb[0] {
			return ea[0] < eb[0]
		}
		return ea[1] < eb[1]
	})
	for _, ed := range edges {
		l := links[ordered(ed)]
		from, to := closestAnchors(l.from, l.to)
		out = append(out, Airwire{Net: net, From: from, To: to, from: l.from, to: l.to})
	}
	return out
}

func ordered(e graph.Edge) [2]int64 {
	a, b := e.From().ID(), e.To().ID()
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func minID(nodes []graph.Node) int64 {
	return lo.Min(lo.Map(nodes, func(n graph.Node, _ int) int64 { return n.ID() }))
}

// connected reports whether two conductors share an anchor or one anchor
// lies on the other's copper.
func connected(a, b board.Conductor) bool {
	if !a.Layers().Overlaps(b.Layers()) {
		return false
	}
	for _, p := range a.Anchors() {
		if b.HitTest(p) {
			return true
		}
	}
	for _, p := range b.Anchors() {
		if a.HitTest(p) {
			return true
		}
	}
	return false
}

func closestAnchors(a, b board.Conductor) (image.Point, image.Point) {
	best := math.Inf(1)
	var pa, pb image.Point
	for _, p := range a.Anchors() {
		for _, q := range b.Anchors() {
			if d := dist(p, q); d < best {
				best, pa, pb = d, p, q
			}
		}
	}
	return pa, pb
}

func dist(a, b image.Point) float64 {
	d := b.Sub(a)
	return math.Hypot(float64(d.X), float64(d.Y))
}
