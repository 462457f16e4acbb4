package board

import (
	"image"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wesen/boardedit/pkg/geom"
)

// Footprint groups the pads, labels and outline of one component. Its
// children keep board coordinates plus an offset relative to the
// footprint, so moving the footprint moves them along.
type Footprint struct {
	itemBase
	Pos      image.Point
	Orient   geom.Angle
	Layer    Layer
	Name     string
	LastEdit time.Time

	children []Item
}

// NewFootprint creates an empty unowned footprint on the front copper
// layer.
func NewFootprint(name string, pos image.Point) *Footprint {
	return &Footprint{itemBase: newBase(), Pos: pos, Layer: LayerFrontCu, Name: name}
}

func (f *Footprint) Kind() Kind            { return KindFootprint }
func (f *Footprint) Position() image.Point { return f.Pos }
func (f *Footprint) Layers() LayerSet      { return LayersOf(f.Layer) }

// SetPosition moves the footprint and its children so that its anchor
// lands on p.
func (f *Footprint) SetPosition(p image.Point) { f.Move(p.Sub(f.Pos)) }

func (f *Footprint) Move(delta image.Point) {
	f.Pos = f.Pos.Add(delta)
	for _, c := range f.children {
		c.Move(delta)
	}
}

func (f *Footprint) Rotate(center image.Point, angle geom.Angle) {
	f.Pos = geom.Rotate(f.Pos, center, angle)
	f.Orient = (f.Orient + angle).Normalize()
	for _, c := range f.children {
		c.Rotate(center, angle)
	}
}

// Flip mirrors the footprint to the other side of the board. The local
// offsets of the children change with the mirrored frame, so they are
// recomputed.
func (f *Footprint) Flip(center image.Point) {
	f.Pos = geom.Mirror(f.Pos, center)
	f.Orient = geom.MirrorAngle(f.Orient)
	f.Layer = f.Layer.Flip()
	for _, c := range f.children {
		c.Flip(center)
	}
	for _, c := range f.children {
		if ch, ok := c.(Child); ok {
			ch.SetLocalCoord()
		}
	}
}

func (f *Footprint) Bounds() image.Rectangle {
	r := geom.Around(f.Pos, 1)
	for _, c := range f.children {
		r = r.Union(c.Bounds())
	}
	return r
}

func (f *Footprint) HitTest(p image.Point) bool {
	return p.In(f.Bounds())
}

// Clone deep-copies the footprint and all of its children.
func (f *Footprint) Clone() Item {
	c := *f
	c.itemBase = f.cloneBase()
	c.children = make([]Item, 0, len(f.children))
	for _, ch := range f.children {
		dup := ch.Clone()
		b := dup.base()
		b.owner = ownerFootprint
		b.parent = &c
		c.children = append(c.children, dup)
	}
	return &c
}

// SwapData exchanges placement and attributes with other. When both
// footprints have the same child layout the children swap data pairwise so
// that child identities survive an undo; otherwise the child lists are
// exchanged wholesale.
func (f *Footprint) SwapData(other Item) {
	o := other.(*Footprint)
	fb, ob := f.itemBase, o.itemBase
	fc, oc := f.children, o.children
	*f, *o = *o, *f
	f.itemBase, o.itemBase = fb, ob

	if sameLayout(fc, oc) {
		f.children, o.children = fc, oc
		for i := range fc {
			fc[i].SwapData(oc[i])
		}
		return
	}
	f.children, o.children = oc, fc
	for _, c := range f.children {
		c.base().parent = f
	}
	for _, c := range o.children {
		c.base().parent = o
	}
}

func sameLayout(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind() != b[i].Kind() {
			return false
		}
	}
	return true
}

// Children returns the child items in insertion order.
func (f *Footprint) Children() []Item {
	return append([]Item(nil), f.children...)
}

// Pads returns the pads of the footprint.
func (f *Footprint) Pads() []*Pad {
	var out []*Pad
	for _, c := range f.children {
		if p, ok := c.(*Pad); ok {
			out = append(out, p)
		}
	}
	return out
}

// Reference returns the reference label, or nil if the footprint has none.
func (f *Footprint) Reference() *FootprintText { return f.labelWithRole(RoleReference) }

// Value returns the value label, or nil if the footprint has none.
func (f *Footprint) Value() *FootprintText { return f.labelWithRole(RoleValue) }

func (f *Footprint) labelWithRole(role TextRole) *FootprintText {
	for _, c := range f.children {
		if t, ok := c.(*FootprintText); ok && t.Role == role {
			return t
		}
	}
	return nil
}

// Add takes ownership of child. The child keeps its board position and its
// local offset is computed from the footprint's current placement.
func (f *Footprint) Add(child Item) error {
	if !child.Kind().IsChildKind() {
		return errors.Errorf("a %s cannot be placed inside a footprint", child.Kind())
	}
	b := child.base()
	if b.owner != ownerNone {
		return errors.Wrapf(ErrAlreadyOwned, "adding %s %s", child.Kind(), child.ID())
	}
	b.owner = ownerFootprint
	b.parent = f
	f.children = append(f.children, child)
	child.(Child).SetLocalCoord()
	return nil
}

// Remove releases ownership of child.
func (f *Footprint) Remove(child Item) error {
	idx := lo.IndexOf(f.children, child)
	if idx < 0 {
		return errors.Wrapf(ErrNotOwned, "removing %s %s from footprint %s", child.Kind(), child.ID(), f.Name)
	}
	f.children = append(f.children[:idx], f.children[idx+1:]...)
	b := child.base()
	b.owner = ownerNone
	b.parent = nil
	return nil
}

// RunOnChildren calls fn for each child.
func (f *Footprint) RunOnChildren(fn func(Item)) {
	for _, c := range f.children {
		fn(c)
	}
}

// ChildAt returns the topmost child whose area contains p, optionally
// restricted to one kind.
func (f *Footprint) ChildAt(p image.Point, kinds ...Kind) Item {
	for i := len(f.children) - 1; i >= 0; i-- {
		c := f.children[i]
		if len(kinds) > 0 && !lo.Contains(kinds, c.Kind()) {
			continue
		}
		if c.HitTest(p) {
			return c
		}
	}
	return nil
}

// SetLastEditTime stamps the footprint as modified now.
func (f *Footprint) SetLastEditTime() {
	f.LastEdit = time.Now()
}
