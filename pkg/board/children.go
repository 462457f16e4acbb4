package board

import (
	"image"

	"github.com/wesen/boardedit/pkg/geom"
)

// PadShape is the copper outline of a pad.
type PadShape int

const (
	PadRect PadShape = iota
	PadCircle
	PadOval
)

// ── Pad ──

// Pad is a copper land of a footprint.
type Pad struct {
	itemBase
	Number  string
	Pos     image.Point
	Pos0    image.Point
	Size    image.Point
	Shape   PadShape
	Orient  geom.Angle
	Orient0 geom.Angle
	Layer   LayerSet
	NetCode int
}

// NewPad creates an unowned surface pad on the front copper layer.
func NewPad(number string, pos, size image.Point, net int) *Pad {
	return &Pad{itemBase: newBase(), Number: number, Pos: pos, Size: size, Layer: LayersOf(LayerFrontCu), NetCode: net}
}

func (p *Pad) Kind() Kind                { return KindPad }
func (p *Pad) Position() image.Point     { return p.Pos }
func (p *Pad) SetPosition(q image.Point) { p.Pos = q }
func (p *Pad) Move(delta image.Point)    { p.Pos = p.Pos.Add(delta) }
func (p *Pad) Layers() LayerSet          { return p.Layer }
func (p *Pad) Net() int                  { return p.NetCode }
func (p *Pad) SetNet(code int)           { p.NetCode = code }
func (p *Pad) Anchors() []image.Point    { return []image.Point{p.Pos} }

func (p *Pad) Rotate(center image.Point, angle geom.Angle) {
	p.Pos = geom.Rotate(p.Pos, center, angle)
	p.Orient = (p.Orient + angle).Normalize()
}

func (p *Pad) Flip(center image.Point) {
	p.Pos = geom.Mirror(p.Pos, center)
	p.Orient = geom.MirrorAngle(p.Orient)
	p.Layer = p.Layer.Flip()
}

func (p *Pad) Bounds() image.Rectangle {
	half := p.Size.Div(2)
	r := image.Rectangle{Min: p.Pos.Sub(half), Max: p.Pos.Add(half).Add(image.Pt(1, 1))}
	return geom.RotateRect(r, p.Pos, p.Orient)
}

func (p *Pad) HitTest(q image.Point) bool {
	if p.Shape == PadCircle {
		return geom.Dist(q, p.Pos) <= halfWidth(max(p.Size.X, p.Size.Y))
	}
	return q.In(p.Bounds())
}

func (p *Pad) SetLocalCoord() {
	if p.parent == nil {
		p.Pos0 = p.Pos
		p.Orient0 = p.Orient
		return
	}
	p.Pos0 = geom.ToLocal(p.Pos, p.parent.Pos, p.parent.Orient)
	p.Orient0 = (p.Orient - p.parent.Orient).Normalize()
}

func (p *Pad) Clone() Item {
	c := *p
	c.itemBase = p.cloneBase()
	return &c
}

func (p *Pad) SwapData(other Item) {
	o := other.(*Pad)
	pb, ob := p.itemBase, o.itemBase
	*p, *o = *o, *p
	p.itemBase, o.itemBase = pb, ob
}

// ── FootprintText ──

// FootprintText is a label owned by a footprint. Reference and value
// labels are mandatory for their footprint.
type FootprintText struct {
	itemBase
	Role     TextRole
	Value    string
	Pos      image.Point
	Pos0     image.Point
	Angle    geom.Angle
	Size     int
	Layer    Layer
	Mirrored bool
}

// NewFootprintText creates an unowned footprint label on the front silk.
func NewFootprintText(role TextRole, value string, pos image.Point) *FootprintText {
	return &FootprintText{itemBase: newBase(), Role: role, Value: value, Pos: pos, Size: defaultTextSize, Layer: LayerFrontSilk}
}

func (t *FootprintText) Kind() Kind                 { return KindFootprintText }
func (t *FootprintText) Position() image.Point      { return t.Pos }
func (t *FootprintText) SetPosition(p image.Point)  { t.Pos = p }
func (t *FootprintText) Move(delta image.Point)     { t.Pos = t.Pos.Add(delta) }
func (t *FootprintText) Layers() LayerSet           { return LayersOf(t.Layer) }
func (t *FootprintText) Bounds() image.Rectangle    { return textBounds(t.Pos, t.Value, t.Size, t.Angle) }
func (t *FootprintText) HitTest(p image.Point) bool { return p.In(t.Bounds()) }

func (t *FootprintText) Rotate(center image.Point, angle geom.Angle) {
	t.Pos = geom.Rotate(t.Pos, center, angle)
	t.Angle = (t.Angle + angle).Normalize()
}

func (t *FootprintText) Flip(center image.Point) {
	t.Pos = geom.Mirror(t.Pos, center)
	t.Angle = geom.MirrorAngle(t.Angle)
	t.Layer = t.Layer.Flip()
	t.Mirrored = !t.Mirrored
}

func (t *FootprintText) SetLocalCoord() {
	if t.parent == nil {
		t.Pos0 = t.Pos
		return
	}
	t.Pos0 = geom.ToLocal(t.Pos, t.parent.Pos, t.parent.Orient)
}

func (t *FootprintText) Clone() Item {
	c := *t
	c.itemBase = t.cloneBase()
	return &c
}

func (t *FootprintText) SwapData(other Item) {
	o := other.(*FootprintText)
	tb, ob := t.itemBase, o.itemBase
	*t, *o = *o, *t
	t.itemBase, o.itemBase = tb, ob
}

// ── FootprintEdge ──

// FootprintEdge is an outline segment drawn as part of a footprint.
type FootprintEdge struct {
	itemBase
	Start, End   image.Point
	Start0, End0 image.Point
	Width        int
	Layer        Layer
}

// NewFootprintEdge creates an unowned footprint outline segment.
func NewFootprintEdge(start, end image.Point, width int, layer Layer) *FootprintEdge {
	return &FootprintEdge{itemBase: newBase(), Start: start, End: end, Width: width, Layer: layer}
}

func (e *FootprintEdge) Kind() Kind                { return KindFootprintEdge }
func (e *FootprintEdge) Position() image.Point     { return e.Start }
func (e *FootprintEdge) SetPosition(p image.Point) { e.Move(p.Sub(e.Start)) }
func (e *FootprintEdge) Layers() LayerSet          { return LayersOf(e.Layer) }
func (e *FootprintEdge) Bounds() image.Rectangle   { return geom.Segment(e.Start, e.End, e.Width) }

func (e *FootprintEdge) Move(delta image.Point) {
	e.Start = e.Start.Add(delta)
	e.End = e.End.Add(delta)
}

func (e *FootprintEdge) Rotate(center image.Point, angle geom.Angle) {
	e.Start = geom.Rotate(e.Start, center, angle)
	e.End = geom.Rotate(e.End, center, angle)
}

func (e *FootprintEdge) Flip(center image.Point) {
	e.Start = geom.Mirror(e.Start, center)
	e.End = geom.Mirror(e.End, center)
	e.Layer = e.Layer.Flip()
}

func (e *FootprintEdge) HitTest(p image.Point) bool {
	return geom.DistToSegment(p, e.Start, e.End) <= halfWidth(e.Width)
}

func (e *FootprintEdge) SetLocalCoord() {
	if e.parent == nil {
		e.Start0, e.End0 = e.Start, e.End
		return
	}
	e.Start0 = geom.ToLocal(e.Start, e.parent.Pos, e.parent.Orient)
	e.End0 = geom.ToLocal(e.End, e.parent.Pos, e.parent.Orient)
}

func (e *FootprintEdge) Clone() Item {
	c := *e
	c.itemBase = e.cloneBase()
	return &c
}

func (e *FootprintEdge) SwapData(other Item) {
	o := other.(*FootprintEdge)
	eb, ob := e.itemBase, o.itemBase
	*e, *o = *o, *e
	e.itemBase, o.itemBase = eb, ob
}
