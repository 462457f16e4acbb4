package board

import (
	"image"

	"github.com/wesen/boardedit/pkg/geom"
)

// defaultTextSize is the glyph height used when a text has no size set.
const defaultTextSize = 1

// ── Track ──

// Track is a copper segment on one layer.
type Track struct {
	itemBase
	Start, End image.Point
	Width      int
	Layer      Layer
	NetCode    int
}

// NewTrack creates an unowned track.
func NewTrack(start, end image.Point, width int, layer Layer, net int) *Track {
	return &Track{itemBase: newBase(), Start: start, End: end, Width: width, Layer: layer, NetCode: net}
}

func (t *Track) Kind() Kind                { return KindTrack }
func (t *Track) Position() image.Point     { return t.Start }
func (t *Track) SetPosition(p image.Point) { t.Move(p.Sub(t.Start)) }
func (t *Track) Layers() LayerSet          { return LayersOf(t.Layer) }
func (t *Track) Net() int                  { return t.NetCode }
func (t *Track) SetNet(code int)           { t.NetCode = code }
func (t *Track) Anchors() []image.Point    { return []image.Point{t.Start, t.End} }
func (t *Track) Bounds() image.Rectangle   { return geom.Segment(t.Start, t.End, t.Width) }

func (t *Track) Move(delta image.Point) {
	t.Start = t.Start.Add(delta)
	t.End = t.End.Add(delta)
}

func (t *Track) Rotate(center image.Point, angle geom.Angle) {
	t.Start = geom.Rotate(t.Start, center, angle)
	t.End = geom.Rotate(t.End, center, angle)
}

func (t *Track) Flip(center image.Point) {
	t.Start = geom.Mirror(t.Start, center)
	t.End = geom.Mirror(t.End, center)
	t.Layer = t.Layer.Flip()
}

func (t *Track) HitTest(p image.Point) bool {
	return geom.DistToSegment(p, t.Start, t.End) <= halfWidth(t.Width)
}

func (t *Track) Clone() Item {
	c := *t
	c.itemBase = t.cloneBase()
	return &c
}

func (t *Track) SwapData(other Item) {
	o := other.(*Track)
	tb, ob := t.itemBase, o.itemBase
	*t, *o = *o, *t
	t.itemBase, o.itemBase = tb, ob
}

// ── Via ──

// Via joins the copper layers at a point.
type Via struct {
	itemBase
	Pos      image.Point
	Diameter int
	Drill    int
	NetCode  int
}

// NewVia creates an unowned through via.
func NewVia(pos image.Point, diameter, drill, net int) *Via {
	return &Via{itemBase: newBase(), Pos: pos, Diameter: diameter, Drill: drill, NetCode: net}
}

func (v *Via) Kind() Kind                                  { return KindVia }
func (v *Via) Position() image.Point                       { return v.Pos }
func (v *Via) SetPosition(p image.Point)                   { v.Pos = p }
func (v *Via) Move(delta image.Point)                      { v.Pos = v.Pos.Add(delta) }
func (v *Via) Rotate(center image.Point, angle geom.Angle) { v.Pos = geom.Rotate(v.Pos, center, angle) }
func (v *Via) Flip(center image.Point)                     { v.Pos = geom.Mirror(v.Pos, center) }
func (v *Via) Layers() LayerSet                            { return CopperLayers }
func (v *Via) Net() int                                    { return v.NetCode }
func (v *Via) SetNet(code int)                             { v.NetCode = code }
func (v *Via) Anchors() []image.Point                      { return []image.Point{v.Pos} }
func (v *Via) Bounds() image.Rectangle                     { return geom.Around(v.Pos, v.Diameter/2) }
func (v *Via) HitTest(p image.Point) bool                  { return geom.Dist(p, v.Pos) <= halfWidth(v.Diameter) }

func (v *Via) Clone() Item {
	c := *v
	c.itemBase = v.cloneBase()
	return &c
}

func (v *Via) SwapData(other Item) {
	o := other.(*Via)
	vb, ob := v.itemBase, o.itemBase
	*v, *o = *o, *v
	v.itemBase, o.itemBase = vb, ob
}

// ── Graphic ──

// Graphic is a drawn line on a non-copper layer.
type Graphic struct {
	itemBase
	Start, End image.Point
	Width      int
	Layer      Layer
}

// NewGraphic creates an unowned graphic segment.
func NewGraphic(start, end image.Point, width int, layer Layer) *Graphic {
	return &Graphic{itemBase: newBase(), Start: start, End: end, Width: width, Layer: layer}
}

func (g *Graphic) Kind() Kind                { return KindGraphic }
func (g *Graphic) Position() image.Point     { return g.Start }
func (g *Graphic) SetPosition(p image.Point) { g.Move(p.Sub(g.Start)) }
func (g *Graphic) Layers() LayerSet          { return LayersOf(g.Layer) }
func (g *Graphic) Bounds() image.Rectangle   { return geom.Segment(g.Start, g.End, g.Width) }

func (g *Graphic) Move(delta image.Point) {
	g.Start = g.Start.Add(delta)
	g.End = g.End.Add(delta)
}

func (g *Graphic) Rotate(center image.Point, angle geom.Angle) {
	g.Start = geom.Rotate(g.Start, center, angle)
	g.End = geom.Rotate(g.End, center, angle)
}

func (g *Graphic) Flip(center image.Point) {
	g.Start = geom.Mirror(g.Start, center)
	g.End = geom.Mirror(g.End, center)
	g.Layer = g.Layer.Flip()
}

func (g *Graphic) HitTest(p image.Point) bool {
	return geom.DistToSegment(p, g.Start, g.End) <= halfWidth(g.Width)
}

func (g *Graphic) Clone() Item {
	c := *g
	c.itemBase = g.cloneBase()
	return &c
}

func (g *Graphic) SwapData(other Item) {
	o := other.(*Graphic)
	gb, ob := g.itemBase, o.itemBase
	*g, *o = *o, *g
	g.itemBase, o.itemBase = gb, ob
}

// ── Text ──

// Text is free text placed on a board layer.
type Text struct {
	itemBase
	Pos      image.Point
	Value    string
	Angle    geom.Angle
	Size     int
	Layer    Layer
	Mirrored bool
}

// NewText creates an unowned board text.
func NewText(pos image.Point, value string, layer Layer) *Text {
	return &Text{itemBase: newBase(), Pos: pos, Value: value, Size: defaultTextSize, Layer: layer}
}

func (t *Text) Kind() Kind                 { return KindText }
func (t *Text) Position() image.Point      { return t.Pos }
func (t *Text) SetPosition(p image.Point)  { t.Pos = p }
func (t *Text) Move(delta image.Point)     { t.Pos = t.Pos.Add(delta) }
func (t *Text) Layers() LayerSet           { return LayersOf(t.Layer) }
func (t *Text) Bounds() image.Rectangle    { return textBounds(t.Pos, t.Value, t.Size, t.Angle) }
func (t *Text) HitTest(p image.Point) bool { return p.In(t.Bounds()) }

func (t *Text) Rotate(center image.Point, angle geom.Angle) {
	t.Pos = geom.Rotate(t.Pos, center, angle)
	t.Angle = (t.Angle + angle).Normalize()
}

func (t *Text) Flip(center image.Point) {
	t.Pos = geom.Mirror(t.Pos, center)
	t.Angle = geom.MirrorAngle(t.Angle)
	t.Layer = t.Layer.Flip()
	t.Mirrored = !t.Mirrored
}

func (t *Text) Clone() Item {
	c := *t
	c.itemBase = t.cloneBase()
	return &c
}

func (t *Text) SwapData(other Item) {
	o := other.(*Text)
	tb, ob := t.itemBase, o.itemBase
	*t, *o = *o, *t
	t.itemBase, o.itemBase = tb, ob
}

// ── Dimension ──

// Dimension is a measurement annotation between two points.
type Dimension struct {
	itemBase
	Start, End image.Point
	Width      int
	Layer      Layer
	Label      string
}

// NewDimension creates an unowned dimension.
func NewDimension(start, end image.Point, layer Layer, label string) *Dimension {
	return &Dimension{itemBase: newBase(), Start: start, End: end, Width: 1, Layer: layer, Label: label}
}

func (d *Dimension) Kind() Kind                { return KindDimension }
func (d *Dimension) Position() image.Point     { return d.Start }
func (d *Dimension) SetPosition(p image.Point) { d.Move(p.Sub(d.Start)) }
func (d *Dimension) Layers() LayerSet          { return LayersOf(d.Layer) }
func (d *Dimension) Bounds() image.Rectangle   { return geom.Segment(d.Start, d.End, d.Width) }

func (d *Dimension) Move(delta image.Point) {
	d.Start = d.Start.Add(delta)
	d.End = d.End.Add(delta)
}

func (d *Dimension) Rotate(center image.Point, angle geom.Angle) {
	d.Start = geom.Rotate(d.Start, center, angle)
	d.End = geom.Rotate(d.End, center, angle)
}

func (d *Dimension) Flip(center image.Point) {
	d.Start = geom.Mirror(d.Start, center)
	d.End = geom.Mirror(d.End, center)
	d.Layer = d.Layer.Flip()
}

func (d *Dimension) HitTest(p image.Point) bool {
	return geom.DistToSegment(p, d.Start, d.End) <= halfWidth(d.Width)
}

func (d *Dimension) Clone() Item {
	c := *d
	c.itemBase = d.cloneBase()
	return &c
}

func (d *Dimension) SwapData(other Item) {
	o := other.(*Dimension)
	db, ob := d.itemBase, o.itemBase
	*d, *o = *o, *d
	d.itemBase, o.itemBase = db, ob
}

// ── Target ──

// Target is an alignment mark.
type Target struct {
	itemBase
	Pos   image.Point
	Size  int
	Layer Layer
}

// NewTarget creates an unowned alignment target.
func NewTarget(pos image.Point, size int, layer Layer) *Target {
	return &Target{itemBase: newBase(), Pos: pos, Size: size, Layer: layer}
}

func (t *Target) Kind() Kind                { return KindTarget }
func (t *Target) Position() image.Point     { return t.Pos }
func (t *Target) SetPosition(p image.Point) { t.Pos = p }
func (t *Target) Move(delta image.Point)    { t.Pos = t.Pos.Add(delta) }
func (t *Target) Rotate(center image.Point, angle geom.Angle) {
	t.Pos = geom.Rotate(t.Pos, center, angle)
}
func (t *Target) Layers() LayerSet           { return LayersOf(t.Layer) }
func (t *Target) Bounds() image.Rectangle    { return geom.Around(t.Pos, t.Size/2) }
func (t *Target) HitTest(p image.Point) bool { return p.In(t.Bounds()) }

func (t *Target) Flip(center image.Point) {
	t.Pos = geom.Mirror(t.Pos, center)
	t.Layer = t.Layer.Flip()
}

func (t *Target) Clone() Item {
	c := *t
	c.itemBase = t.cloneBase()
	return &c
}

func (t *Target) SwapData(other Item) {
	o := other.(*Target)
	tb, ob := t.itemBase, o.itemBase
	*t, *o = *o, *t
	t.itemBase, o.itemBase = tb, ob
}

// ── Marker ──

// Marker flags a location with a diagnostic message, e.g. a design rule
// violation.
type Marker struct {
	itemBase
	Pos     image.Point
	Message string
}

// NewMarker creates an unowned marker.
func NewMarker(pos image.Point, message string) *Marker {
	return &Marker{itemBase: newBase(), Pos: pos, Message: message}
}

func (m *Marker) Kind() Kind                { return KindMarker }
func (m *Marker) Position() image.Point     { return m.Pos }
func (m *Marker) SetPosition(p image.Point) { m.Pos = p }
func (m *Marker) Move(delta image.Point)    { m.Pos = m.Pos.Add(delta) }
func (m *Marker) Rotate(center image.Point, angle geom.Angle) {
	m.Pos = geom.Rotate(m.Pos, center, angle)
}
func (m *Marker) Flip(center image.Point)    { m.Pos = geom.Mirror(m.Pos, center) }
func (m *Marker) Layers() LayerSet           { return LayersOf(LayerDwgsUser) }
func (m *Marker) Bounds() image.Rectangle    { return geom.Around(m.Pos, 1) }
func (m *Marker) HitTest(p image.Point) bool { return p.In(m.Bounds()) }

func (m *Marker) Clone() Item {
	c := *m
	c.itemBase = m.cloneBase()
	return &c
}

func (m *Marker) SwapData(other Item) {
	o := other.(*Marker)
	mb, ob := m.itemBase, o.itemBase
	*m, *o = *o, *m
	m.itemBase, o.itemBase = mb, ob
}

// ── Zone ──

// Zone is a copper area bounded by a polygon outline.
type Zone struct {
	itemBase
	Outline []image.Point
	Layer   Layer
	NetCode int
}

// NewZone creates an unowned zone. The outline is copied.
func NewZone(outline []image.Point, layer Layer, net int) *Zone {
	return &Zone{itemBase: newBase(), Outline: append([]image.Point(nil), outline...), Layer: layer, NetCode: net}
}

func (z *Zone) Kind() Kind             { return KindZone }
func (z *Zone) Layers() LayerSet       { return LayersOf(z.Layer) }
func (z *Zone) Net() int               { return z.NetCode }
func (z *Zone) SetNet(code int)        { z.NetCode = code }
func (z *Zone) Anchors() []image.Point { return append([]image.Point(nil), z.Outline...) }

func (z *Zone) Position() image.Point {
	if len(z.Outline) == 0 {
		return image.Point{}
	}
	return z.Outline[0]
}

func (z *Zone) SetPosition(p image.Point) { z.Move(p.Sub(z.Position())) }

func (z *Zone) Move(delta image.Point) {
	for i := range z.Outline {
		z.Outline[i] = z.Outline[i].Add(delta)
	}
}

func (z *Zone) Rotate(center image.Point, angle geom.Angle) {
	for i := range z.Outline {
		z.Outline[i] = geom.Rotate(z.Outline[i], center, angle)
	}
}

func (z *Zone) Flip(center image.Point) {
	for i := range z.Outline {
		z.Outline[i] = geom.Mirror(z.Outline[i], center)
	}
	z.Layer = z.Layer.Flip()
}

func (z *Zone) Bounds() image.Rectangle {
	if len(z.Outline) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: z.Outline[0], Max: z.Outline[0]}
	for _, p := range z.Outline[1:] {
		r = geom.Enclose(r, p)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// HitTest uses the even-odd rule on the outline.
func (z *Zone) HitTest(p image.Point) bool {
	inside := false
	n := len(z.Outline)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := z.Outline[i], z.Outline[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func (z *Zone) Clone() Item {
	c := *z
	c.itemBase = z.cloneBase()
	c.Outline = append([]image.Point(nil), z.Outline...)
	return &c
}

func (z *Zone) SwapData(other Item) {
	o := other.(*Zone)
	zb, ob := z.itemBase, o.itemBase
	*z, *o = *o, *z
	z.itemBase, o.itemBase = zb, ob
}

// ── helpers ──

func halfWidth(w int) float64 {
	if w < 2 {
		return 1
	}
	return float64(w) / 2
}

// textBounds approximates the box of a single line of text centred on pos.
func textBounds(pos image.Point, value string, size int, angle geom.Angle) image.Rectangle {
	if size <= 0 {
		size = defaultTextSize
	}
	w := len([]rune(value)) * size
	if w == 0 {
		w = size
	}
	r := image.Rect(pos.X-w/2, pos.Y-size/2, pos.X-w/2+w, pos.Y-size/2+size)
	return geom.RotateRect(r, pos, angle)
}
