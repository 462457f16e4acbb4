// Package geom provides the integer board coordinate math shared by every
// item kind: decidegree angles, rotation about a pivot, mirroring about a
// horizontal axis, and frame conversion for container-local coordinates.
//
// Board coordinates use image.Point with Y growing downward, matching the
// screen. Angles are tenths of a degree; a positive angle turns a point
// counter-clockwise as seen on screen.
package geom

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Angle is an orientation in tenths of a degree.
type Angle int

// Common angles.
const (
	Angle0   Angle = 0
	Angle90  Angle = 900
	Angle180 Angle = 1800
	Angle270 Angle = 2700
	Angle360 Angle = 3600
)

// Normalize returns a in the range [0, 3600).
func (a Angle) Normalize() Angle {
	a %= Angle360
	if a < 0 {
		a += Angle360
	}
	return a
}

// Radians returns a in radians.
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 1800
}

// Degrees returns a in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) / 10
}

// Rotate turns p about center by angle. Right angles are computed exactly
// so that four quarter turns always return p to its starting value.
func Rotate(p, center image.Point, angle Angle) image.Point {
	d := p.Sub(center)
	switch angle.Normalize() {
	case Angle0:
		return p
	case Angle90:
		return center.Add(image.Pt(d.Y, -d.X))
	case Angle180:
		return center.Add(image.Pt(-d.X, -d.Y))
	case Angle270:
		return center.Add(image.Pt(-d.Y, d.X))
	}
	// Screen Y grows downward, so a visual counter-clockwise turn is a
	// clockwise turn in r2's frame.
	v := r2.Rotate(
		r2.Vec{X: float64(p.X), Y: float64(p.Y)},
		-angle.Radians(),
		r2.Vec{X: float64(center.X), Y: float64(center.Y)},
	)
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// Mirror reflects p about the horizontal axis through center.
func Mirror(p, center image.Point) image.Point {
	return image.Pt(p.X, 2*center.Y-p.Y)
}

// MirrorAngle returns the orientation of an item after it has been
// mirrored about a horizontal axis.
func MirrorAngle(a Angle) Angle {
	return (-a).Normalize()
}

// ToLocal converts a board position into the frame of a container placed
// at origin with the given orientation.
func ToLocal(p, origin image.Point, orient Angle) image.Point {
	return Rotate(p, origin, -orient).Sub(origin)
}

// ToBoard converts a container-local offset back into board coordinates.
func ToBoard(local, origin image.Point, orient Angle) image.Point {
	return Rotate(origin.Add(local), origin, orient)
}

// RotateRect returns the bounding box of r after rotating its corners
// about center.
func RotateRect(r image.Rectangle, center image.Point, angle Angle) image.Rectangle {
	corners := [4]image.Point{
		r.Min,
		image.Pt(r.Max.X, r.Min.Y),
		r.Max,
		image.Pt(r.Min.X, r.Max.Y),
	}
	out := image.Rectangle{Min: Rotate(corners[0], center, angle)}
	out.Max = out.Min
	for _, c := range corners[1:] {
		out = Enclose(out, Rotate(c, center, angle))
	}
	return out
}

// Enclose grows r so that it contains p. The result is inclusive of p on
// both axes.
func Enclose(r image.Rectangle, p image.Point) image.Rectangle {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// Segment returns the inclusive bounding box of the segment a-b thickened
// by half of width on each side.
func Segment(a, b image.Point, width int) image.Rectangle {
	r := image.Rectangle{Min: a, Max: a}
	r = Enclose(r, b)
	h := width / 2
	return image.Rect(r.Min.X-h, r.Min.Y-h, r.Max.X+h+1, r.Max.Y+h+1)
}

// Around returns the square of the given half size centred on p.
func Around(p image.Point, half int) image.Rectangle {
	return image.Rect(p.X-half, p.Y-half, p.X+half+1, p.Y+half+1)
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// DistToSegment returns the distance from p to the closed segment a-b.
func DistToSegment(p, a, b image.Point) float64 {
	ab := b.Sub(a)
	if ab == (image.Point{}) {
		return Dist(p, a)
	}
	ap := p.Sub(a)
	t := float64(ap.X*ab.X+ap.Y*ab.Y) / float64(ab.X*ab.X+ab.Y*ab.Y)
	t = math.Max(0, math.Min(1, t))
	proj := r2.Add(
		r2.Vec{X: float64(a.X), Y: float64(a.Y)},
		r2.Scale(t, r2.Vec{X: float64(ab.X), Y: float64(ab.Y)}),
	)
	return r2.Norm(r2.Sub(r2.Vec{X: float64(p.X), Y: float64(p.Y)}, proj))
}
