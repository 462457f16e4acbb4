package drawutil

import (
	"image"

	"github.com/wesen/boardedit/pkg/cellbuf"
)

// DrawLine draws the segment a-b with per-point line characters.
func DrawLine(buf *cellbuf.Buffer, a, b image.Point, style cellbuf.StyleKey) {
	pts := Bresenham(a, b)
	for i, p := range pts {
		buf.SetAt(p, pointChar(pts, i), style)
	}
}

// DrawWideLine draws a segment with a solid block character, used for
// copper whose width is at least one cell.
func DrawWideLine(buf *cellbuf.Buffer, a, b image.Point, width int, style cellbuf.StyleKey) {
	if width <= 1 {
		DrawLine(buf, a, b, style)
		return
	}
	half := width / 2
	for _, p := range Bresenham(a, b) {
		buf.FillRect(image.Rect(p.X-half, p.Y-half, p.X+half+1, p.Y+half+1), '█', style)
	}
}

// DrawDashedLine draws a dashed segment; every third point is skipped.
// Airwires of the ratsnest use it.
func DrawDashedLine(buf *cellbuf.Buffer, a, b image.Point, style cellbuf.StyleKey) {
	pts := Bresenham(a, b)
	for i, p := range pts {
		if i%3 != 2 {
			buf.SetAt(p, pointChar(pts, i), style)
		}
	}
}

// DrawPolygon draws the closed outline through pts.
func DrawPolygon(buf *cellbuf.Buffer, pts []image.Point, style cellbuf.StyleKey) {
	for i := range pts {
		DrawLine(buf, pts[i], pts[(i+1)%len(pts)], style)
	}
}

// DrawCross draws a plus-shaped glyph of the given arm length around c.
func DrawCross(buf *cellbuf.Buffer, c image.Point, arm int, style cellbuf.StyleKey) {
	DrawLine(buf, c.Sub(image.Pt(arm, 0)), c.Add(image.Pt(arm, 0)), style)
	DrawLine(buf, c.Sub(image.Pt(0, arm)), c.Add(image.Pt(0, arm)), style)
	buf.SetAt(c, '┼', style)
}

// DrawRect fills the board rectangle r with ch.
func DrawRect(buf *cellbuf.Buffer, r image.Rectangle, ch rune, style cellbuf.StyleKey) {
	buf.FillRect(r, ch, style)
}
