// Package drawutil rasterises board geometry into a cellbuf.Buffer:
// Bresenham segments with direction-aware line characters, dashed
// airwires, polygon outlines, via/target glyphs and the background grid.
//
// All Draw* functions take board coordinates; the buffer's Origin maps
// them to cells.
package drawutil

import "image"

// Bresenham returns the integer points on the segment a-b, both endpoints
// included. The loop is capped at dx+dy+2 iterations.
func Bresenham(a, b image.Point) []image.Point {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	x, y := a.X, a.Y

	pts := make([]image.Point, 0, dx+dy+1)
	for range dx + dy + 2 {
		pts = append(pts, image.Pt(x, y))
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// LineChar returns the box-drawing character for a step (dx, dy).
func LineChar(dx, dy int) rune {
	if dx == 0 && dy == 0 {
		return '·'
	}
	if dx == 0 {
		return '│'
	}
	if dy == 0 {
		return '─'
	}
	if (dx > 0) == (dy > 0) {
		return '\\'
	}
	return '/'
}

// pointChar picks the line character for pts[i] from its neighbour.
func pointChar(pts []image.Point, i int) rune {
	var d image.Point
	switch {
	case i < len(pts)-1:
		d = pts[i+1].Sub(pts[i])
	case i > 0:
		d = pts[i].Sub(pts[i-1])
	}
	return LineChar(d.X, d.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
