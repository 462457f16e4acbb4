// Package cellbuf is a grid of styled terminal cells that board items are
// rasterised into before being handed to Lipgloss.
//
// Each cell holds a rune and a StyleKey. The mapping from StyleKey to a
// lipgloss.Style is supplied at render time so that the same buffer can be
// drawn with different palettes.
//
// The buffer may be placed over board space with Origin: the *At methods
// take board coordinates and subtract the origin. All runes are assumed to
// be single-width.
package cellbuf

import "image"

// StyleKey identifies a visual style.
type StyleKey int

// Cell is a single character in the buffer with an associated style.
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Buffer is a 2D grid of styled cells.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]

	// Origin is the board coordinate shown in the top-left cell.
	Origin image.Point
}

// New creates a Buffer of the given size, filled with spaces in the
// given default style.
func New(w, h int, defaultStyle StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: defaultStyle}
		}
		b.Cells[y] = row
	}
	return b
}

// InBounds reports whether buffer cell (x, y) exists.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes a single character at buffer cell (x, y). Out-of-bounds
// writes are ignored.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// SetAt writes a character at board point p.
func (b *Buffer) SetAt(p image.Point, ch rune, style StyleKey) {
	q := p.Sub(b.Origin)
	b.Set(q.X, q.Y, ch, style)
}

// At returns the cell under board point p and whether it is visible.
func (b *Buffer) At(p image.Point) (Cell, bool) {
	q := p.Sub(b.Origin)
	if !b.InBounds(q.X, q.Y) {
		return Cell{}, false
	}
	return b.Cells[q.Y][q.X], true
}

// SetString writes s starting at buffer cell (x, y). Characters falling
// outside the buffer are skipped.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// SetStringAt writes s starting at board point p.
func (b *Buffer) SetStringAt(p image.Point, s string, style StyleKey) {
	q := p.Sub(b.Origin)
	b.SetString(q.X, q.Y, s, style)
}

// FillRect sets every visible cell of the board rectangle r.
func (b *Buffer) FillRect(r image.Rectangle, ch rune, style StyleKey) {
	r = r.Sub(b.Origin).Intersect(image.Rect(0, 0, b.W, b.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Cells[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// Restyle changes the style of every visible cell of r that is not blank,
// keeping its rune. It is used to highlight already drawn items.
func (b *Buffer) Restyle(r image.Rectangle, style StyleKey) {
	r = r.Sub(b.Origin).Intersect(image.Rect(0, 0, b.W, b.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if b.Cells[y][x].Ch != ' ' {
				b.Cells[y][x].Style = style
			}
		}
	}
}

// Fill resets every cell to a space with the given style.
func (b *Buffer) Fill(style StyleKey) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// String returns the buffer's runes without styling, one line per row.
func (b *Buffer) String() string {
	out := make([]rune, 0, (b.W+1)*b.H)
	for y, row := range b.Cells {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range row {
			out = append(out, c.Ch)
		}
	}
	return string(out)
}
