// Package tealayout splits the terminal into named regions and builds the
// chrome layers (bars, panels, separators, modals) that the editor
// composes with lipgloss around the board canvas.
package tealayout

import "image"

// Region names used by the editor screen.
const (
	RegionToolbar   = "toolbar"
	RegionBoard     = "board"
	RegionInspector = "inspector"
	RegionStatus    = "status"
)

// Region is a named rectangle of terminal cells.
type Region struct {
	Name string
	Rect image.Rectangle
}

// Size returns the width and height of the region.
func (r Region) Size() (int, int) { return r.Rect.Dx(), r.Rect.Dy() }

// Empty reports whether the region has no cells.
func (r Region) Empty() bool { return r.Rect.Empty() }

// Contains reports whether the screen cell p lies in the region.
func (r Region) Contains(p image.Point) bool { return p.In(r.Rect) }

// Local converts a screen cell to region-relative coordinates.
func (r Region) Local(p image.Point) image.Point { return p.Sub(r.Rect.Min) }

// Layout is the set of regions computed for one terminal size.
type Layout struct {
	TermW, TermH int
	Regions      map[string]Region
}

// Get returns the named region, or a zero Region.
func (l Layout) Get(name string) Region {
	return l.Regions[name]
}

// At returns the region holding the screen cell p.
func (l Layout) At(p image.Point) (Region, bool) {
	for _, r := range l.Regions {
		if r.Contains(p) {
			return r, true
		}
	}
	return Region{}, false
}

// Builder carves fixed bands off the edges of the terminal and hands the
// rest to one region.
type Builder struct {
	termW, termH int
	top, bottom  int
	right        int
	regions      []Region
}

// NewBuilder starts a layout for a terminal of the given size.
func NewBuilder(termW, termH int) *Builder {
	return &Builder{termW: termW, termH: termH}
}

// Top reserves a band of rows below the previous top bands.
func (b *Builder) Top(name string, rows int) *Builder {
	b.add(name, image.Rect(0, b.top, b.termW, b.top+rows))
	b.top += rows
	return b
}

// Bottom reserves a band of rows above the previous bottom bands.
func (b *Builder) Bottom(name string, rows int) *Builder {
	y := b.termH - b.bottom - rows
	b.add(name, image.Rect(0, y, b.termW, y+rows))
	b.bottom += rows
	return b
}

// Right reserves columns on the right between the top and bottom bands.
func (b *Builder) Right(name string, cols int) *Builder {
	x := b.termW - b.right - cols
	b.add(name, image.Rect(x, b.top, x+cols, b.termH-b.bottom))
	b.right += cols
	return b
}

// Fill gives everything not reserved so far to name.
func (b *Builder) Fill(name string) *Builder {
	b.add(name, image.Rect(0, b.top, b.termW-b.right, b.termH-b.bottom))
	return b
}

func (b *Builder) add(name string, r image.Rectangle) {
	b.regions = append(b.regions, Region{Name: name, Rect: r})
}

// Build returns the layout. Regions squeezed out by a small terminal are
// empty rather than inverted.
func (b *Builder) Build() Layout {
	l := Layout{TermW: b.termW, TermH: b.termH, Regions: make(map[string]Region, len(b.regions))}
	for _, r := range b.regions {
		if r.Rect.Min.X >= r.Rect.Max.X || r.Rect.Min.Y >= r.Rect.Max.Y {
			r.Rect = image.Rectangle{}
		}
		l.Regions[r.Name] = r
	}
	return l
}

// Editor is the standard editor screen: toolbar, status line, inspector
// panel and board canvas. The inspector is dropped on narrow terminals.
func Editor(termW, termH, inspectorW int) Layout {
	b := NewBuilder(termW, termH).Top(RegionToolbar, 1).Bottom(RegionStatus, 1)
	if termW >= 2*inspectorW {
		b.Right(RegionInspector, inspectorW)
	}
	return b.Fill(RegionBoard).Build()
}
