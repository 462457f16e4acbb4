package drawutil

import "github.com/wesen/boardedit/pkg/cellbuf"

// DrawGrid puts a dot on every cell whose board coordinate is a multiple
// of the spacing on both axes.
func DrawGrid(buf *cellbuf.Buffer, spacingX, spacingY int, style cellbuf.StyleKey) {
	for r := 0; r < buf.H; r++ {
		if mod(r+buf.Origin.Y, spacingY) != 0 {
			continue
		}
		for c := 0; c < buf.W; c++ {
			if mod(c+buf.Origin.X, spacingX) == 0 {
				buf.Set(c, r, '·', style)
			}
		}
	}
}

// mod returns a non-negative modulus.
func mod(a, m int) int {
	if m == 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
