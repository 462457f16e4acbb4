package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render converts the buffer into a styled string.
//
// Consecutive cells with the same StyleKey are merged into runs and
// rendered with one Style.Render call per run. Keys missing from styles
// render as plain text. Rows are joined with "\n"; an empty buffer
// returns "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	chunk := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		runStyle := row[0].Style
		chunk = chunk[:0]

		flush := func() {
			if s, ok := styles[runStyle]; ok {
				sb.WriteString(s.Render(string(chunk)))
			} else {
				sb.WriteString(string(chunk))
			}
			chunk = chunk[:0]
		}

		for _, c := range row {
			if c.Style != runStyle {
				flush()
				runStyle = c.Style
			}
			chunk = append(chunk, c.Ch)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
