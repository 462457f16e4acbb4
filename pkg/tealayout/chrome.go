package tealayout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// BarLayer renders a one-line bar across the full width at row y.
func BarLayer(id, content string, width, y int, style lipgloss.Style) *lipgloss.Layer {
	return lipgloss.NewLayer(style.Width(width).MaxHeight(1).Render(content)).X(0).Y(y).Z(1).ID(id)
}

// Spread places left and right on one line of the given width, padding the
// gap between them. The right part is dropped when both do not fit.
func Spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// PanelLayer renders lines into region r, one per row. Lines beyond the
// region height are cut off.
func PanelLayer(r Region, lines []string, style lipgloss.Style, id string) *lipgloss.Layer {
	w, h := r.Size()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	rendered := style.Width(w).Height(h).MaxWidth(w).Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(1).ID(id)
}

// SeparatorLayer draws a vertical rule along the left edge of r.
func SeparatorLayer(r Region, style lipgloss.Style) *lipgloss.Layer {
	_, h := r.Size()
	rule := strings.TrimSuffix(strings.Repeat("│\n", max(h, 0)), "\n")
	return lipgloss.NewLayer(style.Render(rule)).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(2).ID("separator")
}

// ModalLayer centres a boxed overlay on the terminal above everything else.
func ModalLayer(content string, termW, termH int, box lipgloss.Style) *lipgloss.Layer {
	rendered := box.Render(content)
	x := max((termW-lipgloss.Width(rendered))/2, 0)
	y := max((termH-lipgloss.Height(rendered))/2, 0)
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(100).ID("modal")
}

// ContentLayer places pre-rendered content at the origin of r.
func ContentLayer(r Region, content, id string, z int) *lipgloss.Layer {
	return lipgloss.NewLayer(content).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}
