package view

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/cellbuf"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// cellbuf style keys used by Render.
const (
	StyleBG cellbuf.StyleKey = iota
	StyleGrid
	StyleFrontCu
	StyleBackCu
	StyleFrontSilk
	StyleBackSilk
	StyleFab
	StyleDrawing
	StyleEdgeCuts
	StyleSelected
	StylePreview
	StyleRatsnest
	StyleMarker
)

var background = c("#001023")

// Styles maps the style keys to a KiCad-like dark palette.
var Styles = map[cellbuf.StyleKey]lipgloss.Style{
	StyleBG:        lipgloss.NewStyle().Background(background),
	StyleGrid:      lipgloss.NewStyle().Foreground(c("#24364a")).Background(background),
	StyleFrontCu:   lipgloss.NewStyle().Foreground(c("#c83434")).Background(background),
	StyleBackCu:    lipgloss.NewStyle().Foreground(c("#4d7fc4")).Background(background),
	StyleFrontSilk: lipgloss.NewStyle().Foreground(c("#f2eda1")).Background(background),
	StyleBackSilk:  lipgloss.NewStyle().Foreground(c("#e8b2a7")).Background(background),
	StyleFab:       lipgloss.NewStyle().Foreground(c("#afafaf")).Background(background),
	StyleDrawing:   lipgloss.NewStyle().Foreground(c("#c2c2c2")).Background(background),
	StyleEdgeCuts:  lipgloss.NewStyle().Foreground(c("#d0d23a")).Background(background),
	StyleSelected:  lipgloss.NewStyle().Foreground(c("#ffffff")).Background(c("#33506e")).Bold(true),
	StylePreview:   lipgloss.NewStyle().Foreground(c("#7fffd4")).Background(background),
	StyleRatsnest:  lipgloss.NewStyle().Foreground(c("#a0a0ff")).Background(background),
	StyleMarker:    lipgloss.NewStyle().Foreground(c("#ff4040")).Background(background).Bold(true),
}

// layerStyle returns the style of the first layer in set.
func layerStyle(set board.LayerSet) cellbuf.StyleKey {
	layers := set.Layers()
	if len(layers) == 0 {
		return StyleDrawing
	}
	switch layers[0] {
	case board.LayerFrontCu:
		return StyleFrontCu
	case board.LayerBackCu:
		return StyleBackCu
	case board.LayerFrontSilk:
		return StyleFrontSilk
	case board.LayerBackSilk:
		return StyleBackSilk
	case board.LayerFrontFab, board.LayerBackFab:
		return StyleFab
	case board.LayerEdgeCuts:
		return StyleEdgeCuts
	}
	return StyleDrawing
}
