package boardui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

var (
	chromeBG = c("#0b1622")
	panelBG  = c("#122233")
)

var (
	toolbarStyle = lipgloss.NewStyle().
			Background(chromeBG).
			Foreground(c("#7fd4ff")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(chromeBG).
			Foreground(c("#6c7a89"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(c("#24364a")).
			Background(panelBG)

	panelStyle = lipgloss.NewStyle().
			Background(panelBG).
			Foreground(c("#a9c4dd"))

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(c("#7fd4ff")).
			Background(panelBG).
			Bold(true)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(c("#4f6478")).
			Background(panelBG)

	panelErrStyle = lipgloss.NewStyle().
			Foreground(c("#ff6b6b")).
			Background(panelBG)
)

// Modal styles
var (
	modalBG = c("#0a1510")

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(c("#7fffd4")).
			Background(modalBG).
			Bold(true)

	modalLabelStyle = lipgloss.NewStyle().
			Foreground(c("#ddaa44")).
			Background(modalBG)

	modalHintStyle = lipgloss.NewStyle().
			Foreground(c("#336655")).
			Background(modalBG).
			Italic(true)

	modalBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(c("#00d4a0")).
			Background(modalBG).
			Width(48).
			Padding(1, 2)
)
