package boardui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/boardedit/pkg/cellbuf"
	"github.com/wesen/boardedit/pkg/edit"
	"github.com/wesen/boardedit/pkg/tealayout"
	"github.com/wesen/boardedit/pkg/view"
)

func (m Model) layout() tealayout.Layout {
	return tealayout.Editor(m.Width, m.Height, inspectorWidth)
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	layout := m.layout()
	var layers []*lipgloss.Layer

	// Toolbar
	mode := "BOARD"
	if f := m.ws.Tool.Footprint(); f != nil {
		mode = "FOOTPRINT " + footprintName(f)
	}
	tb := fmt.Sprintf(" boardedit │ %s │ [m]ove [r]otate [f]lip [d]elete [e]dit [c]opy [v]paste [u]ndo │ [tab] footprint [q]uit", mode)
	layers = append(layers, tealayout.BarLayer("toolbar", tb, m.Width, 0, toolbarStyle))

	// Board
	if r := layout.Get(tealayout.RegionBoard); !r.Empty() {
		w, h := r.Size()
		buf := cellbuf.New(w, h, view.StyleBG)
		buf.Origin = m.Cam
		m.ws.Render(buf)
		layers = append(layers, tealayout.ContentLayer(r, buf.Render(view.Styles), "board", 0))
	}

	// Inspector
	if r := layout.Get(tealayout.RegionInspector); !r.Empty() {
		w, _ := r.Size()
		layers = append(layers,
			tealayout.SeparatorLayer(r, separatorStyle),
			tealayout.PanelLayer(insetLeft(r), m.inspectorLines(w-2), panelStyle, "inspector"),
		)
	}

	// Status
	session := "idle"
	if m.co.Running() {
		session = m.behavior.String()
	}
	left := fmt.Sprintf(" Cursor (%d,%d)  Cam (%d,%d)  Sel %d", m.Cursor.X, m.Cursor.Y, m.Cam.X, m.Cam.Y, m.ws.Selection.Len())
	right := fmt.Sprintf("%s ", session)
	layers = append(layers, tealayout.BarLayer("status", tealayout.Spread(left, right, m.Width), m.Width, m.Height-1, statusStyle))

	if m.editOpen {
		if l := m.editModalLayer(); l != nil {
			layers = append(layers, l)
		}
	}

	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(comp)

	v := tea.NewView(canvas.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// insetLeft leaves room for the separator drawn on the region's left edge.
func insetLeft(r tealayout.Region) tealayout.Region {
	r.Rect.Min.X += 2
	if r.Rect.Min.X > r.Rect.Max.X {
		r.Rect.Min.X = r.Rect.Max.X
	}
	return r
}

// inspectorLines builds the panel text: selection, journal, ratsnest and
// the newest console lines that still fit.
func (m Model) inspectorLines(width int) []string {
	rule := panelDimStyle.Render(strings.Repeat("─", max(width, 0)))
	var lines []string

	lines = append(lines, panelTitleStyle.Render("SELECTION"), rule)
	items := m.ws.Selection.Items()
	if len(items) == 0 {
		lines = append(lines, panelDimStyle.Render("  (none)"))
	}
	for i, it := range items {
		if i == 4 {
			lines = append(lines, panelDimStyle.Render(fmt.Sprintf("  … %d more", len(items)-i)))
			break
		}
		p := it.Position()
		lines = append(lines, fmt.Sprintf("  %-14s (%d,%d)", it.Kind(), p.X, p.Y))
	}

	j := m.ws.Journal
	lines = append(lines, "", panelTitleStyle.Render("JOURNAL"), rule,
		fmt.Sprintf("  undo %d  redo %d", j.Len(), j.RedoLen()))
	if top := j.Top(); top != nil {
		lines = append(lines, panelDimStyle.Render(fmt.Sprintf("  last: %s ×%d", top.Kind, len(top.Items))))
	}
	lines = append(lines, fmt.Sprintf("  airwires %d", len(m.ws.Ratsnest.Visible())))

	lines = append(lines, "", panelTitleStyle.Render("CONSOLE"), rule)
	room := m.Height - 2 - len(lines)
	con := m.console.lines
	if room >= 0 && len(con) > room {
		con = con[len(con)-room:]
	}
	for _, l := range con {
		if strings.HasPrefix(l, "!") {
			l = panelErrStyle.Render(l)
		}
		lines = append(lines, l)
	}
	return lines
}

// Running reports whether an edit session is in progress.
func (m Model) Running() bool { return m.co.Running() }

// Behavior returns the action of the running session, or ActionNone.
func (m Model) Behavior() edit.Action { return m.behavior }

// Console returns the messages shown in the inspector.
func (m Model) Console() []string { return append([]string(nil), m.console.lines...) }

// EditOpen reports whether the property modal is showing.
func (m Model) EditOpen() bool { return m.editOpen }
