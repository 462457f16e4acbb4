package boardui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/boardedit/pkg/edit"
)

// handleMouse turns mouse messages into session events. Pressing the left
// button on an item selects it and starts a move session, so dragging
// moves it and releasing ends the move.
func handleMouse(m Model, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.Mouse = image.Pt(mouse.X, mouse.Y)
	p, ok := m.toBoard(m.Mouse)
	if !ok {
		return m, nil
	}
	m.Cursor = p
	m.ws.Tool.SetCursor(p)

	switch msg.(type) {
	case tea.MouseMotionMsg:
		if !m.co.Running() {
			return m, nil
		}
		if mouse.Button == tea.MouseLeft {
			return m.resume(edit.Drag(p))
		}
		return m.resume(edit.Motion(p))

	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if m.co.Running() {
			return m.resume(edit.Click(p))
		}
		hit := m.ws.Board.HitTest(p, m.ws.Tool.EditingChildren())
		if hit == nil {
			m.ws.Selection.Clear()
			return m, nil
		}
		if !m.ws.Selection.Contains(hit) {
			m.ws.Select(p)
		}
		return m.command(edit.ActionMove)

	case tea.MouseReleaseMsg:
		if m.co.Running() && m.behavior == edit.ActionMove {
			return m.resume(edit.ButtonUp(p))
		}
	}
	return m, nil
}
