package boardui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/edit"
	"github.com/wesen/boardedit/pkg/tealayout"
)

const panStep = 4

// actionKeys binds keys to the behaviors of the edit tool.
var actionKeys = map[string]edit.Action{
	"m":      edit.ActionMove,
	"r":      edit.ActionRotate,
	"f":      edit.ActionFlip,
	"d":      edit.ActionRemove,
	"delete": edit.ActionRemove,
	"e":      edit.ActionProperties,
	"c":      edit.ActionCopy,
	"v":      edit.ActionPaste,
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if m.editOpen {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		if m.editOpen {
			return m, nil
		}
		return handleMouse(m, msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a, ok := actionKeys[key]; ok {
		return m.command(a)
	}

	switch key {
	case "q", "ctrl+c":
		if m.co.Running() {
			m.finish(m.co.Close())
		}
		return m, tea.Quit

	case "up":
		m.Cam.Y -= panStep
	case "down":
		m.Cam.Y += panStep
	case "left":
		m.Cam.X -= panStep
	case "right":
		m.Cam.X += panStep

	case "u", "ctrl+z":
		return m.journal(edit.ActionUndo)
	case "U", "ctrl+y":
		return m.journal(edit.ActionRedo)

	case "esc", "escape":
		if m.co.Running() {
			return m.resume(edit.Cancel(m.Cursor))
		}
		m.ws.Selection.Clear()

	case "tab":
		m.toggleFootprint()
	}
	return m, nil
}

// command feeds a command to the running session, or starts the behavior
// bound to it.
func (m Model) command(a edit.Action) (tea.Model, tea.Cmd) {
	ev := edit.Command(a, m.Cursor)
	if m.co.Running() {
		return m.resume(ev)
	}
	m.behavior = a
	return m.yielded(m.co.Start(m.ctx, m.ws.Tool.Behavior(ev)))
}

// journal runs undo or redo. A running session is told first and ends.
func (m Model) journal(a edit.Action) (tea.Model, tea.Cmd) {
	if m.co.Running() {
		m.finish(m.co.Resume(edit.UndoRedo(m.Cursor)))
	}
	var err error
	if a == edit.ActionUndo {
		err = m.ws.Tool.Undo()
	} else {
		err = m.ws.Tool.Redo()
	}
	if err != nil {
		m.console.add("! %v", err)
	}
	return m, nil
}

func (m Model) resume(ev edit.Event) (tea.Model, tea.Cmd) {
	return m.yielded(m.co.Resume(ev))
}

// yielded handles what the session handed back.
func (m Model) yielded(y edit.Yield) (tea.Model, tea.Cmd) {
	if y.Done {
		m.finish(y)
		return m, nil
	}
	if req, ok := y.Request.(edit.EditRequest); ok {
		return m.openEditModal(req)
	}
	return m, nil
}

func (m *Model) finish(y edit.Yield) {
	if y.Err != nil {
		m.console.add("! %s: %v", m.behavior, y.Err)
		m.logger.Error("session failed", "behavior", m.behavior, "err", y.Err)
	}
	m.behavior = edit.ActionNone
}

// toggleFootprint enters child-edit mode for the footprint under the
// pointer, or leaves it.
func (m *Model) toggleFootprint() {
	if m.co.Running() {
		return
	}
	t := m.ws.Tool
	if t.Footprint() != nil {
		t.EditFootprint(nil)
		m.console.add("left footprint")
		return
	}
	for _, f := range m.ws.Board.Footprints() {
		if f.HitTest(m.Cursor) {
			t.EditFootprint(f)
			m.ws.Selection.Clear()
			m.console.add("editing %s", footprintName(f))
			return
		}
	}
}

func footprintName(f *board.Footprint) string {
	if ref := f.Reference(); ref != nil {
		return ref.Value
	}
	return f.Name
}

// toBoard converts a screen cell to a board point.
func (m Model) toBoard(screen image.Point) (image.Point, bool) {
	r := m.layout().Get(tealayout.RegionBoard)
	if !r.Contains(screen) {
		return image.Point{}, false
	}
	return r.Local(screen).Add(m.Cam), true
}
