package boardui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/boardedit/pkg/edit"
	"github.com/wesen/boardedit/pkg/tealayout"
)

// openEditModal shows one input per field of the item the properties
// behavior asked about. The session stays suspended until the modal is
// saved or dismissed.
func (m Model) openEditModal(req edit.EditRequest) (tea.Model, tea.Cmd) {
	m.editOpen = true
	m.editItem = req.Item
	m.focus = 0
	m.editNames = make([]string, len(req.Fields))
	m.inputs = make([]textinput.Model, len(req.Fields))
	for i, f := range req.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 40
		in.SetValue(f.Value)
		m.editNames[i] = f.Name
		m.inputs[i] = in
	}
	if len(m.inputs) == 0 {
		return m, nil
	}
	cmd := m.inputs[0].Focus()
	return m, cmd
}

// handleEditKeys processes keys when the property modal is open.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.closeEditModal()
		return m.resume(edit.Cancel(m.Cursor))

	case "enter":
		fields := make([]edit.Field, len(m.inputs))
		for i, in := range m.inputs {
			fields[i] = edit.Field{Name: m.editNames[i], Value: strings.TrimSpace(in.Value())}
		}
		m.closeEditModal()
		return m.resume(edit.EditDone(fields))

	case "tab", "shift+tab":
		if len(m.inputs) == 0 {
			return m, nil
		}
		m.inputs[m.focus].Blur()
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.inputs) - 1
		}
		m.focus = (m.focus + step) % len(m.inputs)
		cmd := m.inputs[m.focus].Focus()
		return m, cmd

	default:
		if len(m.inputs) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
}

func (m *Model) closeEditModal() {
	m.editOpen = false
	m.editItem = nil
	m.editNames = nil
	m.inputs = nil
}

// editModalLayer renders the property modal centred on the screen.
func (m Model) editModalLayer() *lipgloss.Layer {
	if m.editItem == nil {
		return nil
	}
	lines := []string{
		modalTitleStyle.Render(fmt.Sprintf("  EDIT %s", strings.ToUpper(m.editItem.Kind().String()))),
		"",
	}
	for i, name := range m.editNames {
		marker := "  "
		if i == m.focus {
			marker = "▸ "
		}
		lines = append(lines,
			modalLabelStyle.Render(fmt.Sprintf("%s%-9s", marker, name+":"))+" "+m.inputs[i].View())
	}
	lines = append(lines, "", modalHintStyle.Render("  [tab] next  [enter] save  [esc] cancel"))
	return tealayout.ModalLayer(strings.Join(lines, "\n"), m.Width, m.Height, modalBoxStyle)
}
