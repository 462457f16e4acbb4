// Package boardui is the interactive terminal front end. Keys and mouse
// messages become edit events; behaviors that follow the pointer run in an
// edit.Coroutine that the model resumes once per message.
package boardui

import (
	"context"
	"fmt"
	"image"
	"io"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/wesen/boardedit/internal/workspace"
	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/config"
	"github.com/wesen/boardedit/pkg/edit"
)

const (
	inspectorWidth = 30
	consoleLines   = 50
)

// console keeps the latest messages for the inspector panel. It is shared
// with the reporter, which runs on the session goroutine while the model
// is suspended.
type console struct {
	lines []string
}

func (c *console) add(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
	if len(c.lines) > consoleLines {
		c.lines = c.lines[len(c.lines)-consoleLines:]
	}
}

// Model is the editor state.
type Model struct {
	Width, Height int
	// Mouse is the pointer in screen cells; Cursor is the same point on
	// the board.
	Mouse  image.Point
	Cursor image.Point
	// Cam is the board point shown in the top-left cell of the canvas.
	Cam image.Point

	ws      *workspace.Workspace
	co      *edit.Coroutine
	ctx     context.Context
	logger  *log.Logger
	console *console

	// behavior is the action of the running session.
	behavior edit.Action

	// Property modal state
	editOpen  bool
	editItem  board.Item
	editNames []string
	inputs    []textinput.Model
	focus     int
}

// NewModel opens b for editing with cfg. A nil logger discards logs.
func NewModel(b *board.Board, cfg config.Session, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		co:      edit.NewCoroutine(),
		ctx:     context.Background(),
		logger:  logger,
		console: &console{},
	}
	con := m.console
	m.ws = workspace.New(b, workspace.Options{
		Config: cfg,
		Logger: logger,
		Prompt: m.co.Prompt,
		Reporter: edit.ReporterFunc(func(err error) {
			con.add("! %v", err)
		}),
	})
	m.Cam = b.Bounds().Min.Sub(image.Pt(2, 1))
	m.console.add("board loaded: %d items", b.Len())
	return m
}

// Workspace returns the workspace being edited.
func (m Model) Workspace() *workspace.Workspace { return m.ws }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
