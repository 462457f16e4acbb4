// Package workspace wires a board to its selection, journal, view cache,
// ratsnest, clipboard and edit tool. Front ends build one Workspace per
// open board.
package workspace

import (
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/cellbuf"
	"github.com/wesen/boardedit/pkg/clipboard"
	"github.com/wesen/boardedit/pkg/config"
	"github.com/wesen/boardedit/pkg/edit"
	"github.com/wesen/boardedit/pkg/ratsnest"
	"github.com/wesen/boardedit/pkg/selection"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// Options configure a Workspace.
type Options struct {
	Config config.Session
	Logger *log.Logger
	// Prompt asks the user for new property values. Without it the
	// properties behavior does nothing.
	Prompt   edit.Prompt
	Reporter edit.Reporter
	// Buffer overrides the clipboard backend chosen by Config.Clipboard.
	Buffer clipboard.Buffer
}

// Workspace is one open board with everything needed to edit it.
type Workspace struct {
	Board     *board.Board
	Selection *selection.Selection
	Journal   *undo.Journal
	View      *view.Synchronizer
	Ratsnest  *ratsnest.Engine
	Clipboard *clipboard.Transport
	Tool      *edit.Tool
}

// New builds a workspace for b and computes the initial ratsnest.
func New(b *board.Board, opts Options) *Workspace {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	buf := opts.Buffer
	if buf == nil {
		buf = clipboard.NewBuffer(opts.Config.Clipboard)
	}

	w := &Workspace{
		Board:     b,
		Selection: selection.New(b),
		Journal:   undo.New(b, opts.Config.UndoDepth),
		View:      view.New(),
		Ratsnest:  ratsnest.New(b),
		Clipboard: clipboard.NewTransport(buf),
	}
	w.View.Load(b)
	w.Ratsnest.Recompute()

	var editor edit.PropertyEditor
	if opts.Prompt != nil {
		editor = &edit.FieldEditor{Journal: w.Journal, Prompt: opts.Prompt}
	}
	w.Tool = edit.New(opts.Config, edit.Deps{
		Board:     b,
		Selection: w.Selection,
		Journal:   w.Journal,
		View:      w.View,
		Ratsnest:  w.Ratsnest,
		Clipboard: w.Clipboard,
		Editor:    editor,
		Reporter:  opts.Reporter,
		Logger:    opts.Logger,
	})
	if opts.Config.EditChildren {
		w.Tool.EditFootprint(nil)
	}
	return w
}

// Render draws the visible part of the board into buf.
func (w *Workspace) Render(buf *cellbuf.Buffer) {
	w.View.Render(buf, w.Ratsnest.Visible())
}

// Snapshot renders the whole board as plain text, one rune per cell.
func (w *Workspace) Snapshot() string {
	r := w.Board.Bounds().Inset(-1)
	buf := cellbuf.New(r.Dx(), r.Dy(), view.StyleBG)
	buf.Origin = r.Min
	w.Render(buf)
	return buf.String()
}

// Select replaces the selection with the item under p. It reports whether
// something was picked.
func (w *Workspace) Select(p image.Point) bool {
	w.Selection.Clear()
	w.Tool.SetCursor(p)
	return w.Selection.PickOneUnderPointer(p)
}
