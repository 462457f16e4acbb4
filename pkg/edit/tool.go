// Package edit is the interactive edit session of the board editor. A Tool
// runs one behavior at a time (move, rotate, flip, remove, properties,
// copy, paste) against the current selection, recording every change in
// the journal before it becomes visible in the view and keeping the
// ratsnest up to date.
//
// Behaviors that follow the pointer consume events from an EventSource
// and block between events. A front end that cannot block runs them
// through a Coroutine.
package edit

import (
	"context"
	"image"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/config"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// Deps are the collaborators of a Tool.
type Deps struct {
	Board     *board.Board
	Selection Selection
	Journal   Journal
	View      View
	Ratsnest  Connectivity
	Clipboard Transport
	Editor    PropertyEditor
	Reporter  Reporter
	Logger    *log.Logger
}

// Tool runs the edit behaviors against one board.
type Tool struct {
	board     *board.Board
	selection Selection
	journal   Journal
	view      View
	ratsnest  Connectivity
	clipboard Transport
	editor    PropertyEditor
	reporter  Reporter
	logger    *log.Logger
	cfg       config.Session

	// footprint receives pasted items in child-edit mode.
	footprint    *board.Footprint
	editChildren bool
	cursor       image.Point
}

// New creates a tool. cfg is the session configuration handed over at
// activation.
func New(cfg config.Session, d Deps) *Tool {
	t := &Tool{
		board:        d.Board,
		selection:    d.Selection,
		journal:      d.Journal,
		view:         d.View,
		ratsnest:     d.Ratsnest,
		clipboard:    d.Clipboard,
		editor:       d.Editor,
		reporter:     d.Reporter,
		logger:       d.Logger,
		cfg:          cfg,
		editChildren: cfg.EditChildren,
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if t.reporter == nil {
		t.reporter = ReporterFunc(func(err error) {
			t.logger.Warn("edit", "err", err)
		})
	}
	return t
}

// Config returns the session configuration.
func (t *Tool) Config() config.Session { return t.cfg }

// Cursor returns the last known pointer position.
func (t *Tool) Cursor() image.Point { return t.cursor }

// SetCursor records the pointer position used by the next behavior.
func (t *Tool) SetCursor(p image.Point) { t.cursor = p }

// EditFootprint enters child-edit mode for f. A nil f leaves it unless the
// configuration enables child editing.
func (t *Tool) EditFootprint(f *board.Footprint) {
	t.footprint = f
	t.editChildren = f != nil || t.cfg.EditChildren
	if s, ok := t.selection.(interface{ SetEditChildren(bool) }); ok {
		s.SetEditChildren(t.editChildren)
	}
}

// EditingChildren reports whether footprint items can be edited.
func (t *Tool) EditingChildren() bool { return t.editChildren }

// Footprint returns the footprint being edited, or nil.
func (t *Tool) Footprint() *board.Footprint { return t.footprint }

// Dispatch runs the behavior bound to the command action of ev. Behaviors
// that follow the pointer read further events from src.
func (t *Tool) Dispatch(ctx context.Context, ev Event, src EventSource) error {
	t.cursor = ev.Pos
	switch ev.Action {
	case ActionMove:
		return t.Main(ctx, src)
	case ActionRotate:
		return t.Rotate(ctx)
	case ActionFlip:
		return t.Flip(ctx)
	case ActionRemove:
		return t.Remove(ctx)
	case ActionProperties:
		return t.Properties(ctx)
	case ActionCopy:
		return t.Copy(ctx)
	case ActionPaste:
		return t.Paste(ctx, src)
	case ActionUndo:
		return t.Undo()
	case ActionRedo:
		return t.Redo()
	}
	return errors.Errorf("no behavior bound to %s", ev.Action)
}

// makeSelection ensures there is something to work on, picking the item
// under the pointer when the selection is empty.
func (t *Tool) makeSelection() bool {
	if t.selection.Empty() {
		t.selection.PickOneUnderPointer(t.cursor)
	}
	return !t.selection.Empty()
}

// modificationPoint is the pivot for rotate and flip.
func (t *Tool) modificationPoint(s *session) image.Point {
	if t.selection.Len() == 1 {
		return t.selection.Front().Position().Sub(s.offset)
	}
	return t.cursor
}

// updateRatsnest refreshes the live overlay for the selection. Without
// redraw the dirty marks wait for the next Recompute.
func (t *Tool) updateRatsnest(redraw bool) {
	t.ratsnest.ClearSimple()
	for _, it := range t.selection.Items() {
		t.ratsnest.Touch(it)
	}
	if redraw {
		t.ratsnest.UpdateSimple()
	}
}

func (t *Tool) invalidateAll(items []board.Item, flag view.UpdateFlag) {
	for _, it := range items {
		t.view.Invalidate(it, flag)
	}
}

// Undo reverts the newest journal entry and brings the view, selection
// and ratsnest in line with the document.
func (t *Tool) Undo() error {
	e, err := t.journal.Undo()
	if errors.Is(err, undo.ErrNothingToUndo) {
		t.reporter.Report(err)
		return nil
	}
	if e != nil {
		t.syncEntry(e, true)
	}
	if err != nil {
		return err
	}
	t.logger.Debug("undo", "entry", e.Kind, "items", len(e.Items))
	return nil
}

// Redo reapplies the newest undone entry.
func (t *Tool) Redo() error {
	e, err := t.journal.Redo()
	if errors.Is(err, undo.ErrNothingToRedo) {
		t.reporter.Report(err)
		return nil
	}
	if e != nil {
		t.syncEntry(e, false)
	}
	if err != nil {
		return err
	}
	t.logger.Debug("redo", "entry", e.Kind, "items", len(e.Items))
	return nil
}

func (t *Tool) syncEntry(e *undo.Entry, reverted bool) {
	t.syncItems(e, reverted)
	t.selection.Prune()
	t.ratsnest.ClearSimple()
	t.ratsnest.Recompute()
	t.view.Refresh()
}

// syncItems updates the view after the journal applied e. Created items
// left the document on revert and came back on reapply; deleted items do
// the opposite.
func (t *Tool) syncItems(e *undo.Entry, reverted bool) {
	for _, p := range e.Items {
		switch {
		case p.Status == undo.Created && reverted, p.Status == undo.Deleted && !reverted:
			t.removeFromView(p.Item)
		case p.Status == undo.Created, p.Status == undo.Deleted:
			t.addToView(p.Item)
		default:
			if f, ok := p.Item.(*board.Footprint); ok {
				t.view.Resync(f)
				continue
			}
			t.view.Invalidate(p.Item, view.UpdateAll)
		}
	}
}

func (t *Tool) addToView(item board.Item) {
	t.view.Add(item)
	if f, ok := item.(*board.Footprint); ok {
		f.RunOnChildren(t.view.Add)
	}
	t.view.Invalidate(item, view.UpdateAll)
}

func (t *Tool) removeFromView(item board.Item) {
	if f, ok := item.(*board.Footprint); ok {
		f.RunOnChildren(t.view.Remove)
	}
	t.view.Remove(item)
}
