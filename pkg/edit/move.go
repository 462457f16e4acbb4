package edit

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// session is the state frame of one running behavior. Nested behaviors get
// their own frame.
type session struct {
	dragging bool
	// offset is the vector from the pointer to the first item while
	// dragging.
	offset image.Point
	// update is the invalidation applied to the items when the move ends.
	update   view.UpdateFlag
	unselect bool
	restore  bool
	// start is the journal position before the session recorded anything.
	start undo.Mark
}

// Main is the move behavior. The first motion arms the drag and records
// one journal entry for the whole selection; later motions move the items
// along with the pointer. A click or button release commits, cancel rolls
// back every entry the session recorded, and an undo or redo ends the
// session with the selection cleared. Rotate, flip and remove commands
// are accepted while the session runs.
func (t *Tool) Main(ctx context.Context, src EventSource) error {
	s := &session{
		unselect: t.selection.Empty(),
		update:   view.UpdateGeometry,
		start:    t.journal.Mark(),
	}
	if !t.makeSelection() {
		return nil
	}
	t.logger.Debug("session started", "behavior", "move", "items", t.selection.Len())

	var err error
loop:
	for {
		ev, ok := src.Next(ctx)
		if !ok {
			s.restore = true
			break
		}
		t.cursor = ev.Pos

		switch {
		case ev.IsCancel() || ev.IsActivate():
			s.restore = true
			break loop
		case ev.IsUndoRedo():
			s.unselect = true
			break loop
		case ev.IsAction(ActionRotate):
			t.rotate(s)
		case ev.IsAction(ActionFlip):
			t.flip(s)
			s.update |= view.UpdateLayers
		case ev.IsAction(ActionRemove):
			err = t.Remove(ctx)
			break loop
		case ev.IsMotion():
			t.drag(s, ev)
		case ev.IsFinish():
			break loop
		}
	}

	if s.restore {
		if rerr := t.rollback(s); rerr != nil && err == nil {
			err = rerr
		}
	} else {
		items := t.selection.Items()
		rebase(items)
		t.invalidateAll(items, s.update)
	}
	if s.unselect {
		t.selection.Clear()
	}
	t.ratsnest.ClearSimple()
	t.ratsnest.Recompute()
	t.view.Refresh()

	t.logger.Debug("session finished", "behavior", "move", "restored", s.restore)
	return err
}

func (t *Tool) drag(s *session, ev Event) {
	items := t.selection.Items()
	if len(items) == 0 {
		return
	}
	first := items[0]

	if s.dragging {
		movement := t.cursor.Sub(first.Position()).Add(s.offset)
		for _, it := range items {
			it.Move(movement)
		}
		t.updateRatsnest(true)
	} else {
		t.journal.Save(undo.Changed, first.Position(), items...)
		if ev.Ctrl() || t.cfg.AnchorAtOrigin {
			t.cursor = first.Position()
			s.offset = image.Point{}
		} else {
			s.offset = first.Position().Sub(t.cursor)
		}
		s.dragging = true
		t.logger.Debug("drag armed", "items", len(items), "offset", s.offset)
	}
	t.invalidateAll(items, view.UpdateGeometry)
	t.view.Refresh()
}

// rollback reverts every entry recorded since the session started.
func (t *Tool) rollback(s *session) error {
	for t.journal.Tip() != s.start.Tip {
		e, err := t.journal.RestoreFromTip()
		if errors.Is(err, undo.ErrNothingToUndo) {
			break
		}
		if e != nil {
			t.syncItems(e, true)
		}
		if err != nil {
			return err
		}
	}
	t.journal.RestoreRedo(s.start)
	t.selection.Prune()
	return nil
}

// Rotate turns the selection by the configured rotation step.
func (t *Tool) Rotate(ctx context.Context) error {
	t.rotate(&session{})
	return nil
}

// Flip mirrors the selection to the other side of the board.
func (t *Tool) Flip(ctx context.Context) error {
	t.flip(&session{})
	return nil
}

func (t *Tool) rotate(s *session) {
	step := t.cfg.RotationStep
	t.modify(s, undo.Rotated, view.UpdateGeometry, func(it board.Item, pivot image.Point) {
		it.Rotate(pivot, step)
	})
}

func (t *Tool) flip(s *session) {
	t.modify(s, undo.Flipped, view.UpdateAll, func(it board.Item, pivot image.Point) {
		it.Flip(pivot)
	})
}

// modify applies op to every selected item about the shared pivot. While
// a drag is running the drag's journal entry already covers the change.
func (t *Tool) modify(s *session, kind undo.Kind, flag view.UpdateFlag, op func(board.Item, image.Point)) {
	unselect := t.selection.Empty()
	if !t.makeSelection() {
		return
	}
	items := t.selection.Items()
	pivot := t.modificationPoint(s)

	if !s.dragging {
		t.journal.Save(kind, pivot, items...)
	}
	for _, it := range items {
		op(it, pivot)
		if !s.dragging {
			t.view.Invalidate(it, flag)
		}
	}
	if !s.dragging {
		rebase(items)
	}
	t.updateRatsnest(s.dragging)

	s.offset = items[0].Position().Sub(pivot)
	if s.dragging {
		t.invalidateAll(items, view.UpdateGeometry)
	} else {
		t.ratsnest.Recompute()
	}
	if unselect {
		t.selection.Clear()
	}
	t.view.Refresh()
	t.logger.Debug("modified", "behavior", kind, "items", len(items), "pivot", pivot)
}

// rebase refreshes the footprint-relative coordinates of moved children.
func rebase(items []board.Item) {
	for _, it := range items {
		if ch, ok := it.(board.Child); ok {
			ch.SetLocalCoord()
		}
	}
}
