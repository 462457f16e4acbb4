package edit

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
)

// Remove deletes the selection. The selection is cleared before anything
// is destroyed. Items refused by the removal policy are reported one by
// one and their siblings are still removed.
func (t *Tool) Remove(ctx context.Context) error {
	if !t.makeSelection() {
		return nil
	}
	picked := t.selection.Items()
	t.selection.Clear()

	doomed := t.removable(picked)
	if len(doomed) == 0 {
		return nil
	}
	t.journal.Save(undo.Deleted, t.cursor, doomed...)
	for _, it := range doomed {
		if err := t.remove(it); err != nil {
			return errors.Wrap(err, "removing items")
		}
	}

	t.ratsnest.ClearSimple()
	t.ratsnest.Recompute()
	t.view.Refresh()
	t.logger.Debug("removed", "behavior", "remove", "items", len(doomed))
	return nil
}

// removable filters picked down to the items the removal policy allows.
// Footprint items whose footprint goes too are left to it.
func (t *Tool) removable(picked []board.Item) []board.Item {
	var out []board.Item
	for _, it := range picked {
		if it.Kind().IsChildKind() {
			if p := it.Parent(); p != nil && lo.Contains(picked, board.Item(p)) {
				continue
			}
			if err := t.childPolicy(it); err != nil {
				t.reporter.Report(err)
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (t *Tool) childPolicy(it board.Item) error {
	if txt, ok := it.(*board.FootprintText); ok && txt.Role.IsReserved() {
		return errors.Wrapf(ErrReservedLabel, "%s %q", txt.Role, txt.Value)
	}
	if !t.editChildren {
		return errors.Wrapf(ErrChildEditRequired, "removing %s", it.Kind())
	}
	return nil
}

func (t *Tool) remove(it board.Item) error {
	switch it.Kind() {
	case board.KindFootprint:
		f := it.(*board.Footprint)
		f.ClearFlags(board.AllFlags)
		f.RunOnChildren(func(c board.Item) {
			c.ClearFlags(board.AllFlags)
			t.view.Remove(c)
		})
		t.view.Remove(f)
		return t.board.Remove(f)

	case board.KindPad, board.KindFootprintText, board.KindFootprintEdge:
		parent := it.Parent()
		if parent == nil {
			return errors.Wrapf(board.ErrNotOwned, "%s %s has no footprint", it.Kind(), it.ID())
		}
		parent.SetLastEditTime()
		t.view.Remove(it)
		return parent.Remove(it)

	case board.KindGraphic, board.KindText, board.KindTrack, board.KindVia,
		board.KindDimension, board.KindTarget, board.KindMarker, board.KindZone:
		t.view.Remove(it)
		return t.board.Remove(it)
	}
	return errors.Errorf("cannot remove a %s", it.Kind())
}
