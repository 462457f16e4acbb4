package edit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// Copy puts clones of the selected footprint items on the clipboard. It
// only works in child-edit mode. Reference and value labels are copied as
// plain labels.
func (t *Tool) Copy(ctx context.Context) error {
	if !t.editChildren {
		t.logger.Debug("copy needs child-edit mode")
		return nil
	}
	if !t.makeSelection() {
		return nil
	}
	items := t.selection.Items()

	tmp := board.NewFootprint("clipboard", t.cursor)
	if f := t.copyFrame(items); f != nil {
		tmp.Pos, tmp.Orient = f.Pos, f.Orient
	}
	for _, it := range items {
		if !it.Kind().IsChildKind() {
			continue
		}
		if err := tmp.Add(normalized(it.Clone())); err != nil {
			return errors.Wrap(err, "building clipboard footprint")
		}
	}
	if len(tmp.Children()) == 0 {
		return nil
	}

	if err := t.clipboard.Save(tmp); err != nil {
		t.reporter.Report(errors.Wrap(err, "copy"))
		return nil
	}
	t.logger.Debug("copied", "behavior", "copy", "items", len(tmp.Children()))
	return nil
}

// copyFrame is the footprint whose placement the clipboard copy keeps.
func (t *Tool) copyFrame(items []board.Item) *board.Footprint {
	if t.footprint != nil {
		return t.footprint
	}
	for _, it := range items {
		if p := it.Parent(); p != nil {
			return p
		}
	}
	return nil
}

// Paste shows the clipboard contents as a preview that follows the
// pointer. A click copies the preview's items into the footprint being
// edited; cancel drops the preview. The preview itself never becomes part
// of the board.
func (t *Tool) Paste(ctx context.Context, src EventSource) error {
	if !t.editChildren {
		t.logger.Debug("paste needs child-edit mode")
		return nil
	}
	target := t.footprint
	if target == nil {
		t.logger.Warn("paste needs a footprint to edit")
		return nil
	}
	pasted, err := t.clipboard.Load()
	if err != nil {
		t.reporter.Report(errors.Wrap(err, "paste"))
		return nil
	}

	pasted.SetPosition(t.cursor)
	t.view.SetPreview(pasted)
	t.selection.Clear()
	defer func() {
		t.view.ClearPreview()
		t.view.Refresh()
	}()

	for {
		ev, ok := src.Next(ctx)
		if !ok {
			return nil
		}
		t.cursor = ev.Pos

		switch {
		case ev.IsMotion():
			pasted.SetPosition(t.cursor)
		case ev.IsAction(ActionRotate):
			pasted.Rotate(pasted.Pos, t.cfg.RotationStep)
		case ev.IsAction(ActionFlip):
			pasted.Flip(pasted.Pos)
		case ev.IsCancel() || ev.IsActivate() || ev.IsUndoRedo():
			return nil
		case ev.Kind == EventClick:
			return t.commitPaste(target, pasted)
		}
		t.view.Refresh()
	}
}

// commitPaste clones the preview's children into target. The entry keeps
// target's own snapshot and one created pick per clone, so undo detaches
// the clones and leaves the existing children in place.
func (t *Tool) commitPaste(target, pasted *board.Footprint) error {
	children := pasted.Children()
	picked := make([]undo.Picked, 0, len(children)+1)
	picked = append(picked, undo.Picked{Item: target, Status: undo.Changed})
	clones := make([]board.Item, len(children))
	for i, c := range children {
		clones[i] = normalized(c.Clone())
		picked = append(picked, undo.Picked{Item: clones[i], Status: undo.Created, Parent: target})
	}
	t.journal.SavePicked(undo.ModEdit, target.Pos, picked)
	target.SetLastEditTime()

	for _, clone := range clones {
		if err := target.Add(clone); err != nil {
			return errors.Wrap(err, "pasting into footprint")
		}
		t.view.Add(clone)
	}
	t.view.Invalidate(target, view.UpdateGeometry)
	t.ratsnest.ClearSimple()
	t.ratsnest.Recompute()
	t.logger.Debug("pasted", "behavior", "paste", "items", len(clones), "footprint", target.Name)
	return nil
}

// normalized demotes reserved labels so they do not clash with the labels
// of the footprint they land in.
func normalized(it board.Item) board.Item {
	if txt, ok := it.(*board.FootprintText); ok {
		txt.Role = board.RoleGeneric
	}
	return it
}
