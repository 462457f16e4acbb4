package edit

import (
	"context"
	"image"
	"testing"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/geom"
	"github.com/wesen/boardedit/pkg/undo"
)

// ── Drag ──

func TestDragRecordsOneEntry(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	h.sel.Add(c)

	src := Replay(
		Motion(image.Pt(12, 10)),
		Motion(image.Pt(13, 11)),
		Motion(image.Pt(15, 13)),
		Motion(image.Pt(17, 15)),
		Click(image.Pt(17, 15)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	if a.Pos != image.Pt(15, 15) || c.Pos != image.Pt(25, 15) {
		t.Errorf("items at %v %v, want (15,15) (25,15)", a.Pos, c.Pos)
	}
	if h.journal.Len() != 1 {
		t.Errorf("expected 1 journal entry, got %d", h.journal.Len())
	}
	if h.journal.Top().Kind != undo.Changed {
		t.Errorf("expected a changed entry, got %s", h.journal.Top().Kind)
	}
	if n := h.rats.RecomputeCount(); n != 1 {
		t.Errorf("expected one ratsnest recompute per gesture, got %d", n)
	}
	if got := h.view.Proxy(a).Bounds; got != a.Bounds() {
		t.Errorf("proxy bounds %v, item bounds %v", got, a.Bounds())
	}
	if h.sel.Len() != 2 {
		t.Error("a drag of a selection keeps it selected")
	}
}

func TestCancelledDragRestores(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	h.sel.Add(c)

	src := Replay(
		Motion(image.Pt(10, 10)),
		Motion(image.Pt(15, 15)),
		Cancel(image.Pt(15, 15)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	if a.Pos != image.Pt(10, 10) || c.Pos != image.Pt(20, 10) {
		t.Errorf("items at %v %v after cancel, want (10,10) (20,10)", a.Pos, c.Pos)
	}
	if h.journal.Len() != 0 || h.journal.RedoLen() != 0 {
		t.Errorf("cancel should leave no entries, got %d undo %d redo", h.journal.Len(), h.journal.RedoLen())
	}
	if got := h.view.Proxy(a).Bounds; got != a.Bounds() {
		t.Errorf("proxy bounds %v not restored to %v", got, a.Bounds())
	}
}

func TestCancelledDragKeepsRedo(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)

	drag := Replay(Motion(image.Pt(10, 10)), Motion(image.Pt(12, 10)), Click(image.Pt(12, 10)))
	if err := h.tool.Main(context.Background(), drag); err != nil {
		t.Fatal(err)
	}
	if err := h.tool.Undo(); err != nil {
		t.Fatal(err)
	}
	if h.journal.RedoLen() != 1 {
		t.Fatalf("expected one redo entry, got %d", h.journal.RedoLen())
	}

	h.sel.Clear()
	h.sel.Add(c)
	cancelled := Replay(Motion(image.Pt(20, 10)), Motion(image.Pt(25, 15)), Cancel(image.Pt(25, 15)))
	if err := h.tool.Main(context.Background(), cancelled); err != nil {
		t.Fatal(err)
	}
	if h.journal.RedoLen() != 1 {
		t.Errorf("a cancelled drag must keep the redo stack, got %d", h.journal.RedoLen())
	}
	if err := h.tool.Redo(); err != nil {
		t.Fatal(err)
	}
	if a.Pos != image.Pt(12, 10) {
		t.Errorf("redo should move A to (12,10), got %v", a.Pos)
	}
}

func TestCancelRollsBackRotateBeforeArming(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	h.sel.Add(txt)

	src := Replay(
		Command(ActionRotate, image.Pt(10, 10)),
		Motion(image.Pt(10, 10)),
		Motion(image.Pt(30, 12)),
		Cancel(image.Pt(30, 12)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if txt.Pos != image.Pt(10, 10) || txt.Angle != 0 {
		t.Errorf("text at %v angle %d after cancel", txt.Pos, txt.Angle)
	}
	if h.journal.Len() != 0 {
		t.Errorf("expected every session entry rolled back, %d left", h.journal.Len())
	}
}

func TestExhaustedSourceCancels(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)

	src := Replay(Motion(image.Pt(10, 10)), Motion(image.Pt(11, 19)))
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if a.Pos != image.Pt(10, 10) {
		t.Errorf("via at %v, want its start position", a.Pos)
	}
}

func TestCtrlAnchorsAtOrigin(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)

	src := Replay(
		Motion(image.Pt(13, 13)).WithCtrl(),
		Motion(image.Pt(30, 30)),
		Click(image.Pt(30, 30)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if a.Pos != image.Pt(30, 30) {
		t.Errorf("anchored drag should put the via under the pointer, got %v", a.Pos)
	}
}

func TestUndoRedoEndsSession(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)

	src := Replay(
		Motion(image.Pt(10, 10)),
		Motion(image.Pt(14, 10)),
		UndoRedo(image.Pt(14, 10)),
		Click(image.Pt(14, 10)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if src.Remaining() != 1 {
		t.Errorf("session should stop at the undo notification, %d events left", src.Remaining())
	}
	if !h.sel.Empty() {
		t.Error("an undo during the session clears the selection")
	}
	if h.journal.Len() != 1 {
		t.Errorf("the drag entry is left for the undo, got %d entries", h.journal.Len())
	}
}

func TestPickedItemIsUnselectedAtEnd(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.tool.SetCursor(a.Pos)

	src := Replay(Motion(image.Pt(10, 10)), Motion(image.Pt(10, 16)), Click(image.Pt(10, 16)))
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if a.Pos != image.Pt(10, 16) {
		t.Errorf("picked via at %v", a.Pos)
	}
	if !h.sel.Empty() {
		t.Error("an item picked for the session is released when it ends")
	}
}

func TestNoTargetIsNoop(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.tool.SetCursor(image.Pt(100, 100))
	ctx := context.Background()

	src := Replay(Motion(image.Pt(100, 100)), Click(image.Pt(100, 100)))
	if err := h.tool.Main(ctx, src); err != nil {
		t.Fatal(err)
	}
	if src.Remaining() != 2 {
		t.Error("no events should be read without a target")
	}
	for _, op := range []func(context.Context) error{h.tool.Rotate, h.tool.Flip, h.tool.Remove, h.tool.Properties} {
		if err := op(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if h.journal.Len() != 0 || len(h.editor.seen) != 0 || len(h.reported) != 0 {
		t.Errorf("expected no effect, got %d entries %d edits %d reports",
			h.journal.Len(), len(h.editor.seen), len(h.reported))
	}
	if a.Pos != image.Pt(10, 10) || c.Pos != image.Pt(20, 10) {
		t.Error("items moved without a target")
	}
}

// ── Rotate / Flip ──

func TestRotateFourTimesIsIdentity(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	f := b.Footprints()[0]
	h.sel.Add(f)

	type state struct {
		pos    image.Point
		orient geom.Angle
	}
	snapshot := func() []state {
		out := []state{{f.Pos, f.Orient}}
		for _, p := range f.Pads() {
			out = append(out, state{p.Pos, p.Orient})
		}
		f.RunOnChildren(func(c board.Item) { out = append(out, state{c.Position(), 0}) })
		return out
	}
	before := snapshot()

	ctx := context.Background()
	for range 4 {
		if err := h.tool.Rotate(ctx); err != nil {
			t.Fatal(err)
		}
	}

	after := snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("state %d: %v before, %v after four turns", i, before[i], after[i])
		}
	}
	if h.journal.Len() != 4 {
		t.Errorf("expected one rotated entry per command, got %d", h.journal.Len())
	}
	if h.journal.Top().Kind != undo.Rotated {
		t.Errorf("expected rotated entry, got %s", h.journal.Top().Kind)
	}
}

func TestRotateSelectionAboutCursor(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	h.sel.Add(c)
	h.tool.SetCursor(image.Pt(15, 10))

	if err := h.tool.Rotate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.Pos != image.Pt(15, 15) || c.Pos != image.Pt(15, 5) {
		t.Errorf("quarter turn about (15,10) gave %v %v", a.Pos, c.Pos)
	}
	if h.rats.RecomputeCount() != 1 {
		t.Error("a standalone rotate recomputes the ratsnest")
	}
}

func TestFlipAboutOwnPosition(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	h.sel.Add(txt)

	if err := h.tool.Flip(context.Background()); err != nil {
		t.Fatal(err)
	}
	if txt.Pos != image.Pt(10, 10) {
		t.Errorf("flip about the item's own position moved it to %v", txt.Pos)
	}
	if txt.Layer != board.LayerBackSilk {
		t.Errorf("expected back silk, got %s", txt.Layer)
	}
	if got := h.view.Proxy(txt).Layers; got != board.LayersOf(board.LayerBackSilk) {
		t.Errorf("proxy layers %v were not refreshed", got)
	}
	if h.journal.Top().Kind != undo.Flipped {
		t.Errorf("expected flipped entry, got %s", h.journal.Top().Kind)
	}
}

func TestFlipDuringDrag(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	h.sel.Add(txt)

	src := Replay(
		Motion(image.Pt(10, 10)),
		Command(ActionFlip, image.Pt(10, 10)),
		Click(image.Pt(10, 10)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if h.journal.Len() != 1 {
		t.Errorf("a flip while dragging is covered by the drag entry, got %d entries", h.journal.Len())
	}
	if got := h.view.Proxy(txt).Layers; got != board.LayersOf(board.LayerBackSilk) {
		t.Errorf("final update should refresh layers, proxy has %v", got)
	}
}

func TestRemoveDuringDragEndsSession(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)

	src := Replay(
		Motion(image.Pt(10, 10)),
		Command(ActionRemove, image.Pt(10, 10)),
		Click(image.Pt(10, 10)),
	)
	if err := h.tool.Main(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if b.Contains(a) || h.view.Contains(a) {
		t.Error("via should be removed")
	}
	if src.Remaining() != 1 {
		t.Error("remove ends the session")
	}
}
