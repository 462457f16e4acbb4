package edit

import (
	"context"
	"image"
	"testing"

	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/clipboard"
	"github.com/wesen/boardedit/pkg/undo"
)

// copyFromR1 copies R1's reference label and first pad in child-edit mode.
func copyFromR1(t *testing.T, h *harness) (*board.FootprintText, *board.Pad) {
	t.Helper()
	r1 := h.board.Footprints()[0]
	h.tool.EditFootprint(r1)
	ref, pad := r1.Reference(), r1.Pads()[0]
	h.sel.Add(ref)
	h.sel.Add(pad)
	if err := h.tool.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.reported) != 0 {
		t.Fatalf("copy reported %v", h.reported)
	}
	return ref, pad
}

func TestCopyPasteRoundTrip(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	r1, r2 := b.Footprints()[0], b.Footprints()[1]
	ref, pad := copyFromR1(t, h)
	viewLen := h.view.Len()

	h.tool.EditFootprint(r2)
	h.tool.SetCursor(r2.Pos)
	before := len(r2.Children())
	own := r2.Pads()[0]
	src := Replay(Click(r2.Pos))
	if err := h.tool.Paste(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	children := r2.Children()
	if len(children) != before+2 {
		t.Fatalf("expected 2 pasted items, footprint has %d children (was %d)", len(children), before)
	}
	shift := r2.Pos.Sub(r1.Pos)

	txt, ok := children[before].(*board.FootprintText)
	if !ok {
		t.Fatalf("first pasted item is a %s", children[before].Kind())
	}
	if txt.Role != board.RoleGeneric || txt.Value != ref.Value {
		t.Errorf("label pasted as %s %q", txt.Role, txt.Value)
	}
	if txt.Pos != ref.Pos.Add(shift) {
		t.Errorf("label at %v, want %v", txt.Pos, ref.Pos.Add(shift))
	}

	np, ok := children[before+1].(*board.Pad)
	if !ok {
		t.Fatalf("second pasted item is a %s", children[before+1].Kind())
	}
	if np.Number != pad.Number || np.Size != pad.Size || np.NetCode != pad.NetCode {
		t.Errorf("pad attributes changed: %+v", np)
	}
	if np.Pos0 != pad.Pos0 {
		t.Errorf("pad local offset %v, want %v", np.Pos0, pad.Pos0)
	}

	for _, c := range children[before:] {
		if c.ID() == ref.ID() || c.ID() == pad.ID() {
			t.Error("pasted items need new identities")
		}
		if !h.view.Contains(c) {
			t.Errorf("pasted %s has no view proxy", c.Kind())
		}
	}
	if h.journal.Len() != 1 || h.journal.Top().Kind != undo.ModEdit {
		t.Errorf("expected one mod-edit entry, got %d", h.journal.Len())
	}
	if len(h.view.Preview()) != 0 {
		t.Error("preview should be cleared")
	}
	if r2.Reference() == nil || r2.Reference().Value != "R2" {
		t.Error("destination keeps its own reference label")
	}

	if err := h.tool.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(r2.Children()) != before {
		t.Errorf("undo left %d children, want %d", len(r2.Children()), before)
	}
	if h.view.Len() != viewLen {
		t.Errorf("view has %d proxies after undo, want %d", h.view.Len(), viewLen)
	}
	if !b.Contains(own) || own.Parent() != r2 || !h.view.Contains(own) {
		t.Error("undo must keep the destination's own pad in place")
	}
	for _, c := range children[before:] {
		if b.Contains(c) || h.view.Contains(c) {
			t.Errorf("pasted %s still present after undo", c.Kind())
		}
	}

	if err := h.tool.Redo(); err != nil {
		t.Fatal(err)
	}
	if len(r2.Children()) != before+2 || !b.Contains(children[before+1]) {
		t.Errorf("redo should bring the pasted items back, footprint has %d children", len(r2.Children()))
	}
	if !b.Contains(own) || !h.view.Contains(children[before+1]) {
		t.Error("redo should keep the own pad and show the pasted pad")
	}
}

func TestPasteFollowsPointerAndRotates(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	_, pad := copyFromR1(t, h)
	r1 := b.Footprints()[0]
	before := len(r1.Children())

	h.tool.SetCursor(r1.Pos)
	src := Replay(
		Motion(r1.Pos.Add(image.Pt(0, 4))),
		Command(ActionRotate, r1.Pos.Add(image.Pt(0, 4))),
		Click(r1.Pos.Add(image.Pt(0, 4))),
	)
	if err := h.tool.Paste(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	children := r1.Children()
	np := children[len(children)-1].(*board.Pad)
	if len(children) != before+2 {
		t.Fatalf("expected 2 pasted items, got %d", len(children)-before)
	}
	if np.Orient != pad.Orient+900 {
		t.Errorf("pasted pad orientation %d, want a quarter turn", np.Orient)
	}
	want := image.Pt(r1.Pos.X, r1.Pos.Y+4+4)
	if np.Pos != want {
		t.Errorf("pasted pad at %v, want %v", np.Pos, want)
	}
}

func TestPasteCancel(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	copyFromR1(t, h)
	r1 := b.Footprints()[0]
	before := len(r1.Children())

	src := Replay(Motion(image.Pt(30, 30)), Cancel(image.Pt(30, 30)), Click(image.Pt(30, 30)))
	if err := h.tool.Paste(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if len(r1.Children()) != before || h.journal.Len() != 0 {
		t.Error("a cancelled paste changes nothing")
	}
	if len(h.view.Preview()) != 0 {
		t.Error("preview should be cleared")
	}
	if src.Remaining() != 1 {
		t.Error("paste should stop at cancel")
	}
}

func TestPasteMalformedPayload(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	h.tool.EditFootprint(b.Footprints()[0])
	if err := h.buf.WriteAll("items: [\n"); err != nil {
		t.Fatal(err)
	}

	src := Replay(Click(image.Pt(20, 8)))
	if err := h.tool.Paste(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if len(h.reported) != 1 || !errors.Is(h.reported[0], clipboard.ErrMalformedPayload) {
		t.Fatalf("expected a malformed payload report, got %v", h.reported)
	}
	if src.Remaining() != 1 || len(h.view.Preview()) != 0 || h.journal.Len() != 0 {
		t.Error("a malformed payload aborts before any preview")
	}
}

func TestCopyPasteNeedChildEditMode(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	h.sel.Add(b.Footprints()[0].Pads()[0])

	if err := h.tool.Copy(context.Background()); err != nil {
		t.Fatal(err)
	}
	if text, _ := h.buf.ReadAll(); text != "" {
		t.Errorf("copy outside child-edit mode wrote %q", text)
	}
	src := Replay(Click(image.Pt(0, 0)))
	if err := h.tool.Paste(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if src.Remaining() != 1 || len(h.reported) != 0 {
		t.Error("paste outside child-edit mode is a silent no-op")
	}
}
