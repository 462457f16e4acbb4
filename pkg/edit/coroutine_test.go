package edit

import (
	"context"
	"image"
	"testing"

	"github.com/wesen/boardedit/pkg/board"
)

func TestCoroutineDrivesDrag(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	co := NewCoroutine()

	y := co.Start(context.Background(), h.tool.Behavior(Command(ActionMove, a.Pos)))
	if y.Done || !co.Running() {
		t.Fatal("session should wait for the first event")
	}
	for _, ev := range []Event{Motion(image.Pt(10, 10)), Motion(image.Pt(13, 10))} {
		if y = co.Resume(ev); y.Done {
			t.Fatalf("session ended early at %v", ev)
		}
	}
	if a.Pos != image.Pt(13, 10) {
		t.Errorf("via at %v while suspended", a.Pos)
	}
	y = co.Resume(Click(image.Pt(13, 10)))
	if !y.Done || y.Err != nil {
		t.Fatalf("expected a clean finish, got %+v", y)
	}
	if co.Running() {
		t.Error("coroutine should be idle")
	}
	if y = co.Resume(Motion(image.Pt(0, 0))); !y.Done {
		t.Error("resuming a finished session is a no-op")
	}
}

func TestCoroutineCloseRollsBack(t *testing.T) {
	b, a, _ := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	co := NewCoroutine()

	co.Start(context.Background(), h.tool.Behavior(Command(ActionMove, a.Pos)))
	co.Resume(Motion(image.Pt(10, 10)))
	co.Resume(Motion(image.Pt(19, 19)))
	if y := co.Close(); !y.Done || y.Err != nil {
		t.Fatalf("close returned %+v", y)
	}
	if a.Pos != image.Pt(10, 10) || h.journal.Len() != 0 {
		t.Errorf("closing mid-drag should roll back, via at %v", a.Pos)
	}

	y := co.Start(context.Background(), h.tool.Behavior(Command(ActionRotate, a.Pos)))
	if !y.Done {
		t.Error("a single-shot behavior finishes without waiting")
	}
}

func TestCoroutinePrompt(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	co := NewCoroutine()
	h.tool.editor = &FieldEditor{Journal: h.journal, Prompt: co.Prompt}
	h.sel.Add(txt)

	y := co.Start(context.Background(), h.tool.Behavior(Command(ActionProperties, txt.Pos)))
	req, ok := y.Request.(EditRequest)
	if !ok {
		t.Fatalf("expected an edit request, got %+v", y)
	}
	if req.Item != board.Item(txt) || req.Fields[2] != (Field{"text", "hi"}) {
		t.Errorf("unexpected request %+v", req)
	}

	y = co.Resume(EditDone([]Field{{"text", "yo"}}))
	if !y.Done || y.Err != nil {
		t.Fatalf("expected a clean finish, got %+v", y)
	}
	if txt.Value != "yo" || h.journal.Len() != 1 {
		t.Errorf("edit not applied: %q, %d entries", txt.Value, h.journal.Len())
	}
}

func TestCoroutinePromptDismissed(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	co := NewCoroutine()
	h.tool.editor = &FieldEditor{Journal: h.journal, Prompt: co.Prompt}
	h.sel.Add(txt)

	co.Start(context.Background(), h.tool.Behavior(Command(ActionProperties, txt.Pos)))
	if y := co.Resume(Cancel(txt.Pos)); !y.Done {
		t.Fatal("dismissing the editor ends the session")
	}
	if txt.Value != "hi" || h.journal.Len() != 0 {
		t.Error("a dismissed edit changes nothing")
	}
}
