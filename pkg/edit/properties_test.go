package edit

import (
	"context"
	"image"
	"testing"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
)

func TestPropertiesDetectsChange(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	h.editor.edit = func(item board.Item) error {
		_, err := ApplyFields(h.journal, item, []Field{{"text", "hello world"}})
		return err
	}
	txt.SetFlags(board.FlagBrightened)
	h.sel.Add(txt)
	redraws := h.view.Redraws()

	if err := h.tool.Properties(context.Background()); err != nil {
		t.Fatal(err)
	}
	if txt.Value != "hello world" {
		t.Fatalf("editor change not applied: %q", txt.Value)
	}
	if h.editor.flags[0] != 0 {
		t.Errorf("editor should see no status flags, saw %b", h.editor.flags[0])
	}
	if txt.Flags() != board.FlagBrightened {
		t.Errorf("flags not restored: %b", txt.Flags())
	}
	if h.journal.Len() != 1 {
		t.Errorf("expected the editor's entry only, got %d", h.journal.Len())
	}
	if got := h.view.Proxy(txt).Bounds; got != txt.Bounds() {
		t.Errorf("proxy bounds %v, item bounds %v", got, txt.Bounds())
	}
	if h.view.Redraws() == redraws {
		t.Error("a change should trigger a redraw")
	}
	if !h.sel.Empty() {
		t.Error("selection is cleared for the editor")
	}
}

func TestPropertiesWithoutChange(t *testing.T) {
	b := board.New()
	txt := board.NewText(image.Pt(10, 10), "hi", board.LayerFrontSilk)
	mustAdd(t, b, txt)
	h := newHarness(t, b)
	h.sel.Add(txt)

	if err := h.tool.Properties(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.editor.seen) != 1 {
		t.Fatal("editor should be called")
	}
	if h.journal.Len() != 0 || h.rats.RecomputeCount() != 0 {
		t.Error("nothing happens when the editor records nothing")
	}
}

func TestPropertiesFootprintChildUnderPointer(t *testing.T) {
	b := board.Demo()
	h := newHarness(t, b)
	f := b.Footprints()[0]
	pad := f.Pads()[0]
	h.sel.Add(f)
	h.tool.SetCursor(pad.Pos)

	if err := h.tool.Properties(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.editor.seen) != 1 || h.editor.seen[0] != board.Item(pad) {
		t.Errorf("expected the pad under the pointer to be edited, got %v", h.editor.seen)
	}
}

func TestPropertiesOnlyRetargetsToPads(t *testing.T) {
	b := board.Demo()
	f := b.Footprints()[0]
	tests := []struct {
		name string
		at   image.Point
	}{
		{"anchor next to silkscreen", f.Pos},
		{"reference label", f.Reference().Pos},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, b)
			h.sel.Add(f)
			h.tool.SetCursor(tc.at)

			if err := h.tool.Properties(context.Background()); err != nil {
				t.Fatal(err)
			}
			if len(h.editor.seen) != 1 || h.editor.seen[0] != board.Item(f) {
				t.Errorf("expected the footprint itself to be edited, got %v", h.editor.seen)
			}
		})
	}
}

func TestPropertiesNeedsSingleItem(t *testing.T) {
	b, a, c := twoVias(t)
	h := newHarness(t, b)
	h.sel.Add(a)
	h.sel.Add(c)

	if err := h.tool.Properties(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.editor.seen) != 0 {
		t.Error("editor should not run for several items")
	}
}

// ── Fields ──

func TestApplyFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		changed bool
		wantErr bool
	}{
		{"unchanged", []Field{{"x", "10"}, {"diameter", "2"}}, false, false},
		{"move", []Field{{"x", "12"}, {"y", "14"}}, true, false},
		{"net", []Field{{"net", "3"}}, true, false},
		{"unknown field", []Field{{"text", "x"}}, false, true},
		{"not a number", []Field{{"x", "ten"}}, false, true},
		{"zero diameter", []Field{{"diameter", "0"}}, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.New()
			v := board.NewVia(image.Pt(10, 10), 2, 1, 0)
			mustAdd(t, b, v)
			j := undo.New(b, 0)

			changed, err := ApplyFields(j, v, tc.fields)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if changed != tc.changed {
				t.Errorf("changed = %v, want %v", changed, tc.changed)
			}
			wantEntries := 0
			if tc.changed {
				wantEntries = 1
			}
			if j.Len() != wantEntries {
				t.Errorf("expected %d entries, got %d", wantEntries, j.Len())
			}
			if tc.wantErr && v.Pos != image.Pt(10, 10) {
				t.Error("a rejected edit must not touch the item")
			}
		})
	}
}

func TestApplyFieldsMovesChildLocally(t *testing.T) {
	b := board.Demo()
	f := b.Footprints()[0]
	pad := f.Pads()[0]
	j := undo.New(b, 0)

	if _, err := ApplyFields(j, pad, []Field{{"x", "14"}}); err != nil {
		t.Fatal(err)
	}
	if want := pad.Pos.Sub(f.Pos); pad.Pos0 != want {
		t.Errorf("local offset %v, want %v", pad.Pos0, want)
	}
}

func TestFieldsPerKind(t *testing.T) {
	b := board.Demo()
	f := b.Footprints()[0]
	names := func(fs []Field) []string {
		var out []string
		for _, f := range fs {
			out = append(out, f.Name)
		}
		return out
	}
	tests := []struct {
		item board.Item
		want []string
	}{
		{f, []string{"x", "y", "name"}},
		{f.Pads()[0], []string{"x", "y", "number", "net"}},
		{f.Reference(), []string{"x", "y", "text"}},
		{demoVia(t, b), []string{"x", "y", "diameter", "net"}},
	}
	for _, tc := range tests {
		got := names(Fields(tc.item))
		if len(got) != len(tc.want) {
			t.Errorf("%s: fields %v, want %v", tc.item.Kind(), got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: fields %v, want %v", tc.item.Kind(), got, tc.want)
				break
			}
		}
	}
}
