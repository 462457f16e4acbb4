package view

import (
	"image"
	"strings"
	"testing"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/cellbuf"
	"github.com/wesen/boardedit/pkg/ratsnest"
)

// ── Proxies ──

func TestLoadAddsChildren(t *testing.T) {
	b := board.Demo()
	s := New()
	s.Load(b)

	n := 0
	b.Walk(func(board.Item) bool { n++; return true })
	if s.Len() != n {
		t.Errorf("expected %d proxies, got %d", n, s.Len())
	}
	pad := b.Footprints()[0].Pads()[0]
	if !s.Contains(pad) {
		t.Error("pads should have proxies after Load")
	}
}

func TestAddRemove(t *testing.T) {
	s := New()
	v := board.NewVia(image.Pt(1, 1), 2, 1, 0)
	s.Add(v)
	s.Add(v)
	if s.Len() != 1 {
		t.Fatalf("double Add should be a no-op, got %d proxies", s.Len())
	}
	s.Remove(v)
	if s.Contains(v) || s.Len() != 0 {
		t.Error("Remove should drop the proxy")
	}
	s.Remove(v)
}

func TestInvalidateLayersRefreshesCache(t *testing.T) {
	s := New()
	tr := board.NewTrack(image.Pt(0, 0), image.Pt(4, 0), 1, board.LayerFrontCu, 0)
	s.Add(tr)

	tr.Flip(image.Pt(0, 0))
	if s.Proxy(tr).Layers.Has(board.LayerBackCu) {
		t.Fatal("cache should be stale before invalidation")
	}
	s.Invalidate(tr, UpdateGeometry)
	if s.Proxy(tr).Layers.Has(board.LayerBackCu) {
		t.Error("a geometry update must not refresh layers")
	}
	s.Invalidate(tr, UpdateLayers)
	p := s.Proxy(tr)
	if !p.Layers.Has(board.LayerBackCu) {
		t.Error("layers should be refreshed")
	}
	if p.Updates != 2 || p.LastUpdate != UpdateLayers {
		t.Errorf("unexpected bookkeeping: updates=%d last=%s", p.Updates, p.LastUpdate)
	}
}

func TestInvalidateFootprintReachesChildren(t *testing.T) {
	b := board.Demo()
	s := New()
	s.Load(b)
	f := b.Footprints()[0]
	f.Move(image.Pt(3, 0))
	s.Invalidate(f, UpdateGeometry)
	for _, c := range f.Children() {
		p := s.Proxy(c)
		if p.Updates != 1 || p.Bounds != c.Bounds() {
			t.Errorf("%s proxy not refreshed", c.Kind())
		}
	}
}

func TestInvalidateUnknownItemIgnored(t *testing.T) {
	s := New()
	s.Invalidate(board.NewVia(image.Pt(0, 0), 2, 1, 0), UpdateAll)
	if s.Len() != 0 {
		t.Error("invalidating an unknown item must not add it")
	}
}

func TestResyncAfterChildSwap(t *testing.T) {
	b := board.Demo()
	s := New()
	s.Load(b)
	f := b.Footprints()[0]

	snapshot := f.Clone().(*board.Footprint)
	extra := board.NewFootprintText(board.RoleGeneric, "x", f.Pos)
	_ = f.Add(extra)
	s.Add(extra)
	old := f.Children()

	f.SwapData(snapshot)
	s.Resync(f)

	if s.Contains(extra) {
		t.Error("stale child proxy should be removed")
	}
	for _, c := range old {
		if s.Contains(c) {
			t.Errorf("old %s should no longer have a proxy", c.Kind())
		}
	}
	for _, c := range f.Children() {
		if !s.Contains(c) {
			t.Errorf("current %s should have a proxy", c.Kind())
		}
	}
}

func TestRefreshCounts(t *testing.T) {
	s := New()
	s.Refresh()
	s.Refresh()
	if s.Redraws() != 2 {
		t.Errorf("expected 2 redraws, got %d", s.Redraws())
	}
}

// ── Render ──

func TestRenderDemo(t *testing.T) {
	b := board.Demo()
	s := New()
	s.Load(b)
	buf := cellbuf.New(64, 28, StyleBG)
	s.Render(buf, nil)

	out := buf.String()
	for _, want := range []string{"R1", "R2", "J1", "boardedit demo"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered board is missing %q", want)
		}
	}
	if c, _ := buf.At(image.Pt(40, 8)); c.Ch != '◎' {
		t.Errorf("expected via glyph at (40,8), got %q", c.Ch)
	}
}

func TestRenderSelectedStyle(t *testing.T) {
	b := board.New()
	v := board.NewVia(image.Pt(3, 3), 2, 1, 0)
	_ = b.Add(v)
	s := New()
	s.Load(b)
	v.SetFlags(board.FlagSelected)

	buf := cellbuf.New(8, 8, StyleBG)
	s.Render(buf, nil)
	if c, _ := buf.At(v.Pos); c.Style != StyleSelected {
		t.Errorf("selected via should use StyleSelected, got %d", c.Style)
	}
}

func TestRenderAirwiresAndPreview(t *testing.T) {
	s := New()
	preview := board.NewFootprint("P", image.Pt(6, 6))
	_ = preview.Add(board.NewPad("1", image.Pt(6, 6), image.Pt(1, 1), 0))
	s.SetPreview(preview)

	buf := cellbuf.New(10, 10, StyleBG)
	s.Render(buf, []ratsnest.Airwire{{From: image.Pt(0, 1), To: image.Pt(4, 1)}})
	if c, _ := buf.At(image.Pt(1, 1)); c.Style != StyleRatsnest {
		t.Error("airwire not drawn")
	}
	if c, _ := buf.At(image.Pt(6, 6)); c.Style != StylePreview {
		t.Error("preview not drawn")
	}

	s.ClearPreview()
	if len(s.Preview()) != 0 {
		t.Error("preview should be cleared")
	}
}
