package board

import (
	"image"
	"testing"

	"github.com/wesen/boardedit/pkg/geom"
)

// ── Clone ──

func TestCloneHasNewIdentity(t *testing.T) {
	items := []Item{
		NewTrack(image.Pt(0, 0), image.Pt(10, 0), 1, LayerFrontCu, 1),
		NewVia(image.Pt(3, 3), 2, 1, 1),
		NewGraphic(image.Pt(0, 0), image.Pt(0, 5), 1, LayerEdgeCuts),
		NewText(image.Pt(1, 1), "hello", LayerFrontSilk),
		NewDimension(image.Pt(0, 0), image.Pt(8, 0), LayerDwgsUser, "8"),
		NewTarget(image.Pt(4, 4), 2, LayerEdgeCuts),
		NewMarker(image.Pt(5, 5), "clearance"),
		NewZone([]image.Point{{0, 0}, {4, 0}, {4, 4}}, LayerFrontCu, 1),
	}
	for _, it := range items {
		c := it.Clone()
		if c.ID() == it.ID() {
			t.Errorf("%s: clone kept identity", it.Kind())
		}
		if c.Position() != it.Position() || c.Kind() != it.Kind() {
			t.Errorf("%s: clone differs in position or kind", it.Kind())
		}
		if Owned(c) {
			t.Errorf("%s: clone must be unowned", it.Kind())
		}
	}
}

func TestZoneCloneIsDeep(t *testing.T) {
	z := NewZone([]image.Point{{0, 0}, {4, 0}, {4, 4}}, LayerFrontCu, 1)
	c := z.Clone().(*Zone)
	c.Move(image.Pt(1, 1))
	if z.Outline[0] != image.Pt(0, 0) {
		t.Error("moving the clone changed the original outline")
	}
}

// ── SwapData ──

func TestSwapDataKeepsIdentity(t *testing.T) {
	a := NewTrack(image.Pt(0, 0), image.Pt(10, 0), 1, LayerFrontCu, 1)
	snap := a.Clone()
	a.Move(image.Pt(5, 5))
	id := a.ID()
	a.SwapData(snap)
	if a.ID() != id {
		t.Error("SwapData changed identity")
	}
	if a.Start != image.Pt(0, 0) {
		t.Errorf("expected restored start (0,0), got %v", a.Start)
	}
	if snap.Position() != image.Pt(5, 5) {
		t.Errorf("snapshot should now hold the moved state, got %v", snap.Position())
	}
}

// ── Rotate / Flip ──

func TestTrackFlipChangesLayer(t *testing.T) {
	tr := NewTrack(image.Pt(0, 2), image.Pt(10, 4), 1, LayerFrontCu, 1)
	tr.Flip(image.Pt(0, 0))
	if tr.Layer != LayerBackCu {
		t.Errorf("expected B.Cu, got %s", tr.Layer)
	}
	if tr.Start != image.Pt(0, -2) || tr.End != image.Pt(10, -4) {
		t.Errorf("unexpected mirrored ends %v %v", tr.Start, tr.End)
	}
}

func TestTextRotateFullTurn(t *testing.T) {
	tx := NewText(image.Pt(7, 3), "x", LayerFrontSilk)
	for range 4 {
		tx.Rotate(image.Pt(0, 0), geom.Angle90)
	}
	if tx.Pos != image.Pt(7, 3) || tx.Angle != 0 {
		t.Errorf("after full turn got pos %v angle %d", tx.Pos, tx.Angle)
	}
}

func TestZoneHitTest(t *testing.T) {
	z := NewZone([]image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, LayerFrontCu, 1)
	if !z.HitTest(image.Pt(5, 5)) {
		t.Error("centre should be inside")
	}
	if z.HitTest(image.Pt(15, 5)) {
		t.Error("point outside should miss")
	}
}

func TestLayerSetFlip(t *testing.T) {
	s := LayersOf(LayerFrontCu, LayerFrontSilk, LayerEdgeCuts).Flip()
	if !s.Has(LayerBackCu) || !s.Has(LayerBackSilk) || !s.Has(LayerEdgeCuts) || s.Has(LayerFrontCu) {
		t.Errorf("unexpected flipped set %v", s.Layers())
	}
}
