package view

import (
	"image"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/cellbuf"
	"github.com/wesen/boardedit/pkg/drawutil"
	"github.com/wesen/boardedit/pkg/ratsnest"
)

// GridSpacing is the distance between grid dots in board units.
var GridSpacing = image.Pt(5, 3)

// drawOrder lists kinds from bottom to top.
var drawOrder = []board.Kind{
	board.KindZone,
	board.KindGraphic,
	board.KindDimension,
	board.KindTarget,
	board.KindTrack,
	board.KindVia,
	board.KindFootprint,
	board.KindPad,
	board.KindFootprintEdge,
	board.KindFootprintText,
	board.KindText,
	board.KindMarker,
}

// Render draws the grid, every proxy, the airwires and the preview into
// buf. The buffer's Origin selects the visible part of the board.
func (s *Synchronizer) Render(buf *cellbuf.Buffer, airwires []ratsnest.Airwire) {
	buf.Fill(StyleBG)
	drawutil.DrawGrid(buf, GridSpacing.X, GridSpacing.Y, StyleGrid)

	visible := image.Rect(0, 0, buf.W, buf.H).Add(buf.Origin)
	proxies := s.Proxies()
	for _, kind := range drawOrder {
		for _, p := range proxies {
			if p.Item.Kind() != kind || !p.Bounds.Overlaps(visible) {
				continue
			}
			style := layerStyle(p.Layers)
			if selected(p.Item) {
				style = StyleSelected
			}
			drawItem(buf, p.Item, style)
		}
	}

	for _, w := range airwires {
		drawutil.DrawDashedLine(buf, w.From, w.To, StyleRatsnest)
	}
	for _, it := range s.preview {
		drawItem(buf, it, StylePreview)
		if f, ok := it.(*board.Footprint); ok {
			f.RunOnChildren(func(c board.Item) { drawItem(buf, c, StylePreview) })
		}
	}
}

// selected reports whether item or its footprint is selected.
func selected(item board.Item) bool {
	if item.Flags()&board.FlagSelected != 0 {
		return true
	}
	if p := item.Parent(); p != nil {
		return p.Flags()&board.FlagSelected != 0
	}
	return false
}

func drawItem(buf *cellbuf.Buffer, item board.Item, style cellbuf.StyleKey) {
	switch it := item.(type) {
	case *board.Track:
		drawutil.DrawWideLine(buf, it.Start, it.End, it.Width, style)
	case *board.Via:
		buf.FillRect(it.Bounds(), '▒', style)
		buf.SetAt(it.Pos, '◎', style)
	case *board.Pad:
		ch := '█'
		if it.Shape != board.PadRect {
			ch = '▓'
		}
		buf.FillRect(it.Bounds(), ch, style)
	case *board.Graphic:
		drawutil.DrawLine(buf, it.Start, it.End, style)
	case *board.FootprintEdge:
		drawutil.DrawLine(buf, it.Start, it.End, style)
	case *board.Dimension:
		drawutil.DrawLine(buf, it.Start, it.End, style)
		mid := it.Start.Add(it.End).Div(2)
		buf.SetStringAt(mid.Sub(image.Pt(len(it.Label)/2, 1)), it.Label, style)
	case *board.Text:
		buf.SetStringAt(it.Bounds().Min, it.Value, style)
	case *board.FootprintText:
		buf.SetStringAt(it.Bounds().Min, it.Value, style)
	case *board.Target:
		drawutil.DrawCross(buf, it.Pos, max(it.Size/2, 1), style)
	case *board.Marker:
		buf.SetAt(it.Pos, '⚠', StyleMarker)
	case *board.Zone:
		drawutil.DrawPolygon(buf, it.Outline, style)
	case *board.Footprint:
		buf.SetAt(it.Pos, '+', style)
	}
}
