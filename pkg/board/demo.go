package board

import "image"

// Net codes used by Demo.
const (
	DemoNetGND = 1
	DemoNetVCC = 2
	DemoNetSIG = 3
)

// Demo builds a small two-resistor board with a connector, some routing
// and an outline. It is used by the terminal UI and by scripts.
func Demo() *Board {
	b := New()
	b.AddNet(DemoNetGND, "GND")
	b.AddNet(DemoNetVCC, "VCC")
	b.AddNet(DemoNetSIG, "SIG")

	mustAdd(b, resistor("R1", "10k", image.Pt(20, 8), DemoNetVCC, DemoNetSIG))
	mustAdd(b, resistor("R2", "4k7", image.Pt(20, 18), DemoNetSIG, DemoNetGND))
	mustAdd(b, header("J1", image.Pt(50, 12), DemoNetVCC, DemoNetSIG, DemoNetGND))

	mustAdd(b, NewTrack(image.Pt(24, 8), image.Pt(40, 8), 1, LayerFrontCu, DemoNetSIG))
	mustAdd(b, NewVia(image.Pt(40, 8), 2, 1, DemoNetSIG))
	mustAdd(b, NewTrack(image.Pt(40, 8), image.Pt(50, 12), 1, LayerBackCu, DemoNetSIG))

	outline := []image.Point{{4, 2}, {60, 2}, {60, 26}, {4, 26}}
	for i := range outline {
		mustAdd(b, NewGraphic(outline[i], outline[(i+1)%len(outline)], 1, LayerEdgeCuts))
	}
	mustAdd(b, NewText(image.Pt(32, 24), "boardedit demo", LayerFrontSilk))
	mustAdd(b, NewTarget(image.Pt(6, 4), 2, LayerEdgeCuts))
	return b
}

func resistor(ref, value string, pos image.Point, netA, netB int) *Footprint {
	f := NewFootprint("R_0805", pos)
	mustAddChild(f, NewFootprintText(RoleReference, ref, pos.Add(image.Pt(0, -2))))
	mustAddChild(f, NewFootprintText(RoleValue, value, pos.Add(image.Pt(0, 2))))
	mustAddChild(f, NewPad("1", pos.Add(image.Pt(-4, 0)), image.Pt(2, 2), netA))
	mustAddChild(f, NewPad("2", pos.Add(image.Pt(4, 0)), image.Pt(2, 2), netB))
	mustAddChild(f, NewFootprintEdge(pos.Add(image.Pt(-2, -1)), pos.Add(image.Pt(2, -1)), 1, LayerFrontSilk))
	mustAddChild(f, NewFootprintEdge(pos.Add(image.Pt(-2, 1)), pos.Add(image.Pt(2, 1)), 1, LayerFrontSilk))
	return f
}

func header(ref string, pos image.Point, nets ...int) *Footprint {
	f := NewFootprint("PinHeader_1x03", pos)
	mustAddChild(f, NewFootprintText(RoleReference, ref, pos.Add(image.Pt(0, -4))))
	mustAddChild(f, NewFootprintText(RoleValue, "CONN", pos.Add(image.Pt(0, 2*len(nets)+2))))
	for i, n := range nets {
		p := NewPad(string(rune('1'+i)), pos.Add(image.Pt(0, 2*i)), image.Pt(2, 2), n)
		p.Shape = PadCircle
		p.Layer = CopperLayers
		mustAddChild(f, p)
	}
	return f
}

func mustAdd(b *Board, it Item) {
	if err := b.Add(it); err != nil {
		panic(err)
	}
}

func mustAddChild(f *Footprint, it Item) {
	if err := f.Add(it); err != nil {
		panic(err)
	}
}
