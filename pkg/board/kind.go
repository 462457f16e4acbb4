package board

import "fmt"

// Kind tags the concrete variant of an Item.
type Kind int

const (
	KindFootprint Kind = iota
	KindPad
	KindFootprintText
	KindFootprintEdge
	KindGraphic
	KindText
	KindTrack
	KindVia
	KindDimension
	KindTarget
	KindMarker
	KindZone
)

var kindNames = map[Kind]string{
	KindFootprint:     "footprint",
	KindPad:           "pad",
	KindFootprintText: "footprint-text",
	KindFootprintEdge: "footprint-edge",
	KindGraphic:       "graphic",
	KindText:          "text",
	KindTrack:         "track",
	KindVia:           "via",
	KindDimension:     "dimension",
	KindTarget:        "target",
	KindMarker:        "marker",
	KindZone:          "zone",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsChildKind reports whether items of kind k live inside a Footprint.
func (k Kind) IsChildKind() bool {
	return k == KindPad || k == KindFootprintText || k == KindFootprintEdge
}

// Layer is a physical or documentation layer of the board.
type Layer int

const (
	LayerFrontCu Layer = iota
	LayerBackCu
	LayerFrontSilk
	LayerBackSilk
	LayerFrontFab
	LayerBackFab
	LayerDwgsUser
	LayerEdgeCuts
	layerCount
)

var layerNames = [layerCount]string{
	"F.Cu", "B.Cu", "F.SilkS", "B.SilkS", "F.Fab", "B.Fab", "Dwgs.User", "Edge.Cuts",
}

func (l Layer) String() string {
	if l >= 0 && l < layerCount {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// ParseLayer returns the layer with the given name.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// Flip returns the layer on the opposite side of the board. Layers that
// have no opposite are returned unchanged.
func (l Layer) Flip() Layer {
	switch l {
	case LayerFrontCu:
		return LayerBackCu
	case LayerBackCu:
		return LayerFrontCu
	case LayerFrontSilk:
		return LayerBackSilk
	case LayerBackSilk:
		return LayerFrontSilk
	case LayerFrontFab:
		return LayerBackFab
	case LayerBackFab:
		return LayerFrontFab
	}
	return l
}

// IsCopper reports whether l carries electrical connections.
func (l Layer) IsCopper() bool {
	return l == LayerFrontCu || l == LayerBackCu
}

// LayerSet is a bit set of layers.
type LayerSet uint32

// LayersOf builds a set from individual layers.
func LayersOf(layers ...Layer) LayerSet {
	var s LayerSet
	for _, l := range layers {
		s |= 1 << uint(l)
	}
	return s
}

// Has reports whether l is in the set.
func (s LayerSet) Has(l Layer) bool {
	return s&(1<<uint(l)) != 0
}

// Overlaps reports whether the sets share a layer.
func (s LayerSet) Overlaps(o LayerSet) bool {
	return s&o != 0
}

// Flip returns the set with every layer moved to the opposite side.
func (s LayerSet) Flip() LayerSet {
	var out LayerSet
	for l := Layer(0); l < layerCount; l++ {
		if s.Has(l) {
			out |= LayersOf(l.Flip())
		}
	}
	return out
}

// Layers lists the members of the set in layer order.
func (s LayerSet) Layers() []Layer {
	var out []Layer
	for l := Layer(0); l < layerCount; l++ {
		if s.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

// CopperLayers is the set of both copper layers.
var CopperLayers = LayersOf(LayerFrontCu, LayerBackCu)

// StatusFlags are transient per-item markers owned by the editing session.
type StatusFlags uint32

const (
	FlagSelected StatusFlags = 1 << iota
	FlagMoving
	FlagNew
	FlagBrightened
)

// AllFlags masks every status flag.
const AllFlags StatusFlags = ^StatusFlags(0)

// TextRole distinguishes the mandatory labels of a footprint from free text.
type TextRole int

const (
	RoleGeneric TextRole = iota
	RoleReference
	RoleValue
)

func (r TextRole) String() string {
	switch r {
	case RoleReference:
		return "reference"
	case RoleValue:
		return "value"
	}
	return "generic"
}

// IsReserved reports whether a label with this role is mandatory for its
// footprint and must never be deleted or copied out as-is.
func (r TextRole) IsReserved() bool {
	return r == RoleReference || r == RoleValue
}
