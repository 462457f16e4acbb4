// Package clipboard moves footprints between the editor and a text
// buffer. A footprint is encoded as a YAML document holding its placement
// and its children in board coordinates.
package clipboard

import (
	"image"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/geom"
)

var (
	ErrEmpty            = errors.New("clipboard is empty")
	ErrMalformedPayload = errors.New("malformed clipboard payload")
	ErrNotContainer     = errors.New("clipboard payload is not a footprint")
)

type point [2]int

func pt(p image.Point) point    { return point{p.X, p.Y} }
func (p point) pt() image.Point { return image.Pt(p[0], p[1]) }

type footprintDoc struct {
	Kind        string     `yaml:"kind"`
	Name        string     `yaml:"name,omitempty"`
	Position    point      `yaml:"position"`
	Orientation geom.Angle `yaml:"orientation,omitempty"`
	Layer       string     `yaml:"layer,omitempty"`
	Items       []itemDoc  `yaml:"items,omitempty"`
}

type itemDoc struct {
	Kind string `yaml:"kind"`

	// pad
	Number string   `yaml:"number,omitempty"`
	Size   point    `yaml:"size,omitempty"`
	Shape  string   `yaml:"shape,omitempty"`
	Layers []string `yaml:"layers,omitempty"`
	Net    int      `yaml:"net,omitempty"`

	// text
	Role     string `yaml:"role,omitempty"`
	Text     string `yaml:"text,omitempty"`
	TextSize int    `yaml:"text_size,omitempty"`
	Mirrored bool   `yaml:"mirrored,omitempty"`

	// edge
	End   point `yaml:"end,omitempty"`
	Width int   `yaml:"width,omitempty"`

	Position point      `yaml:"position"`
	Angle    geom.Angle `yaml:"angle,omitempty"`
	Layer    string     `yaml:"layer,omitempty"`
}

var padShapes = map[board.PadShape]string{
	board.PadRect:   "rect",
	board.PadCircle: "circle",
	board.PadOval:   "oval",
}

var textRoles = map[board.TextRole]string{
	board.RoleGeneric:   "generic",
	board.RoleReference: "reference",
	board.RoleValue:     "value",
}

// Serialize encodes f and its children.
func Serialize(f *board.Footprint) ([]byte, error) {
	doc := footprintDoc{
		Kind:        board.KindFootprint.String(),
		Name:        f.Name,
		Position:    pt(f.Pos),
		Orientation: f.Orient,
		Layer:       f.Layer.String(),
	}
	for _, c := range f.Children() {
		switch it := c.(type) {
		case *board.Pad:
			doc.Items = append(doc.Items, itemDoc{
				Kind:     it.Kind().String(),
				Number:   it.Number,
				Position: pt(it.Pos),
				Size:     pt(it.Size),
				Shape:    padShapes[it.Shape],
				Angle:    it.Orient,
				Layers:   layerNames(it.Layer),
				Net:      it.NetCode,
			})
		case *board.FootprintText:
			doc.Items = append(doc.Items, itemDoc{
				Kind:     it.Kind().String(),
				Role:     textRoles[it.Role],
				Text:     it.Value,
				Position: pt(it.Pos),
				Angle:    it.Angle,
				TextSize: it.Size,
				Layer:    it.Layer.String(),
				Mirrored: it.Mirrored,
			})
		case *board.FootprintEdge:
			doc.Items = append(doc.Items, itemDoc{
				Kind:     it.Kind().String(),
				Position: pt(it.Start),
				End:      pt(it.End),
				Width:    it.Width,
				Layer:    it.Layer.String(),
			})
		default:
			return nil, errors.Errorf("cannot serialize a %s", c.Kind())
		}
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding footprint")
	}
	return out, nil
}

// Deserialize decodes a footprint. The result is unowned and its children
// carry fresh identities.
func Deserialize(data []byte) (*board.Footprint, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmpty
	}
	var doc footprintDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "%v", err)
	}
	if doc.Kind != board.KindFootprint.String() {
		return nil, errors.Wrapf(ErrNotContainer, "got %q", doc.Kind)
	}

	f := board.NewFootprint(doc.Name, doc.Position.pt())
	f.Orient = doc.Orientation.Normalize()
	if doc.Layer != "" {
		l, ok := board.ParseLayer(doc.Layer)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedPayload, "unknown layer %q", doc.Layer)
		}
		f.Layer = l
	}

	for i, d := range doc.Items {
		child, err := decodeItem(d)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		if err := f.Add(child); err != nil {
			return nil, errors.Wrapf(ErrMalformedPayload, "item %d: %v", i, err)
		}
	}
	return f, nil
}

func decodeItem(d itemDoc) (board.Item, error) {
	switch d.Kind {
	case board.KindPad.String():
		p := board.NewPad(d.Number, d.Position.pt(), d.Size.pt(), d.Net)
		p.Orient = d.Angle.Normalize()
		shape, ok := lookup(padShapes, d.Shape)
		if !ok && d.Shape != "" {
			return nil, errors.Wrapf(ErrMalformedPayload, "unknown pad shape %q", d.Shape)
		}
		p.Shape = shape
		if len(d.Layers) > 0 {
			var set board.LayerSet
			for _, name := range d.Layers {
				l, ok := board.ParseLayer(name)
				if !ok {
					return nil, errors.Wrapf(ErrMalformedPayload, "unknown layer %q", name)
				}
				set |= board.LayersOf(l)
			}
			p.Layer = set
		}
		return p, nil

	case board.KindFootprintText.String():
		role, ok := lookup(textRoles, d.Role)
		if !ok && d.Role != "" {
			return nil, errors.Wrapf(ErrMalformedPayload, "unknown text role %q", d.Role)
		}
		t := board.NewFootprintText(role, d.Text, d.Position.pt())
		t.Angle = d.Angle.Normalize()
		t.Mirrored = d.Mirrored
		if d.TextSize > 0 {
			t.Size = d.TextSize
		}
		if err := parseLayerInto(d.Layer, &t.Layer); err != nil {
			return nil, err
		}
		return t, nil

	case board.KindFootprintEdge.String():
		e := board.NewFootprintEdge(d.Position.pt(), d.End.pt(), d.Width, board.LayerFrontSilk)
		if err := parseLayerInto(d.Layer, &e.Layer); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, errors.Wrapf(ErrMalformedPayload, "unsupported item kind %q", d.Kind)
}

func parseLayerInto(name string, dst *board.Layer) error {
	if name == "" {
		return nil
	}
	l, ok := board.ParseLayer(name)
	if !ok {
		return errors.Wrapf(ErrMalformedPayload, "unknown layer %q", name)
	}
	*dst = l
	return nil
}

func layerNames(set board.LayerSet) []string {
	var out []string
	for _, l := range set.Layers() {
		out = append(out, l.String())
	}
	return out
}

func lookup[K comparable](m map[K]string, name string) (K, bool) {
	for k, v := range m {
		if v == name {
			return k, true
		}
	}
	var zero K
	return zero, false
}
