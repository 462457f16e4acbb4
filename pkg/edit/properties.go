package edit

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// Properties hands a single selected item to the property editor. For a
// footprint, the child under the pointer is edited instead. Status flags
// are hidden from the editor while it runs.
func (t *Tool) Properties(ctx context.Context) error {
	if !t.makeSelection() {
		return nil
	}
	if t.selection.Len() != 1 {
		t.logger.Debug("properties need a single item", "items", t.selection.Len())
		return nil
	}
	if t.editor == nil {
		t.logger.Warn("no property editor")
		return nil
	}

	item := t.selection.Front()
	if f, ok := item.(*board.Footprint); ok {
		if c := f.ChildAt(t.cursor, board.KindPad); c != nil {
			item = c
		}
	}
	t.selection.Clear()

	flags := item.Flags() &^ board.FlagSelected
	item.ClearFlags(board.AllFlags)
	before := t.journal.Tip()

	err := t.editor.Edit(ctx, item)
	item.SetFlags(flags)
	if err != nil {
		t.reporter.Report(errors.Wrapf(err, "editing %s", item.Kind()))
	}

	if t.journal.Tip() != before {
		t.processChanges(t.journal.Top())
		t.ratsnest.UpdateSimple()
		t.ratsnest.Recompute()
		t.view.Refresh()
		t.logger.Debug("properties changed", "behavior", "properties", "entry", t.journal.Top().Kind)
	}
	return nil
}

// processChanges brings the view in line with an entry recorded outside
// the tool.
func (t *Tool) processChanges(e *undo.Entry) {
	for _, p := range e.Items {
		switch p.Status {
		case undo.Deleted:
			t.removeFromView(p.Item)
		case undo.Created:
			t.addToView(p.Item)
		case undo.ModEdit:
			if f, ok := p.Item.(*board.Footprint); ok {
				t.view.Resync(f)
			} else {
				t.view.Invalidate(p.Item, view.UpdateGeometry)
			}
		case undo.Flipped:
			t.view.Invalidate(p.Item, view.UpdateAll)
		default:
			t.view.Invalidate(p.Item, view.UpdateGeometry)
		}
		t.ratsnest.Touch(p.Item)
	}
}

// ── Fields ──

// Field is one editable attribute of an item.
type Field struct {
	Name  string
	Value string
}

// Fields lists the editable attributes of item with their current values.
func Fields(item board.Item) []Field {
	p := item.Position()
	fs := []Field{{"x", itoa(p.X)}, {"y", itoa(p.Y)}}
	switch it := item.(type) {
	case *board.Footprint:
		fs = append(fs, Field{"name", it.Name})
	case *board.Pad:
		fs = append(fs, Field{"number", it.Number}, Field{"net", itoa(it.NetCode)})
	case *board.FootprintText:
		fs = append(fs, Field{"text", it.Value})
	case *board.Text:
		fs = append(fs, Field{"text", it.Value})
	case *board.Track:
		fs = append(fs, Field{"width", itoa(it.Width)}, Field{"net", itoa(it.NetCode)})
	case *board.Via:
		fs = append(fs, Field{"diameter", itoa(it.Diameter)}, Field{"net", itoa(it.NetCode)})
	case *board.Graphic:
		fs = append(fs, Field{"width", itoa(it.Width)})
	case *board.FootprintEdge:
		fs = append(fs, Field{"width", itoa(it.Width)})
	case *board.Dimension:
		fs = append(fs, Field{"label", it.Label})
	case *board.Marker:
		fs = append(fs, Field{"message", it.Message})
	case *board.Zone:
		fs = append(fs, Field{"net", itoa(it.NetCode)})
	}
	return fs
}

// ApplyFields records item as changed and then applies fields to it. It
// returns false without recording anything when no value differs.
func ApplyFields(j Journal, item board.Item, fields []Field) (bool, error) {
	current := lo.SliceToMap(Fields(item), func(f Field) (string, string) {
		return f.Name, f.Value
	})
	var setters []func()
	for _, f := range fields {
		v, ok := current[f.Name]
		if !ok {
			return false, errors.Errorf("%s has no field %q", item.Kind(), f.Name)
		}
		if v == f.Value {
			continue
		}
		set, err := setter(item, f)
		if err != nil {
			return false, err
		}
		setters = append(setters, set)
	}
	if len(setters) == 0 {
		return false, nil
	}

	j.Save(undo.Changed, item.Position(), item)
	for _, set := range setters {
		set()
	}
	rebase([]board.Item{item})
	return true, nil
}

func setter(item board.Item, f Field) (func(), error) {
	switch f.Name {
	case "name", "number", "text", "label", "message":
		return func() { setString(item, f.Value) }, nil
	}

	n, err := strconv.Atoi(f.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", f.Name)
	}
	switch f.Name {
	case "x", "y":
		return func() {
			p := item.Position()
			if f.Name == "x" {
				p.X = n
			} else {
				p.Y = n
			}
			item.SetPosition(p)
		}, nil
	case "net":
		c, ok := item.(board.Conductor)
		if !ok {
			return nil, errors.Errorf("%s has no net", item.Kind())
		}
		return func() { c.SetNet(n) }, nil
	case "width", "diameter":
		if n <= 0 {
			return nil, errors.Errorf("field %s must be positive, got %d", f.Name, n)
		}
		return func() { setSize(item, n) }, nil
	}
	return nil, errors.Errorf("unknown field %q", f.Name)
}

func setString(item board.Item, v string) {
	switch it := item.(type) {
	case *board.Footprint:
		it.Name = v
	case *board.Pad:
		it.Number = v
	case *board.FootprintText:
		it.Value = v
	case *board.Text:
		it.Value = v
	case *board.Dimension:
		it.Label = v
	case *board.Marker:
		it.Message = v
	}
}

func setSize(item board.Item, n int) {
	switch it := item.(type) {
	case *board.Track:
		it.Width = n
	case *board.Graphic:
		it.Width = n
	case *board.FootprintEdge:
		it.Width = n
	case *board.Via:
		it.Diameter = n
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// Prompt asks the user to edit fields of item. It returns false when the
// user dismissed the editor.
type Prompt func(ctx context.Context, item board.Item, fields []Field) ([]Field, bool, error)

// FieldEditor is a PropertyEditor that edits the Fields of an item
// through a Prompt.
type FieldEditor struct {
	Journal Journal
	Prompt  Prompt
}

func (e *FieldEditor) Edit(ctx context.Context, item board.Item) error {
	fields, ok, err := e.Prompt(ctx, item, Fields(item))
	if err != nil || !ok {
		return err
	}
	_, err = ApplyFields(e.Journal, item, fields)
	return err
}
