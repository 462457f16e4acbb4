package edit

import (
	"context"
	"image"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

// Selection is the set of items the behaviors operate on.
type Selection interface {
	Items() []board.Item
	Len() int
	Empty() bool
	Front() board.Item
	Add(item board.Item)
	Clear()
	Prune()
	PickOneUnderPointer(p image.Point) bool
}

// Journal records reversible change sets. Save must be called before the
// items it covers are modified.
type Journal interface {
	Save(kind undo.Kind, pivot image.Point, items ...board.Item) *undo.Entry
	SavePicked(kind undo.Kind, pivot image.Point, picked []undo.Picked) *undo.Entry
	Tip() undo.Token
	Top() *undo.Entry
	Mark() undo.Mark
	RestoreRedo(m undo.Mark)
	RestoreFromTip() (*undo.Entry, error)
	Undo() (*undo.Entry, error)
	Redo() (*undo.Entry, error)
}

// View keeps the render cache in step with the document.
type View interface {
	Add(item board.Item)
	Remove(item board.Item)
	Invalidate(item board.Item, flag view.UpdateFlag)
	Resync(f *board.Footprint)
	SetPreview(items ...board.Item)
	ClearPreview()
	Refresh()
}

// Connectivity is the ratsnest engine.
type Connectivity interface {
	// Touch marks item dirty for the next UpdateSimple.
	Touch(item board.Item)
	// UpdateSimple folds dirty items into the live overlay.
	UpdateSimple()
	ClearSimple()
	Recompute()
}

// Transport moves containers through the clipboard.
type Transport interface {
	Save(f *board.Footprint) error
	Load() (*board.Footprint, error)
}

// PropertyEditor edits the attributes of one item. It blocks until the
// user is done and records any change in the journal before applying it.
type PropertyEditor interface {
	Edit(ctx context.Context, item board.Item) error
}

// Reporter shows user-facing errors. Reporting never stops a session.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }
