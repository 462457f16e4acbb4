package edit

import (
	"context"
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/clipboard"
	"github.com/wesen/boardedit/pkg/config"
	"github.com/wesen/boardedit/pkg/ratsnest"
	"github.com/wesen/boardedit/pkg/selection"
	"github.com/wesen/boardedit/pkg/undo"
	"github.com/wesen/boardedit/pkg/view"
)

type harness struct {
	board    *board.Board
	sel      *selection.Selection
	journal  *undo.Journal
	view     *view.Synchronizer
	rats     *ratsnest.Engine
	buf      clipboard.Buffer
	editor   *fakeEditor
	reported []error
	tool     *Tool
}

func newHarness(t *testing.T, b *board.Board) *harness {
	t.Helper()
	h := &harness{
		board:   b,
		sel:     selection.New(b),
		journal: undo.New(b, 0),
		view:    view.New(),
		rats:    ratsnest.New(b),
		buf:     clipboard.NewBuffer("memory"),
		editor:  &fakeEditor{},
	}
	h.view.Load(b)
	h.tool = New(config.Default(), Deps{
		Board:     b,
		Selection: h.sel,
		Journal:   h.journal,
		View:      h.view,
		Ratsnest:  h.rats,
		Clipboard: clipboard.NewTransport(h.buf),
		Editor:    h.editor,
		Reporter:  ReporterFunc(func(err error) { h.reported = append(h.reported, err) }),
		Logger:    log.New(io.Discard),
	})
	return h
}

// fakeEditor records what it was asked to edit and runs edit if set.
type fakeEditor struct {
	seen  []board.Item
	flags []board.StatusFlags
	edit  func(item board.Item) error
}

func (e *fakeEditor) Edit(_ context.Context, item board.Item) error {
	e.seen = append(e.seen, item)
	e.flags = append(e.flags, item.Flags())
	if e.edit != nil {
		return e.edit(item)
	}
	return nil
}

func mustAdd(t *testing.T, b *board.Board, items ...board.Item) {
	t.Helper()
	for _, it := range items {
		if err := b.Add(it); err != nil {
			t.Fatal(err)
		}
	}
}

// twoVias is the A(10,10) B(20,10) board used by the drag scenarios.
func twoVias(t *testing.T) (*board.Board, *board.Via, *board.Via) {
	t.Helper()
	b := board.New()
	a := board.NewVia(image.Pt(10, 10), 2, 1, 0)
	c := board.NewVia(image.Pt(20, 10), 2, 1, 0)
	mustAdd(t, b, a, c)
	return b, a, c
}

func demoVia(t *testing.T, b *board.Board) *board.Via {
	t.Helper()
	for _, it := range b.Items() {
		if v, ok := it.(*board.Via); ok {
			return v
		}
	}
	t.Fatal("demo board has no via")
	return nil
}

func demoTrack(t *testing.T, b *board.Board) *board.Track {
	t.Helper()
	for _, it := range b.Items() {
		if tr, ok := it.(*board.Track); ok {
			return tr
		}
	}
	t.Fatal("demo board has no track")
	return nil
}
