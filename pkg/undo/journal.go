// Package undo implements the undo/redo journal: an ordered log of
// reversible change sets, each holding snapshots of the items it covers
// taken before they were modified.
package undo

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
)

// DefaultDepth is the number of entries kept before the oldest is dropped.
const DefaultDepth = 50

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Kind is the operation recorded for an item.
type Kind int

const (
	Changed Kind = iota
	Created
	Deleted
	Rotated
	Flipped
	// ModEdit records an in-place edit of a container's contents.
	ModEdit
)

func (k Kind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Rotated:
		return "rotated"
	case Flipped:
		return "flipped"
	case ModEdit:
		return "mod-edit"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Picked is one item covered by an entry.
type Picked struct {
	Item   board.Item
	Status Kind
	// Link holds the other state of the item: its "before" state while
	// the entry is on the undo stack, its "after" state on the redo stack.
	Link board.Item
	// Parent is the footprint that owned the item when it was recorded, for
	// created and deleted children.
	Parent *board.Footprint
}

// Entry is one reversible change set.
type Entry struct {
	ID    Token
	Kind  Kind
	Pivot image.Point
	Items []Picked
}

// Token identifies a journal tip. The zero Token means an empty journal.
type Token uint64

// Journal holds the undo and redo stacks of one board.
type Journal struct {
	board  *board.Board
	undo   []*Entry
	redo   []*Entry
	depth  int
	nextID Token
}

// New creates an empty journal for b. A depth of zero or less selects
// DefaultDepth.
func New(b *board.Board, depth int) *Journal {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Journal{board: b, depth: depth}
}

// Save records items under kind. Every item gets the same status. It must
// be called before the items are modified.
func (j *Journal) Save(kind Kind, pivot image.Point, items ...board.Item) *Entry {
	picked := make([]Picked, len(items))
	for i, it := range items {
		picked[i] = Picked{Item: it, Status: kind}
	}
	return j.SavePicked(kind, pivot, picked)
}

// SavePicked records a prepared list whose items may carry individual
// statuses. Snapshots are taken here for every status that modifies an
// item in place.
func (j *Journal) SavePicked(kind Kind, pivot image.Point, picked []Picked) *Entry {
	j.nextID++
	e := &Entry{ID: j.nextID, Kind: kind, Pivot: pivot, Items: make([]Picked, len(picked))}
	for i, p := range picked {
		switch p.Status {
		case Created, Deleted:
			if p.Parent == nil {
				p.Parent = p.Item.Parent()
			}
		default:
			p.Link = p.Item.Clone()
		}
		e.Items[i] = p
	}

	j.undo = append(j.undo, e)
	if len(j.undo) > j.depth {
		j.undo = j.undo[1:]
	}
	j.redo = nil
	return e
}

// Tip returns the identity of the newest undo entry. Comparing tips before
// and after a call tells whether anything was recorded in between.
func (j *Journal) Tip() Token {
	if len(j.undo) == 0 {
		return 0
	}
	return j.undo[len(j.undo)-1].ID
}

// Mark is a journal position that a cancelled gesture can return to.
type Mark struct {
	Tip  Token
	redo []*Entry
}

// Mark returns the current position, including the redo stack that the
// next Save would discard.
func (j *Journal) Mark() Mark {
	return Mark{Tip: j.Tip(), redo: append([]*Entry(nil), j.redo...)}
}

// RestoreRedo puts back the redo stack held by m. It does nothing unless
// the journal has been rolled back to m's tip.
func (j *Journal) RestoreRedo(m Mark) {
	if j.Tip() != m.Tip {
		return
	}
	j.redo = append([]*Entry(nil), m.redo...)
}

// Top returns the newest undo entry, or nil.
func (j *Journal) Top() *Entry {
	if len(j.undo) == 0 {
		return nil
	}
	return j.undo[len(j.undo)-1]
}

// Len returns the number of undoable entries.
func (j *Journal) Len() int { return len(j.undo) }

// RedoLen returns the number of redoable entries.
func (j *Journal) RedoLen() int { return len(j.redo) }

// RestoreFromTip reverts the newest entry and discards it. It is used to
// roll back a cancelled gesture, so nothing is pushed onto the redo stack.
func (j *Journal) RestoreFromTip() (*Entry, error) {
	if len(j.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	e := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]
	if err := j.apply(e, true); err != nil {
		return e, errors.Wrap(err, "restoring from tip")
	}
	return e, nil
}

// Undo reverts the newest entry and moves it onto the redo stack, where it
// now describes how to reapply the change.
func (j *Journal) Undo() (*Entry, error) {
	if len(j.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	e := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]
	if err := j.apply(e, true); err != nil {
		return e, errors.Wrap(err, "undo")
	}
	j.redo = append(j.redo, e)
	return e, nil
}

// Redo reapplies the newest redo entry and moves it back onto the undo
// stack.
func (j *Journal) Redo() (*Entry, error) {
	if len(j.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	e := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]
	if err := j.apply(e, false); err != nil {
		return e, errors.Wrap(err, "redo")
	}
	j.undo = append(j.undo, e)
	return e, nil
}

// apply walks the entry backwards when reverting and forwards when
// reapplying. In-place statuses swap with their link, which is its own
// inverse; creation and deletion add or remove the item.
func (j *Journal) apply(e *Entry, revert bool) error {
	n := len(e.Items)
	for k := range n {
		i := k
		if revert {
			i = n - 1 - k
		}
		p := e.Items[i]
		var err error
		switch p.Status {
		case Created:
			if revert {
				err = j.detach(p)
			} else {
				err = j.attach(p)
			}
		case Deleted:
			if revert {
				err = j.attach(p)
			} else {
				err = j.detach(p)
			}
		default:
			p.Item.SwapData(p.Link)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) attach(p Picked) error {
	if p.Parent != nil {
		return p.Parent.Add(p.Item)
	}
	return j.board.Add(p.Item)
}

func (j *Journal) detach(p Picked) error {
	if p.Parent != nil {
		return p.Parent.Remove(p.Item)
	}
	return j.board.Remove(p.Item)
}
