// Package board is the document model of the editor: placeable items, the
// Footprint container that groups pads and graphics, and the Board that
// owns top-level items in a stable insertion order.
//
// Every item has exactly one owner at a time. Top-level items are owned by
// the Board; pads, footprint texts and footprint edges are owned by one
// Footprint. Add and Remove enforce this and report violations as errors.
package board

import (
	"image"

	"github.com/google/uuid"

	"github.com/wesen/boardedit/pkg/geom"
)

// ItemID identifies an item for its whole lifetime. Clones get a new ID.
type ItemID = uuid.UUID

// Item is a placeable entity. The set of implementations is closed: only
// the types in this package satisfy it.
type Item interface {
	ID() ItemID
	Kind() Kind
	Position() image.Point
	SetPosition(p image.Point)
	Move(delta image.Point)
	Rotate(center image.Point, angle geom.Angle)
	Flip(center image.Point)
	// Clone returns a deep copy with a new identity and no owner.
	Clone() Item
	Bounds() image.Rectangle
	HitTest(p image.Point) bool
	Layers() LayerSet
	// Parent returns the owning footprint, or nil for top-level items.
	Parent() *Footprint
	Flags() StatusFlags
	SetFlags(f StatusFlags)
	ClearFlags(mask StatusFlags)
	// SwapData exchanges every attribute with other, which must be of the
	// same kind. Identity, owner and status flags stay in place.
	SwapData(other Item)

	base() *itemBase
}

// Conductor is an item that takes part in electrical connectivity.
type Conductor interface {
	Item
	Net() int
	SetNet(code int)
	// Anchors are the points where other conductors may attach.
	Anchors() []image.Point
}

// Child is an item that lives inside a Footprint and keeps a position
// relative to it.
type Child interface {
	Item
	// SetLocalCoord recomputes the footprint-relative position from the
	// current board position and the parent's placement.
	SetLocalCoord()
}

type ownerKind int

const (
	ownerNone ownerKind = iota
	ownerBoard
	ownerFootprint
)

type itemBase struct {
	id     ItemID
	owner  ownerKind
	parent *Footprint
	flags  StatusFlags
}

func newBase() itemBase {
	return itemBase{id: uuid.New()}
}

func (b *itemBase) ID() ItemID                  { return b.id }
func (b *itemBase) Parent() *Footprint          { return b.parent }
func (b *itemBase) Flags() StatusFlags          { return b.flags }
func (b *itemBase) SetFlags(f StatusFlags)      { b.flags |= f }
func (b *itemBase) ClearFlags(mask StatusFlags) { b.flags &^= mask }
func (b *itemBase) base() *itemBase             { return b }

// cloneBase returns a fresh unowned base for a clone.
func (b *itemBase) cloneBase() itemBase {
	return itemBase{id: uuid.New(), flags: b.flags}
}

// Owned reports whether item currently has an owner.
func Owned(item Item) bool {
	return item.base().owner != ownerNone
}

// OnBoard reports whether item is owned directly by a board.
func OnBoard(item Item) bool {
	return item.base().owner == ownerBoard
}
