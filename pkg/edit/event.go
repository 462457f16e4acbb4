package edit

import (
	"context"
	"fmt"
	"image"
)

// EventKind classifies an input event.
type EventKind int

const (
	EventMotion EventKind = iota
	EventDrag
	EventButtonUp
	EventClick
	EventCancel
	EventCommand
	// EventUndoRedo tells a running session that the journal is about to
	// be, or was, unwound from outside.
	EventUndoRedo
	// EventActivate tells a running session that another tool takes over.
	EventActivate
	// EventEditDone answers a property edit request.
	EventEditDone
)

var eventKindNames = map[EventKind]string{
	EventMotion:   "motion",
	EventDrag:     "drag",
	EventButtonUp: "button-up",
	EventClick:    "click",
	EventCancel:   "cancel",
	EventCommand:  "command",
	EventUndoRedo: "undo-redo",
	EventActivate: "activate",
	EventEditDone: "edit-done",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Action names a command bound to a behavior of the Tool.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionRotate
	ActionFlip
	ActionRemove
	ActionProperties
	ActionCopy
	ActionPaste
	ActionUndo
	ActionRedo
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionMove:       "move",
	ActionRotate:     "rotate",
	ActionFlip:       "flip",
	ActionRemove:     "remove",
	ActionProperties: "properties",
	ActionCopy:       "copy",
	ActionPaste:      "paste",
	ActionUndo:       "undo",
	ActionRedo:       "redo",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Modifiers are the keyboard modifiers held during an event.
type Modifiers int

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
)

// Event is one input to a session. Pos is the pointer position in board
// coordinates at the time of the event.
type Event struct {
	Kind   EventKind
	Action Action
	Pos    image.Point
	Mods   Modifiers

	// Fields carries the edited values of an EventEditDone.
	Fields []Field
}

func Motion(p image.Point) Event    { return Event{Kind: EventMotion, Pos: p} }
func Drag(p image.Point) Event      { return Event{Kind: EventDrag, Pos: p} }
func Click(p image.Point) Event     { return Event{Kind: EventClick, Pos: p} }
func ButtonUp(p image.Point) Event  { return Event{Kind: EventButtonUp, Pos: p} }
func Cancel(p image.Point) Event    { return Event{Kind: EventCancel, Pos: p} }
func Activate(p image.Point) Event  { return Event{Kind: EventActivate, Pos: p} }
func UndoRedo(p image.Point) Event  { return Event{Kind: EventUndoRedo, Pos: p} }
func EditDone(fields []Field) Event { return Event{Kind: EventEditDone, Fields: fields} }

// Command builds a command event for action a issued with the pointer at p.
func Command(a Action, p image.Point) Event {
	return Event{Kind: EventCommand, Action: a, Pos: p}
}

// WithCtrl returns e with the Ctrl modifier held.
func (e Event) WithCtrl() Event {
	e.Mods |= ModCtrl
	return e
}

func (e Event) IsMotion() bool         { return e.Kind == EventMotion || e.Kind == EventDrag }
func (e Event) IsCancel() bool         { return e.Kind == EventCancel }
func (e Event) IsActivate() bool       { return e.Kind == EventActivate }
func (e Event) IsFinish() bool         { return e.Kind == EventClick || e.Kind == EventButtonUp }
func (e Event) IsAction(a Action) bool { return e.Kind == EventCommand && e.Action == a }
func (e Event) Ctrl() bool             { return e.Mods&ModCtrl != 0 }

// IsUndoRedo reports whether e announces an undo or redo.
func (e Event) IsUndoRedo() bool {
	return e.Kind == EventUndoRedo || e.IsAction(ActionUndo) || e.IsAction(ActionRedo)
}

func (e Event) String() string {
	if e.Kind == EventCommand {
		return fmt.Sprintf("%s(%s) at %v", e.Kind, e.Action, e.Pos)
	}
	return fmt.Sprintf("%s at %v", e.Kind, e.Pos)
}

// EventSource feeds events to a session.
type EventSource interface {
	// Next blocks until the next event is available. It returns false
	// when the source is exhausted or ctx is done.
	Next(ctx context.Context) (Event, bool)
}

// Events is an EventSource replaying a fixed list.
type Events struct {
	list []Event
}

// Replay returns a source that yields evs in order.
func Replay(evs ...Event) *Events {
	return &Events{list: evs}
}

func (s *Events) Next(ctx context.Context) (Event, bool) {
	if ctx.Err() != nil || len(s.list) == 0 {
		return Event{}, false
	}
	ev := s.list[0]
	s.list = s.list[1:]
	return ev, true
}

// Remaining returns the number of events not consumed yet.
func (s *Events) Remaining() int { return len(s.list) }
