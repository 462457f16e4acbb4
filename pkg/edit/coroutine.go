package edit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wesen/boardedit/pkg/board"
)

// Yield is what a session hands back to its driver when it stops running.
type Yield struct {
	// Done is set once the session has returned.
	Done bool
	Err  error
	// Request is set when the session waits for an answer rather than for
	// the next input event, e.g. an EditRequest.
	Request any
}

// EditRequest asks the driver to let the user edit fields of an item. The
// driver answers with EditDone, or with Cancel to dismiss.
type EditRequest struct {
	Item   board.Item
	Fields []Field
}

// Behavior is a session body as run by a Coroutine.
type Behavior func(ctx context.Context, src EventSource) error

// Behavior returns the behavior bound to the command action of ev.
func (t *Tool) Behavior(ev Event) Behavior {
	return func(ctx context.Context, src EventSource) error {
		return t.Dispatch(ctx, ev, src)
	}
}

// Coroutine runs a session on its own goroutine and hands control back
// and forth with the driver, so that exactly one side runs at a time. It
// lets a message-driven front end feed a blocking session one event per
// message. A Coroutine runs one session at a time and can be restarted
// once the previous one is done.
type Coroutine struct {
	in     chan Event
	out    chan Yield
	cancel context.CancelFunc
	done   bool
}

func NewCoroutine() *Coroutine {
	return &Coroutine{
		in:     make(chan Event),
		out:    make(chan Yield),
		cancel: func() {},
		done:   true,
	}
}

// Start runs fn until it first waits for input or returns.
func (c *Coroutine) Start(ctx context.Context, fn Behavior) Yield {
	if !c.done {
		return Yield{Done: true, Err: errors.New("a session is already running")}
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = false
	go func() {
		err := fn(ctx, c)
		c.out <- Yield{Done: true, Err: err}
	}()
	return c.wait()
}

// Running reports whether a session has started and not returned yet.
func (c *Coroutine) Running() bool { return !c.done }

// Resume hands ev to the session and waits until it yields again.
func (c *Coroutine) Resume(ev Event) Yield {
	if c.done {
		return Yield{Done: true}
	}
	c.in <- ev
	return c.wait()
}

// Close cancels the session and waits for it to return.
func (c *Coroutine) Close() Yield {
	if c.done {
		return Yield{Done: true}
	}
	c.cancel()
	y := <-c.out
	for !y.Done {
		y = <-c.out
	}
	c.done = true
	return y
}

func (c *Coroutine) wait() Yield {
	y := <-c.out
	if y.Done {
		c.done = true
		c.cancel()
	}
	return y
}

// Next implements EventSource on the session side.
func (c *Coroutine) Next(ctx context.Context) (Event, bool) {
	return c.suspend(ctx, Yield{})
}

// Ask suspends the session with a request and returns the driver's answer.
func (c *Coroutine) Ask(ctx context.Context, req any) (Event, bool) {
	return c.suspend(ctx, Yield{Request: req})
}

// Prompt is a Prompt that asks the driver with an EditRequest.
func (c *Coroutine) Prompt(ctx context.Context, item board.Item, fields []Field) ([]Field, bool, error) {
	ev, ok := c.Ask(ctx, EditRequest{Item: item, Fields: fields})
	if !ok {
		return nil, false, ctx.Err()
	}
	return ev.Fields, ev.Kind == EventEditDone, nil
}

func (c *Coroutine) suspend(ctx context.Context, y Yield) (Event, bool) {
	select {
	case c.out <- y:
	case <-ctx.Done():
		return Event{}, false
	}
	select {
	case ev := <-c.in:
		return ev, true
	case <-ctx.Done():
		return Event{}, false
	}
}
