// Package script drives an editing workspace from JavaScript using Goja.
// Scripts feed the same events a user would: pointer motion, clicks and
// commands. Behaviors that follow the pointer run in an edit.Coroutine,
// so a script can start a move, send motions and finish it with a click.
package script

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/wesen/boardedit/internal/workspace"
	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/clipboard"
	"github.com/wesen/boardedit/pkg/config"
	"github.com/wesen/boardedit/pkg/edit"
)

// Runner executes scripts against one workspace.
type Runner struct {
	Output []string

	ws      *workspace.Workspace
	co      *edit.Coroutine
	ctx     context.Context
	logger  *log.Logger
	runtime *goja.Runtime

	// pending holds the values the next property prompt answers with.
	pending map[string]string
}

// Options configure a Runner.
type Options struct {
	Config config.Session
	Logger *log.Logger
	// Buffer overrides the clipboard backend chosen by Config.Clipboard.
	Buffer clipboard.Buffer
}

// New creates a runner editing b.
func New(b *board.Board, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	r := &Runner{
		co:      edit.NewCoroutine(),
		ctx:     context.Background(),
		logger:  opts.Logger,
		runtime: goja.New(),
	}
	r.ws = workspace.New(b, workspace.Options{
		Config: opts.Config,
		Logger: opts.Logger,
		Prompt: r.co.Prompt,
		Buffer: opts.Buffer,
		Reporter: edit.ReporterFunc(func(err error) {
			r.Output = append(r.Output, "! "+err.Error())
		}),
	})
	r.register()
	return r
}

// Workspace returns the workspace the runner edits.
func (r *Runner) Workspace() *workspace.Workspace { return r.ws }

// Run executes src. A session still running when the script ends is
// cancelled.
func (r *Runner) Run(src string) error {
	_, err := r.runtime.RunString(src)
	if r.co.Running() {
		r.logger.Warn("script ended inside a session, cancelling")
		r.finish(r.co.Close())
	}
	if err != nil {
		return errors.Wrap(err, "script failed")
	}
	return nil
}

// RunFile executes the script at path.
func (r *Runner) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return r.Run(string(data))
}

func (r *Runner) register() {
	vm := r.runtime

	vm.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		r.Output = append(r.Output, strings.Join(parts, " "))
		return goja.Undefined()
	})

	// Pointer
	vm.Set("motion", func(x, y int) { r.pointer(edit.Motion(image.Pt(x, y))) })
	vm.Set("drag", func(x, y int) { r.pointer(edit.Drag(image.Pt(x, y))) })
	vm.Set("click", func(x, y int) { r.pointer(edit.Click(image.Pt(x, y))) })
	vm.Set("release", func(x, y int) { r.pointer(edit.ButtonUp(image.Pt(x, y))) })
	vm.Set("cancel", func() { r.feed(edit.Cancel(r.ws.Tool.Cursor())) })
	vm.Set("select", func(x, y int) bool {
		if r.co.Running() {
			r.throw(errors.New("select: a session is running"))
		}
		return r.ws.Select(image.Pt(x, y))
	})
	vm.Set("clear", func() { r.ws.Selection.Clear() })

	// Commands
	for name, a := range map[string]edit.Action{
		"move":   edit.ActionMove,
		"rotate": edit.ActionRotate,
		"flip":   edit.ActionFlip,
		"remove": edit.ActionRemove,
		"copy":   edit.ActionCopy,
		"paste":  edit.ActionPaste,
	} {
		vm.Set(name, func() { r.command(a) })
	}
	vm.Set("properties", func(values map[string]any) {
		r.pending = make(map[string]string, len(values))
		for k, v := range values {
			r.pending[k] = fmt.Sprint(v)
		}
		r.command(edit.ActionProperties)
		r.pending = nil
	})
	vm.Set("undo", func() { r.journal(edit.ActionUndo) })
	vm.Set("redo", func() { r.journal(edit.ActionRedo) })
	vm.Set("editFootprint", func(ref string) {
		if ref == "" {
			r.ws.Tool.EditFootprint(nil)
			return
		}
		f := r.footprint(ref)
		if f == nil {
			r.throw(errors.Errorf("editFootprint: no footprint %q", ref))
		}
		r.ws.Tool.EditFootprint(f)
	})

	// Queries
	vm.Set("footprint", func(ref string) any {
		f := r.footprint(ref)
		if f == nil {
			return nil
		}
		return map[string]any{
			"name":     f.Name,
			"x":        f.Pos.X,
			"y":        f.Pos.Y,
			"orient":   int(f.Orient),
			"layer":    f.Layer.String(),
			"children": len(f.Children()),
		}
	})
	vm.Set("selection", func() int { return r.ws.Selection.Len() })
	vm.Set("items", func() int { return r.ws.Board.Len() })
	vm.Set("running", func() bool { return r.co.Running() })
	vm.Set("journal", func() map[string]int {
		return map[string]int{"undo": r.ws.Journal.Len(), "redo": r.ws.Journal.RedoLen()}
	})
	vm.Set("airwires", func() int { return len(r.ws.Ratsnest.Visible()) })
	vm.Set("snapshot", func() string { return r.ws.Snapshot() })
}

// pointer feeds a pointer event to the running session or just moves the
// cursor. An idle click picks the item under the pointer.
func (r *Runner) pointer(ev edit.Event) {
	if r.co.Running() {
		r.feed(ev)
		return
	}
	r.ws.Tool.SetCursor(ev.Pos)
	if ev.Kind == edit.EventClick {
		r.ws.Select(ev.Pos)
	}
}

func (r *Runner) command(a edit.Action) {
	ev := edit.Command(a, r.ws.Tool.Cursor())
	if r.co.Running() {
		r.feed(ev)
		return
	}
	r.handle(r.co.Start(r.ctx, r.ws.Tool.Behavior(ev)))
}

func (r *Runner) journal(a edit.Action) {
	if r.co.Running() {
		r.feed(edit.UndoRedo(r.ws.Tool.Cursor()))
	}
	var err error
	if a == edit.ActionUndo {
		err = r.ws.Tool.Undo()
	} else {
		err = r.ws.Tool.Redo()
	}
	if err != nil {
		r.throw(err)
	}
}

func (r *Runner) feed(ev edit.Event) {
	r.handle(r.co.Resume(ev))
}

// handle answers property requests until the session waits for input or
// returns.
func (r *Runner) handle(y edit.Yield) {
	for !y.Done {
		req, ok := y.Request.(edit.EditRequest)
		if !ok {
			return
		}
		y = r.co.Resume(edit.EditDone(r.answer(req.Fields)))
	}
	r.finish(y)
}

// answer overrides fields with the pending values. Values for fields the
// item does not have are passed on so the editor can reject them.
func (r *Runner) answer(fields []edit.Field) []edit.Field {
	out := make([]edit.Field, 0, len(fields)+len(r.pending))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if v, ok := r.pending[f.Name]; ok {
			f.Value = v
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	for k, v := range r.pending {
		if !seen[k] {
			out = append(out, edit.Field{Name: k, Value: v})
		}
	}
	return out
}

func (r *Runner) finish(y edit.Yield) {
	if y.Err != nil {
		r.Output = append(r.Output, "! "+y.Err.Error())
		r.logger.Error("session failed", "err", y.Err)
	}
}

func (r *Runner) footprint(ref string) *board.Footprint {
	for _, f := range r.ws.Board.Footprints() {
		if l := f.Reference(); l != nil && l.Value == ref {
			return f
		}
	}
	return nil
}

// throw raises err as a JavaScript exception.
func (r *Runner) throw(err error) {
	panic(r.runtime.NewGoError(err))
}
