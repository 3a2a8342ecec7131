// Package editor implements the interaction state machine of the annotation
// editor. An Editor owns the document, its undo history and the current
// gesture. It is driven by pointer and keyboard calls from a single goroutine
// and is not safe for concurrent use.
package editor

import (
	"errors"
	"log"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/history"
)

// ErrNotReady is returned by input handlers until the background image has
// been loaded.
var ErrNotReady = errors.New("editor is not ready")

const (
	DefaultColor       = "#ff0000"
	DefaultStrokeWidth = 2.0
	DefaultFontSize    = 16.0
)

// Editor is the explicit state container: document, history and session.
type Editor struct {
	doc     annotation.Document
	hist    *history.History
	session Session

	ready   bool
	loadErr error

	onChange func()
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithColor sets the initial drawing color.
func WithColor(c string) Option { return func(e *Editor) { e.session.Color = c } }

// WithStrokeWidth sets the initial stroke width.
func WithStrokeWidth(w float64) Option { return func(e *Editor) { e.session.StrokeWidth = w } }

// WithFontSize sets the font size used for new text.
func WithFontSize(s float64) Option { return func(e *Editor) { e.session.FontSize = s } }

// WithDocument seeds the editor with an already hydrated document.
func WithDocument(d annotation.Document) Option { return func(e *Editor) { e.doc = d } }

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func()) Option { return func(e *Editor) { e.onChange = fn } }

// New creates an editor with an empty history rooted at the initial document.
func New(opts ...Option) *Editor {
	e := &Editor{
		session: Session{
			Tool:        ToolSelect,
			Color:       DefaultColor,
			StrokeWidth: DefaultStrokeWidth,
			FontSize:    DefaultFontSize,
		},
	}
	for _, o := range opts {
		o(e)
	}
	if e.session.StrokeWidth <= 0 {
		e.session.StrokeWidth = DefaultStrokeWidth
	}
	if e.session.FontSize <= 0 {
		e.session.FontSize = DefaultFontSize
	}
	if e.doc == nil {
		e.doc = annotation.Document{}
	}
	e.hist = history.New(e.doc)
	return e
}

// Load replaces the document with the hydrated form of serialized and resets
// the history. Corrupt data is logged and replaced by an empty document; the
// error is still returned so callers can tell the user.
func (e *Editor) Load(serialized string) error {
	doc, err := annotation.Hydrate(serialized)
	if err != nil {
		log.Printf("hydrate annotations: %v", err)
		doc = annotation.Document{}
	}
	e.doc = doc
	e.hist = history.New(doc)
	e.session.Mode = ModeIdle
	e.session.Current = nil
	e.session.SelectedID = ""
	e.session.Text = TextOverlay{}
	e.changed()
	return err
}

// BackgroundLoaded marks the editor interactive.
func (e *Editor) BackgroundLoaded() {
	e.ready = true
	e.loadErr = nil
	e.changed()
}

// BackgroundFailed records an image load failure. The editor stays
// non-interactive.
func (e *Editor) BackgroundFailed(err error) {
	e.ready = false
	e.loadErr = err
	e.changed()
}

// Ready reports whether input is accepted.
func (e *Editor) Ready() bool { return e.ready }

// Err returns the background load error, if any.
func (e *Editor) Err() error { return e.loadErr }

// Document returns a copy of the current document.
func (e *Editor) Document() annotation.Document { return e.doc.Clone() }

// Session returns a copy of the session state.
func (e *Editor) Session() Session { return e.session }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.session.Tool }

// InProgress returns the shape being drawn, if any.
func (e *Editor) InProgress() (annotation.Object, bool) {
	if e.session.Current == nil {
		return annotation.Object{}, false
	}
	return e.session.Current.Clone(), true
}

// Selected returns the selected object with its Selected flag set.
func (e *Editor) Selected() (annotation.Object, bool) {
	if e.session.SelectedID == "" {
		return annotation.Object{}, false
	}
	o, ok := e.doc.Find(e.session.SelectedID)
	if !ok {
		return annotation.Object{}, false
	}
	o = o.Clone()
	o.Selected = true
	return o, true
}

func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// HistoryLen returns the number of snapshots held by the history.
func (e *Editor) HistoryLen() int { return e.hist.Len() }

// SetOnChange replaces the callback invoked after every state change.
func (e *Editor) SetOnChange(fn func()) { e.onChange = fn }

func (e *Editor) commit() {
	e.hist.Commit(e.doc)
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

// Undo restores the previous snapshot. A gesture in progress is abandoned.
func (e *Editor) Undo() error {
	e.abandonGesture()
	doc, err := e.hist.Undo()
	if err != nil {
		return err
	}
	e.restore(doc)
	return nil
}

// Redo re-applies the next snapshot.
func (e *Editor) Redo() error {
	e.abandonGesture()
	doc, err := e.hist.Redo()
	if err != nil {
		return err
	}
	e.restore(doc)
	return nil
}

func (e *Editor) restore(doc annotation.Document) {
	e.doc = doc
	if _, ok := e.doc.Find(e.session.SelectedID); !ok {
		e.session.SelectedID = ""
	}
	e.changed()
}

// abandonGesture drops an unfinished gesture and reverts any uncommitted
// drag or resize to the last snapshot.
func (e *Editor) abandonGesture() {
	switch e.session.Mode {
	case ModeDragging, ModeResizing:
		e.doc = e.hist.Current()
	case ModeDrawing, ModeIdle:
	}
	e.session.Mode = ModeIdle
	e.session.Current = nil
	e.session.Handle = geom.HandleNone
}

// SetTool switches the active tool. Pending text is committed first, as if
// the input lost focus.
func (e *Editor) SetTool(t Tool) {
	if e.session.Text.Active {
		e.CommitText()
	}
	e.abandonGesture()
	e.session.Tool = t
	if t != ToolSelect {
		e.session.SelectedID = ""
	}
	e.changed()
}

// SetColor sets the ambient color and applies it to the selected object.
func (e *Editor) SetColor(c string) {
	e.session.Color = c
	if o, ok := e.Selected(); ok {
		e.doc = annotation.PatchByID(e.doc, o.ID, annotation.Patch{Color: &c})
		e.commit()
	}
	e.changed()
}

// SetStrokeWidth sets the ambient stroke width and applies it to a selected
// stroke-based object.
func (e *Editor) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	e.session.StrokeWidth = w
	if o, ok := e.Selected(); ok && o.Kind != annotation.KindText {
		e.doc = annotation.PatchByID(e.doc, o.ID, annotation.Patch{StrokeWidth: &w})
		e.commit()
	}
	e.changed()
}

// SetFontSize sets the size for new text and resizes selected text.
func (e *Editor) SetFontSize(s float64) {
	if s <= 0 {
		return
	}
	e.session.FontSize = s
	if o, ok := e.Selected(); ok && o.Kind == annotation.KindText {
		e.doc = annotation.PatchByID(e.doc, o.ID, annotation.Patch{FontSize: &s})
		e.commit()
	}
	e.changed()
}

// DeleteSelected removes the selected object. It reports whether anything
// was deleted.
func (e *Editor) DeleteSelected() bool {
	o, ok := e.Selected()
	if !ok {
		return false
	}
	e.doc = annotation.RemoveByID(e.doc, o.ID)
	e.session.SelectedID = ""
	e.commit()
	e.changed()
	return true
}

// ClearSelection deselects without touching the document.
func (e *Editor) ClearSelection() {
	e.session.SelectedID = ""
	e.changed()
}
