// Package history keeps a linear undo/redo stack of document snapshots.
package history

import (
	"errors"

	"github.com/example/annotator/internal/annotation"
)

var (
	// ErrCannotUndo is returned by Undo at the oldest snapshot.
	ErrCannotUndo = errors.New("cannot undo")
	// ErrCannotRedo is returned by Redo at the newest snapshot.
	ErrCannotRedo = errors.New("cannot redo")
)

// History is a list of snapshots and a cursor into it. Only Commit discards
// snapshots: those after the cursor.
type History struct {
	snapshots []annotation.Document
	cursor    int
}

// New seeds a history with initial as snapshot 0.
func New(initial annotation.Document) *History {
	return &History{snapshots: []annotation.Document{snapshot(initial)}}
}

func snapshot(d annotation.Document) annotation.Document {
	if d == nil {
		return annotation.Document{}
	}
	return d.Clone()
}

// Commit drops every snapshot after the cursor, appends d and moves the
// cursor onto it.
func (h *History) Commit(d annotation.Document) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot(d))
	h.cursor++
}

// Undo steps the cursor back and returns the snapshot it lands on.
func (h *History) Undo() (annotation.Document, error) {
	if !h.CanUndo() {
		return h.Current(), ErrCannotUndo
	}
	h.cursor--
	return h.Current(), nil
}

// Redo steps the cursor forward and returns the snapshot it lands on.
func (h *History) Redo() (annotation.Document, error) {
	if !h.CanRedo() {
		return h.Current(), ErrCannotRedo
	}
	h.cursor++
	return h.Current(), nil
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() annotation.Document { return h.snapshots[h.cursor].Clone() }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }
