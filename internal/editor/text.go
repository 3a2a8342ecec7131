package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/example/annotator/internal/annotation"
)

// TypeText appends s to the open text input.
func (e *Editor) TypeText(s string) {
	if !e.session.Text.Active {
		return
	}
	e.session.Text.Buffer += s
	e.changed()
}

// Backspace removes the last character of the open text input.
func (e *Editor) Backspace() {
	buf := e.session.Text.Buffer
	if !e.session.Text.Active || buf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(buf)
	e.session.Text.Buffer = buf[:len(buf)-size]
	e.changed()
}

// CommitText closes the text input (Enter or blur). Non-blank text either
// replaces the edited object's text or becomes a new text object; either way
// the result is committed and the tool reverts to select. It reports whether
// the document changed.
func (e *Editor) CommitText() bool {
	ov := e.session.Text
	if !ov.Active {
		return false
	}
	e.session.Text = TextOverlay{}
	if strings.TrimSpace(ov.Buffer) == "" {
		e.changed()
		return false
	}
	text := ov.Buffer
	if ov.TargetID != "" {
		if _, ok := e.doc.Find(ov.TargetID); !ok {
			e.changed()
			return false
		}
		e.doc = annotation.PatchByID(e.doc, ov.TargetID, annotation.Patch{Text: &text})
		e.session.SelectedID = ov.TargetID
	} else {
		e.doc = annotation.Append(e.doc, annotation.NewText(ov.Pos, text, e.session.style()))
	}
	e.commit()
	e.session.Tool = ToolSelect
	e.changed()
	return true
}

// CancelText discards the text input and reverts to the select tool.
func (e *Editor) CancelText() {
	if !e.session.Text.Active {
		return
	}
	e.session.Text = TextOverlay{}
	e.session.Tool = ToolSelect
	e.changed()
}
