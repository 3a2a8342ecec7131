package editor

import (
	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
)

// Mode is the gesture currently in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	}
	return "idle"
}

// TextOverlay is the inline text input. TargetID is empty when the input
// will create a new object rather than edit an existing one.
type TextOverlay struct {
	Active   bool
	Pos      annotation.Point
	Buffer   string
	TargetID string
}

// Session is the ephemeral state of the pointer gesture and tool settings.
// It is never persisted.
type Session struct {
	Tool        Tool
	Color       string
	StrokeWidth float64
	FontSize    float64

	Mode       Mode
	Start      annotation.Point
	Current    *annotation.Object
	SelectedID string
	DragOffset annotation.Point
	Handle     geom.Handle
	Text       TextOverlay

	// origin is the selected object as it was when the gesture started.
	origin annotation.Object
}

// IsDrawing reports whether a shape is being created.
func (s Session) IsDrawing() bool { return s.Mode == ModeDrawing }

func (s Session) style() annotation.Style {
	return annotation.Style{Color: s.Color, StrokeWidth: s.StrokeWidth, FontSize: s.FontSize}
}
