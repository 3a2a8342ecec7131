package editor

import (
	"fmt"
	"strings"

	"github.com/example/annotator/internal/annotation"
)

// Tool is the active input tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDraw
	ToolLine
	ToolArrow
	ToolRectangle
	ToolCircle
	ToolText
)

var toolNames = [...]string{"select", "draw", "line", "arrow", "rectangle", "circle", "text"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolSelect, ToolDraw, ToolLine, ToolArrow, ToolRectangle, ToolCircle, ToolText}
}

// ParseTool accepts a tool name or one of the short aliases used by scripts.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "move", "pointer":
		return ToolSelect, nil
	case "draw", "pen", "freehand":
		return ToolDraw, nil
	case "line":
		return ToolLine, nil
	case "arrow":
		return ToolArrow, nil
	case "rectangle", "rect":
		return ToolRectangle, nil
	case "circle":
		return ToolCircle, nil
	case "text":
		return ToolText, nil
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", s)
}

// Kind returns the object kind a drawing tool creates. Select and text are
// not drawing tools.
func (t Tool) Kind() (annotation.Kind, bool) {
	switch t {
	case ToolDraw:
		return annotation.KindDraw, true
	case ToolLine:
		return annotation.KindLine, true
	case ToolArrow:
		return annotation.KindArrow, true
	case ToolRectangle:
		return annotation.KindRectangle, true
	case ToolCircle:
		return annotation.KindCircle, true
	case ToolSelect, ToolText:
		return 0, false
	}
	return 0, false
}
