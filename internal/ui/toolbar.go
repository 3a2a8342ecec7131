package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

type buttonKind int

const (
	kindTool buttonKind = iota
	kindSwatch
	kindWidth
	kindAction
)

// Palette is the set of colors offered by the toolbar, in shortcut order.
var Palette = []string{"#ff0000", "#ff8c00", "#ffd700", "#00c000", "#0078d7", "#8000c0", "#000000", "#ffffff"}

// Widths are the stroke widths offered by the toolbar.
var Widths = []float64{1, 2, 4, 6, 8}

var toolLabels = map[editor.Tool]string{
	editor.ToolSelect:    "S:Select",
	editor.ToolDraw:      "P:Pen",
	editor.ToolLine:      "L:Line",
	editor.ToolArrow:     "A:Arrow",
	editor.ToolRectangle: "R:Rect",
	editor.ToolCircle:    "C:Circle",
	editor.ToolText:      "T:Text",
}

type button struct {
	kind  buttonKind
	label string
	rect  image.Rectangle
	tool  editor.Tool
	color string
	width float64
	run   func()
}

// buttonView is what the paint goroutine needs to draw a button. It holds
// no callbacks so it can be copied across goroutines.
type buttonView struct {
	kind  buttonKind
	label string
	rect  image.Rectangle
	color string
	width float64
	state ButtonState
}

type toolbar struct {
	buttons []*button
	width   int
	height  int
}

// newToolbar builds the buttons for the editor's tools, palette and widths.
// Action buttons run the given callbacks.
func newToolbar(ed *editor.Editor, actions []action) *toolbar {
	t := &toolbar{}
	for _, tool := range editor.Tools() {
		tool := tool
		t.buttons = append(t.buttons, &button{kind: kindTool, label: toolLabels[tool], tool: tool,
			run: func() { ed.SetTool(tool) }})
	}
	for _, c := range Palette {
		c := c
		t.buttons = append(t.buttons, &button{kind: kindSwatch, color: c, run: func() { ed.SetColor(c) }})
	}
	for _, w := range Widths {
		w := w
		t.buttons = append(t.buttons, &button{kind: kindWidth, label: fmt.Sprintf("%g", w), width: w,
			run: func() { ed.SetStrokeWidth(w) }})
	}
	for _, a := range actions {
		t.buttons = append(t.buttons, &button{kind: kindAction, label: a.label, run: a.run})
	}

	d := &font.Drawer{Face: basicfont.Face7x13}
	t.width = minToolbarW
	for _, b := range t.buttons {
		if w := d.MeasureString(b.label).Ceil() + 8; w > t.width {
			t.width = w
		}
	}
	t.layout()
	return t
}

type action struct {
	label string
	run   func()
}

// layout stacks tool buttons, wraps swatches into rows and lists widths and
// actions below them.
func (t *toolbar) layout() {
	y := 0
	x := 4
	prev := kindTool
	for _, b := range t.buttons {
		if b.kind != prev {
			if prev == kindSwatch {
				y += swatchSize + 2
			}
			y += 4
			x = 4
			prev = b.kind
		}
		switch b.kind {
		case kindSwatch:
			if x+swatchSize > t.width {
				x = 4
				y += swatchSize + 2
			}
			b.rect = image.Rect(x, y, x+swatchSize, y+swatchSize)
			x += swatchSize + 2
		case kindWidth:
			b.rect = image.Rect(0, y, t.width, y+widthRowH)
			y += widthRowH
		case kindTool, kindAction:
			b.rect = image.Rect(0, y, t.width, y+buttonHeight)
			y += buttonHeight
		}
	}
	t.height = y
}

// at returns the index of the button under p, or -1.
func (t *toolbar) at(p image.Point) int {
	for i, b := range t.buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

func (t *toolbar) activate(i int) {
	if i >= 0 && i < len(t.buttons) && t.buttons[i].run != nil {
		t.buttons[i].run()
	}
}

func (t *toolbar) views(s editor.Session, hover int) []buttonView {
	out := make([]buttonView, len(t.buttons))
	for i, b := range t.buttons {
		state := StateDefault
		switch {
		case b.kind == kindTool && b.tool == s.Tool,
			b.kind == kindSwatch && strings.EqualFold(b.color, s.Color),
			b.kind == kindWidth && b.width == s.StrokeWidth:
			state = StatePressed
		case i == hover:
			state = StateHover
		}
		out[i] = buttonView{kind: b.kind, label: b.label, rect: b.rect, color: b.color, width: b.width, state: state}
	}
	return out
}

func drawButton(dst *image.RGBA, v buttonView, th *theme.Theme) {
	switch v.kind {
	case kindSwatch:
		c, err := theme.ParseColor(v.color)
		if err != nil {
			return
		}
		draw.Draw(dst, v.rect, &image.Uniform{c}, image.Point{}, draw.Src)
		border := th.ButtonBorder
		switch v.state {
		case StatePressed:
			border = th.HandleBorder
		case StateHover:
			border = th.ButtonBackgroundActive
		case StateDefault:
		}
		outline(dst, v.rect, border)
		if v.state == StatePressed {
			outline(dst, v.rect.Inset(1), border)
		}
		return
	case kindWidth:
		fillButton(dst, v, th)
		textCol := th.ButtonText
		if v.state == StatePressed {
			textCol = th.ButtonTextActive
		}
		drawLabel(dst, v.label, v.rect.Min.X+4, v.rect.Min.Y+12, textCol)
		w := int(v.width)
		if w < 1 {
			w = 1
		}
		cy := v.rect.Min.Y + v.rect.Dy()/2
		line := image.Rect(v.rect.Min.X+30, cy-w/2, v.rect.Max.X-4, cy-w/2+w)
		draw.Draw(dst, line, &image.Uniform{textCol}, image.Point{}, draw.Src)
	case kindTool, kindAction:
		fillButton(dst, v, th)
		textCol := th.ButtonText
		if v.state == StatePressed {
			textCol = th.ButtonTextActive
		}
		drawLabel(dst, v.label, v.rect.Min.X+4, v.rect.Min.Y+16, textCol)
	}
}

func fillButton(dst *image.RGBA, v buttonView, th *theme.Theme) {
	bg := th.ButtonBackground
	switch v.state {
	case StatePressed:
		bg = th.ButtonBackgroundActive
	case StateHover:
		bg = blend(th.ButtonBackground, th.ButtonBackgroundActive)
	case StateDefault:
	}
	draw.Draw(dst, v.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: uint8((int(a.A) + int(b.A)) / 2),
	}
}

func outline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := &image.Uniform{c}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func drawLabel(dst *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}
