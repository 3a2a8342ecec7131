package ui

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/history"
)

const (
	doubleClickDelay = 400 * time.Millisecond
	doubleClickSlop  = 4
	messageDuration  = 2 * time.Second
	// Pointer gestures are abandoned by leaving the canvas by this much.
	leaveMargin = 16
)

// KeyShortcut identifies a key press. Rune shortcuts leave Code zero and
// code shortcuts leave Rune zero.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// controller translates window events into editor calls. It runs on the
// event goroutine only.
type controller struct {
	ed      *editor.Editor
	tb      *toolbar
	lay     layout
	surface image.Point

	hover       int
	pressed     bool
	lastPress   time.Time
	lastPressAt image.Point

	shortcuts map[KeyShortcut]func()

	save func() error
	copy func() error
	quit bool

	message      string
	messageUntil time.Time
	now          func() time.Time

	dirty bool
}

func newController(ed *editor.Editor, surface image.Point) *controller {
	c := &controller{ed: ed, surface: surface, hover: -1, now: time.Now}
	ed.SetOnChange(func() { c.dirty = true })
	c.tb = newToolbar(ed, []action{
		{label: "Undo", run: c.undo},
		{label: "Redo", run: c.redo},
		{label: "Delete", run: func() { ed.DeleteSelected() }},
		{label: "Save", run: c.runSave},
		{label: "Copy", run: c.runCopy},
	})
	c.resize(windowSize(c.tb.width, c.tb.height, surface))
	c.shortcuts = c.defaultShortcuts()
	return c
}

func (c *controller) resize(size image.Point) {
	c.lay = computeLayout(size.X, size.Y, c.tb.width, c.surface)
	c.dirty = true
}

func (c *controller) defaultShortcuts() map[KeyShortcut]func() {
	ed := c.ed
	m := map[KeyShortcut]func(){
		{Rune: 'z', Modifiers: key.ModControl}:                c.undo,
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift}: c.redo,
		{Rune: 'y', Modifiers: key.ModControl}:                c.redo,
		{Rune: 's', Modifiers: key.ModControl}:                c.runSave,
		{Rune: 'c', Modifiers: key.ModControl}:                c.runCopy,
		{Rune: 'q', Modifiers: key.ModControl}:                func() { c.quit = true },
		{Code: key.CodeDeleteForward}:                         func() { ed.DeleteSelected() },
		{Code: key.CodeDeleteBackspace}:                       func() { ed.DeleteSelected() },
		{Code: key.CodeEscape}:                                ed.ClearSelection,
		{Rune: '['}:                                           func() { c.stepWidth(-1) },
		{Rune: ']'}:                                           func() { c.stepWidth(1) },
	}
	for tool, label := range toolLabels {
		tool := tool
		m[KeyShortcut{Rune: unicode.ToLower(rune(label[0]))}] = func() { ed.SetTool(tool) }
	}
	for i, col := range Palette {
		col := col
		m[KeyShortcut{Rune: rune('1' + i)}] = func() { ed.SetColor(col) }
	}
	return m
}

func shortcutsFor(e key.Event) []KeyShortcut {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	var out []KeyShortcut
	if e.Code != key.CodeUnknown {
		out = append(out, KeyShortcut{Code: e.Code, Modifiers: mods})
	}
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if mods&key.ModControl == 0 {
			mods &^= key.ModShift
		}
		out = append(out, KeyShortcut{Rune: r, Modifiers: mods})
	}
	return out
}

func (c *controller) flash(format string, args ...any) {
	c.message = fmt.Sprintf(format, args...)
	c.messageUntil = c.now().Add(messageDuration)
	log.Print(c.message)
	c.dirty = true
}

func (c *controller) undo() {
	if err := c.ed.Undo(); err != nil && !errors.Is(err, history.ErrCannotUndo) {
		log.Printf("undo: %v", err)
	}
}

func (c *controller) redo() {
	if err := c.ed.Redo(); err != nil && !errors.Is(err, history.ErrCannotRedo) {
		log.Printf("redo: %v", err)
	}
}

func (c *controller) runSave() {
	if c.save == nil {
		return
	}
	if err := c.save(); err != nil {
		c.flash("save failed: %v", err)
		return
	}
	c.flash("saved")
}

func (c *controller) runCopy() {
	if c.copy == nil {
		return
	}
	if err := c.copy(); err != nil {
		c.flash("copy failed: %v", err)
		return
	}
	c.flash("image copied to clipboard")
}

func (c *controller) stepWidth(dir int) {
	cur := c.ed.Session().StrokeWidth
	idx := -1
	for i, w := range Widths {
		if w == cur {
			idx = i
		}
	}
	switch {
	case idx == -1 && dir > 0:
		idx = 0
	case idx == -1:
		idx = len(Widths) - 1
	default:
		idx += dir
	}
	if idx < 0 || idx >= len(Widths) {
		return
	}
	c.ed.SetStrokeWidth(Widths[idx])
}

func (c *controller) inGesture() bool {
	return c.ed.Session().Mode != editor.ModeIdle
}

func (c *controller) report(op string, err error) {
	if err != nil {
		log.Printf("%s: %v", op, err)
	}
}

// handleMouse returns whether the window needs repainting.
func (c *controller) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	pt := annotation.Point{X: float64(e.X), Y: float64(e.Y)}
	vp := c.lay.viewport()

	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if c.message != "" {
			c.messageUntil = time.Time{}
			c.dirty = true
		}
		if p.In(c.lay.toolbar) {
			c.tb.activate(c.tb.at(p))
			break
		}
		if !p.In(c.lay.canvas) {
			break
		}
		c.pressed = true
		now := c.now()
		double := now.Sub(c.lastPress) <= doubleClickDelay &&
			abs(p.X-c.lastPressAt.X) <= doubleClickSlop && abs(p.Y-c.lastPressAt.Y) <= doubleClickSlop
		if double {
			c.lastPress = time.Time{}
			c.report("double click", c.ed.DoubleClick(vp, pt))
			if c.ed.Session().Text.Active {
				break
			}
		} else {
			c.lastPress, c.lastPressAt = now, p
		}
		c.report("pointer down", c.ed.PointerDown(vp, pt))
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if c.pressed && c.inGesture() {
			c.report("pointer up", c.ed.PointerUp(vp, pt))
		}
		c.pressed = false
	case e.Direction == mouse.DirNone:
		if c.pressed && c.inGesture() {
			if !p.In(c.lay.canvas.Inset(-leaveMargin)) {
				c.report("pointer leave", c.ed.PointerLeave())
				c.pressed = false
				break
			}
			c.report("pointer move", c.ed.PointerMove(vp, pt))
			break
		}
		if h := c.tb.at(p); h != c.hover {
			c.hover = h
			c.dirty = true
		}
	}
	return c.takeDirty()
}

// handleKey returns whether the window needs repainting.
func (c *controller) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if c.ed.Session().Text.Active {
		c.textKey(e)
		return c.takeDirty()
	}
	for _, ks := range shortcutsFor(e) {
		if fn, ok := c.shortcuts[ks]; ok {
			fn()
			break
		}
	}
	return c.takeDirty()
}

func (c *controller) textKey(e key.Event) {
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		c.ed.CommitText()
		return
	case key.CodeEscape:
		c.ed.CancelText()
		return
	case key.CodeDeleteBackspace:
		c.ed.Backspace()
		return
	}
	if e.Modifiers&key.ModControl != 0 {
		return
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		c.ed.TypeText(string(e.Rune))
	}
}

func (c *controller) takeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

func (c *controller) status() string {
	if c.message != "" && c.now().Before(c.messageUntil) {
		return c.message
	}
	s := c.ed.Session()
	msg := fmt.Sprintf("%s  %s  width %g", s.Tool, s.Color, s.StrokeWidth)
	if s.Text.Active {
		msg += "  typing: enter to place, esc to cancel"
	}
	return msg
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
