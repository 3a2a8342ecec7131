// Package ui is the desktop front end of the editor: a shiny window with a
// toolbar, the annotated surface and a status line.
package ui

import (
	"context"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/theme"
)

const frameDropThreshold = 5

// Window shows an editor and routes input to it.
type Window struct {
	ed    *editor.Editor
	rd    *render.Renderer
	theme *theme.Theme
	title string
	save  func() error
	copy  func() error
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(w *Window) { w.title = t } }

// WithTheme sets the chrome colors. The renderer keeps its own theme for
// selection handles.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

// WithSave is run by ctrl+s and the Save button.
func WithSave(fn func() error) Option { return func(w *Window) { w.save = fn } }

// WithCopy is run by ctrl+c and the Copy button.
func WithCopy(fn func() error) Option { return func(w *Window) { w.copy = fn } }

// New creates a window for ed whose surface is drawn by rd.
func New(ed *editor.Editor, rd *render.Renderer, opts ...Option) *Window {
	w := &Window{ed: ed, rd: rd, title: "annotator"}
	for _, o := range opts {
		o(w)
	}
	if w.theme == nil {
		w.theme = rd.Theme()
	}
	return w
}

// Run executes the UI loop using shiny's driver. It returns when the
// window is closed.
func (w *Window) Run() { driver.Main(w.Main) }

func (w *Window) Main(s screen.Screen) {
	c := newController(w.ed, w.rd.Size())
	c.save, c.copy = w.save, w.copy

	win, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  c.lay.window.Dx(),
		Height: c.lay.window.Dy(),
		Title:  w.title,
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, win, w.rd, w.theme, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				c.resize(e.Size())
			}
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := c.snapshot()
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		case mouse.Event:
			if c.handleMouse(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			repaint := c.handleKey(e)
			if c.quit {
				stopPaint()
				return
			}
			if repaint {
				win.Send(paint.Event{})
			}
		case error:
			log.Printf("ui: %v", e)
		}
	}
}
