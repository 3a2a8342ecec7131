package ui

import (
	"context"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"

	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/theme"
)

// paintState is a copy of everything a frame shows, taken on the event
// goroutine and handed to the paint goroutine.
type paintState struct {
	width, height int
	lay           layout
	frame         render.Frame
	text          editor.TextOverlay
	textColor     string
	fontSize      float64
	buttons       []buttonView
	status        string
}

func (c *controller) snapshot() paintState {
	s := c.ed.Session()
	st := paintState{
		width:     c.lay.window.Dx(),
		height:    c.lay.window.Dy(),
		lay:       c.lay,
		frame:     render.Frame{Doc: c.ed.Document(), Handles: true},
		text:      s.Text,
		textColor: s.Color,
		fontSize:  s.FontSize,
		buttons:   c.tb.views(s, c.hover),
		status:    c.status(),
	}
	if o, ok := c.ed.InProgress(); ok {
		st.frame.InProgress = &o
	}
	if o, ok := c.ed.Selected(); ok {
		st.frame.Selected = &o
	}
	return st
}

// paintWindow composes a full window image. It returns early, leaving dst
// partly drawn, when ctx is cancelled.
func paintWindow(ctx context.Context, dst *image.RGBA, rd *render.Renderer, th *theme.Theme, st paintState) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	draw.Draw(dst, st.lay.toolbar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for _, b := range st.buttons {
		drawButton(dst, b, th)
	}
	if ctx.Err() != nil {
		return
	}

	surface := image.NewRGBA(rd.Bounds())
	if err := rd.Render(surface, st.frame); err != nil {
		log.Printf("render: %v", err)
	}
	if st.text.Active {
		drawTextOverlay(surface, th, st)
	}
	if ctx.Err() != nil {
		return
	}

	render.Checkerboard(dst, st.lay.canvas, checkerSquare, th.CheckerLight, th.CheckerDark)
	if st.lay.canvas.Size() == surface.Bounds().Size() {
		draw.Draw(dst, st.lay.canvas, surface, image.Point{}, draw.Over)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, st.lay.canvas, surface, surface.Bounds(), draw.Over, nil)
	}
	if ctx.Err() != nil {
		return
	}

	draw.Draw(dst, st.lay.status, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	drawLabel(dst, st.status, st.lay.status.Min.X+4, st.lay.status.Min.Y+14, th.Foreground)
}

// drawTextOverlay shows the pending text with a caret where it will be
// placed on the surface.
func drawTextOverlay(surface *image.RGBA, th *theme.Theme, st paintState) {
	x, y := int(st.text.Pos.X+0.5), int(st.text.Pos.Y+0.5)
	col, err := theme.ParseColor(st.textColor)
	if err != nil {
		col = th.TextCaret
	}
	if st.text.Buffer != "" {
		if err := render.DrawText(surface, x, y, st.text.Buffer, col, st.fontSize); err != nil {
			log.Printf("text overlay: %v", err)
		}
	}
	w, err := render.MeasureText(st.text.Buffer, st.fontSize)
	if err != nil {
		return
	}
	caret := image.Rect(x+w+1, y-int(st.fontSize), x+w+2, y+2)
	draw.Draw(surface, caret.Intersect(surface.Bounds()), &image.Uniform{th.TextCaret}, image.Point{}, draw.Src)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, rd *render.Renderer, th *theme.Theme, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	paintWindow(ctx, b.RGBA(), rd, th, st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
