package ui

import (
	"image"
	"math"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
)

const (
	buttonHeight  = 24
	swatchSize    = 16
	widthRowH     = 16
	statusHeight  = 20
	canvasMargin  = 8
	minToolbarW   = 96
	checkerSquare = 8
)

// layout splits the window into toolbar, canvas and status bar. canvas is
// where the surface is shown, already fitted to the available space.
type layout struct {
	window  image.Rectangle
	toolbar image.Rectangle
	canvas  image.Rectangle
	status  image.Rectangle
	surface image.Point
}

// fitZoom returns the largest zoom not above 1 that fits surface into area.
func fitZoom(surface, area image.Point) float64 {
	if surface.X <= 0 || surface.Y <= 0 || area.X <= 0 || area.Y <= 0 {
		return 1
	}
	z := math.Min(float64(area.X)/float64(surface.X), float64(area.Y)/float64(surface.Y))
	return math.Min(z, 1)
}

func computeLayout(winW, winH, toolbarW int, surface image.Point) layout {
	l := layout{
		window:  image.Rect(0, 0, winW, winH),
		toolbar: image.Rect(0, 0, toolbarW, winH-statusHeight),
		status:  image.Rect(0, winH-statusHeight, winW, winH),
		surface: surface,
	}
	area := image.Rect(toolbarW, 0, winW, winH-statusHeight).Inset(canvasMargin)
	z := fitZoom(surface, area.Size())
	dw := int(math.Round(float64(surface.X) * z))
	dh := int(math.Round(float64(surface.Y) * z))
	topLeft := image.Pt(area.Min.X+(area.Dx()-dw)/2, area.Min.Y+(area.Dy()-dh)/2)
	l.canvas = image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(dw, dh))}
	return l
}

// viewport maps window coordinates onto the surface.
func (l layout) viewport() geom.Viewport {
	origin := annotation.Point{X: float64(l.canvas.Min.X), Y: float64(l.canvas.Min.Y)}
	return geom.FitViewport(origin,
		float64(l.canvas.Dx()), float64(l.canvas.Dy()),
		float64(l.surface.X), float64(l.surface.Y))
}

// windowSize is the initial window size that shows surface at natural size
// and leaves room for toolbarH pixels of toolbar.
func windowSize(toolbarW, toolbarH int, surface image.Point) image.Point {
	h := surface.Y + 2*canvasMargin
	if toolbarH > h {
		h = toolbarH
	}
	return image.Pt(toolbarW+surface.X+2*canvasMargin, h+statusHeight)
}
