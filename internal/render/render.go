// Package render rasterizes an annotation document over its background
// image. The pipeline always runs in the same order: clear, background,
// committed objects, the object being drawn, then selection handles.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/theme"
)

// HandleSize is the edge length in pixels of a selection handle square.
const HandleSize = 8

// Frame is an immutable snapshot of what to draw.
type Frame struct {
	Doc        annotation.Document
	InProgress *annotation.Object
	Selected   *annotation.Object
	// Handles enables selection decorations. Exports leave it unset.
	Handles bool
}

// Renderer draws frames onto a surface of fixed size.
type Renderer struct {
	size       image.Point
	background *image.RGBA
	theme      *theme.Theme
	fallback   color.RGBA

	colors sync.Map // map[string]color.RGBA
}

// Option modifies a Renderer during creation.
type Option func(*Renderer)

// WithTheme sets the colors used for selection handles.
func WithTheme(t *theme.Theme) Option { return func(r *Renderer) { r.theme = t } }

// WithSize sets the surface size. The background is scaled to it once.
func WithSize(w, h int) Option { return func(r *Renderer) { r.size = image.Pt(w, h) } }

// WithFallbackColor sets the color used for objects whose color string
// cannot be parsed.
func WithFallbackColor(c color.RGBA) Option { return func(r *Renderer) { r.fallback = c } }

// New creates a renderer for bg. Without WithSize the surface takes the
// image's own size.
func New(bg image.Image, opts ...Option) *Renderer {
	r := &Renderer{
		theme:    theme.Default(),
		fallback: color.RGBA{0, 0, 0, 255},
	}
	for _, o := range opts {
		o(r)
	}
	if bg != nil && (r.size.X <= 0 || r.size.Y <= 0) {
		r.size = bg.Bounds().Size()
	}
	if r.theme == nil {
		r.theme = theme.Default()
	}
	r.background = image.NewRGBA(image.Rectangle{Max: r.size})
	if bg != nil {
		if bg.Bounds().Size() == r.size {
			draw.Draw(r.background, r.background.Bounds(), bg, bg.Bounds().Min, draw.Src)
		} else {
			xdraw.CatmullRom.Scale(r.background, r.background.Bounds(), bg, bg.Bounds(), draw.Src, nil)
		}
	}
	return r
}

// FitSize scales w×h down to fit within maxW×maxH keeping the aspect ratio.
// A non-positive limit is ignored. Images are never enlarged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale == 1 {
		return w, h
	}
	fw, fh := round(float64(w)*scale), round(float64(h)*scale)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// Size returns the surface size.
func (r *Renderer) Size() image.Point { return r.size }

// Bounds returns the surface rectangle anchored at the origin.
func (r *Renderer) Bounds() image.Rectangle { return image.Rectangle{Max: r.size} }

// Theme returns the theme handles are drawn with.
func (r *Renderer) Theme() *theme.Theme { return r.theme }

// Render draws f onto dst, which is expected to cover Bounds. Every object
// is drawn even when some fail; the first error is returned.
func (r *Renderer) Render(dst *image.RGBA, f Frame) error {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.Draw(dst, r.Bounds(), r.background, image.Point{}, draw.Over)

	var errs []error
	for _, o := range f.Doc {
		errs = append(errs, r.drawObject(dst, o))
	}
	if f.InProgress != nil {
		errs = append(errs, r.drawObject(dst, *f.InProgress))
	}
	if f.Handles && f.Selected != nil {
		r.drawSelection(dst, *f.Selected)
	}
	return errors.Join(errs...)
}

// Snapshot renders doc without selection decorations into a new image.
func (r *Renderer) Snapshot(doc annotation.Document) (*image.RGBA, error) {
	img := image.NewRGBA(r.Bounds())
	if err := r.Render(img, Frame{Doc: doc}); err != nil {
		return nil, err
	}
	return img, nil
}

// Rasterize is Snapshot returning the image interface.
func (r *Renderer) Rasterize(doc annotation.Document) (image.Image, error) {
	return r.Snapshot(doc)
}

func (r *Renderer) color(s string) color.RGBA {
	if c, ok := r.colors.Load(s); ok {
		return c.(color.RGBA)
	}
	c, err := theme.ParseColor(s)
	if err != nil {
		log.Printf("render: %v", err)
		c = r.fallback
	}
	r.colors.Store(s, c)
	return c
}

func toPixel(p annotation.Point) image.Point { return image.Pt(round(p.X), round(p.Y)) }

func (r *Renderer) drawObject(dst *image.RGBA, o annotation.Object) error {
	col := r.color(o.Color)
	thick := thickness(o.StrokeWidth)
	switch o.Kind {
	case annotation.KindDraw:
		if len(o.Points) == 0 {
			return nil
		}
		pts := make([]image.Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = toPixel(p)
		}
		drawPolyline(dst, pts, col, thick)
	case annotation.KindLine:
		if len(o.Points) < 2 {
			return nil
		}
		a, b := toPixel(o.Points[0]), toPixel(o.Points[1])
		drawLine(dst, a.X, a.Y, b.X, b.Y, col, thick)
	case annotation.KindArrow:
		if len(o.Points) < 2 {
			return nil
		}
		tail, tip := o.Points[0], o.Points[1]
		a, b := toPixel(tail), toPixel(tip)
		drawLine(dst, a.X, a.Y, b.X, b.Y, col, thick)
		if tail == tip {
			return nil
		}
		for _, end := range geom.ArrowHead(tail, tip) {
			e := toPixel(end)
			drawLine(dst, b.X, b.Y, e.X, e.Y, col, thick)
		}
	case annotation.KindRectangle:
		n := geom.Normalize(o)
		lo := toPixel(annotation.Point{X: n.X, Y: n.Y})
		hi := toPixel(annotation.Point{X: n.X + n.Width, Y: n.Y + n.Height})
		drawRect(dst, image.Rectangle{Min: lo, Max: hi}, col, thick)
	case annotation.KindCircle:
		c, radius := geom.Circle(o)
		p := toPixel(c)
		drawCircle(dst, p.X, p.Y, round(radius), col, thick)
	case annotation.KindText:
		if o.Text == "" {
			return nil
		}
		return DrawText(dst, round(o.X), round(o.Y), o.Text, col, o.FontSize)
	}
	return nil
}

// drawSelection draws the eight resize handles of a boxed object, or a
// dashed outline around objects that cannot be resized.
func (r *Renderer) drawSelection(dst *image.RGBA, o annotation.Object) {
	if !o.Kind.HasBounds() {
		b := geom.Bounds(o)
		if o.Kind.PointBased() {
			b = b.Inset(-geom.StrokeMargin)
		}
		rect := image.Rectangle{Min: toPixel(b.Min), Max: toPixel(b.Max)}
		drawDashedRect(dst, rect, 4, r.theme.HandleBorder, r.theme.HandleFill)
		return
	}
	hs := HandleSize / 2
	for _, h := range geom.Handles() {
		c := toPixel(geom.HandlePoint(o, h))
		sq := image.Rect(c.X-hs, c.Y-hs, c.X+hs, c.Y+hs)
		fillRect(dst, sq, r.theme.HandleFill)
		drawRect(dst, image.Rectangle{Min: sq.Min, Max: sq.Max.Sub(image.Pt(1, 1))}, r.theme.HandleBorder, 1)
	}
}
