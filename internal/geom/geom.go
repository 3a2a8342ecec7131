// Package geom holds the stateless geometry used by the editor: hit-testing,
// resize handles and the display to surface coordinate transform.
package geom

import (
	"math"
	"unicode/utf8"

	"github.com/example/annotator/internal/annotation"
)

type Point = annotation.Point

const (
	// StrokeMargin expands the bounding box of point based objects when hit
	// testing. Strokes are not tested by distance to their segments.
	StrokeMargin = 5.0
	// HandleTolerance is how far, on each axis, a point may be from a resize
	// anchor and still grab it.
	HandleTolerance = 8.0
	// TextWidthFactor approximates the average glyph advance as a fraction
	// of the font size.
	TextWidthFactor = 0.6
	// ArrowHeadLength is the length of each arrow head stroke.
	ArrowHeadLength = 15.0
	// ArrowHeadAngle is the angle between the shaft and each head stroke.
	ArrowHeadAngle = math.Pi / 6
)

// Rect is an axis aligned box with inclusive edges.
type Rect struct {
	Min, Max Point
}

// RectFromPoints returns the smallest Rect containing a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset returns r grown by -n on every side.
func (r Rect) Inset(n float64) Rect {
	return Rect{Min: Point{X: r.Min.X + n, Y: r.Min.Y + n}, Max: Point{X: r.Max.X - n, Y: r.Max.Y - n}}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// TextWidth estimates the rendered width of text at the given size.
func TextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * TextWidthFactor
}

// Bounds returns the box an object is hit-tested against, without the stroke
// margin.
func Bounds(o annotation.Object) Rect {
	switch o.Kind {
	case annotation.KindRectangle, annotation.KindCircle:
		return RectFromPoints(Point{X: o.X, Y: o.Y}, Point{X: o.X + o.Width, Y: o.Y + o.Height})
	case annotation.KindText:
		// (x, y) is the bottom-left corner of the text box.
		return Rect{
			Min: Point{X: o.X, Y: o.Y - o.FontSize},
			Max: Point{X: o.X + TextWidth(o.Text, o.FontSize), Y: o.Y},
		}
	case annotation.KindDraw, annotation.KindLine, annotation.KindArrow:
		if len(o.Points) == 0 {
			return Rect{}
		}
		r := Rect{Min: o.Points[0], Max: o.Points[0]}
		for _, p := range o.Points[1:] {
			r.Min.X = math.Min(r.Min.X, p.X)
			r.Min.Y = math.Min(r.Min.Y, p.Y)
			r.Max.X = math.Max(r.Max.X, p.X)
			r.Max.Y = math.Max(r.Max.Y, p.Y)
		}
		return r
	}
	return Rect{}
}

// HitTest reports whether p selects o.
//
// Circles are tested as a circle of radius min(width, height)/2 around the
// box centre even when the box is not square. Point based objects use their
// bounding box grown by StrokeMargin.
func HitTest(p Point, o annotation.Object) bool {
	switch o.Kind {
	case annotation.KindRectangle, annotation.KindText:
		return Bounds(o).Contains(p)
	case annotation.KindCircle:
		c, r := Circle(o)
		return math.Hypot(p.X-c.X, p.Y-c.Y) <= r
	case annotation.KindDraw, annotation.KindLine, annotation.KindArrow:
		if len(o.Points) == 0 {
			return false
		}
		return Bounds(o).Inset(-StrokeMargin).Contains(p)
	}
	return false
}

// Circle returns the centre and radius a circle object is drawn and tested with.
func Circle(o annotation.Object) (Point, float64) {
	c := Point{X: o.X + o.Width/2, Y: o.Y + o.Height/2}
	r := math.Min(math.Abs(o.Width), math.Abs(o.Height)) / 2
	return c, r
}

// TopmostAt returns the last object in doc that p hits.
func TopmostAt(p Point, doc annotation.Document) (annotation.Object, bool) {
	for i := len(doc) - 1; i >= 0; i-- {
		if HitTest(p, doc[i]) {
			return doc[i], true
		}
	}
	return annotation.Object{}, false
}

// ArrowHead returns the outer ends of the two head strokes of an arrow that
// points from tail to tip. Both strokes end at tip.
func ArrowHead(tail, tip Point) [2]Point {
	angle := math.Atan2(tip.Y-tail.Y, tip.X-tail.X)
	a1 := angle - ArrowHeadAngle
	a2 := angle + ArrowHeadAngle
	return [2]Point{
		{X: tip.X - ArrowHeadLength*math.Cos(a1), Y: tip.Y - ArrowHeadLength*math.Sin(a1)},
		{X: tip.X - ArrowHeadLength*math.Cos(a2), Y: tip.Y - ArrowHeadLength*math.Sin(a2)},
	}
}

// Normalize returns o with non-negative width and height, keeping the box
// in place.
func Normalize(o annotation.Object) annotation.Object {
	if o.Width < 0 {
		o.X += o.Width
		o.Width = -o.Width
	}
	if o.Height < 0 {
		o.Y += o.Height
		o.Height = -o.Height
	}
	return o
}
