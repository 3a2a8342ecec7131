package annotation

import (
	"fmt"

	"github.com/google/uuid"
)

// Point is a position in logical surface coordinates. The units match the
// pixels of the raster surface, not the size it is displayed at.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Kind identifies the shape of an Object. The set is closed; every switch over
// Kind in this module handles all six values.
type Kind int

const (
	KindDraw Kind = iota
	KindLine
	KindArrow
	KindRectangle
	KindCircle
	KindText
)

var kindNames = [...]string{
	KindDraw:      "draw",
	KindLine:      "line",
	KindArrow:     "arrow",
	KindRectangle: "rectangle",
	KindCircle:    "circle",
	KindText:      "text",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDraw, KindLine, KindArrow, KindRectangle, KindCircle, KindText}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts the serialized name of a kind back into a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown annotation kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown annotation kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// HasBounds reports whether objects of this kind are described by the
// X, Y, Width and Height fields and can therefore be resized.
func (k Kind) HasBounds() bool {
	switch k {
	case KindRectangle, KindCircle:
		return true
	case KindDraw, KindLine, KindArrow, KindText:
		return false
	}
	return false
}

// PointBased reports whether the geometry of the kind lives in Points.
func (k Kind) PointBased() bool {
	switch k {
	case KindDraw, KindLine, KindArrow:
		return true
	case KindRectangle, KindCircle, KindText:
		return false
	}
	return false
}

// Object is a single drawable annotation. Values are treated as immutable once
// they are part of a committed Document; edits build a new Object.
// Points is always encoded, so nil and empty paths survive a round trip.
type Object struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	Points      []Point `json:"points"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Text        string  `json:"text,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`

	// Selected is a UI flag and is never serialized.
	Selected bool `json:"-"`
}

// NewID returns a fresh opaque object identifier.
func NewID() string { return uuid.NewString() }

// Anchor is the point a drag offset is measured from: the top-left corner
// for bbox and text objects, the first path point otherwise.
func (o Object) Anchor() Point {
	if o.Kind.PointBased() {
		if len(o.Points) == 0 {
			return Point{}
		}
		return o.Points[0]
	}
	return Point{o.X, o.Y}
}

// Clone returns a copy of o that shares no memory with it.
func (o Object) Clone() Object {
	if o.Points != nil {
		pts := make([]Point, len(o.Points))
		copy(pts, o.Points)
		o.Points = pts
	}
	return o
}

// Translate returns o moved by d.
func (o Object) Translate(d Point) Object {
	o = o.Clone()
	if o.Kind.PointBased() {
		for i := range o.Points {
			o.Points[i] = o.Points[i].Add(d)
		}
		return o
	}
	o.X += d.X
	o.Y += d.Y
	return o
}

// Style holds the visual parameters new objects are created with.
type Style struct {
	Color       string
	StrokeWidth float64
	FontSize    float64
}

// NewStroke starts a freehand stroke at p.
func NewStroke(p Point, s Style) Object {
	return Object{ID: NewID(), Kind: KindDraw, Points: []Point{p}, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// NewLine creates a line from a to b.
func NewLine(a, b Point, s Style) Object {
	return Object{ID: NewID(), Kind: KindLine, Points: []Point{a, b}, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// NewArrow creates an arrow pointing from a to b.
func NewArrow(a, b Point, s Style) Object {
	return Object{ID: NewID(), Kind: KindArrow, Points: []Point{a, b}, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// NewRectangle creates a rectangle with its top-left corner at (x, y).
func NewRectangle(x, y, w, h float64, s Style) Object {
	return Object{ID: NewID(), Kind: KindRectangle, X: x, Y: y, Width: w, Height: h, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// NewCircle creates a circle inscribed in the given box.
func NewCircle(x, y, w, h float64, s Style) Object {
	return Object{ID: NewID(), Kind: KindCircle, X: x, Y: y, Width: w, Height: h, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// NewText creates a text object whose baseline starts at p.
func NewText(p Point, text string, s Style) Object {
	return Object{ID: NewID(), Kind: KindText, X: p.X, Y: p.Y, Text: text, FontSize: s.FontSize, Color: s.Color, StrokeWidth: s.StrokeWidth}
}

// New creates an object of kind k seeded at p, as a drawing gesture would on
// pointer-down.
func New(k Kind, p Point, s Style) Object {
	switch k {
	case KindDraw:
		return NewStroke(p, s)
	case KindLine:
		return NewLine(p, p, s)
	case KindArrow:
		return NewArrow(p, p, s)
	case KindRectangle:
		return NewRectangle(p.X, p.Y, 0, 0, s)
	case KindCircle:
		return NewCircle(p.X, p.Y, 0, 0, s)
	case KindText:
		return NewText(p, "", s)
	}
	panic(fmt.Sprintf("annotation: unhandled kind %v", k))
}
