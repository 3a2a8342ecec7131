package geom

import (
	"math"

	"github.com/example/annotator/internal/annotation"
)

// Handle names one of the eight resize anchors of a box.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
	HandleN
	HandleS
	HandleW
	HandleE
)

var handleNames = [...]string{"none", "nw", "ne", "sw", "se", "n", "s", "w", "e"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "none"
	}
	return handleNames[h]
}

// Handles lists the anchors in the order they are matched.
func Handles() []Handle {
	return []Handle{HandleNW, HandleNE, HandleSW, HandleSE, HandleN, HandleS, HandleW, HandleE}
}

func (h Handle) movesLeft() bool   { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) movesRight() bool  { return h == HandleNE || h == HandleE || h == HandleSE }
func (h Handle) movesTop() bool    { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) movesBottom() bool { return h == HandleSW || h == HandleS || h == HandleSE }

// flipX mirrors h across the vertical axis.
func (h Handle) flipX() Handle {
	switch h {
	case HandleNW:
		return HandleNE
	case HandleNE:
		return HandleNW
	case HandleSW:
		return HandleSE
	case HandleSE:
		return HandleSW
	case HandleW:
		return HandleE
	case HandleE:
		return HandleW
	}
	return h
}

// flipY mirrors h across the horizontal axis.
func (h Handle) flipY() Handle {
	switch h {
	case HandleNW:
		return HandleSW
	case HandleSW:
		return HandleNW
	case HandleNE:
		return HandleSE
	case HandleSE:
		return HandleNE
	case HandleN:
		return HandleS
	case HandleS:
		return HandleN
	}
	return h
}

// HandlePoint returns the position of anchor h on o's box.
func HandlePoint(o annotation.Object, h Handle) Point {
	cx := o.X + o.Width/2
	cy := o.Y + o.Height/2
	right := o.X + o.Width
	bottom := o.Y + o.Height
	switch h {
	case HandleNW:
		return Point{X: o.X, Y: o.Y}
	case HandleNE:
		return Point{X: right, Y: o.Y}
	case HandleSW:
		return Point{X: o.X, Y: bottom}
	case HandleSE:
		return Point{X: right, Y: bottom}
	case HandleN:
		return Point{X: cx, Y: o.Y}
	case HandleS:
		return Point{X: cx, Y: bottom}
	case HandleW:
		return Point{X: o.X, Y: cy}
	case HandleE:
		return Point{X: right, Y: cy}
	}
	return Point{X: o.X, Y: o.Y}
}

// HandleAt returns the anchor of o under p. Objects without a box never
// report a handle.
func HandleAt(p Point, o annotation.Object) Handle {
	if !o.Kind.HasBounds() {
		return HandleNone
	}
	for _, h := range Handles() {
		hp := HandlePoint(o, h)
		if math.Abs(p.X-hp.X) <= HandleTolerance && math.Abs(p.Y-hp.Y) <= HandleTolerance {
			return h
		}
	}
	return HandleNone
}

// Resize moves the edges controlled by h to p while the opposite edges stay
// fixed. When an edge is dragged past its opposite the box is flipped so the
// result keeps non-negative extents; the returned handle is the one that
// continues the gesture after such a flip. Objects without a box are
// returned unchanged.
func Resize(o annotation.Object, h Handle, p Point) (annotation.Object, Handle) {
	if !o.Kind.HasBounds() || h == HandleNone {
		return o, h
	}
	left, top := o.X, o.Y
	right, bottom := o.X+o.Width, o.Y+o.Height
	if h.movesLeft() {
		left = p.X
	}
	if h.movesRight() {
		right = p.X
	}
	if h.movesTop() {
		top = p.Y
	}
	if h.movesBottom() {
		bottom = p.Y
	}
	if right < left {
		left, right = right, left
		h = h.flipX()
	}
	if bottom < top {
		top, bottom = bottom, top
		h = h.flipY()
	}
	o = o.Clone()
	o.X, o.Y = left, top
	o.Width, o.Height = right-left, bottom-top
	return o, h
}
