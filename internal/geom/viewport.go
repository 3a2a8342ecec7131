package geom

// Viewport maps display coordinates, as reported by the input device, onto
// the logical drawing surface. Origin is where the surface's top-left corner
// appears on the display; Scale converts display units to surface pixels.
type Viewport struct {
	Origin Point
	ScaleX float64
	ScaleY float64
}

// Identity is the viewport of a surface shown at its natural size at the
// display origin.
func Identity() Viewport { return Viewport{ScaleX: 1, ScaleY: 1} }

// FitViewport returns the viewport for a surface of sw×sh pixels stretched
// over a dw×dh display box placed at origin.
func FitViewport(origin Point, dw, dh, sw, sh float64) Viewport {
	v := Viewport{Origin: origin, ScaleX: 1, ScaleY: 1}
	if dw > 0 {
		v.ScaleX = sw / dw
	}
	if dh > 0 {
		v.ScaleY = sh / dh
	}
	return v
}

func (v Viewport) scales() (float64, float64) {
	sx, sy := v.ScaleX, v.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// ToSurface converts a display point into surface coordinates.
func (v Viewport) ToSurface(p Point) Point {
	sx, sy := v.scales()
	return Point{X: (p.X - v.Origin.X) * sx, Y: (p.Y - v.Origin.Y) * sy}
}

// ToDisplay converts a surface point into display coordinates.
func (v Viewport) ToDisplay(p Point) Point {
	sx, sy := v.scales()
	return Point{X: p.X/sx + v.Origin.X, Y: p.Y/sy + v.Origin.Y}
}
