package render

import (
	"image"
	"image/color"
	"math"
)

func round(v float64) int { return int(math.Round(v)) }

// thickness converts a stroke width into the pixel size of a pen tip.
func thickness(w float64) int {
	t := round(w)
	if t < 1 {
		return 1
	}
	return t
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	b := img.Bounds()
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine is a Bresenham line stamped with a square pen of size thick.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawPolyline(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	if len(pts) == 1 {
		setThickPixel(img, pts[0].X, pts[0].Y, thick, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, col, thick)
	}
}

func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x, y := r, 0
	err := 1 - r
	b := img.Bounds()
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			pt := image.Pt(cx+p[0], cy+p[1])
			if pt.In(b) {
				img.Set(pt.X, pt.Y, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// drawCircle strokes concentric midpoint circles centred on the radius.
func drawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	start := -thick / 2
	for i := 0; i < thick; i++ {
		if rr := r + start + i; rr >= 0 {
			drawCircleThin(img, cx, cy, rr, col)
		}
	}
}

// drawRect outlines rect; Max is inclusive.
func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, col, thick)
	drawLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, col, thick)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, col)
		}
	}
}

// drawDashedRect outlines rect alternating c1 and c2 every dash pixels.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	if dash <= 0 {
		dash = 1
	}
	b := img.Bounds()
	plot := func(x, y, i int) {
		if !image.Pt(x, y).In(b) {
			return
		}
		if (i/dash)%2 == 0 {
			img.Set(x, y, c1)
		} else {
			img.Set(x, y, c2)
		}
	}
	for x := rect.Min.X; x <= rect.Max.X; x++ {
		plot(x, rect.Min.Y, x-rect.Min.X)
		plot(x, rect.Max.Y, x-rect.Min.X)
	}
	for y := rect.Min.Y; y <= rect.Max.Y; y++ {
		plot(rect.Min.X, y, y-rect.Min.Y)
		plot(rect.Max.X, y, y-rect.Min.Y)
	}
}

// Checkerboard fills rect of dst with squares of the given size, used as
// the backdrop for transparent pixels.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
