package render

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/theme"
)

var errMismatch = errors.New("snapshot differs from the serial render")

var (
	blue  = color.RGBA{0, 0, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 128, 0, 255}
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func style(c string) annotation.Style {
	return annotation.Style{Color: c, StrokeWidth: 1, FontSize: 16}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{800, 600, 0, 0, 800, 600},
		{800, 600, 400, 0, 400, 300},
		{800, 600, 1000, 300, 400, 300},
		{100, 50, 1000, 1000, 100, 50},
		{1000, 10, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitSize(%d,%d,%d,%d) = %d,%d want %d,%d", tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestBackgroundScaledOnce(t *testing.T) {
	r := New(uniform(2, 2, red), WithSize(8, 8))
	if r.Size() != image.Pt(8, 8) {
		t.Fatalf("size = %v", r.Size())
	}
	img, err := r.Snapshot(nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{0, 0}, {7, 7}} {
		if got := img.RGBAAt(p.X, p.Y); got.R < 250 || got.G > 5 || got.B > 5 {
			t.Fatalf("scaled background pixel %v = %v", p, got)
		}
	}
}

func TestRenderRectangle(t *testing.T) {
	r := New(uniform(100, 100, blue))
	doc := annotation.Document{annotation.NewRectangle(10, 10, 50, 40, style("#ff0000"))}
	img, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{10, 10}, {60, 10}, {35, 50}, {10, 30}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("edge pixel %v = %v", p, got)
		}
	}
	if got := img.RGBAAt(35, 30); got != blue {
		t.Errorf("interior pixel = %v, rectangles are not filled", got)
	}
}

func TestRenderCircleUsesSmallerDimension(t *testing.T) {
	r := New(uniform(100, 100, blue))
	doc := annotation.Document{annotation.NewCircle(0, 0, 40, 20, style("red"))}
	img, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(30, 10); got != red {
		t.Errorf("circle edge = %v", got)
	}
	if got := img.RGBAAt(39, 10); got != blue {
		t.Errorf("circle should not reach the box edge, got %v", got)
	}
}

func TestRenderArrowHead(t *testing.T) {
	r := New(uniform(100, 100, blue))
	doc := annotation.Document{annotation.NewArrow(annotation.Point{X: 10, Y: 50}, annotation.Point{X: 90, Y: 50}, style("red"))}
	img, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{77, 58}, {77, 43}, {50, 50}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("arrow pixel %v = %v", p, got)
		}
	}
}

func TestRenderText(t *testing.T) {
	r := New(uniform(200, 100, blue))
	doc := annotation.Document{annotation.NewText(annotation.Point{X: 20, Y: 50}, "Hello", style("red"))}
	img, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	inked := 0
	for y := 34; y <= 50; y++ {
		for x := 20; x < 80; x++ {
			if img.RGBAAt(x, y) != blue {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatalf("expected glyph pixels above the baseline")
	}
	if got := img.RGBAAt(20, 80); got != blue {
		t.Fatalf("text drawn below its box: %v", got)
	}
}

func TestConcurrentTextRendering(t *testing.T) {
	r := New(uniform(200, 100, blue))
	doc := annotation.Document{
		annotation.NewText(annotation.Point{X: 10, Y: 40}, "Hello", style("red")),
		annotation.NewText(annotation.Point{X: 10, Y: 80}, "World", style("green")),
	}
	want, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			img, err := r.Snapshot(doc)
			if err != nil {
				errs <- err
				return
			}
			if string(img.Pix) != string(want.Pix) {
				errs <- errMismatch
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := MeasureText("Hello", 16); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent render: %v", err)
	}
}

func TestHandlesOnlyWhenRequested(t *testing.T) {
	th := theme.Default()
	r := New(uniform(100, 100, blue), WithTheme(th))
	rect := annotation.NewRectangle(20, 20, 40, 40, style("red"))
	frame := Frame{Doc: annotation.Document{rect}, Selected: &rect}

	img := image.NewRGBA(r.Bounds())
	if err := r.Render(img, frame); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(17, 17); got != blue {
		t.Fatalf("handles drawn without Handles: %v", got)
	}

	frame.Handles = true
	if err := r.Render(img, frame); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(17, 17); got != th.HandleFill {
		t.Fatalf("nw handle fill = %v", got)
	}
	if got := img.RGBAAt(16, 16); got != th.HandleBorder {
		t.Fatalf("nw handle border = %v", got)
	}
	if got := img.RGBAAt(61, 41); got != th.HandleFill {
		t.Fatalf("e handle fill = %v", got)
	}
}

func TestInProgressDrawnOnTop(t *testing.T) {
	r := New(uniform(100, 100, blue))
	rect := annotation.NewRectangle(10, 10, 50, 50, style("red"))
	line := annotation.NewLine(annotation.Point{X: 0, Y: 10}, annotation.Point{X: 99, Y: 10}, style("green"))
	img := image.NewRGBA(r.Bounds())
	if err := r.Render(img, Frame{Doc: annotation.Document{rect}, InProgress: &line}); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(30, 10); got != green {
		t.Fatalf("in-progress object should cover committed ones, got %v", got)
	}
}

func TestUnknownColorFallsBack(t *testing.T) {
	r := New(uniform(50, 50, blue), WithFallbackColor(green))
	doc := annotation.Document{annotation.NewLine(annotation.Point{X: 0, Y: 5}, annotation.Point{X: 49, Y: 5}, style("not-a-color"))}
	img, err := r.Snapshot(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(25, 5); got != green {
		t.Fatalf("fallback color = %v", got)
	}
}
