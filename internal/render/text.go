package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *sfnt.Font

	// textMu guards every use of faces; they and the parsed font are not
	// safe for concurrent use.
	textMu sync.Mutex
	faces  map[float64]font.Face
)

func loadFont() {
	goFont, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse font: %w", fontErr)
	}
}

// faceForSize returns a cached goregular face at size points (72 DPI, so
// one point is one surface pixel). Callers hold textMu.
func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	fontOnce.Do(loadFont)
	if fontErr != nil {
		return nil, fontErr
	}
	if faces == nil {
		faces = make(map[float64]font.Face)
	}
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(goFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	faces[size] = face
	return face, nil
}

// MeasureText returns the advance width of text rendered at size.
func MeasureText(text string, size float64) (int, error) {
	textMu.Lock()
	defer textMu.Unlock()
	face, err := faceForSize(size)
	if err != nil {
		return 0, err
	}
	return (&font.Drawer{Face: face}).MeasureString(text).Ceil(), nil
}

// DrawText renders text with its baseline starting at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, col color.Color, size float64) error {
	textMu.Lock()
	defer textMu.Unlock()
	face, err := faceForSize(size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return nil
}
