// Package export turns a rendered surface and its document into the
// artifacts handed to callers: PNG bytes, PDF pages and saved files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// SaveFunc receives the serialized document and the PNG snapshot. It owns
// persistence; a returned error is reported to the user.
type SaveFunc func(serialized string, png []byte) error

// PNG encodes img to w.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Files is a SaveFunc target that writes <Base>.json and <Base>.png inside
// Dir. Either Dir or Base may be empty.
type Files struct {
	Dir  string
	Base string
}

// Paths returns the document and image paths Save writes to.
func (f Files) Paths() (doc, img string) {
	base := f.Base
	if base == "" {
		base = "annotations"
	}
	p := filepath.Join(f.Dir, base)
	return p + ".json", p + ".png"
}

// Save writes both artifacts. It matches SaveFunc.
func (f Files) Save(serialized string, pngData []byte) error {
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", f.Dir, err)
		}
	}
	docPath, imgPath := f.Paths()
	if err := os.WriteFile(docPath, []byte(serialized), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", docPath, err)
	}
	if err := os.WriteFile(imgPath, pngData, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", imgPath, err)
	}
	return nil
}
