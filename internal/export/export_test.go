package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/annotator/internal/annotation"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	img.SetRGBA(3, 4, color.RGBA{255, 0, 0, 255})
	return img
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(sample())
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(40, 30) {
		t.Fatalf("size = %v", img.Bounds().Size())
	}
	r, _, _, a := img.At(3, 4).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Fatalf("pixel lost in encoding")
	}
}

func TestFilesSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := Files{Dir: dir, Base: "shot"}
	if err := f.Save(`[]`, []byte("png")); err != nil {
		t.Fatal(err)
	}
	docPath, imgPath := f.Paths()
	if filepath.Base(docPath) != "shot.json" || filepath.Base(imgPath) != "shot.png" {
		t.Fatalf("unexpected paths %s %s", docPath, imgPath)
	}
	b, err := os.ReadFile(docPath)
	if err != nil || string(b) != "[]" {
		t.Fatalf("document file = %q, %v", b, err)
	}
	b, err = os.ReadFile(imgPath)
	if err != nil || string(b) != "png" {
		t.Fatalf("image file = %q, %v", b, err)
	}
}

func TestFilesDefaultBase(t *testing.T) {
	doc, img := Files{}.Paths()
	if doc != "annotations.json" || img != "annotations.png" {
		t.Fatalf("unexpected default paths %s %s", doc, img)
	}
}

func TestPDF(t *testing.T) {
	doc := annotation.Document{
		annotation.NewRectangle(5, 5, 10, 10, annotation.Style{Color: "red", StrokeWidth: 2}),
		annotation.NewArrow(annotation.Point{X: 1, Y: 1}, annotation.Point{X: 30, Y: 20}, annotation.Style{Color: "#00ff0080", StrokeWidth: 1}),
		annotation.NewCircle(10, 10, 8, 8, annotation.Style{Color: "blue", StrokeWidth: 1}),
		annotation.NewText(annotation.Point{X: 2, Y: 25}, "Grüße", annotation.Style{Color: "black", StrokeWidth: 1, FontSize: 12}),
	}
	for name, opts := range map[string][]PDFOption{
		"raster": {WithTitle("Annotated"), WithAuthor("tester")},
		"vector": {WithVectorAnnotations(doc)},
	} {
		var buf bytes.Buffer
		if err := PDF(&buf, sample(), opts...); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, "%PDF-") {
			t.Fatalf("%s: missing PDF header", name)
		}
		if !strings.Contains(out, "%%EOF") {
			t.Fatalf("%s: missing EOF marker", name)
		}
	}
}

func TestPDFEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, image.NewRGBA(image.Rectangle{})); err == nil {
		t.Fatalf("expected error for empty image")
	}
}
