package editor

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/render"
)

type failingRasterizer struct{ err error }

func (f failingRasterizer) Rasterize(annotation.Document) (image.Image, error) { return nil, f.err }

func TestSaveHandsOffDocumentAndSnapshot(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolRectangle)
	drag(t, e, pt(2, 2), pt(12, 8))

	r := render.New(image.NewRGBA(image.Rect(0, 0, 20, 10)))
	var gotDoc string
	var gotPNG []byte
	err := e.Save(r, func(serialized string, data []byte) error {
		gotDoc, gotPNG = serialized, data
		return nil
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	doc, err := annotation.Hydrate(gotDoc)
	if err != nil || len(doc) != 1 || doc[0].Kind != annotation.KindRectangle {
		t.Fatalf("saved document = %q, %v", gotDoc, err)
	}
	img, err := png.Decode(bytes.NewReader(gotPNG))
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if img.Bounds().Size() != image.Pt(20, 10) {
		t.Fatalf("snapshot size = %v", img.Bounds().Size())
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolLine)
	drag(t, e, pt(0, 0), pt(5, 5))
	before := e.Document()
	histLen := e.HistoryLen()

	rejected := errors.New("disk full")
	r := render.New(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if err := e.Save(r, func(string, []byte) error { return rejected }); !errors.Is(err, rejected) {
		t.Fatalf("expected callback error, got %v", err)
	}
	boom := errors.New("boom")
	if err := e.Save(failingRasterizer{boom}, func(string, []byte) error { return nil }); !errors.Is(err, boom) {
		t.Fatalf("expected rasterize error, got %v", err)
	}
	if e.HistoryLen() != histLen || !e.CanUndo() {
		t.Fatalf("history changed by a failed save")
	}
	if len(e.Document()) != len(before) || e.Document()[0].ID != before[0].ID {
		t.Fatalf("document changed by a failed save")
	}
}

func TestSaveCommitsPendingText(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolText)
	if err := e.PointerDown(vp, pt(1, 9)); err != nil {
		t.Fatal(err)
	}
	e.TypeText("note")
	r := render.New(image.NewRGBA(image.Rect(0, 0, 50, 20)))
	var saved string
	if err := e.Save(r, func(s string, _ []byte) error { saved = s; return nil }); err != nil {
		t.Fatal(err)
	}
	doc, err := annotation.Hydrate(saved)
	if err != nil || len(doc) != 1 || doc[0].Text != "note" {
		t.Fatalf("pending text not saved: %q %v", saved, err)
	}
}
