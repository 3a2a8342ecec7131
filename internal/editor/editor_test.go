package editor

import (
	"errors"
	"testing"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/history"
	"github.com/google/go-cmp/cmp"
)

var vp = geom.Identity()

func pt(x, y float64) annotation.Point { return annotation.Point{X: x, Y: y} }

func newReady(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	e := New(opts...)
	e.BackgroundLoaded()
	return e
}

func drag(t *testing.T, e *Editor, from, to annotation.Point) {
	t.Helper()
	if err := e.PointerDown(vp, from); err != nil {
		t.Fatalf("down: %v", err)
	}
	if err := e.PointerMove(vp, to); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := e.PointerUp(vp, to); err != nil {
		t.Fatalf("up: %v", err)
	}
}

func TestDrawAndUndoRectangle(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolRectangle)
	drag(t, e, pt(10, 10), pt(60, 50))

	if !e.CanUndo() {
		t.Fatalf("expected undo to be available")
	}
	doc := e.Document()
	if len(doc) != 1 {
		t.Fatalf("expected 1 object, got %d", len(doc))
	}
	r := doc[0]
	if r.Kind != annotation.KindRectangle || r.X != 10 || r.Y != 10 || r.Width != 50 || r.Height != 40 {
		t.Fatalf("unexpected rectangle %+v", r)
	}
	if e.Tool() != ToolRectangle {
		t.Fatalf("drawing tools stay active after a shape, got %v", e.Tool())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(e.Document()) != 0 {
		t.Fatalf("expected empty document after undo")
	}
	if !e.CanRedo() {
		t.Fatalf("expected redo to be available")
	}
}

func TestRectangleNormalizedWhileDrawing(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolCircle)
	if err := e.PointerDown(vp, pt(60, 50)); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerMove(vp, pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	cur, ok := e.InProgress()
	if !ok {
		t.Fatalf("expected an in-progress object")
	}
	if cur.X != 10 || cur.Y != 10 || cur.Width != 50 || cur.Height != 40 {
		t.Fatalf("box not normalized: %+v", cur)
	}
	if len(e.Document()) != 0 {
		t.Fatalf("in-progress shapes must not touch the document")
	}
}

func TestLineAndStrokeCreation(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolArrow)
	drag(t, e, pt(0, 0), pt(100, 0))
	e.SetTool(ToolDraw)
	if err := e.PointerDown(vp, pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	for _, p := range []annotation.Point{pt(2, 2), pt(3, 5), pt(3, 5)} {
		if err := e.PointerMove(vp, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.PointerUp(vp, pt(3, 5)); err != nil {
		t.Fatal(err)
	}
	doc := e.Document()
	if len(doc) != 2 {
		t.Fatalf("expected two objects, got %d", len(doc))
	}
	if diff := cmp.Diff([]annotation.Point{pt(0, 0), pt(100, 0)}, doc[0].Points); diff != "" {
		t.Fatalf("arrow points (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]annotation.Point{pt(1, 1), pt(2, 2), pt(3, 5)}, doc[1].Points); diff != "" {
		t.Fatalf("stroke points (-want +got):\n%s", diff)
	}
	if e.HistoryLen() != 3 {
		t.Fatalf("expected one snapshot per shape, history has %d", e.HistoryLen())
	}
}

func TestDragPreservesShape(t *testing.T) {
	rect := annotation.NewRectangle(100, 100, 50, 30, annotation.Style{Color: "#0000ff", StrokeWidth: 2})
	stroke := annotation.NewStroke(pt(10, 10), annotation.Style{Color: "green", StrokeWidth: 2})
	stroke.Points = append(stroke.Points, pt(20, 15), pt(30, 12))
	e := newReady(t, WithDocument(annotation.Document{rect, stroke}))

	drag(t, e, pt(120, 110), pt(130, 105))
	got, _ := e.Document().Find(rect.ID)
	if got.X != 110 || got.Y != 95 || got.Width != 50 || got.Height != 30 {
		t.Fatalf("unexpected rectangle after drag: %+v", got)
	}
	if e.Session().Color != "#0000ff" {
		t.Fatalf("selecting should sync the ambient color, got %s", e.Session().Color)
	}

	drag(t, e, pt(20, 12), pt(30, 7))
	moved, _ := e.Document().Find(stroke.ID)
	want := []annotation.Point{pt(20, 5), pt(30, 10), pt(40, 7)}
	if diff := cmp.Diff(want, moved.Points); diff != "" {
		t.Fatalf("stroke not translated (-want +got):\n%s", diff)
	}
	if e.HistoryLen() != 3 {
		t.Fatalf("each drag should commit exactly once, history has %d", e.HistoryLen())
	}
}

func TestDragCommitsOncePerGesture(t *testing.T) {
	rect := annotation.NewRectangle(0, 0, 50, 50, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))
	if err := e.PointerDown(vp, pt(25, 25)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := e.PointerMove(vp, pt(25+float64(i), 25)); err != nil {
			t.Fatal(err)
		}
	}
	if e.HistoryLen() != 1 {
		t.Fatalf("moves must not commit, history has %d", e.HistoryLen())
	}
	if err := e.PointerUp(vp, pt(35, 25)); err != nil {
		t.Fatal(err)
	}
	if e.HistoryLen() != 2 {
		t.Fatalf("expected one commit, history has %d", e.HistoryLen())
	}
}

func TestStillGestureCommitsIdenticalSnapshot(t *testing.T) {
	rect := annotation.NewRectangle(0, 0, 50, 50, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))
	if err := e.PointerDown(vp, pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerUp(vp, pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	if e.HistoryLen() != 2 {
		t.Fatalf("expected an identical snapshot to be committed, history has %d", e.HistoryLen())
	}
	if diff := cmp.Diff(annotation.Document{rect}, e.Document()); diff != "" {
		t.Fatalf("document changed:\n%s", diff)
	}
}

func TestPointerUpWithoutDownIsNoop(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolRectangle)
	if err := e.PointerUp(vp, pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if e.HistoryLen() != 1 || len(e.Document()) != 0 {
		t.Fatalf("pointer-up alone should do nothing")
	}
	if err := e.PointerLeave(); err != nil {
		t.Fatal(err)
	}
	if e.HistoryLen() != 1 {
		t.Fatalf("pointer-leave alone should do nothing")
	}
}

func TestResizeThroughHandles(t *testing.T) {
	rect := annotation.NewRectangle(10, 10, 100, 60, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))

	// Select first, then grab the south-east handle.
	drag(t, e, pt(50, 40), pt(50, 40))
	if err := e.PointerDown(vp, pt(109, 69)); err != nil {
		t.Fatal(err)
	}
	if s := e.Session(); s.Mode != ModeResizing || s.Handle != geom.HandleSE {
		t.Fatalf("expected se resize, got mode=%v handle=%v", s.Mode, s.Handle)
	}
	if err := e.PointerMove(vp, pt(150, 100)); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerUp(vp, pt(160, 110)); err != nil {
		t.Fatal(err)
	}
	got, _ := e.Document().Find(rect.ID)
	if got.X != 10 || got.Y != 10 || got.Width != 150 || got.Height != 100 {
		t.Fatalf("unexpected box after se resize: %+v", got)
	}

	// North-west keeps the south-east corner fixed.
	drag(t, e, pt(10, 10), pt(30, 40))
	got, _ = e.Document().Find(rect.ID)
	if got.X != 30 || got.Y != 40 || got.Width != 130 || got.Height != 70 {
		t.Fatalf("unexpected box after nw resize: %+v", got)
	}
	if s := e.Session(); s.SelectedID != rect.ID {
		t.Fatalf("resizing must not change selection")
	}
}

func TestResizePastCornerStaysNormalized(t *testing.T) {
	rect := annotation.NewRectangle(10, 10, 100, 60, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))
	drag(t, e, pt(50, 40), pt(50, 40))
	drag(t, e, pt(110, 70), pt(0, 0))
	got, _ := e.Document().Find(rect.ID)
	if got.Width < 0 || got.Height < 0 {
		t.Fatalf("resize left negative extents: %+v", got)
	}
	if got.X != 0 || got.Y != 0 || got.Width != 10 || got.Height != 10 {
		t.Fatalf("unexpected flipped box: %+v", got)
	}
}

func TestSelectMissClearsSelection(t *testing.T) {
	rect := annotation.NewRectangle(0, 0, 10, 10, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))
	drag(t, e, pt(5, 5), pt(5, 5))
	if _, ok := e.Selected(); !ok {
		t.Fatalf("expected a selection")
	}
	before := e.HistoryLen()
	drag(t, e, pt(500, 500), pt(510, 510))
	if _, ok := e.Selected(); ok {
		t.Fatalf("clicking empty space should deselect")
	}
	if e.HistoryLen() != before {
		t.Fatalf("selection changes must not commit")
	}
}

func TestTextEditInPlace(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolText)
	if err := e.PointerDown(vp, pt(20, 20)); err != nil {
		t.Fatal(err)
	}
	e.TypeText("Hello")
	if !e.CommitText() {
		t.Fatalf("expected commit to change the document")
	}
	if e.Tool() != ToolSelect {
		t.Fatalf("text tool should revert to select after commit")
	}
	doc := e.Document()
	if len(doc) != 1 || doc[0].Text != "Hello" || doc[0].X != 20 || doc[0].Y != 20 {
		t.Fatalf("unexpected document %+v", doc)
	}
	id := doc[0].ID

	if err := e.DoubleClick(vp, pt(25, 10)); err != nil {
		t.Fatal(err)
	}
	ov := e.Session().Text
	if !ov.Active || ov.Buffer != "Hello" || ov.TargetID != id {
		t.Fatalf("double click should open the overlay on the text, got %+v", ov)
	}
	e.TypeText(" World")
	e.CommitText()

	doc = e.Document()
	if len(doc) != 1 || doc[0].ID != id || doc[0].Text != "Hello World" {
		t.Fatalf("text not edited in place: %+v", doc)
	}
	sel, ok := e.Selected()
	if !ok || sel.ID != id || sel.Text != "Hello World" || !sel.Selected {
		t.Fatalf("selection should resolve to the updated object, got %+v", sel)
	}
}

func TestTextEscapeAndBlank(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolText)
	if err := e.PointerDown(vp, pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	e.TypeText("draft")
	e.CancelText()
	if e.Tool() != ToolSelect || len(e.Document()) != 0 || e.Session().Text.Active {
		t.Fatalf("escape should discard and revert to select")
	}

	e.SetTool(ToolText)
	if err := e.PointerDown(vp, pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	e.TypeText("   ")
	if e.CommitText() {
		t.Fatalf("blank text must not be committed")
	}
	if e.HistoryLen() != 1 {
		t.Fatalf("blank text should not touch history")
	}
}

func TestBackspaceRemovesRunes(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolText)
	if err := e.PointerDown(vp, pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	e.TypeText("héé")
	e.Backspace()
	if got := e.Session().Text.Buffer; got != "hé" {
		t.Fatalf("buffer = %q", got)
	}
}

func TestColorAppliesToSelection(t *testing.T) {
	rect := annotation.NewRectangle(0, 0, 10, 10, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{rect}))
	e.SetColor("blue")
	if e.HistoryLen() != 1 {
		t.Fatalf("color change without selection must not commit")
	}
	drag(t, e, pt(5, 5), pt(5, 5))
	e.SetColor("#00ff00")
	got, _ := e.Document().Find(rect.ID)
	if got.Color != "#00ff00" {
		t.Fatalf("color not applied: %+v", got)
	}
	if e.HistoryLen() != 3 {
		t.Fatalf("expected a commit for the color change, history has %d", e.HistoryLen())
	}
	e.SetStrokeWidth(6)
	got, _ = e.Document().Find(rect.ID)
	if got.StrokeWidth != 6 {
		t.Fatalf("stroke width not applied: %+v", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	a := annotation.NewRectangle(0, 0, 10, 10, annotation.Style{Color: "red", StrokeWidth: 1})
	b := annotation.NewRectangle(50, 50, 10, 10, annotation.Style{Color: "red", StrokeWidth: 1})
	e := newReady(t, WithDocument(annotation.Document{a, b}))
	if e.DeleteSelected() {
		t.Fatalf("nothing selected, nothing to delete")
	}
	drag(t, e, pt(5, 5), pt(5, 5))
	if !e.DeleteSelected() {
		t.Fatalf("expected delete")
	}
	doc := e.Document()
	if len(doc) != 1 || doc[0].ID != b.ID {
		t.Fatalf("unexpected document %+v", doc)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(e.Document()) != 2 {
		t.Fatalf("undo should restore the deleted object")
	}
}

func TestUndoRedoErrors(t *testing.T) {
	e := newReady(t)
	if err := e.Undo(); !errors.Is(err, history.ErrCannotUndo) {
		t.Fatalf("expected ErrCannotUndo, got %v", err)
	}
	if err := e.Redo(); !errors.Is(err, history.ErrCannotRedo) {
		t.Fatalf("expected ErrCannotRedo, got %v", err)
	}
}

func TestInputIgnoredUntilReady(t *testing.T) {
	e := New()
	e.SetTool(ToolRectangle)
	if err := e.PointerDown(vp, pt(1, 1)); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	e.BackgroundFailed(errors.New("404"))
	if e.Ready() || e.Err() == nil {
		t.Fatalf("failed load should keep the editor non-interactive")
	}
	if err := e.PointerUp(vp, pt(1, 1)); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if len(e.Document()) != 0 {
		t.Fatalf("document changed before ready")
	}
}

func TestViewportScaling(t *testing.T) {
	e := newReady(t)
	e.SetTool(ToolRectangle)
	half := geom.FitViewport(pt(0, 0), 100, 100, 200, 200)
	if err := e.PointerDown(half, pt(5, 5)); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerUp(half, pt(30, 25)); err != nil {
		t.Fatal(err)
	}
	r := e.Document()[0]
	if r.X != 10 || r.Y != 10 || r.Width != 50 || r.Height != 40 {
		t.Fatalf("display points not scaled to the surface: %+v", r)
	}
}

func TestLoadCorruptFallsBackToEmpty(t *testing.T) {
	e := newReady(t)
	err := e.Load("{broken")
	if !errors.Is(err, annotation.ErrCorruptAnnotationData) {
		t.Fatalf("expected corrupt data error, got %v", err)
	}
	if len(e.Document()) != 0 || e.CanUndo() {
		t.Fatalf("expected an empty document with fresh history")
	}
	e.SetTool(ToolLine)
	drag(t, e, pt(0, 0), pt(5, 5))
	if len(e.Document()) != 1 {
		t.Fatalf("editor should keep working after a corrupt load")
	}
}

func TestOnChangeFires(t *testing.T) {
	calls := 0
	e := New(WithOnChange(func() { calls++ }))
	e.BackgroundLoaded()
	e.SetTool(ToolLine)
	before := calls
	drag(t, e, pt(0, 0), pt(5, 5))
	if calls <= before {
		t.Fatalf("expected change notifications during a gesture")
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Fatalf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if got, err := ParseTool("rect"); err != nil || got != ToolRectangle {
		t.Fatalf("alias rect: %v %v", got, err)
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
}
