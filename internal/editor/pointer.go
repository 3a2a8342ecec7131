package editor

import (
	"math"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/geom"
)

// PointerDown starts a gesture at the display point p. vp converts p into
// surface coordinates.
func (e *Editor) PointerDown(vp geom.Viewport, p annotation.Point) error {
	if !e.ready {
		return ErrNotReady
	}
	pt := vp.ToSurface(p)
	if e.session.Text.Active {
		// Clicking the surface blurs the text input.
		e.CommitText()
		return nil
	}
	e.abandonGesture()

	switch e.session.Tool {
	case ToolSelect:
		e.selectDown(pt)
	case ToolText:
		e.session.Text = TextOverlay{Active: true, Pos: pt}
	case ToolDraw, ToolLine, ToolArrow, ToolRectangle, ToolCircle:
		kind, _ := e.session.Tool.Kind()
		obj := annotation.New(kind, pt, e.session.style())
		e.session.Current = &obj
		e.session.Start = pt
		e.session.Mode = ModeDrawing
	}
	e.changed()
	return nil
}

func (e *Editor) selectDown(pt annotation.Point) {
	if sel, ok := e.Selected(); ok {
		if h := geom.HandleAt(pt, sel); h != geom.HandleNone {
			e.session.Mode = ModeResizing
			e.session.Handle = h
			e.session.origin = sel
			return
		}
	}
	hit, ok := geom.TopmostAt(pt, e.doc)
	if !ok {
		e.session.SelectedID = ""
		return
	}
	e.session.SelectedID = hit.ID
	e.session.Color = hit.Color
	e.session.DragOffset = pt.Sub(hit.Anchor())
	e.session.origin = hit.Clone()
	e.session.Mode = ModeDragging
}

// PointerMove updates the gesture in progress. Without one it is a hover and
// changes nothing.
func (e *Editor) PointerMove(vp geom.Viewport, p annotation.Point) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.move(vp.ToSurface(p)) {
		e.changed()
	}
	return nil
}

func (e *Editor) move(pt annotation.Point) bool {
	switch e.session.Mode {
	case ModeResizing:
		return e.resizeTo(pt)
	case ModeDragging:
		return e.dragTo(pt)
	case ModeDrawing:
		e.extendCurrent(pt)
		return true
	case ModeIdle:
	}
	return false
}

func (e *Editor) resizeTo(pt annotation.Point) bool {
	cur, ok := e.doc.Find(e.session.SelectedID)
	if !ok || !cur.Kind.HasBounds() {
		return false
	}
	resized, h := geom.Resize(cur, e.session.Handle, pt)
	e.session.Handle = h
	e.doc = annotation.UpdateByID(e.doc, cur.ID, func(annotation.Object) annotation.Object { return resized })
	return true
}

func (e *Editor) dragTo(pt annotation.Point) bool {
	orig := e.session.origin
	if _, ok := e.doc.Find(orig.ID); !ok {
		return false
	}
	anchor := pt.Sub(e.session.DragOffset)
	moved := orig.Translate(anchor.Sub(orig.Anchor()))
	e.doc = annotation.UpdateByID(e.doc, orig.ID, func(annotation.Object) annotation.Object { return moved })
	return true
}

func (e *Editor) extendCurrent(pt annotation.Point) {
	cur := e.session.Current.Clone()
	start := e.session.Start
	switch cur.Kind {
	case annotation.KindDraw:
		if last := cur.Points[len(cur.Points)-1]; last != pt {
			cur.Points = append(cur.Points, pt)
		}
	case annotation.KindLine, annotation.KindArrow:
		cur.Points = []annotation.Point{start, pt}
	case annotation.KindRectangle, annotation.KindCircle:
		cur.X = math.Min(start.X, pt.X)
		cur.Y = math.Min(start.Y, pt.Y)
		cur.Width = math.Abs(pt.X - start.X)
		cur.Height = math.Abs(pt.Y - start.Y)
	case annotation.KindText:
	}
	e.session.Current = &cur
}

// PointerUp finishes the gesture at p and commits its result. A pointer-up
// without a preceding pointer-down does nothing.
func (e *Editor) PointerUp(vp geom.Viewport, p annotation.Point) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.session.Mode == ModeIdle {
		return nil
	}
	e.move(vp.ToSurface(p))
	e.finishGesture()
	return nil
}

// PointerLeave ends the gesture at the last known position, as a pointer-up
// would.
func (e *Editor) PointerLeave() error {
	if !e.ready {
		return ErrNotReady
	}
	if e.session.Mode == ModeIdle {
		return nil
	}
	e.finishGesture()
	return nil
}

func (e *Editor) finishGesture() {
	switch e.session.Mode {
	case ModeResizing, ModeDragging:
		e.commit()
	case ModeDrawing:
		if e.session.Current != nil {
			e.doc = annotation.Append(e.doc, e.session.Current.Clone())
			e.commit()
		}
	case ModeIdle:
		return
	}
	e.session.Mode = ModeIdle
	e.session.Current = nil
	e.session.Handle = geom.HandleNone
	e.session.origin = annotation.Object{}
	e.changed()
}

// DoubleClick opens the text input on the text object under p, prefilled with
// its content, when the select tool is active.
func (e *Editor) DoubleClick(vp geom.Viewport, p annotation.Point) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.session.Tool != ToolSelect {
		return nil
	}
	pt := vp.ToSurface(p)
	hit, ok := geom.TopmostAt(pt, e.doc)
	if !ok || hit.Kind != annotation.KindText {
		return nil
	}
	e.abandonGesture()
	e.session.SelectedID = hit.ID
	e.session.Text = TextOverlay{
		Active:   true,
		Pos:      annotation.Point{X: hit.X, Y: hit.Y},
		Buffer:   hit.Text,
		TargetID: hit.ID,
	}
	e.changed()
	return nil
}
