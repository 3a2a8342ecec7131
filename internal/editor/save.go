package editor

import (
	"fmt"
	"image"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/export"
)

// Rasterizer renders a document over the background without selection
// decorations.
type Rasterizer interface {
	Rasterize(doc annotation.Document) (image.Image, error)
}

// Save serializes the document, rasterizes it and passes both to onSave.
// Pending text is committed first. Failures are returned wrapped and leave
// the document and history as they were.
func (e *Editor) Save(r Rasterizer, onSave export.SaveFunc) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.session.Text.Active {
		e.CommitText()
	}
	doc := e.doc.Clone()
	serialized, err := annotation.Serialize(doc)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	img, err := r.Rasterize(doc)
	if err != nil {
		return fmt.Errorf("save: rasterize: %w", err)
	}
	data, err := export.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := onSave(serialized, data); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
