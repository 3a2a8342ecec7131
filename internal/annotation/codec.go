package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCorruptAnnotationData is returned by Hydrate when stored annotations
// cannot be turned back into a Document.
var ErrCorruptAnnotationData = errors.New("corrupt annotation data")

// Serialize encodes d field for field so that Hydrate(Serialize(d)) yields an
// equal document.
func Serialize(d Document) (string, error) {
	if d == nil {
		d = Document{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("serialize annotations: %w", err)
	}
	return string(b), nil
}

// Hydrate parses a serialized document. An empty string yields an empty
// document. Any parse or validation failure wraps ErrCorruptAnnotationData.
func Hydrate(s string) (Document, error) {
	if strings.TrimSpace(s) == "" {
		return Document{}, nil
	}
	var d Document
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptAnnotationData, err)
	}
	if d == nil {
		d = Document{}
	}
	if err := Validate(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptAnnotationData, err)
	}
	return d, nil
}

// Validate checks the structural invariants of a document. Stroke widths
// and text font sizes must be positive; missing values count as zero.
func Validate(d Document) error {
	seen := make(map[string]struct{}, len(d))
	for i, o := range d {
		if o.ID == "" {
			return fmt.Errorf("object %d: missing id", i)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("object %d: duplicate id %s", i, o.ID)
		}
		seen[o.ID] = struct{}{}
		if o.StrokeWidth <= 0 {
			return fmt.Errorf("object %s: stroke width must be positive, got %v", o.ID, o.StrokeWidth)
		}
		switch o.Kind {
		case KindDraw:
			if len(o.Points) < 1 {
				return fmt.Errorf("object %s: stroke has no points", o.ID)
			}
		case KindLine, KindArrow:
			if len(o.Points) != 2 {
				return fmt.Errorf("object %s: %v needs 2 points, has %d", o.ID, o.Kind, len(o.Points))
			}
		case KindRectangle, KindCircle:
		case KindText:
			if o.FontSize <= 0 {
				return fmt.Errorf("object %s: font size must be positive, got %v", o.ID, o.FontSize)
			}
		default:
			return fmt.Errorf("object %s: unknown kind %d", o.ID, int(o.Kind))
		}
	}
	return nil
}
