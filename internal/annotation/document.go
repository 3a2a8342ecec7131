package annotation

// Document is an ordered list of objects. Later entries are drawn on top of
// earlier ones and win hit-test ties.
type Document []Object

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, o := range d {
		out[i] = o.Clone()
	}
	return out
}

// Find returns the object with the given id.
func (d Document) Find(id string) (Object, bool) {
	if i := d.index(id); i >= 0 {
		return d[i], true
	}
	return Object{}, false
}

func (d Document) index(id string) int {
	for i := range d {
		if d[i].ID == id {
			return i
		}
	}
	return -1
}

// Append returns a new document with o added on top.
func Append(d Document, o Object) Document {
	out := make(Document, len(d), len(d)+1)
	copy(out, d)
	return append(out, o)
}

// UpdateByID returns a new document in which the object with the given id is
// replaced by fn's result. When id is absent d itself is returned.
func UpdateByID(d Document, id string, fn func(Object) Object) Document {
	i := d.index(id)
	if i < 0 {
		return d
	}
	out := make(Document, len(d))
	copy(out, d)
	out[i] = fn(d[i].Clone())
	return out
}

// RemoveByID returns a new document without the object with the given id.
// When id is absent d itself is returned.
func RemoveByID(d Document, id string) Document {
	i := d.index(id)
	if i < 0 {
		return d
	}
	out := make(Document, 0, len(d)-1)
	out = append(out, d[:i]...)
	return append(out, d[i+1:]...)
}

// Patch lists optional field changes for an object. Nil fields are left
// untouched.
type Patch struct {
	Color       *string
	StrokeWidth *float64
	Text        *string
	FontSize    *float64
	X, Y        *float64
	Width       *float64
	Height      *float64
	Points      []Point
}

// Apply returns a copy of o with the patch applied.
func (p Patch) Apply(o Object) Object {
	o = o.Clone()
	if p.Color != nil {
		o.Color = *p.Color
	}
	if p.StrokeWidth != nil {
		o.StrokeWidth = *p.StrokeWidth
	}
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.FontSize != nil {
		o.FontSize = *p.FontSize
	}
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil {
		o.Width = *p.Width
	}
	if p.Height != nil {
		o.Height = *p.Height
	}
	if p.Points != nil {
		o.Points = append([]Point(nil), p.Points...)
	}
	return o
}

// PatchByID applies p to the object with the given id.
func PatchByID(d Document, id string, p Patch) Document {
	return UpdateByID(d, id, p.Apply)
}
