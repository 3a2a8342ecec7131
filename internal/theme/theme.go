// Package theme holds the colors used to draw editor chrome: the window,
// the toolbar, the transparency backdrop and the selection handles.
package theme

import (
	"image/color"
	"reflect"
)

// Theme defines the color palette for the editor UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the surface
	Foreground color.RGBA // Status and label text

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonBorder           color.RGBA

	// Surface
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	TextCaret    color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextActive:       color.RGBA{255, 255, 255, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
		HandleFill:             color.RGBA{255, 255, 255, 255},
		HandleBorder:           color.RGBA{0, 120, 215, 255},
		TextCaret:              color.RGBA{0, 0, 0, 255},
	}
}

// Fields lists the color keys of a theme in declaration order.
func Fields() []string {
	typ := reflect.TypeOf(Theme{})
	var out []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type == reflect.TypeOf(color.RGBA{}) {
			out = append(out, f.Name)
		}
	}
	return out
}

// Color returns the value of the named color field.
func (t *Theme) Color(name string) (color.RGBA, bool) {
	f := reflect.ValueOf(t).Elem().FieldByName(name)
	if !f.IsValid() || f.Type() != reflect.TypeOf(color.RGBA{}) {
		return color.RGBA{}, false
	}
	return f.Interface().(color.RGBA), true
}
