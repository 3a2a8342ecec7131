// Package config reads the rc style configuration file and applies
// environment overrides on top of it.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/theme"
)

// Notify holds desktop notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration. Zero values mean "use the
// built-in default".
type Config struct {
	Theme       string
	SaveDir     string
	Color       string
	StrokeWidth float64
	FontSize    float64
	MaxWidth    int
	MaxHeight   int
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := [][2]string{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"color", c.Color},
		{"stroke_width", formatFloat(c.StrokeWidth)},
		{"font_size", formatFloat(c.FontSize)},
		{"max_width", formatInt(c.MaxWidth)},
		{"max_height", formatInt(c.MaxHeight)},
	}
	for _, kv := range root {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name = %s\n", t.Name)
		for _, field := range theme.Fields() {
			col, _ := t.Color(field)
			fmt.Fprintf(&sb, "%s = %s\n", field, theme.Hex(col))
		}
	}
	return sb.String()
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// ThemeLoader returns a theme loader that also resolves the themes defined
// inline in c.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Extra = c.Themes
	return l
}
