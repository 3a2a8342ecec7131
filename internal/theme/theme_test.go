package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#00FF0080", color.RGBA{0, 255, 0, 128}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"SteelBlue", color.RGBA{70, 130, 180, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) expected error", bad)
		}
	}
}

func TestParse(t *testing.T) {
	src := `
// comment
Name: Mine
HandleFill: #112233
handleborder: #44556677
Unknown: #000000
`
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "Mine" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.HandleFill != (color.RGBA{0x11, 0x22, 0x33, 255}) {
		t.Fatalf("HandleFill = %v", th.HandleFill)
	}
	if th.HandleBorder != (color.RGBA{0x44, 0x55, 0x66, 0x77}) {
		t.Fatalf("HandleBorder = %v", th.HandleBorder)
	}
	if th.CheckerDark != Default().CheckerDark {
		t.Fatalf("missing keys should keep defaults")
	}
	if _, err := Parse(strings.NewReader("HandleFill: #12")); err == nil {
		t.Fatalf("expected error for bad color")
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	th := Default()
	th.Name = "Round"
	th.TextCaret = color.RGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := th.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *got != *th {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", got, th)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.theme"), []byte("Name: Custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Extra: map[string]*Theme{"inline": {Name: "Inline"}}}

	for name, want := range map[string]string{
		"":       "Default",
		"inline": "Inline",
		"dark":   "Dark",
		"custom": "Custom",
	} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
		if th.Name != want {
			t.Errorf("load %q = %q, want %q", name, th.Name, want)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for missing theme")
	}
}
