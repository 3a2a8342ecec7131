//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestZPixmapToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 1, BitsPerPixel: 1}, {Depth: 24, BitsPerPixel: 32}}
	// Two pixels per row plus four bytes of padding.
	data := []byte{
		0x10, 0x20, 0x30, 0x00, 0xff, 0x00, 0x00, 0x00, 0, 0, 0, 0,
		0x00, 0x00, 0xff, 0x99, 0x01, 0x02, 0x03, 0x00, 0, 0, 0, 0,
	}
	img, err := zPixmapToRGBA(formats, 24, data, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{0x30, 0x20, 0x10, 0xff}},
		{1, 0, color.RGBA{0x00, 0x00, 0xff, 0xff}},
		{0, 1, color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{1, 1, color.RGBA{0x03, 0x02, 0x01, 0xff}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestZPixmapToRGBAErrors(t *testing.T) {
	formats := []xproto.Format{{Depth: 16, BitsPerPixel: 16}, {Depth: 24, BitsPerPixel: 32}}
	cases := []struct {
		name  string
		depth byte
		data  []byte
		w, h  int
		want  string
	}{
		{"empty", 24, nil, 1, 1, "empty image data"},
		{"geometry", 24, []byte{1, 2, 3, 4}, 0, 1, "empty geometry"},
		{"depth", 8, []byte{1, 2, 3, 4}, 1, 1, "unsupported screen depth"},
		{"bpp", 16, []byte{1, 2}, 1, 1, "unsupported pixel format"},
		{"stride", 24, []byte{1, 2, 3, 4, 5}, 1, 2, "unexpected stride"},
	}
	for _, tc := range cases {
		_, err := zPixmapToRGBA(formats, tc.depth, tc.data, tc.w, tc.h)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected %q error, got %v", tc.name, tc.want, err)
		}
	}
}

func TestPortalOptions(t *testing.T) {
	orig := portalHandleToken
	portalHandleToken = func() string { return "token" }
	t.Cleanup(func() { portalHandleToken = orig })

	opts := portalOptions()
	if got := opts["handle_token"].Value(); got != "token" {
		t.Fatalf("handle_token = %v", got)
	}
	if got := opts["interactive"].Value(); got != false {
		t.Fatalf("interactive = %v", got)
	}
}

func TestPortalResult(t *testing.T) {
	ok := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/shot%20one.png")}
	path, err := portalResult([]any{uint32(0), ok})
	if err != nil || path != "/tmp/shot one.png" {
		t.Fatalf("path = %q, err = %v", path, err)
	}
	for name, body := range map[string][]any{
		"short":     {uint32(0)},
		"cancelled": {uint32(1), ok},
		"failed":    {uint32(2), ok},
		"no uri":    {uint32(0), map[string]dbus.Variant{}},
		"remote":    {uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("https://example.com/a.png")}},
	} {
		if _, err := portalResult(body); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadPNGRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := loadPNG(path)
	if err != nil {
		t.Fatalf("loadPNG: %v", err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{9, 8, 7, 255}) {
		t.Fatalf("pixel = %v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temporary file not removed: %v", err)
	}
}
