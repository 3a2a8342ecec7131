// Package source loads the background image an editing session annotates.
// A location is a file path, a file:// or http(s):// URL, "clipboard:" or
// "screen:".
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/annotator/internal/capture"
	"github.com/example/annotator/internal/clipboard"
)

const (
	// ClipboardLocation selects the clipboard image as the background.
	ClipboardLocation = "clipboard:"
	// ScreenLocation captures the desktop as the background.
	ScreenLocation = "screen:"
)

// DefaultMaxBytes bounds the size of a downloaded image.
const DefaultMaxBytes = 64 << 20

// ErrUnsupportedLocation reports a location scheme no loader handles.
var ErrUnsupportedLocation = errors.New("unsupported image location")

// Image is a decoded background together with where it came from.
type Image struct {
	image.Image
	Format   string
	Location string
}

// Loader fetches and decodes background images.
type Loader struct {
	client    *http.Client
	maxBytes  int64
	clipboard func() (image.Image, error)
	screen    func(context.Context) (image.Image, error)
}

// Option modifies a Loader during creation.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(c *http.Client) Option { return func(l *Loader) { l.client = c } }

// WithMaxBytes limits how much of a remote image is read.
func WithMaxBytes(n int64) Option { return func(l *Loader) { l.maxBytes = n } }

// WithClipboard replaces the clipboard reader.
func WithClipboard(fn func() (image.Image, error)) Option {
	return func(l *Loader) { l.clipboard = fn }
}

// WithScreen replaces the desktop capture.
func WithScreen(fn func(context.Context) (image.Image, error)) Option {
	return func(l *Loader) { l.screen = fn }
}

func captureScreen(ctx context.Context) (image.Image, error) {
	return capture.Screen(ctx)
}

// NewLoader creates a Loader with a 30 second HTTP timeout.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: 30 * time.Second},
		maxBytes:  DefaultMaxBytes,
		clipboard: clipboard.ReadImage,
		screen:    captureScreen,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load fetches the image at loc with a default Loader.
func Load(ctx context.Context, loc string) (*Image, error) {
	return NewLoader().Load(ctx, loc)
}

// Load fetches and decodes the image at loc.
func (l *Loader) Load(ctx context.Context, loc string) (*Image, error) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil, fmt.Errorf("empty location: %w", ErrUnsupportedLocation)
	}
	if loc == ClipboardLocation {
		img, err := l.clipboard()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", loc, err)
		}
		return &Image{Image: img, Format: "png", Location: loc}, nil
	}
	if loc == ScreenLocation {
		img, err := l.screen(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", loc, err)
		}
		return &Image{Image: img, Format: "screen", Location: loc}, nil
	}

	u, err := url.Parse(loc)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return l.loadFile(loc)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		return l.loadFile(u.Path)
	case "http", "https":
		return l.loadURL(ctx, u.String())
	}
	return nil, fmt.Errorf("%s: %w", loc, ErrUnsupportedLocation)
}

func (l *Loader) loadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()
	return decode(f, path)
}

func (l *Loader) loadURL(ctx context.Context, u string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", u, err)
	}
	req.Header.Set("Accept", "image/*")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load %s: unexpected status %s", u, resp.Status)
	}
	var r io.Reader = resp.Body
	if l.maxBytes > 0 {
		r = io.LimitReader(resp.Body, l.maxBytes)
	}
	return decode(r, u)
}

func decode(r io.Reader, loc string) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", loc, err)
	}
	return &Image{Image: img, Format: format, Location: loc}, nil
}
