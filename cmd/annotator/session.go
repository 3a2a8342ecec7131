package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/export"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/source"
)

// imageFlags are shared by every command that opens an image for editing.
type imageFlags struct {
	image       string
	annotations string
	output      string
	color       string
	strokeWidth float64
	fontSize    float64
	maxWidth    int
	maxHeight   int
	timeout     time.Duration
	toClipboard bool
}

func (f *imageFlags) register(fs *flag.FlagSet, r *root) {
	cfg := r.config
	color := cfg.Color
	if color == "" {
		color = editor.DefaultColor
	}
	width := cfg.StrokeWidth
	if width == 0 {
		width = editor.DefaultStrokeWidth
	}
	fontSize := cfg.FontSize
	if fontSize == 0 {
		fontSize = editor.DefaultFontSize
	}
	fs.StringVar(&f.image, "image", "", "background image: file path, URL, clipboard: or screen:")
	fs.StringVar(&f.annotations, "annotations", "", "annotation document to load, or clipboard:")
	fs.StringVar(&f.output, "output", "", "output base path; .json and .png are appended")
	fs.StringVar(&f.color, "color", color, "drawing color")
	fs.Float64Var(&f.strokeWidth, "width", width, "stroke width")
	fs.Float64Var(&f.fontSize, "font-size", fontSize, "font size for new text")
	fs.IntVar(&f.maxWidth, "max-width", cfg.MaxWidth, "fit the surface within this width (0 keeps the image width)")
	fs.IntVar(&f.maxHeight, "max-height", cfg.MaxHeight, "fit the surface within this height (0 keeps the image height)")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "time limit for loading the image")
	fs.BoolVar(&f.toClipboard, "to-clipboard", false, "also copy the merged PNG to the clipboard")
}

// session is an editor bound to its rendered background.
type session struct {
	editor   *editor.Editor
	renderer *render.Renderer
	image    *source.Image
}

func (r *root) openSession(f *imageFlags, opts ...editor.Option) (*session, error) {
	if f.image == "" {
		return nil, errors.New("no image given, use -image")
	}
	ed := editor.New(append([]editor.Option{
		editor.WithColor(f.color),
		editor.WithStrokeWidth(f.strokeWidth),
		editor.WithFontSize(f.fontSize),
	}, opts...)...)

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	img, err := source.NewLoader().Load(ctx, f.image)
	if err != nil {
		ed.BackgroundFailed(err)
		return nil, fmt.Errorf("load image: %w", err)
	}
	b := img.Bounds()
	w, h := render.FitSize(b.Dx(), b.Dy(), f.maxWidth, f.maxHeight)
	rd := render.New(img, render.WithSize(w, h), render.WithTheme(r.activeTheme))

	if f.annotations != "" {
		data, err := readAnnotations(f.annotations)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("annotations: %s does not exist, starting empty", f.annotations)
		case err != nil:
			return nil, fmt.Errorf("read annotations: %w", err)
		default:
			if err := ed.Load(data); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %s: %v. starting with an empty document.\n", f.annotations, err)
			}
		}
	}
	ed.BackgroundLoaded()
	return &session{editor: ed, renderer: rd, image: img}, nil
}

// readAnnotations returns the serialized document at loc, which is a file
// path or "clipboard:" for text on the clipboard.
func readAnnotations(loc string) (string, error) {
	if loc == source.ClipboardLocation {
		return clipboard.ReadText()
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// files maps -output to the json/png pair. Without -output the pair is
// named after the image inside the configured save directory.
func (r *root) files(f *imageFlags) export.Files {
	out := f.output
	if out == "" {
		base := "annotations"
		if f.image != source.ClipboardLocation && !strings.Contains(f.image, "://") {
			base = strings.TrimSuffix(filepath.Base(f.image), filepath.Ext(f.image)) + "-annotated"
		}
		return export.Files{Dir: r.config.SaveDir, Base: base}
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png", ".json":
		out = strings.TrimSuffix(out, filepath.Ext(out))
	}
	return export.Files{Dir: filepath.Dir(out), Base: filepath.Base(out)}
}

// save runs the editor's save with a callback that writes the files and,
// when asked, copies the PNG to the clipboard.
func (r *root) save(s *session, f *imageFlags) error {
	files := r.files(f)
	onSave := func(serialized string, png []byte) error {
		if err := files.Save(serialized, png); err != nil {
			return err
		}
		if f.toClipboard {
			if err := clipboard.WritePNG(png); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			r.notifyCopy("annotated image")
		}
		return nil
	}
	if err := s.editor.Save(s.renderer, onSave); err != nil {
		return err
	}
	docPath, imgPath := files.Paths()
	fmt.Printf("saved %s and %s\n", docPath, imgPath)
	r.notifySave(imgPath)
	return nil
}
