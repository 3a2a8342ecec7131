package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/annotator/internal/export"
)

type pdfCmd struct {
	*root
	fs     *flag.FlagSet
	flags  imageFlags
	title  string
	author string
	vector bool
}

func (c *pdfCmd) Template() string       { return "pdf.txt" }
func (c *pdfCmd) FlagSet() *flag.FlagSet { return c.fs }

func parsePDFCmd(args []string, r *root) (*pdfCmd, error) {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	c := &pdfCmd{root: r.subcommand("pdf"), fs: fs}
	c.flags.register(fs, r)
	fs.StringVar(&c.title, "title", "", "document title")
	fs.StringVar(&c.author, "author", "", "document author")
	fs.BoolVar(&c.vector, "vector", false, "draw annotations as PDF paths instead of pixels")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.flags.image == "" {
		return nil, &UsageError{of: c, msg: "missing -image"}
	}
	return c, nil
}

func (c *pdfCmd) outputPath() string {
	if c.flags.output != "" {
		if strings.EqualFold(filepath.Ext(c.flags.output), ".pdf") {
			return c.flags.output
		}
		return c.flags.output + ".pdf"
	}
	_, img := c.files(&c.flags).Paths()
	return strings.TrimSuffix(img, ".png") + ".pdf"
}

func (c *pdfCmd) Run() error {
	s, err := c.openSession(&c.flags)
	if err != nil {
		return err
	}
	doc := s.editor.Document()
	opts := []export.PDFOption{export.WithAuthor(c.author)}
	if c.title != "" {
		opts = append(opts, export.WithTitle(c.title))
	}
	if c.vector {
		opts = append(opts, export.WithVectorAnnotations(doc))
		doc = nil
	}
	img, err := s.renderer.Snapshot(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path := c.outputPath()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.PDF(f, img, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Printf("saved %s\n", path)
	c.notifySave(path)
	return nil
}
