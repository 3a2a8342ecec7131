package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/ui"
)

type editCmd struct {
	*root
	fs    *flag.FlagSet
	flags imageFlags
	title string
}

func (c *editCmd) Template() string       { return "edit.txt" }
func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r.subcommand("edit"), fs: fs}
	c.flags.register(fs, r)
	fs.StringVar(&c.title, "title", "", "window title")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.flags.image == "" {
		return nil, &UsageError{of: c, msg: "missing -image"}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	s, err := c.openSession(&c.flags)
	if err != nil {
		return err
	}
	title := c.title
	if title == "" {
		title = fmt.Sprintf("annotator - %s", filepath.Base(c.flags.image))
	}
	copyPNG := func() error {
		img, err := s.renderer.Snapshot(s.editor.Document())
		if err != nil {
			return err
		}
		if err := clipboard.WriteImage(img); err != nil {
			return err
		}
		c.notifyCopy("annotated image")
		return nil
	}
	w := ui.New(s.editor, s.renderer,
		ui.WithTitle(title),
		ui.WithTheme(c.activeTheme),
		ui.WithSave(func() error { return c.save(s, &c.flags) }),
		ui.WithCopy(copyPNG),
	)
	w.Run()
	return nil
}
