package main

import (
	"flag"
)

type renderCmd struct {
	*root
	fs    *flag.FlagSet
	flags imageFlags
}

func (c *renderCmd) Template() string       { return "render.txt" }
func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs}
	c.flags.register(fs, r)
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.flags.image == "" {
		return nil, &UsageError{of: c, msg: "missing -image"}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	s, err := c.openSession(&c.flags)
	if err != nil {
		return err
	}
	return c.save(s, &c.flags)
}
