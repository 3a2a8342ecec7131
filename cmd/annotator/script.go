package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/annotation"
	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/history"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type scriptCmd struct {
	*root
	fs       *flag.FlagSet
	flags    imageFlags
	file     string
	commands commandList
	noSave   bool
}

func (c *scriptCmd) Template() string       { return "script.txt" }
func (c *scriptCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	c := &scriptCmd{root: r.subcommand("script"), fs: fs}
	c.flags.register(fs, r)
	fs.StringVar(&c.file, "file", "", "read commands from this file, - for stdin")
	fs.Var(&c.commands, "e", "command to run; may be repeated")
	fs.BoolVar(&c.noSave, "no-save", false, "do not save after the script finishes")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.flags.image == "" {
		return nil, &UsageError{of: c, msg: "missing -image"}
	}
	return c, nil
}

func (c *scriptCmd) Run() error {
	var cmds []scriptCommand
	if c.file != "" || len(c.commands) == 0 {
		in := io.Reader(os.Stdin)
		if c.file != "" && c.file != "-" {
			f, err := os.Open(c.file)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			in = f
		}
		parsed, err := parseScript(in)
		if err != nil {
			return err
		}
		cmds = parsed
	}
	for i, line := range c.commands {
		cmd, err := parseScriptLine(line)
		if err != nil {
			return fmt.Errorf("-e #%d: %w", i+1, err)
		}
		if cmd.name == "" {
			continue
		}
		cmds = append(cmds, cmd)
	}

	s, err := c.openSession(&c.flags)
	if err != nil {
		return err
	}
	run := newScriptRunner(s.editor, os.Stdout)
	if err := run.all(cmds); err != nil {
		return err
	}
	if c.noSave {
		return nil
	}
	return c.save(s, &c.flags)
}

// scriptCommand is one parsed line. Line is zero for -e commands.
type scriptCommand struct {
	name string
	args []string
	text string
	line int
}

type scriptArity struct {
	args    int // fixed argument count, -1 for free text
	numeric bool
}

var scriptCommands = map[string]scriptArity{
	"tool":      {args: 1},
	"color":     {args: 1},
	"width":     {args: 1, numeric: true},
	"fontsize":  {args: 1, numeric: true},
	"down":      {args: 2, numeric: true},
	"move":      {args: 2, numeric: true},
	"up":        {args: 2, numeric: true},
	"dblclick":  {args: 2, numeric: true},
	"origin":    {args: 2, numeric: true},
	"scale":     {args: -2, numeric: true},
	"type":      {args: -1},
	"leave":     {},
	"backspace": {},
	"enter":     {},
	"escape":    {},
	"undo":      {},
	"redo":      {},
	"delete":    {},
	"deselect":  {},
	"print":     {},
	"copy":      {},
}

// parseScript reads one command per line, skipping blank lines and
// # comments.
func parseScript(r io.Reader) ([]scriptCommand, error) {
	var cmds []scriptCommand
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		cmd, err := parseScriptLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if cmd.name == "" {
			continue
		}
		cmd.line = n
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

func parseScriptLine(line string) (scriptCommand, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return scriptCommand{}, nil
	}
	name, rest, _ := strings.Cut(trimmed, " ")
	name = strings.ToLower(name)
	def, ok := scriptCommands[name]
	if !ok {
		return scriptCommand{}, fmt.Errorf("unknown command %q", name)
	}
	cmd := scriptCommand{name: name}
	if def.args == -1 {
		// Free text keeps inner spacing; one separator space is dropped.
		cmd.text = strings.TrimPrefix(strings.TrimLeft(line, " \t")[len(name):], " ")
		if cmd.text == "" {
			return scriptCommand{}, fmt.Errorf("%s: missing text", name)
		}
		return cmd, nil
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		cmd.args = fields
	}
	switch {
	case def.args == -2:
		if len(cmd.args) < 1 || len(cmd.args) > 2 {
			return scriptCommand{}, fmt.Errorf("%s: want 1 or 2 arguments, got %d", name, len(cmd.args))
		}
	case len(cmd.args) != def.args:
		return scriptCommand{}, fmt.Errorf("%s: want %d arguments, got %d", name, def.args, len(cmd.args))
	}
	if def.numeric {
		for _, a := range cmd.args {
			if _, err := strconv.ParseFloat(a, 64); err != nil {
				return scriptCommand{}, fmt.Errorf("%s: %q is not a number", name, a)
			}
		}
	}
	return cmd, nil
}

// scriptRunner replays commands against an editor, tracking the viewport
// the coordinates are given in.
type scriptRunner struct {
	ed       *editor.Editor
	vp       geom.Viewport
	out      io.Writer
	copyText func(string) error
}

func newScriptRunner(ed *editor.Editor, out io.Writer) *scriptRunner {
	return &scriptRunner{ed: ed, vp: geom.Identity(), out: out, copyText: clipboard.WriteText}
}

func (s *scriptRunner) all(cmds []scriptCommand) error {
	for _, cmd := range cmds {
		if err := s.exec(cmd); err != nil {
			if cmd.line > 0 {
				return fmt.Errorf("line %d: %s: %w", cmd.line, cmd.name, err)
			}
			return fmt.Errorf("%s: %w", cmd.name, err)
		}
	}
	return nil
}

func (c scriptCommand) float(i int) float64 {
	v, _ := strconv.ParseFloat(c.args[i], 64)
	return v
}

func (c scriptCommand) point() annotation.Point {
	return annotation.Point{X: c.float(0), Y: c.float(1)}
}

func (s *scriptRunner) exec(cmd scriptCommand) error {
	switch cmd.name {
	case "tool":
		t, err := editor.ParseTool(cmd.args[0])
		if err != nil {
			return err
		}
		s.ed.SetTool(t)
	case "color":
		s.ed.SetColor(cmd.args[0])
	case "width":
		s.ed.SetStrokeWidth(cmd.float(0))
	case "fontsize":
		s.ed.SetFontSize(cmd.float(0))
	case "down":
		return s.ed.PointerDown(s.vp, cmd.point())
	case "move":
		return s.ed.PointerMove(s.vp, cmd.point())
	case "up":
		return s.ed.PointerUp(s.vp, cmd.point())
	case "leave":
		return s.ed.PointerLeave()
	case "dblclick":
		return s.ed.DoubleClick(s.vp, cmd.point())
	case "origin":
		s.vp.Origin = cmd.point()
	case "scale":
		sx := cmd.float(0)
		sy := sx
		if len(cmd.args) == 2 {
			sy = cmd.float(1)
		}
		if sx <= 0 || sy <= 0 {
			return fmt.Errorf("scale must be positive")
		}
		s.vp.ScaleX, s.vp.ScaleY = sx, sy
	case "type":
		s.ed.TypeText(cmd.text)
	case "backspace":
		s.ed.Backspace()
	case "enter":
		s.ed.CommitText()
	case "escape":
		s.ed.CancelText()
	case "undo":
		return ignoreNothingToDo(s.ed.Undo())
	case "redo":
		return ignoreNothingToDo(s.ed.Redo())
	case "delete":
		s.ed.DeleteSelected()
	case "deselect":
		s.ed.ClearSelection()
	case "print":
		data, err := annotation.Serialize(s.ed.Document())
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, data)
	case "copy":
		data, err := annotation.Serialize(s.ed.Document())
		if err != nil {
			return err
		}
		if err := s.copyText(data); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
	return nil
}

func ignoreNothingToDo(err error) error {
	if errors.Is(err, history.ErrCannotUndo) || errors.Is(err, history.ErrCannotRedo) {
		log.Printf("script: %v", err)
		return nil
	}
	return err
}
