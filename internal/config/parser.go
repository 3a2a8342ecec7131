package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine.
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = cfg.Set(key, value)
		}
		if err != nil {
			where := section
			if where == "" {
				where = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, where, err)
		}
	}
	return cfg, scanner.Err()
}

// splitKeyValue accepts both "key = value" and "Key: value".
func splitKeyValue(line string) (string, string, bool) {
	i := strings.IndexAny(line, "=:")
	if i < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:i])
	value := strings.TrimSpace(line[i+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

// Set assigns a root level key. Unknown keys are ignored.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		c.Theme = value
	case "save_dir":
		c.SaveDir = value
	case "color":
		if _, err := theme.ParseColor(value); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		c.Color = value
	case "stroke_width":
		v, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		c.StrokeWidth = v
	case "font_size":
		v, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		c.FontSize = v
	case "max_width", "max_height":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid size for key %s: %q", key, value)
		}
		if strings.EqualFold(key, "max_width") {
			c.MaxWidth = v
		} else {
			c.MaxHeight = v
		}
	}
	return nil
}

func parsePositive(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("key %s must be positive", key)
	}
	return v, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
