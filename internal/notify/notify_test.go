package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/annotator/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) Option {
	return WithSender(func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	})
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got))
	n.Save("a.png")
	n.Copy("")
	if len(got) != 0 {
		t.Fatalf("expected no notifications, got %+v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Save("a.png")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveIncludesIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got []sent
	n := New(DefaultPreferences(), recorder(&got), WithEvents(EventSave))
	n.Save(path)
	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got[0].title != "Annotator" || got[0].body != "Saved "+path {
		t.Fatalf("unexpected notification %+v", got[0])
	}
	if got[0].opts.IconPath != path {
		t.Fatalf("icon = %q", got[0].opts.IconPath)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("  ")
	if len(got) != 1 || got[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestLoadPreferences(t *testing.T) {
	env := map[string]string{
		"ANNOTATOR_NOTIFY_TITLE":     "Shots",
		"ANNOTATOR_NOTIFY_COPY_TEXT": "Clipboard ready",
	}
	prefs := LoadPreferences(func(k string) string { return env[k] })
	if prefs.Title != "Shots" {
		t.Fatalf("title = %q", prefs.Title)
	}
	var got []sent
	n := New(prefs, recorder(&got), WithEvents(EventCopy))
	n.Copy("snapshot")
	if len(got) != 1 || got[0].body != "Clipboard ready" {
		t.Fatalf("unexpected notifications %+v", got)
	}
	if prefs.Templates[EventSave] != "Saved %s" {
		t.Fatalf("save template should keep its default")
	}
}
