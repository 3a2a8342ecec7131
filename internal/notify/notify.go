// Package notify turns editor events into desktop notifications.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/annotator/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when the document and snapshot have been persisted.
	EventSave Event = "save"
	// EventCopy fires when the snapshot was copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification wording.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Annotator",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies ANNOTATOR_NOTIFY_TITLE and
// ANNOTATOR_NOTIFY_<EVENT>_TEXT overrides to the defaults.
func LoadPreferences(getenv func(string) string) Preferences {
	if getenv == nil {
		getenv = os.Getenv
	}
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("ANNOTATOR_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, ev := range []Event{EventSave, EventCopy} {
		if v := strings.TrimSpace(getenv("ANNOTATOR_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT")); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// SendFunc delivers one notification.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends notifications for the events it has enabled.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
}

// Option modifies a Notifier during creation.
type Option func(*Notifier)

// WithSender replaces the platform notification call.
func WithSender(fn SendFunc) Option { return func(n *Notifier) { n.send = fn } }

// WithEvents enables the listed events.
func WithEvents(events ...Event) Option {
	return func(n *Notifier) {
		for _, ev := range events {
			n.enabled[ev] = true
		}
	}
}

// New creates a Notifier. All events start disabled.
func New(prefs Preferences, opts ...Option) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Enable toggles the notifier for ev.
func (n *Notifier) Enable(ev Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[ev] = enabled
}

// Save reports a saved snapshot; the image doubles as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(ev Event) bool {
	return n != nil && n.enabled[ev]
}

func (n *Notifier) dispatch(ev Event, detail string, opts platform.Options) {
	if !n.enabledFor(ev) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[ev])
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%s") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	if err := n.send(n.prefs.Title, strings.TrimSpace(body), opts); err != nil {
		log.Printf("notification %s: %v", ev, err)
	}
}
