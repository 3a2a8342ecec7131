// Package platform sends desktop notifications through the host's
// notification service.
package platform

import "time"

// AppName is reported to notification services that group by sender.
const AppName = "annotator"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, is an image shown with the notification
	// where supported.
	IconPath string
	// Timeout is how long the notification stays visible. Zero lets the
	// service decide.
	Timeout time.Duration
}
