// Package capture grabs the current desktop as an image so it can be used as
// an editing background. X11 is tried first; the desktop portal serves
// Wayland sessions.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrUnavailable is returned when no capture backend works on this system.
var ErrUnavailable = errors.New("screen capture unavailable")

// Screen captures the whole desktop.
func Screen(ctx context.Context) (*image.RGBA, error) {
	img, xerr := grabX11()
	if xerr == nil {
		return img, nil
	}
	img, perr := portalScreenshot(ctx)
	if perr == nil {
		return img, nil
	}
	return nil, fmt.Errorf("%w: x11: %v; portal: %v", ErrUnavailable, xerr, perr)
}
