//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"image"
)

func grabX11() (*image.RGBA, error) { return nil, ErrUnavailable }

func portalScreenshot(context.Context) (*image.RGBA, error) { return nil, ErrUnavailable }
