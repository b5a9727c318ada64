//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "image"

func ensureInit() error { return ErrUnsupported }

// WriteImage is not available on this platform.
func WriteImage(image.Image) error { return ensureInit() }

// ReadImage is not available on this platform.
func ReadImage() (image.Image, error) { return nil, ensureInit() }
