// Package asset loads the image a session edits from a file, an http(s)
// URL or the clipboard.
package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/cutout/internal/clipboard"
)

// ClipboardSource is the Source name that reads the clipboard.
const ClipboardSource = "clipboard"

// maxDownload bounds how much of a remote image is read.
const maxDownload = 64 << 20

// ErrNotImage means the source was readable but did not decode as an image.
var ErrNotImage = errors.New("not a supported image")

// HTTPClient fetches remote images. Tests replace it.
var HTTPClient = &http.Client{Timeout: 30 * time.Second}

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadImage

// Load fetches and decodes src, honouring EXIF orientation.
func Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case src == "":
		return nil, errors.New("no image source")
	case src == ClipboardSource:
		img, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return img, nil
	case IsURL(src):
		return fetch(ctx, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// IsURL reports whether src is an absolute http or https URL.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func fetch(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	res, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: %s", res.Status)
	}
	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if ctype := http.DetectContentType(data); !strings.HasPrefix(ctype, "image/") {
		return nil, fmt.Errorf("%w: content type %s", ErrNotImage, ctype)
	}
	return decode(bytes.NewReader(data))
}

func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return img, nil
}

// Clone returns an independent copy of img with its origin at (0, 0).
func Clone(img image.Image) image.Image {
	return imaging.Clone(img)
}
