package appstate

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/cutout/internal/clipboard"
	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/notify"
	"github.com/example/cutout/internal/render"
)

// actions exports the session's cutout to disk or the clipboard.
type actions struct {
	output   string
	saveDir  string
	export   render.ExportOptions
	notifier *notify.Notifier

	writeClipboard func(image.Image) error
	now            func() time.Time
}

func newActions() *actions {
	return &actions{writeClipboard: clipboard.WriteImage, now: time.Now}
}

// outputPath is the explicit output, or a timestamped name in the save
// directory.
func (a *actions) outputPath() string {
	if a.output != "" {
		return a.output
	}
	dir := a.saveDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "cutout-"+a.now().Format("20060102-150405")+".png")
}

func (a *actions) save(sess *editor.Session) (string, error) {
	img, err := sess.Export(a.export)
	if err != nil {
		return "", err
	}
	path := a.outputPath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	a.notifier.Save(path)
	return path, nil
}

func (a *actions) copy(sess *editor.Session) error {
	img, err := sess.Export(a.export)
	if err != nil {
		return err
	}
	if err := a.writeClipboard(img); err != nil {
		return err
	}
	a.notifier.Copy("", img)
	return nil
}
