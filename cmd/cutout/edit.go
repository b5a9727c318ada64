package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/example/cutout/internal/appstate"
	"github.com/example/cutout/internal/asset"
	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/input"
)

type editCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	mode   string
	width  int
	height int
	source string
}

func (e *editCmd) Program() string        { return e.subcommand("edit") }
func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.output, "output", "", "file to save the cutout to (default: a timestamped file in save_dir)")
	fs.StringVar(&e.mode, "mode", string(editor.PanZoom), "starting mode: panZoom, select, lasso, rect, ellipse or text")
	fs.IntVar(&e.width, "width", 1024, "canvas width in pixels")
	fs.IntVar(&e.height, "height", 720, "canvas height in pixels")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, usageError(e, "edit needs exactly one image: a file, an http(s) URL or %q", asset.ClipboardSource)
	}
	e.source = fs.Arg(0)
	if !editor.Mode(e.mode).Valid() {
		return nil, usageError(e, "unknown mode %q", e.mode)
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, usageError(e, "canvas size must be positive, got %dx%d", e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	keys := &input.KeyState{}
	settings := appstate.SettingsFor(e.config, e.activeTheme)
	var app *appstate.AppState
	sess, err := editor.Open(ctx, editor.Params{
		Source:    e.source,
		Width:     float64(e.width),
		Height:    float64(e.height),
		Scale:     1,
		Modifiers: keys,
		Settings:  &settings,
		Mode:      editor.Mode(e.mode),
		OnRender: func() {
			if app != nil {
				app.NotifyImageChanged()
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.source, err)
	}
	defer sess.Close()

	app = appstate.New(sess,
		appstate.WithTitle("Cutout - "+title(e.source)),
		appstate.WithTheme(e.activeTheme),
		appstate.WithKeys(keys),
		appstate.WithOutput(e.output),
		appstate.WithSaveDir(e.config.SaveDir),
		appstate.WithExportOptions(appstate.ExportOptionsFor(e.config)),
		appstate.WithNotifier(e.notifier),
		appstate.WithOnClose(stop),
	)
	app.Run()
	return nil
}

func title(source string) string {
	if source == asset.ClipboardSource || asset.IsURL(source) {
		return source
	}
	return filepath.Base(source)
}
