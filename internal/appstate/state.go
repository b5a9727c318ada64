// Package appstate hosts an editing session in a shiny window: a mode
// toolbar, the canvas, the history timeline and a shortcut bar.
package appstate

import (
	"context"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/notify"
	"github.com/example/cutout/internal/render"
	"github.com/example/cutout/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Session *editor.Session
	Title   string

	theme   *theme.Theme
	palette render.Palette
	keys    *input.KeyState
	actions *actions

	// mu guards view and the session between the event loop and the
	// paint goroutine.
	mu   sync.Mutex
	view *view

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithTheme colors the window chrome and canvas overlays.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithKeys shares the modifier tracker the session was opened with.
func WithKeys(k *input.KeyState) Option { return func(a *AppState) { a.keys = k } }

// WithOutput sets the file the save action writes. Empty means a
// timestamped name in the save directory.
func WithOutput(out string) Option { return func(a *AppState) { a.actions.output = out } }

// WithSaveDir sets where timestamped cutouts are written.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.actions.saveDir = dir } }

// WithExportOptions sets the options of the save and copy actions.
func WithExportOptions(o render.ExportOptions) Option {
	return func(a *AppState) { a.actions.export = o }
}

// WithNotifier announces saves and copies on the desktop.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.actions.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState for sess with the provided options.
func New(sess *editor.Session, opts ...Option) *AppState {
	a := &AppState{
		Session:  sess,
		Title:    "Cutout",
		theme:    theme.Default(),
		actions:  newActions(),
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.keys == nil {
		a.keys = &input.KeyState{}
	}
	a.palette = PaletteFor(a.theme)
	a.view = newView(sess, a.theme, a.keys, a.actions)
	sess.OnChange(a.NotifyImageChanged)
	return a
}

// NotifyImageChanged requests a repaint of the UI. It never blocks and may
// be called from any goroutine.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed or the quit action fires.
func (a *AppState) Main(s screen.Screen) {
	cw, ch := a.Session.PixelSize()
	width, height := windowFor(cw, ch)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	a.mu.Lock()
	a.view.resize(width, height)
	a.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st, a)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		repaint := false
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			a.mu.Lock()
			a.view.resize(e.WidthPx, e.HeightPx)
			a.mu.Unlock()
			repaint = true
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			a.mu.Lock()
			st := paintState{width: a.view.layout.width, height: a.view.layout.height}
			a.mu.Unlock()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			a.mu.Lock()
			repaint = a.view.mouse(e)
			a.mu.Unlock()
		case touch.Event:
			a.mu.Lock()
			repaint = a.view.touch(e)
			a.mu.Unlock()
		case key.Event:
			a.mu.Lock()
			repaint = a.view.key(e)
			quit := a.view.quit
			a.mu.Unlock()
			if quit {
				stopPaint()
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
		if repaint {
			a.NotifyImageChanged()
		}
	}
}
