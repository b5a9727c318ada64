package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/mobile/event/key"
	"gopkg.in/yaml.v3"

	"github.com/example/cutout/internal/appstate"
	"github.com/example/cutout/internal/asset"
	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/input"
	"github.com/example/cutout/internal/render"
)

// script is a recorded editing session.
type script struct {
	Source string `yaml:"source"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Mode   string `yaml:"mode"`
	Steps  []step `yaml:"steps"`
}

// step holds exactly one action. Shift, Ctrl and Alt are the modifiers held
// while it runs.
type step struct {
	Mode   string      `yaml:"mode"`
	Down   []float64   `yaml:"down"`
	Move   []float64   `yaml:"move"`
	Up     []float64   `yaml:"up"`
	Drag   [][]float64 `yaml:"drag"`
	Button string      `yaml:"button"`
	Touch  [][]float64 `yaml:"touch"`
	Lift   bool        `yaml:"lift"`
	Wheel  *wheelStep  `yaml:"wheel"`
	Key    string      `yaml:"key"`
	Type   string      `yaml:"type"`
	Undo   int         `yaml:"undo"`
	Redo   int         `yaml:"redo"`
	GoTo   *int        `yaml:"goto"`
	Fit    bool        `yaml:"fit"`
	Shift  bool        `yaml:"shift"`
	Ctrl   bool        `yaml:"ctrl"`
	Alt    bool        `yaml:"alt"`
}

type wheelStep struct {
	At []float64 `yaml:"at"`
	DX float64   `yaml:"dx"`
	DY float64   `yaml:"dy"`
}

type replayCmd struct {
	*root
	fs       *flag.FlagSet
	script   string
	source   string
	frame    string
	export   string
	timeline bool
	out      io.Writer
}

func (c *replayCmd) Program() string        { return c.subcommand("replay") }
func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	c := &replayCmd{root: r, fs: fs, out: os.Stdout}
	fs.StringVar(&c.source, "source", "", "image to edit instead of the script's source")
	fs.StringVar(&c.frame, "frame", "", "write the final canvas frame to this PNG file")
	fs.StringVar(&c.export, "export", "", "write the clipped image to this PNG file")
	fs.BoolVar(&c.timeline, "timeline", false, "print the history timeline")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, usageError(c, "replay needs exactly one script file")
	}
	c.script = fs.Arg(0)
	return c, nil
}

func (c *replayCmd) Run() error {
	sc, err := loadScript(c.script)
	if err != nil {
		return err
	}
	if c.source != "" {
		sc.Source = c.source
	}
	if sc.Source == "" {
		return fmt.Errorf("%s: no source image", c.script)
	}

	keys := &input.KeyState{}
	settings := appstate.SettingsFor(c.config, c.activeTheme)
	sess, err := editor.Open(context.Background(), editor.Params{
		Source:    sourcePath(c.script, sc.Source),
		Width:     float64(sc.Width),
		Height:    float64(sc.Height),
		Scale:     1,
		Modifiers: keys,
		Settings:  &settings,
		Mode:      editor.Mode(sc.Mode),
	})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", sc.Source, err)
	}
	defer sess.Close()

	if err := play(sess, keys, sc.Steps); err != nil {
		return fmt.Errorf("%s: %w", c.script, err)
	}

	if c.frame != "" {
		w, h := sess.PixelSize()
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		render.Frame(dst, sess.Canvas(), sess.Scale(), appstate.PaletteFor(c.activeTheme))
		if err := imaging.Save(dst, c.frame); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	}
	if c.export != "" {
		img, err := sess.Export(appstate.ExportOptionsFor(c.config))
		if err != nil {
			return err
		}
		if err := imaging.Save(img, c.export); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	if c.timeline {
		printTimeline(c.out, sess.History())
	}
	return nil
}

func loadScript(path string) (*script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := &script{Width: 1024, Height: 720}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("%s: canvas size must be positive, got %dx%d", path, sc.Width, sc.Height)
	}
	if sc.Mode != "" && !editor.Mode(sc.Mode).Valid() {
		return nil, fmt.Errorf("%s: unknown mode %q", path, sc.Mode)
	}
	return sc, nil
}

// sourcePath resolves a relative file source against the script's folder.
func sourcePath(scriptPath, src string) string {
	if src == asset.ClipboardSource || asset.IsURL(src) || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(filepath.Dir(scriptPath), src)
}

func play(sess *editor.Session, keys *input.KeyState, steps []step) error {
	touching := false
	for i, st := range steps {
		if n := st.actions(); n != 1 {
			return fmt.Errorf("step %d: want exactly one action, got %d", i+1, n)
		}
		mods := st.modifiers()
		keys.Observe(mods)
		if err := st.run(sess, mods, &touching); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Mode != "", st.Down != nil, st.Move != nil, st.Up != nil, st.Drag != nil,
		st.Touch != nil, st.Lift, st.Wheel != nil, st.Key != "", st.Type != "",
		st.Undo > 0, st.Redo > 0, st.GoTo != nil, st.Fit,
	} {
		if set {
			n++
		}
	}
	return n
}

func (st step) modifiers() key.Modifiers {
	var m key.Modifiers
	if st.Shift {
		m |= key.ModShift
	}
	if st.Ctrl {
		m |= key.ModControl
	}
	if st.Alt {
		m |= key.ModAlt
	}
	return m
}

func (st step) run(sess *editor.Session, mods key.Modifiers, touching *bool) error {
	button, err := parseButton(st.Button)
	if err != nil {
		return err
	}
	mouseAt := func(p []float64) (input.MouseEvent, error) {
		pos, err := point(p)
		return input.MouseEvent{Pos: pos, Button: button}, err
	}

	switch {
	case st.Mode != "":
		m := editor.Mode(st.Mode)
		if !m.Valid() {
			return fmt.Errorf("unknown mode %q", st.Mode)
		}
		sess.SwitchMode(m)
	case st.Down != nil:
		e, err := mouseAt(st.Down)
		if err != nil {
			return err
		}
		sess.PointerDown(e)
	case st.Move != nil:
		e, err := mouseAt(st.Move)
		if err != nil {
			return err
		}
		sess.PointerMove(e)
	case st.Up != nil:
		e, err := mouseAt(st.Up)
		if err != nil {
			return err
		}
		sess.PointerUp(e)
	case st.Drag != nil:
		if len(st.Drag) < 2 {
			return errors.New("drag needs at least two points")
		}
		events := make([]input.MouseEvent, len(st.Drag))
		for i, p := range st.Drag {
			if events[i], err = mouseAt(p); err != nil {
				return err
			}
		}
		sess.PointerDown(events[0])
		for _, e := range events[1:] {
			sess.PointerMove(e)
		}
		sess.PointerUp(events[len(events)-1])
	case st.Touch != nil:
		if len(st.Touch) == 0 {
			return errors.New("touch needs at least one finger; use lift to end a touch")
		}
		e := input.TouchEvent{Touches: make([]geom.Point, len(st.Touch))}
		for i, p := range st.Touch {
			if e.Touches[i], err = point(p); err != nil {
				return err
			}
		}
		if *touching {
			sess.PointerMove(e)
		} else {
			sess.PointerDown(e)
			*touching = true
		}
	case st.Lift:
		sess.PointerUp(input.TouchEvent{})
		*touching = false
	case st.Wheel != nil:
		pos, err := point(st.Wheel.At)
		if err != nil {
			return err
		}
		sess.Wheel(input.WheelEvent{Pos: pos, DeltaX: st.Wheel.DX, DeltaY: st.Wheel.DY})
	case st.Key != "":
		e, err := keyEvent(st.Key, mods)
		if err != nil {
			return err
		}
		sess.KeyPress(e)
	case st.Type != "":
		for _, r := range st.Type {
			sess.KeyPress(key.Event{Rune: r, Code: key.CodeUnknown, Modifiers: mods, Direction: key.DirPress})
		}
	case st.Undo > 0:
		for n := 0; n < st.Undo; n++ {
			if !sess.Undo() {
				return errors.New("nothing to undo")
			}
		}
	case st.Redo > 0:
		for n := 0; n < st.Redo; n++ {
			if !sess.Redo() {
				return errors.New("nothing to redo")
			}
		}
	case st.GoTo != nil:
		if !sess.GoTo(*st.GoTo) {
			return fmt.Errorf("history has no entry %d", *st.GoTo)
		}
	case st.Fit:
		sess.Fit()
	}
	return nil
}

func parseButton(name string) (input.Button, error) {
	switch strings.ToLower(name) {
	case "", "primary", "left":
		return input.ButtonPrimary, nil
	case "middle":
		return input.ButtonMiddle, nil
	case "secondary", "right":
		return input.ButtonSecondary, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

func point(p []float64) (geom.Point, error) {
	if len(p) != 2 {
		return geom.Point{}, fmt.Errorf("point needs two coordinates, got %v", p)
	}
	return geom.Pt(p[0], p[1]), nil
}

type namedKey struct {
	code key.Code
	r    rune
}

var namedKeys = map[string]namedKey{
	"escape":    {key.CodeEscape, 0},
	"enter":     {key.CodeReturnEnter, '\r'},
	"backspace": {key.CodeDeleteBackspace, 0},
	"delete":    {key.CodeDeleteForward, 0},
	"left":      {key.CodeLeftArrow, 0},
	"right":     {key.CodeRightArrow, 0},
	"up":        {key.CodeUpArrow, 0},
	"down":      {key.CodeDownArrow, 0},
	"comma":     {key.CodeComma, ','},
	"period":    {key.CodeFullStop, '.'},
	"equal":     {key.CodeEqualSign, '='},
	"minus":     {key.CodeHyphenMinus, '-'},
	"space":     {key.CodeSpacebar, ' '},
}

// keyEvent builds a key press from a single letter, a digit or one of the
// namedKeys.
func keyEvent(name string, mods key.Modifiers) (key.Event, error) {
	e := key.Event{Modifiers: mods, Direction: key.DirPress}
	lower := strings.ToLower(name)
	if k, ok := namedKeys[lower]; ok {
		e.Code, e.Rune = k.code, k.r
		return e, nil
	}
	if len(lower) != 1 {
		return e, fmt.Errorf("unknown key %q", name)
	}
	c := rune(lower[0])
	switch {
	case c >= 'a' && c <= 'z':
		e.Code = key.CodeA + key.Code(c-'a')
		e.Rune = c
		if mods&key.ModShift != 0 {
			e.Rune = c - 'a' + 'A'
		}
	case c == '0':
		e.Code, e.Rune = key.Code0, c
	case c >= '1' && c <= '9':
		e.Code, e.Rune = key.Code1+key.Code(c-'1'), c
	default:
		return e, fmt.Errorf("unknown key %q", name)
	}
	return e, nil
}

func printTimeline(w io.Writer, h editor.HistoryView) {
	for i, rec := range h.Entries {
		marker := " "
		if i == h.Index {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d %s %-24s %s\n", marker, i, rec.Meta.Timestamp.Format("15:04:05"), rec.Meta.Label, rec.Meta.Mode)
	}
}
