package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/cutouts

[canvas]
padding = 40
min_clip_area = 120.5
max_zoom = 10
wheel_zoom = false

[history]
max_size = 50

[export]
shadow = true
shadow_radius = 8

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
ClipStroke = gold
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/cutouts" {
		t.Errorf("Expected save_dir '/tmp/cutouts', got '%s'", cfg.SaveDir)
	}
	if cfg.Canvas.Padding != 40 || cfg.Canvas.MinClipArea != 120.5 || cfg.Canvas.MaxZoom != 10 {
		t.Errorf("Unexpected canvas section: %+v", cfg.Canvas)
	}
	if cfg.Canvas.WheelZoom {
		t.Error("Expected canvas.wheel_zoom to be false")
	}
	if cfg.Canvas.MinZoom != 0.01 {
		t.Errorf("Missing keys should keep defaults, got min_zoom %v", cfg.Canvas.MinZoom)
	}
	if cfg.History.MaxSize != 50 {
		t.Errorf("Expected history.max_size 50, got %d", cfg.History.MaxSize)
	}
	if !cfg.Export.Shadow || cfg.Export.ShadowRadius != 8 {
		t.Errorf("Unexpected export section: %+v", cfg.Export)
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.ClipStroke.R != 255 || theme.ClipStroke.G != 215 {
		t.Errorf("Unexpected ClipStroke color: %+v", theme.ClipStroke)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad bool":     "[notify]\nsave = maybe\n",
		"bad number":   "[canvas]\npadding = wide\n",
		"empty zoom":   "[canvas]\nmin_zoom = 6\n",
		"zero history": "[history]\nmax_size = 0\n",
		"bad color":    "[theme.x]\nOutline = #12\n",
		"bad opacity":  "[canvas]\ndim_opacity = 2\n",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/cutouts

[canvas]
padding = 64
zoom_step = 0.1
dim_opacity = 0.25

[history]
max_size = 20

[export]
shadow = true
shadow_opacity = 0.4

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.History != cfg2.History {
		t.Errorf("History mismatch: %+v vs %+v", cfg.History, cfg2.History)
	}
	if cfg.Export != cfg2.Export {
		t.Errorf("Export mismatch: %+v vs %+v", cfg.Export, cfg2.Export)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestThemeName(t *testing.T) {
	cfg := New()
	cfg.Theme = "fromfile"
	t.Setenv(ThemeEnv, "")
	if got := cfg.ThemeName(""); got != "fromfile" {
		t.Errorf("Expected config theme, got %q", got)
	}
	t.Setenv(ThemeEnv, "fromenv")
	if got := cfg.ThemeName(""); got != "fromenv" {
		t.Errorf("Expected env theme, got %q", got)
	}
	if got := cfg.ThemeName("fromflag"); got != "fromflag" {
		t.Errorf("Expected flag theme, got %q", got)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	l := NewLoader("dev", filepath.Join(wd, "absent.rc"))
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("Expected no config, got %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.History.MaxSize != 200 {
		t.Fatalf("Expected defaults, got %+v, %v", cfg, err)
	}

	xdg := filepath.Join(home, ".config", "cutout", "config.rc")
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := l.GetConfigPath(); p != xdg {
		t.Errorf("Expected %q, got %q", xdg, p)
	}

	local := filepath.Join(wd, ".cutoutrc")
	if err := os.WriteFile(local, []byte("theme = local\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "local" {
		t.Errorf("Expected dev build to prefer ./.cutoutrc, got %q", cfg.Theme)
	}
	if p := NewLoader("1.0.0", "").GetConfigPath(); p != xdg {
		t.Errorf("Release builds skip the local file, got %q", p)
	}
}

func TestLoaderEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	xdg := filepath.Join(home, ".config", "cutout", "config.rc")
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	custom := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(custom, []byte("theme = custom\n[history]\nmax_size = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnv, custom)
	l := NewLoader("1.0.0", "")
	if p := l.GetConfigPath(); p != custom {
		t.Fatalf("Expected %s to win, got %q", PathEnv, p)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "custom" || cfg.History.MaxSize != 7 {
		t.Errorf("Expected the override file, got theme %q max_size %d", cfg.Theme, cfg.History.MaxSize)
	}

	missing := filepath.Join(t.TempDir(), "missing.rc")
	t.Setenv(PathEnv, missing)
	if p := l.GetConfigPath(); p != "" {
		t.Errorf("Expected no path for a missing override, got %q", p)
	}
	if _, err := l.Load(); err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("Expected an error naming %s, got %v", missing, err)
	}

	t.Setenv(PathEnv, "")
	if p := l.GetConfigPath(); p != xdg {
		t.Errorf("Expected the search to resume at %q, got %q", xdg, p)
	}
}
