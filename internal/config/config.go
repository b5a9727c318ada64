package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/cutout/internal/theme"
)

// Canvas holds the interaction tuning of the editing canvas.
type Canvas struct {
	Padding      float64
	MinClipArea  float64
	MinZoom      float64
	MaxZoom      float64
	ZoomStep     float64
	ScrollFactor float64
	WheelZoom    bool
	DimOpacity   float64
}

// History holds undo log settings.
type History struct {
	MaxSize int
}

// Export holds the settings applied to exported cutouts.
type Export struct {
	Shadow        bool
	ShadowRadius  int
	ShadowOpacity float64
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Canvas  Canvas
	History History
	Export  Export
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Canvas: Canvas{
			Padding:      80,
			MinClipArea:  300,
			MinZoom:      0.01,
			MaxZoom:      5,
			ZoomStep:     0.05,
			ScrollFactor: 0.5,
			WheelZoom:    true,
			DimOpacity:   0.3,
		},
		History: History{MaxSize: 200},
		Export: Export{
			Shadow:        false,
			ShadowRadius:  24,
			ShadowOpacity: 0.55,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeEnv names the environment variable that selects a theme.
const ThemeEnv = "CUTOUT_THEME"

// ThemeName resolves the theme to use: flag, then $CUTOUT_THEME, then the
// config file. Empty means the built-in default.
func (c *Config) ThemeName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(ThemeEnv); env != "" {
		return env
	}
	return c.Theme
}

// Validate rejects settings the canvas cannot work with.
func (c *Config) Validate() error {
	if c.Canvas.MinZoom <= 0 || c.Canvas.MaxZoom < c.Canvas.MinZoom {
		return fmt.Errorf("canvas: zoom range [%v, %v] is empty", c.Canvas.MinZoom, c.Canvas.MaxZoom)
	}
	if c.Canvas.DimOpacity < 0 || c.Canvas.DimOpacity > 1 {
		return fmt.Errorf("canvas: dim_opacity %v outside [0, 1]", c.Canvas.DimOpacity)
	}
	if c.Export.ShadowOpacity < 0 || c.Export.ShadowOpacity > 1 {
		return fmt.Errorf("export: shadow_opacity %v outside [0, 1]", c.Export.ShadowOpacity)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "padding = %s\n", formatFloat(c.Canvas.Padding))
	fmt.Fprintf(&sb, "min_clip_area = %s\n", formatFloat(c.Canvas.MinClipArea))
	fmt.Fprintf(&sb, "min_zoom = %s\n", formatFloat(c.Canvas.MinZoom))
	fmt.Fprintf(&sb, "max_zoom = %s\n", formatFloat(c.Canvas.MaxZoom))
	fmt.Fprintf(&sb, "zoom_step = %s\n", formatFloat(c.Canvas.ZoomStep))
	fmt.Fprintf(&sb, "scroll_factor = %s\n", formatFloat(c.Canvas.ScrollFactor))
	fmt.Fprintf(&sb, "wheel_zoom = %v\n", c.Canvas.WheelZoom)
	fmt.Fprintf(&sb, "dim_opacity = %s\n", formatFloat(c.Canvas.DimOpacity))
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "max_size = %d\n", c.History.MaxSize)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "shadow = %v\n", c.Export.Shadow)
	fmt.Fprintf(&sb, "shadow_radius = %d\n", c.Export.ShadowRadius)
	fmt.Fprintf(&sb, "shadow_opacity = %s\n", formatFloat(c.Export.ShadowOpacity))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
