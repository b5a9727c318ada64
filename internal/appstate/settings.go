package appstate

import (
	"github.com/example/cutout/internal/config"
	"github.com/example/cutout/internal/editor"
	"github.com/example/cutout/internal/render"
	"github.com/example/cutout/internal/theme"
)

// SettingsFor builds session settings from the configuration and colors the
// clip and text tools with th.
func SettingsFor(cfg *config.Config, th *theme.Theme) editor.Settings {
	s := editor.DefaultSettings()
	if cfg != nil {
		c := cfg.Canvas
		s.Limits.Padding = c.Padding
		s.Limits.MinZoom = c.MinZoom
		s.Limits.MaxZoom = c.MaxZoom
		s.Limits.ZoomStep = c.ZoomStep
		s.Limits.ScrollFactor = c.ScrollFactor
		s.MinClipArea = c.MinClipArea
		s.WheelZoom = c.WheelZoom
		s.DimOpacity = c.DimOpacity
		s.HistorySize = cfg.History.MaxSize
	}
	if th != nil {
		s.ClipStyle.Preview.Stroke = th.ClipStroke
		s.ClipStyle.Final.Stroke = th.ClipStroke
		s.ClipStyle.Final.Fill = th.ClipFill
		s.TextStyle.Fill = th.TextFill
	}
	return s
}

// PaletteFor returns the frame colors of th.
func PaletteFor(th *theme.Theme) render.Palette {
	if th == nil {
		return render.DefaultPalette()
	}
	return render.Palette{
		Background: th.CanvasBackground,
		Handle:     th.Handle,
		Outline:    th.Outline,
		Caret:      th.Caret,
	}
}

// ExportOptionsFor maps the [export] section to export options.
func ExportOptionsFor(cfg *config.Config) render.ExportOptions {
	var opts render.ExportOptions
	if cfg == nil || !cfg.Export.Shadow {
		return opts
	}
	opts.Shadow = render.DefaultShadowOptions()
	opts.Shadow.Radius = cfg.Export.ShadowRadius
	opts.Shadow.Opacity = cfg.Export.ShadowOpacity
	return opts
}
