package theme

import (
	"image/color"
)

// Theme defines the colors of the window chrome and of the canvas overlays.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the toolbar and panels
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Button of the current mode
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// History timeline
	TimelineBackground color.RGBA
	TimelineText       color.RGBA
	TimelineCurrent    color.RGBA // Row of the entry the log points at
	TimelineRedo       color.RGBA // Text of entries past the current one

	// Canvas
	CanvasBackground color.RGBA
	ClipStroke       color.RGBA
	ClipFill         color.RGBA
	TextFill         color.RGBA
	Handle           color.RGBA
	Outline          color.RGBA
	Caret            color.RGBA
}

// Default returns the hardcoded default dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{48, 48, 48, 255},
		Foreground:             color.RGBA{230, 230, 230, 255},
		ToolbarBackground:      color.RGBA{36, 36, 36, 255},
		ButtonBackground:       color.RGBA{64, 64, 64, 255},
		ButtonBackgroundHover:  color.RGBA{84, 84, 84, 255},
		ButtonBackgroundActive: color.RGBA{30, 144, 255, 255},
		ButtonText:             color.RGBA{240, 240, 240, 255},
		ButtonBorder:           color.RGBA{20, 20, 20, 255},
		TimelineBackground:     color.RGBA{40, 40, 40, 255},
		TimelineText:           color.RGBA{220, 220, 220, 255},
		TimelineCurrent:        color.RGBA{70, 90, 120, 255},
		TimelineRedo:           color.RGBA{130, 130, 130, 255},
		CanvasBackground:       color.RGBA{43, 43, 43, 255},
		ClipStroke:             color.RGBA{255, 0, 0, 255},
		ClipFill:               color.RGBA{3, 3, 3, 3},
		TextFill:               color.RGBA{0, 0, 0, 255},
		Handle:                 color.RGBA{255, 255, 255, 255},
		Outline:                color.RGBA{30, 144, 255, 255},
		Caret:                  color.RGBA{0, 0, 0, 255},
	}
}
