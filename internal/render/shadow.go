package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow added to exported cut-outs.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult is the output of ApplyShadow.
type ShadowResult struct {
	Image *image.NRGBA
	// Offset is where the source's top-left corner ended up in Image.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// ApplyShadow places img over a blurred silhouette of itself. The canvas
// grows to fit the shadow and always starts at the origin.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	src := imaging.Clone(img)
	if src.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: src}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	srcBounds := src.Bounds()
	padded := srcBounds.Inset(-radius)
	shadowBounds := padded.Add(opts.Offset)
	composite := srcBounds.Union(shadowBounds)

	silhouette := image.NewNRGBA(padded.Sub(padded.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			a := src.NRGBAAt(x, y).A
			if a == 0 {
				continue
			}
			silhouette.SetNRGBA(x-padded.Min.X, y-padded.Min.Y, color.NRGBA{A: uint8(float64(a)*opacity + 0.5)})
		}
	}
	blurred := imaging.Blur(silhouette, float64(radius)/2)

	dst := imaging.New(composite.Dx(), composite.Dy(), color.NRGBA{})
	dst = imaging.Overlay(dst, blurred, shadowBounds.Min.Sub(composite.Min), 1)
	shift := srcBounds.Min.Sub(composite.Min)
	dst = imaging.Overlay(dst, src, shift, 1)
	return ShadowResult{Image: dst, Offset: shift}
}
