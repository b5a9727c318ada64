package render

import (
	"errors"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/cutout/internal/geom"
	"github.com/example/cutout/internal/scene"
)

var (
	// ErrNoClip means the image has no clip shape to cut along.
	ErrNoClip = errors.New("no clip shape")
	// ErrEmptyClip means the clip shape does not overlap the image.
	ErrEmptyClip = errors.New("clip shape does not cover the image")
)

// ExportOptions controls Export.
type ExportOptions struct {
	// Shadow adds a drop shadow when its opacity is positive.
	Shadow ShadowOptions
}

// Export cuts img along its clip shape. The result is cropped to the part
// of the clip's bounding box that overlaps the image, in scene pixels, and
// is transparent outside the shape.
func Export(img *scene.Image, opts ExportOptions) (*image.NRGBA, error) {
	if img == nil || img.Src == nil {
		return nil, errors.New("no image")
	}
	if img.Clip == nil {
		return nil, ErrNoClip
	}
	crop := pixelRect(scene.BoundingBox(img.Clip)).Intersect(pixelRect(scene.BoundingBox(img)))
	if crop.Empty() {
		return nil, ErrEmptyClip
	}

	// Scene pixels of the crop land at the origin of the output.
	size := image.Rect(0, 0, crop.Dx(), crop.Dy())
	shift := scene.Matrix{1, 0, 0, 1, -float64(crop.Min.X), -float64(crop.Min.Y)}
	m := shift.Mul(scene.ObjectMatrix(img))

	flat := image.NewNRGBA(size)
	if t, ok := translation(m); ok {
		draw.Draw(flat, size, img.Src, img.Src.Bounds().Min.Sub(t), draw.Src)
	} else {
		xdraw.BiLinear.Transform(flat, aff3(m), img.Src, img.Src.Bounds(), xdraw.Src, nil)
	}

	mask := polygonMask(size, applyAll(shift, Outline(img.Clip)))
	out := image.NewNRGBA(size)
	draw.DrawMask(out, size, flat, image.Point{}, mask, image.Point{}, draw.Over)

	if opts.Shadow.Opacity > 0 {
		return ApplyShadow(out, opts.Shadow).Image, nil
	}
	return out, nil
}

// pixelRect grows r to whole pixels.
func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// translation reports whether m only moves by whole pixels.
func translation(m scene.Matrix) (image.Point, bool) {
	if m[0] != 1 || m[1] != 0 || m[2] != 0 || m[3] != 1 {
		return image.Point{}, false
	}
	if m[4] != math.Trunc(m[4]) || m[5] != math.Trunc(m[5]) {
		return image.Point{}, false
	}
	return image.Pt(int(m[4]), int(m[5])), true
}
