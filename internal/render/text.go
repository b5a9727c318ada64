package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce sync.Once
	fontErr  error
	regular  *opentype.Font
	faces    sync.Map // map[float64]font.Face
)

// Face returns goregular at size points, falling back to the fixed 7x13
// face when the font cannot be parsed.
func Face(size float64) font.Face {
	face, err := faceForSize(size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func faceForSize(size float64) (font.Face, error) {
	size = math.Round(size*4) / 4
	if size < 1 {
		size = 1
	}
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces.Store(size, face)
	return face, nil
}

// MeasureText returns the advance width of text at size points.
func MeasureText(text string, size float64) int {
	d := &font.Drawer{Face: Face(size)}
	return d.MeasureString(text).Ceil()
}

// DrawText renders text with its top-left corner at (x, y) and returns the
// x position after the last glyph.
func DrawText(dst draw.Image, x, y int, text string, col color.Color, size float64) int {
	face := Face(size)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return d.Dot.X.Ceil()
}
