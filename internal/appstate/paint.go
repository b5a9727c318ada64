package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/cutout/internal/render"
)

// frameDropThreshold bounds how many frames in a row a newer paint request
// may cancel, so a steady stream of events still shows progress.
const frameDropThreshold = 10

type paintState struct {
	width, height int
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, a *AppState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	a.mu.Lock()
	a.view.paint(ctx, b.RGBA(), a.palette)
	a.mu.Unlock()
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// paint draws the whole window into dst, stopping early when ctx is
// cancelled.
func (v *view) paint(ctx context.Context, dst *image.RGBA, pal render.Palette) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(v.theme.Background), image.Point{}, draw.Src)

	if c := v.layout.canvas().Intersect(dst.Bounds()); !c.Empty() {
		frame := dst.SubImage(c).(*image.RGBA)
		// Frame draws from the origin.
		frame.Rect = frame.Rect.Sub(c.Min)
		render.Frame(frame, v.sess.Canvas(), v.sess.Scale(), pal)
	}
	if ctx.Err() != nil {
		return
	}

	v.drawToolbar(dst)
	v.drawTimeline(dst)
	v.drawBottom(dst)
	if ctx.Err() != nil {
		return
	}
	if v.messageVisible() {
		v.drawMessage(dst)
	}
}

func (v *view) drawToolbar(dst *image.RGBA) {
	draw.Draw(dst, v.layout.toolbar(), image.NewUniform(v.theme.ToolbarBackground), image.Point{}, draw.Src)
	mode := v.sess.Mode()
	for _, b := range v.modeButtons {
		state := StateDefault
		switch {
		case b.Button.(*ModeButton).mode == mode:
			state = StateActive
		case b == v.hover:
			state = StateHover
		}
		b.Draw(dst, state)
	}
}

func (v *view) drawTimeline(dst *image.RGBA) {
	t := v.layout.timeline()
	if t.Empty() {
		return
	}
	draw.Draw(dst, t, image.NewUniform(v.theme.TimelineBackground), image.Point{}, draw.Src)
	strokeRect(dst, image.Rect(t.Min.X, t.Min.Y, t.Min.X+1, t.Max.Y), v.theme.ButtonBorder)

	h := v.sess.History()
	header := fmt.Sprintf("History %d/%d", h.Index+1, len(h.Entries))
	drawString(dst, t.Min.X+6, t.Min.Y+rowHeight-5, header, v.theme.Foreground)

	rows := v.layout.timelineRows()
	first := timelineFirst(len(h.Entries), h.Index, rows)
	for i := 0; i < rows && first+i < len(h.Entries); i++ {
		idx := first + i
		rec := h.Entries[idx]
		row := v.layout.timelineRow(i)
		switch {
		case idx == h.Index:
			draw.Draw(dst, row, image.NewUniform(v.theme.TimelineCurrent), image.Point{}, draw.Src)
		case idx == v.rowHover:
			draw.Draw(dst, row, image.NewUniform(v.theme.ButtonBackgroundHover), image.Point{}, draw.Src)
		}
		var col color.Color = v.theme.TimelineText
		if idx > h.Index {
			col = v.theme.TimelineRedo
		}
		text := rec.Meta.Timestamp.Format("15:04:05") + " " + rec.Meta.Label
		drawString(dst.SubImage(row).(*image.RGBA), row.Min.X+6, row.Max.Y-5, text, col)
	}
}

func (v *view) drawBottom(dst *image.RGBA) {
	bar := v.layout.bottom()
	draw.Draw(dst, bar, image.NewUniform(v.theme.ToolbarBackground), image.Point{}, draw.Src)
	for _, b := range v.shortcuts {
		state := StateDefault
		if b == v.hover {
			state = StateHover
		}
		b.Draw(dst, state)
	}
	status := fmt.Sprintf("%s  %.0f%%", v.sess.Mode(), v.sess.Zoom()*100)
	drawString(dst, bar.Max.X-measureString(status)-8, bar.Max.Y-7, status, v.theme.Foreground)
}

func (v *view) drawMessage(dst *image.RGBA) {
	face := 13
	wmsg := measureString(v.message)
	px := (v.layout.width - wmsg) / 2
	py := (v.layout.height + face) / 2
	rect := image.Rect(px-8, py-face-8, px+wmsg+8, py+8)
	draw.Draw(dst, rect, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	strokeRect(dst, rect, color.Black)
	strokeRect(dst, rect.Inset(1), color.Black)
	drawString(dst, px, py, v.message, color.Black)
}
