package loop

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"showcase/hal"
)

// recoverPanic turns a demo panic into an error and paints the panic
// screen. It must be deferred directly.
func (r *Runner) recoverPanic(phase string, err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	r.stopped = true
	r.log.Error().Str("phase", phase).Interface("panic", v).Bytes("stack", stack).Msg("demo panicked")
	drawPanicScreen(r.h.Display().Framebuffer(), r.opts.Name, phase, v, stack)
	*err = fmt.Errorf("%s %s: %w: %v", phase, r.opts.Name, ErrDemoPanic, v)
}

// drawPanicScreen writes the panic value and stack straight into fb,
// bypassing the canvas whose frame state is unknown after a panic.
func drawPanicScreen(fb hal.Framebuffer, demo, phase string, v any, stack []byte) {
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	fontHeight := int16(font.GetYAdvance())
	fontOffset := fontHeight - 2
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = fb.Present()
		return
	}

	d := panicDisplay{fb: fb}
	lines := []string{
		"Demo Panic:",
		fmt.Sprintf("demo: %s (%s)", demo, phase),
		fmt.Sprintf("panic: %v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	y := int16(0)
	maxH := int16(fb.Height())
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, ch := range chunk {
				tinyfont.DrawChar(d, font, x, y+fontOffset, ch, fg)
				x += fontWidth
			}
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// panicDisplay draws glyph pixels into a framebuffer of either format.
type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if buf == nil || ix < 0 || iy < 0 || ix >= d.fb.Width() || iy >= d.fb.Height() {
		return
	}
	if d.fb.Format() != hal.PixelFormatRGBA8888 {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*4
	if off+3 >= len(buf) {
		return
	}
	buf[off], buf[off+1], buf[off+2], buf[off+3] = c.R, c.G, c.B, 0xFF
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
