// Package gfx draws 2D shapes, text, textures and simple 3D scenes into the
// host framebuffer.
//
// All drawing happens between Canvas.Begin and Canvas.End. End publishes the
// frame with a single Present; calls made outside the bracket are dropped
// and counted as violations.
package gfx

import (
	"image/color"

	"github.com/rs/zerolog"

	"showcase/gfx/render3d"
	"showcase/hal"
)

// Canvas owns the screen surface and the drawing modes of one window.
type Canvas struct {
	fb     hal.Framebuffer
	screen *Surface
	target *Surface
	log    zerolog.Logger

	inFrame    bool
	violations uint64
	frames     uint64
	fps        int

	texMode *texturePass
	shader  *shaderPass
	in3D    bool
	r3d     *render3d.Renderer
	meshes  map[meshKey]render3d.Mesh
	font    Font
}

type texturePass struct {
	rt   RenderTexture
	prev *Surface
}

type shaderPass struct {
	sh      Shader
	under   *Surface
	scratch *Surface
}

// Option configures a Canvas.
type Option func(*Canvas)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Canvas) { c.log = l }
}

// NewCanvas returns a canvas presenting into fb.
func NewCanvas(fb hal.Framebuffer, opts ...Option) *Canvas {
	c := &Canvas{
		fb:     fb,
		screen: NewSurface(fb.Width(), fb.Height()),
		log:    zerolog.Nop(),
		r3d:    render3d.NewRenderer(),
		meshes: make(map[meshKey]render3d.Mesh),
		font:   DefaultFont(),
	}
	for _, o := range opts {
		o(c)
	}
	c.target = c.screen
	return c
}

func (c *Canvas) Width() int  { return c.screen.Width() }
func (c *Canvas) Height() int { return c.screen.Height() }

// Screen returns the screen surface. Its content is the last drawn frame.
func (c *Canvas) Screen() *Surface { return c.screen }

// Violations counts drawing calls rejected outside Begin/End or outside the
// mode they require.
func (c *Canvas) Violations() uint64 { return c.violations }

// Frames counts completed Begin/End brackets.
func (c *Canvas) Frames() uint64 { return c.frames }

// SetFPS sets the value shown by DrawFPS.
func (c *Canvas) SetFPS(fps int) { c.fps = fps }

// InFrame reports whether a Begin is pending its End.
func (c *Canvas) InFrame() bool { return c.inFrame }

// Begin opens a frame.
func (c *Canvas) Begin() {
	if c.inFrame {
		c.violation("Begin", "frame already open")
		return
	}
	c.inFrame = true
	c.target = c.screen
}

// End closes the frame, draining open modes, and presents it.
func (c *Canvas) End() error {
	if !c.inFrame {
		c.violation("End", "no frame open")
		return nil
	}
	if c.in3D {
		c.log.Warn().Msg("End3D missing before End")
		c.End3D()
	}
	if c.shader != nil {
		c.log.Warn().Msg("EndShaderMode missing before End")
		c.EndShaderMode()
	}
	if c.texMode != nil {
		c.log.Warn().Msg("EndTextureMode missing before End")
		c.EndTextureMode()
	}
	c.inFrame = false
	c.copyToFramebuffer()
	c.frames++
	return c.fb.Present()
}

func (c *Canvas) copyToFramebuffer() {
	buf := c.fb.Buffer()
	src := c.screen.pm.Data()
	w, h := min(c.fb.Width(), c.screen.Width()), min(c.fb.Height(), c.screen.Height())
	stride := c.fb.StrideBytes()
	if f := c.fb.Format(); f != hal.PixelFormatRGBA8888 {
		c.log.Error().Uint8("format", uint8(f)).Msg("Present: unsupported framebuffer format")
		return
	}
	for y := 0; y < h; y++ {
		row := buf[y*stride:]
		for x := 0; x < w; x++ {
			// Premultiplied over black is the color itself.
			s := (y*c.screen.Width() + x) * 4
			d := x * 4
			row[d], row[d+1], row[d+2], row[d+3] = src[s], src[s+1], src[s+2], 0xFF
		}
	}
}

// drawing gates a drawing call on an open frame.
func (c *Canvas) drawing(op string) bool {
	if !c.inFrame {
		c.violation(op, "outside Begin/End")
		return false
	}
	return true
}

func (c *Canvas) violation(op, why string) {
	c.violations++
	c.log.Debug().Str("op", op).Uint64("violations", c.violations).Msg(why)
}

// ClearBackground fills the current target with col.
func (c *Canvas) ClearBackground(col color.RGBA) {
	if !c.drawing("ClearBackground") {
		return
	}
	c.target.Clear(col)
}

// BeginTextureMode redirects drawing into rt until EndTextureMode.
func (c *Canvas) BeginTextureMode(rt RenderTexture) {
	if !c.drawing("BeginTextureMode") {
		return
	}
	if !rt.Valid() {
		c.log.Warn().Msg("BeginTextureMode: invalid render texture")
		return
	}
	if c.texMode != nil {
		c.violation("BeginTextureMode", "texture mode already active")
		return
	}
	c.texMode = &texturePass{rt: rt, prev: c.target}
	c.target = rt.surf
}

// EndTextureMode publishes the render texture and restores the screen target.
func (c *Canvas) EndTextureMode() {
	if !c.drawing("EndTextureMode") {
		return
	}
	if c.texMode == nil {
		c.violation("EndTextureMode", "texture mode not active")
		return
	}
	if c.shader != nil && c.shader.under == c.texMode.rt.surf {
		c.EndShaderMode()
	}
	c.texMode.rt.sync()
	c.target = c.texMode.prev
	c.texMode = nil
}

// BeginShaderMode captures drawing until EndShaderMode runs sh over it.
func (c *Canvas) BeginShaderMode(sh Shader) {
	if !c.drawing("BeginShaderMode") {
		return
	}
	if c.shader != nil {
		c.violation("BeginShaderMode", "shader mode already active")
		return
	}
	scratch := NewSurface(c.target.Width(), c.target.Height())
	c.shader = &shaderPass{sh: sh, under: c.target, scratch: scratch}
	c.target = scratch
}

// EndShaderMode applies the shader and composites the result.
func (c *Canvas) EndShaderMode() {
	if !c.drawing("EndShaderMode") {
		return
	}
	p := c.shader
	if p == nil {
		c.violation("EndShaderMode", "shader mode not active")
		return
	}
	c.shader = nil
	c.target = p.under
	if !p.sh.Valid() {
		p.under.Composite(p.scratch)
		return
	}
	w, h := p.scratch.Width(), p.scratch.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.under.Blend(x, y, p.sh.prog(p.scratch, x, y, p.sh))
		}
	}
}
