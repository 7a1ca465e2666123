// Package shaders holds the post-processing demo.
package shaders

import (
	"strings"

	"showcase/assets"
	"showcase/demos"
	"showcase/gfx"
	"showcase/gfx/render3d"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{
		Name:  "shaders/postprocessing",
		Title: "showcase [shaders] example - postprocessing shader",
		New:   func() loop.Demo { return &postprocessing{} },
		Smoke: func() *hal.Script {
			s := &hal.Script{}
			for f := uint64(2); f < 2+uint64(len(postproShaders)); f++ {
				s.KeyTap(f, hal.KeyRight)
			}
			return s.KeyTap(20, hal.KeyLeft)
		},
	})
}

// postproShaders are loaded by file name; the base name selects the
// built-in program.
var postproShaders = [...]string{
	"grayscale",
	"posterization",
	"dream_vision",
	"pixelizer",
	"cross_hatching",
	"cross_stitching",
	"predator",
	"scanlines",
	"fisheye",
	"sobel",
	"bloom",
	"blur",
	"invert",
	"sepia",
	"wave",
}

func shaderLabel(name string) string {
	if name == "predator" {
		return "PREDATOR_VIEW"
	}
	return strings.ToUpper(name)
}

// postprocessing renders a 3D scene into a render texture and draws it
// back through the selected shader.
type postprocessing struct {
	cam     render3d.Camera
	chapel  [3]gfx.Model
	shaders [len(postproShaders)]gfx.Shader
	current int
	target  gfx.RenderTexture
}

func (d *postprocessing) Load(ctx *loop.Context) error {
	a := ctx.Assets
	d.cam = render3d.Camera{
		Position: render3d.V3(2, 3, 2),
		Target:   render3d.V3(0, 1, 0),
		Up:       render3d.V3(0, 1, 0),
		FovY:     45,
	}

	// A small chapel: nave, roof and bell tower.
	nave := a.LoadModelFromMesh(assets.GenMeshCube(1, 0.8, 1.6))
	nave.Transform = render3d.Mat4Translate(render3d.V3(0, 0.4, 0))
	nave.Color = gfx.Beige
	roof := a.LoadModelFromMesh(assets.GenMeshCone(0.8, 0.6, 4))
	roof.Transform = render3d.Mat4Mul(render3d.Mat4Translate(render3d.V3(0, 0.8, 0)), render3d.Mat4RotateY(render3d.Deg2Rad(45)))
	roof.Color = gfx.Maroon
	tower := a.LoadModelFromMesh(assets.GenMeshCylinder(0.25, 1.8, 8))
	tower.Transform = render3d.Mat4Translate(render3d.V3(0, 0, -0.8))
	tower.Color = gfx.LightGray
	d.chapel = [3]gfx.Model{nave, roof, tower}

	for i, name := range postproShaders {
		d.shaders[i] = a.LoadShader("resources/shaders/" + name + ".fs")
	}
	d.target = a.LoadRenderTexture(ctx.ScreenWidth(), ctx.ScreenHeight())
	ctx.SetTargetFPS(60)
	return nil
}

func (d *postprocessing) Unload(ctx *loop.Context) error {
	for _, sh := range d.shaders {
		ctx.Assets.UnloadShader(sh)
	}
	for _, m := range d.chapel {
		ctx.Assets.UnloadModel(m)
	}
	ctx.Assets.UnloadRenderTexture(d.target)
	return nil
}

func (d *postprocessing) Update(ctx *loop.Context) {
	d.cam.OrbitStep(0.5 * ctx.FrameTime())
	n := len(d.shaders)
	switch {
	case ctx.IsKeyPressed(hal.KeyRight):
		d.current = (d.current + 1) % n
	case ctx.IsKeyPressed(hal.KeyLeft):
		d.current = (d.current + n - 1) % n
	}
	if postproShaders[d.current] == "wave" {
		ctx.Assets.SetShaderValue(d.shaders[d.current], "seconds", float32(ctx.Time()))
	}
}

func (d *postprocessing) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.BeginTextureMode(d.target)
	c.ClearBackground(gfx.RayWhite)
	c.Begin3D(d.cam)
	for _, m := range d.chapel {
		c.DrawModel(m, render3d.Vec3{}, 1, gfx.White)
	}
	c.DrawGrid(10, 1)
	c.End3D()
	c.EndTextureMode()

	w, h := ctx.ScreenWidth(), ctx.ScreenHeight()
	c.ClearBackground(gfx.RayWhite)
	c.BeginShaderMode(d.shaders[d.current])
	src := gfx.Rectangle{Width: float32(d.target.Texture.Width), Height: float32(d.target.Texture.Height)}
	c.DrawTextureRec(d.target.Texture, src, gfx.Vector2{}, gfx.White)
	c.EndShaderMode()

	c.DrawRectangle(0, 9, 580, 30, gfx.Fade(gfx.LightGray, 0.7))
	c.DrawText("(c) procedural chapel scene", w-200, h-20, 10, gfx.Gray)
	c.DrawText("CURRENT POSTPRO SHADER:", 10, 15, 20, gfx.Black)
	c.DrawText(shaderLabel(postproShaders[d.current]), 330, 15, 20, gfx.Red)
	c.DrawText("< >", 540, 10, 30, gfx.DarkBlue)
	c.DrawFPS(700, 15)
}
