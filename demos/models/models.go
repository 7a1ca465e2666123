// Package models holds the 3D demos drawn by the software renderer.
package models

import (
	"image/color"

	"showcase/assets"
	"showcase/demos"
	"showcase/gfx"
	"showcase/gfx/render3d"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{Name: "models/geometric_shapes", New: func() loop.Demo { return &geometricShapes{} }})
	c.Register(demos.Entry{
		Name: "models/mesh_generation",
		New:  func() loop.Demo { return &meshGeneration{} },
		Smoke: func() *hal.Script {
			s := &hal.Script{}
			for f := uint64(2); f <= 18; f += 2 {
				s.MouseTap(f, hal.MouseLeft)
			}
			return s.KeyTap(19, hal.KeyRight).KeyTap(20, hal.KeyLeft).KeyTap(21, hal.KeyLeft).Wheel(22, 3)
		},
	})
}

// orbitSpeed is the camera rotation in radians per second.
const orbitSpeed = 0.5

type geometricShapes struct {
	cam render3d.Camera
}

func (d *geometricShapes) Load(ctx *loop.Context) error {
	d.cam = render3d.Camera{
		Position: render3d.V3(0, 10, 10),
		Up:       render3d.V3(0, 1, 0),
		FovY:     45,
	}
	ctx.SetTargetFPS(60)
	return nil
}

func (d *geometricShapes) Update(*loop.Context) {}

func (d *geometricShapes) Draw(_ *loop.Context, c *gfx.Canvas) {
	v := render3d.V3
	c.ClearBackground(gfx.RayWhite)
	c.Begin3D(d.cam)

	c.DrawCube(v(-4, 0, 2), 2, 5, 2, gfx.Red)
	c.DrawCubeWires(v(-4, 0, 2), 2, 5, 2, gfx.Gold)
	c.DrawCubeWires(v(-4, 0, -2), 3, 6, 2, gfx.Maroon)

	c.DrawSphere(v(-1, 0, -2), 1, gfx.Green)
	c.DrawSphereWires(v(1, 0, 2), 2, 16, 16, gfx.Lime)

	c.DrawCylinder(v(4, 0, -2), 1, 2, 3, 4, gfx.SkyBlue)
	c.DrawCylinderWires(v(4, 0, -2), 1, 2, 3, 4, gfx.DarkBlue)
	c.DrawCylinderWires(v(4.5, -1, 2), 1, 1, 2, 6, gfx.Brown)

	c.DrawCylinder(v(1, 0, -4), 0, 1.5, 3, 8, gfx.Gold)
	c.DrawCylinderWires(v(1, 0, -4), 0, 1.5, 3, 8, gfx.Pink)

	c.DrawCapsule(v(-3, 1.5, -4), v(-4, -1, -4), 1.2, 8, 8, gfx.Violet)
	c.DrawCapsuleWires(v(-3, 1.5, -4), v(-4, -1, -4), 1.2, 8, 8, gfx.Purple)

	c.DrawGrid(10, 1)
	c.End3D()
	c.DrawFPS(10, 10)
}

type generatedModel struct {
	label string
	x     int
	mesh  func() render3d.Mesh
	color color.RGBA
}

var generatedModels = [...]generatedModel{
	{"PLANE", 680, func() render3d.Mesh { return assets.GenMeshPlane(2, 2, 4, 3) }, gfx.Red},
	{"CUBE", 680, func() render3d.Mesh { return assets.GenMeshCube(2, 1, 2) }, gfx.Green},
	{"SPHERE", 680, func() render3d.Mesh { return assets.GenMeshSphere(2, 32, 32) }, gfx.Red},
	{"HEMISPHERE", 640, func() render3d.Mesh { return assets.GenMeshHemiSphere(2, 16, 16) }, gfx.Green},
	{"CYLINDER", 680, func() render3d.Mesh { return assets.GenMeshCylinder(1, 2, 16) }, gfx.Red},
	{"TORUS", 680, func() render3d.Mesh { return assets.GenMeshTorus(0.25, 4, 16, 32) }, gfx.Green},
	{"KNOT", 680, func() render3d.Mesh { return assets.GenMeshKnot(1, 2, 16, 128) }, gfx.Red},
	{"POLY", 680, func() render3d.Mesh { return assets.GenMeshPoly(5, 2) }, gfx.Green},
	{"Custom (triangle)", 580, customTriangle, gfx.Red},
}

func customTriangle() render3d.Mesh {
	return render3d.GenTriangle(render3d.V3(0, 0, 0), render3d.V3(1, 0, 2), render3d.V3(2, 0, 0))
}

// meshGeneration cycles through procedurally generated meshes under an
// orbiting camera.
type meshGeneration struct {
	cam     render3d.Camera
	orbit   *render3d.OrbitController
	models  [len(generatedModels)]gfx.Model
	current int
}

func (d *meshGeneration) Load(ctx *loop.Context) error {
	for i, g := range generatedModels {
		m := ctx.Assets.LoadModelFromMesh(g.mesh())
		m.Color = g.color
		d.models[i] = m
	}
	d.cam = render3d.Camera{
		Position: render3d.V3(5, 5, 5),
		Up:       render3d.V3(0, 1, 0),
		FovY:     45,
	}
	d.orbit = render3d.NewOrbitController(d.cam)
	d.orbit.MinRadius, d.orbit.MaxRadius = 2, 30
	ctx.SetTargetFPS(60)
	return nil
}

func (d *meshGeneration) Unload(ctx *loop.Context) error {
	for _, m := range d.models {
		ctx.Assets.UnloadModel(m)
	}
	return nil
}

func (d *meshGeneration) Update(ctx *loop.Context) {
	d.orbit.Rotate(orbitSpeed*ctx.FrameTime(), 0)
	d.orbit.Zoom(-ctx.MouseWheelMove())
	d.orbit.Apply(&d.cam)
	n := len(d.models)
	switch {
	case ctx.IsMouseButtonPressed(hal.MouseLeft), ctx.IsKeyPressed(hal.KeyRight):
		d.current = (d.current + 1) % n
	case ctx.IsKeyPressed(hal.KeyLeft):
		d.current = (d.current + n - 1) % n
	}
}

func (d *meshGeneration) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.Begin3D(d.cam)
	c.DrawModel(d.models[d.current], render3d.Vec3{}, 1, gfx.White)
	c.DrawGrid(10, 1)
	c.End3D()

	c.DrawRectangle(30, 400, 310, 30, gfx.Fade(gfx.SkyBlue, 0.5))
	c.DrawRectangleLines(30, 400, 310, 30, gfx.Fade(gfx.DarkBlue, 0.5))
	c.DrawText("MOUSE LEFT BUTTON to CYCLE PROCEDURAL MODELS", 40, 410, 10, gfx.Blue)
	g := generatedModels[d.current]
	c.DrawText(g.label, g.x, 10, 20, gfx.DarkBlue)
}
