// Package shapes holds the 2D primitive demos.
package shapes

import (
	"fmt"

	"showcase/demos"
	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{Name: "shapes/basic_shapes", New: func() loop.Demo { return &basicShapes{} }})
	c.Register(demos.Entry{
		Name: "shapes/bouncing_ball",
		New:  func() loop.Demo { return &bouncingBall{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyTap(3, hal.KeySpace).KeyTap(70, hal.KeySpace)
		},
	})
	c.Register(demos.Entry{Name: "shapes/logo_raylib", New: func() loop.Demo { return &logo{} }})
	c.Register(demos.Entry{
		Name: "shapes/collision_area",
		New:  func() loop.Demo { return &collisionArea{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).MouseMove(1, 60, 225).KeyTap(5, hal.KeySpace).MouseMove(8, 700, 10)
		},
	})
}

type basicShapes struct {
	rotation float32
}

func (d *basicShapes) Load(ctx *loop.Context) error {
	ctx.SetTargetFPS(60)
	return nil
}

func (d *basicShapes) Update(*loop.Context) { d.rotation += 0.2 }

func (d *basicShapes) Draw(ctx *loop.Context, c *gfx.Canvas) {
	w := ctx.ScreenWidth()
	q := float32(w) / 4 * 3

	c.ClearBackground(gfx.RayWhite)
	c.DrawText("some basic shapes available on raylib", 20, 20, 20, gfx.DarkGray)

	c.DrawCircle(w/5, 120, 35, gfx.DarkBlue)
	c.DrawCircleGradient(w/5, 220, 60, gfx.Green, gfx.SkyBlue)
	c.DrawCircleLines(w/5, 340, 80, gfx.DarkBlue)

	c.DrawRectangle(w/4*2-60, 100, 120, 60, gfx.Red)
	c.DrawRectangleGradientH(w/4*2-90, 170, 180, 130, gfx.Maroon, gfx.Gold)
	c.DrawRectangleLines(w/4*2-40, 320, 80, 60, gfx.Orange)

	c.DrawTriangle(gfx.Vector2{X: q, Y: 80}, gfx.Vector2{X: q - 60, Y: 150}, gfx.Vector2{X: q + 60, Y: 150}, gfx.Violet)
	c.DrawTriangleLines(gfx.Vector2{X: q, Y: 160}, gfx.Vector2{X: q - 20, Y: 230}, gfx.Vector2{X: q + 20, Y: 230}, gfx.DarkBlue)

	center := gfx.Vector2{X: q, Y: 330}
	c.DrawPoly(center, 6, 80, d.rotation, gfx.Brown)
	c.DrawPolyLines(center, 6, 90, d.rotation, gfx.Brown)
	c.DrawPolyLinesEx(center, 6, 85, d.rotation, 6, gfx.Beige)

	c.DrawLine(18, 42, w-18, 42, gfx.Black)
}

type bouncingBall struct {
	pos, speed gfx.Vector2
	radius     float32
	pause      bool
	frames     int
}

func (d *bouncingBall) Load(ctx *loop.Context) error {
	d.pos = gfx.Vector2{X: float32(ctx.ScreenWidth()) / 2, Y: float32(ctx.ScreenHeight()) / 2}
	d.speed = gfx.Vector2{X: 5, Y: 4}
	d.radius = 20
	ctx.SetTargetFPS(60)
	return nil
}

func (d *bouncingBall) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		d.pause = !d.pause
	}
	if d.pause {
		d.frames++
		return
	}
	d.pos.X += d.speed.X
	d.pos.Y += d.speed.Y
	w, h := float32(ctx.ScreenWidth()), float32(ctx.ScreenHeight())
	if d.pos.X >= w-d.radius || d.pos.X <= d.radius {
		d.speed.X = -d.speed.X
	}
	if d.pos.Y >= h-d.radius || d.pos.Y <= d.radius {
		d.speed.Y = -d.speed.Y
	}
}

func (d *bouncingBall) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawCircleV(d.pos, d.radius, gfx.Maroon)
	c.DrawText("PRESS SPACE to PAUSE BALL MOVEMENT", 10, ctx.ScreenHeight()-25, 20, gfx.LightGray)
	// Blink every half second while paused.
	if d.pause && (d.frames/30)%2 == 1 {
		c.DrawText("PAUSED", 350, 200, 30, gfx.Gray)
	}
	c.DrawFPS(10, 10)
}

type logo struct{}

func (d *logo) Load(ctx *loop.Context) error {
	ctx.SetTargetFPS(60)
	return nil
}

func (d *logo) Update(*loop.Context) {}

func (d *logo) Draw(ctx *loop.Context, c *gfx.Canvas) {
	cx, cy := ctx.ScreenWidth()/2, ctx.ScreenHeight()/2
	c.ClearBackground(gfx.RayWhite)
	c.DrawRectangle(cx-128, cy-128, 256, 256, gfx.Black)
	c.DrawRectangle(cx-112, cy-112, 224, 224, gfx.RayWhite)
	c.DrawText("raylib", cx-44, cy+48, 50, gfx.Black)
	c.DrawText("this is NOT a texture!", 350, 370, 10, gfx.Gray)
}

const screenUpperLimit = 40

type collisionArea struct {
	boxA, boxB gfx.Rectangle
	speedX     float32
	overlap    gfx.Rectangle
	collision  bool
	pause      bool
}

func (d *collisionArea) Load(ctx *loop.Context) error {
	w, h := float32(ctx.ScreenWidth()), float32(ctx.ScreenHeight())
	d.boxA = gfx.Rectangle{X: 10, Y: h/2 - 50, Width: 200, Height: 100}
	d.boxB = gfx.Rectangle{X: w/2 - 30, Y: h/2 - 30, Width: 60, Height: 60}
	d.speedX = 4
	ctx.SetTargetFPS(60)
	return nil
}

func (d *collisionArea) Update(ctx *loop.Context) {
	w, h := float32(ctx.ScreenWidth()), float32(ctx.ScreenHeight())
	if !d.pause {
		d.boxA.X += d.speedX
	}
	if d.boxA.X+d.boxA.Width >= w || d.boxA.X <= 0 {
		d.speedX = -d.speedX
	}

	m := ctx.MousePosition()
	d.boxB.X = m.X - d.boxB.Width/2
	d.boxB.Y = m.Y - d.boxB.Height/2
	switch {
	case d.boxB.X+d.boxB.Width >= w:
		d.boxB.X = w - d.boxB.Width
	case d.boxB.X <= 0:
		d.boxB.X = 0
	}
	switch {
	case d.boxB.Y+d.boxB.Height >= h:
		d.boxB.Y = h - d.boxB.Height
	case d.boxB.Y <= screenUpperLimit:
		d.boxB.Y = screenUpperLimit
	}

	d.collision = gfx.CheckCollisionRecs(d.boxA, d.boxB)
	if d.collision {
		d.overlap = gfx.GetCollisionRec(d.boxA, d.boxB)
	}
	if ctx.IsKeyPressed(hal.KeySpace) {
		d.pause = !d.pause
	}
}

func (d *collisionArea) Draw(ctx *loop.Context, c *gfx.Canvas) {
	w := ctx.ScreenWidth()
	bar := gfx.Black
	if d.collision {
		bar = gfx.Red
	}
	c.ClearBackground(gfx.RayWhite)
	c.DrawRectangle(0, 0, w, screenUpperLimit, bar)
	c.DrawRectangleRec(d.boxA, gfx.Gold)
	c.DrawRectangleRec(d.boxB, gfx.Blue)
	if d.collision {
		c.DrawRectangleRec(d.overlap, gfx.Lime)
		c.DrawText("COLLISION!", w/2-gfx.MeasureText("COLLISION!", 20)/2, screenUpperLimit/2-10, 20, gfx.Black)
		area := int(d.overlap.Width) * int(d.overlap.Height)
		c.DrawText(fmt.Sprintf("Collision Area: %d", area), w/2-100, screenUpperLimit+10, 20, gfx.Black)
	}
	c.DrawText("Press SPACE to PAUSE/RESUME", 20, ctx.ScreenHeight()-35, 20, gfx.LightGray)
	c.DrawFPS(10, 10)
}
