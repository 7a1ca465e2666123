package gfx

import (
	"image/color"

	"showcase/gfx/render3d"
)

type meshKind uint8

const (
	meshCube meshKind = iota + 1
	meshSphere
	meshCone
	meshPlane
)

type meshKey struct {
	kind    meshKind
	a, b float32
	i, j int
}

// mesh returns a cached unit mesh.
func (c *Canvas) mesh(k meshKey) render3d.Mesh {
	if m, ok := c.meshes[k]; ok {
		return m
	}
	var m render3d.Mesh
	switch k.kind {
	case meshCube:
		m = render3d.GenCube(1, 1, 1)
	case meshSphere:
		m = render3d.GenSphere(1, k.i, k.j)
	case meshCone:
		m = render3d.GenCone(k.a, k.b, 1, k.i)
	case meshPlane:
		m = render3d.GenPlane(1, 1, 1, 1)
	}
	c.meshes[k] = m
	return m
}

// Begin3D starts drawing the scene seen through cam on the current target.
func (c *Canvas) Begin3D(cam render3d.Camera) {
	if !c.drawing("Begin3D") {
		return
	}
	if c.in3D {
		c.violation("Begin3D", "3D mode already active")
		return
	}
	c.in3D = true
	c.r3d.Begin(c.target.Width(), c.target.Height(), cam)
}

func (c *Canvas) End3D() {
	if !c.drawing("End3D") {
		return
	}
	if !c.in3D {
		c.violation("End3D", "3D mode not active")
		return
	}
	c.in3D = false
}

// Triangles counts triangles rasterized since the last Begin3D.
func (c *Canvas) Triangles() int { return c.r3d.Triangles }

// WorldToScreen projects p with the active 3D camera.
func (c *Canvas) WorldToScreen(p render3d.Vec3) (Vector2, bool) {
	x, y, ok := c.r3d.Project(p)
	return Vector2{float32(x), float32(y)}, ok
}

func (c *Canvas) drawing3D(op string) bool {
	if !c.drawing(op) {
		return false
	}
	if !c.in3D {
		c.violation(op, "outside Begin3D/End3D")
		return false
	}
	return true
}

func (c *Canvas) solid(m render3d.Mesh, model render3d.Mat4, col color.RGBA) {
	c.r3d.DrawMesh(target3D{c.target}, m, model, col)
}

func (c *Canvas) wires(m render3d.Mesh, model render3d.Mat4, col color.RGBA) {
	c.r3d.DrawMeshWires(target3D{c.target}, m, model, col)
}

func placeScaled(pos, size render3d.Vec3) render3d.Mat4 {
	return render3d.Mat4Mul(render3d.Mat4Translate(pos), render3d.Mat4Scale(size))
}

// DrawCube draws a box centered on pos.
func (c *Canvas) DrawCube(pos render3d.Vec3, width, height, length float32, col color.RGBA) {
	if !c.drawing3D("DrawCube") {
		return
	}
	c.solid(c.mesh(meshKey{kind: meshCube}), placeScaled(pos, render3d.V3(width, height, length)), col)
}

func (c *Canvas) DrawCubeV(pos, size render3d.Vec3, col color.RGBA) {
	c.DrawCube(pos, size.X, size.Y, size.Z, col)
}

func (c *Canvas) DrawCubeWires(pos render3d.Vec3, width, height, length float32, col color.RGBA) {
	if !c.drawing3D("DrawCubeWires") {
		return
	}
	c.wires(c.mesh(meshKey{kind: meshCube}), placeScaled(pos, render3d.V3(width, height, length)), col)
}

// DrawSphere draws a sphere with 16 rings and 16 slices.
func (c *Canvas) DrawSphere(center render3d.Vec3, radius float32, col color.RGBA) {
	c.DrawSphereEx(center, radius, 16, 16, col)
}

func (c *Canvas) DrawSphereEx(center render3d.Vec3, radius float32, rings, slices int, col color.RGBA) {
	if !c.drawing3D("DrawSphere") {
		return
	}
	m := c.mesh(meshKey{kind: meshSphere, i: rings, j: slices})
	c.solid(m, placeScaled(center, render3d.V3(radius, radius, radius)), col)
}

func (c *Canvas) DrawSphereWires(center render3d.Vec3, radius float32, rings, slices int, col color.RGBA) {
	if !c.drawing3D("DrawSphereWires") {
		return
	}
	m := c.mesh(meshKey{kind: meshSphere, i: rings, j: slices})
	c.wires(m, placeScaled(center, render3d.V3(radius, radius, radius)), col)
}

// coneModel returns the cached unit-height cone and its height scale.
func (c *Canvas) coneModel(rTop, rBottom, height float32, slices int) (render3d.Mesh, render3d.Vec3) {
	m := c.mesh(meshKey{kind: meshCone, a: rTop, b: rBottom, i: slices})
	return m, render3d.V3(1, height, 1)
}

// DrawCylinder draws a frustum standing on pos; a zero top radius makes a cone.
func (c *Canvas) DrawCylinder(pos render3d.Vec3, rTop, rBottom, height float32, slices int, col color.RGBA) {
	if !c.drawing3D("DrawCylinder") {
		return
	}
	m, s := c.coneModel(rTop, rBottom, height, slices)
	c.solid(m, placeScaled(pos, s), col)
}

func (c *Canvas) DrawCylinderWires(pos render3d.Vec3, rTop, rBottom, height float32, slices int, col color.RGBA) {
	if !c.drawing3D("DrawCylinderWires") {
		return
	}
	m, s := c.coneModel(rTop, rBottom, height, slices)
	c.wires(m, placeScaled(pos, s), col)
}

// capsule returns the transforms of the body and the two end caps.
func capsule(start, end render3d.Vec3, radius float32) (body, a, b render3d.Mat4) {
	axis := end.Sub(start)
	body = render3d.Mat4Mul(
		render3d.Mat4Mul(render3d.Mat4Translate(start), render3d.Mat4AlignY(axis)),
		render3d.Mat4Scale(render3d.V3(1, render3d.Len(axis), 1)),
	)
	r := render3d.V3(radius, radius, radius)
	return body, placeScaled(start, r), placeScaled(end, r)
}

// DrawCapsule draws a cylinder between start and end capped with spheres.
func (c *Canvas) DrawCapsule(start, end render3d.Vec3, radius float32, slices, rings int, col color.RGBA) {
	if !c.drawing3D("DrawCapsule") {
		return
	}
	body, a, b := capsule(start, end, radius)
	cyl := c.mesh(meshKey{kind: meshCone, a: radius, b: radius, i: slices})
	sph := c.mesh(meshKey{kind: meshSphere, i: rings * 2, j: slices})
	c.solid(cyl, body, col)
	c.solid(sph, a, col)
	c.solid(sph, b, col)
}

func (c *Canvas) DrawCapsuleWires(start, end render3d.Vec3, radius float32, slices, rings int, col color.RGBA) {
	if !c.drawing3D("DrawCapsuleWires") {
		return
	}
	body, a, b := capsule(start, end, radius)
	cyl := c.mesh(meshKey{kind: meshCone, a: radius, b: radius, i: slices})
	sph := c.mesh(meshKey{kind: meshSphere, i: rings * 2, j: slices})
	c.wires(cyl, body, col)
	c.wires(sph, a, col)
	c.wires(sph, b, col)
}

// DrawPlane draws an XZ plane centered on center.
func (c *Canvas) DrawPlane(center render3d.Vec3, size Vector2, col color.RGBA) {
	if !c.drawing3D("DrawPlane") {
		return
	}
	c.solid(c.mesh(meshKey{kind: meshPlane}), placeScaled(center, render3d.V3(size.X, 1, size.Y)), col)
}

func (c *Canvas) DrawLine3D(a, b render3d.Vec3, col color.RGBA) {
	if !c.drawing3D("DrawLine3D") {
		return
	}
	c.r3d.DrawLine3D(target3D{c.target}, a, b, col)
}

// DrawGrid draws slices*slices cells of spacing units on XZ around the origin.
func (c *Canvas) DrawGrid(slices int, spacing float32) {
	if !c.drawing3D("DrawGrid") {
		return
	}
	half := float32(slices/2) * spacing
	for i := -slices / 2; i <= slices/2; i++ {
		col := LightGray
		if i == 0 {
			col = Gray
		}
		p := float32(i) * spacing
		c.r3d.DrawLine3D(target3D{c.target}, render3d.V3(p, 0, -half), render3d.V3(p, 0, half), col)
		c.r3d.DrawLine3D(target3D{c.target}, render3d.V3(-half, 0, p), render3d.V3(half, 0, p), col)
	}
}

// DrawModel draws m at pos with a uniform scale.
func (c *Canvas) DrawModel(m Model, pos render3d.Vec3, scale float32, tint color.RGBA) {
	c.DrawModelEx(m, pos, render3d.V3(0, 1, 0), 0, render3d.V3(scale, scale, scale), tint)
}

// DrawModelEx draws m rotated by angle degrees around the Y axis if axis is
// +Y, or around X or Z when axis selects them.
func (c *Canvas) DrawModelEx(m Model, pos, axis render3d.Vec3, angle float32, scale render3d.Vec3, tint color.RGBA) {
	if !c.drawing3D("DrawModel") || !m.Valid() {
		if m.life.ended() {
			c.log.Debug().Msg("DrawModel: released model ignored")
		}
		return
	}
	c.solid(m.Mesh, modelMatrix(m, pos, axis, angle, scale), modulate(m.color(), tint))
}

func (c *Canvas) DrawModelWires(m Model, pos render3d.Vec3, scale float32, tint color.RGBA) {
	if !c.drawing3D("DrawModelWires") || !m.Valid() {
		return
	}
	c.wires(m.Mesh, modelMatrix(m, pos, render3d.V3(0, 1, 0), 0, render3d.V3(scale, scale, scale)), modulate(m.color(), tint))
}

func modelMatrix(m Model, pos, axis render3d.Vec3, angle float32, scale render3d.Vec3) render3d.Mat4 {
	rad := render3d.Deg2Rad(angle)
	rot := render3d.Mat4RotateY(rad)
	switch {
	case axis.X != 0 && axis.Y == 0 && axis.Z == 0:
		rot = render3d.Mat4RotateX(rad)
	case axis.Z != 0 && axis.X == 0 && axis.Y == 0:
		rot = render3d.Mat4RotateZ(rad)
	}
	world := render3d.Mat4Mul(render3d.Mat4Translate(pos), render3d.Mat4Mul(rot, render3d.Mat4Scale(scale)))
	if m.Transform == (render3d.Mat4{}) {
		return world
	}
	return render3d.Mat4Mul(world, m.Transform)
}
