package render3d

import "image/color"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates and blend
// translucent colors.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
}

// Light is a single directional light plus ambient term.
type Light struct {
	Enabled bool
	Ambient float32 // 0..1
	// Dir is the direction the light travels.
	Dir       Vec3
	DirAmount float32 // 0..1
}

// DefaultLight is a soft top-left key light.
func DefaultLight() Light {
	return Light{
		Enabled:   true,
		Ambient:   0.55,
		Dir:       Normalize(V3(-0.4, -1, -0.6)),
		DirAmount: 0.45,
	}
}

// Renderer is a fixed-pipeline software renderer.
//
// It never clears the target: Begin resets the depth buffer and camera, and
// draw calls accumulate until the next Begin. Create it once and reuse it to
// avoid allocations.
type Renderer struct {
	Light Light

	w, h     int
	viewProj Mat4
	depthBuf []float32

	// Triangles counts rasterized triangles since Begin.
	Triangles int
}

func NewRenderer() *Renderer {
	return &Renderer{Light: DefaultLight()}
}

// Begin prepares a w*h pass seen through cam.
func (r *Renderer) Begin(w, h int, cam Camera) {
	r.w, r.h = w, h
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
	aspect := float32(1)
	if h != 0 {
		aspect = float32(w) / float32(h)
	}
	r.viewProj = Mat4Mul(cam.ProjectionMatrix(aspect), cam.View())
	r.Triangles = 0
}

// Project maps a world position to screen coordinates.
// ok is false when the point is behind the camera.
func (r *Renderer) Project(p Vec3) (x, y int, ok bool) {
	c := Mat4MulV4(r.viewProj, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if c.W <= 0 {
		return 0, 0, false
	}
	n, _ := clipToNDC(c)
	x, y = ndcToScreen(n, r.w, r.h)
	return x, y, true
}

// DrawMesh fills every triangle of m transformed by model.
func (r *Renderer) DrawMesh(t Target, m Mesh, model Mat4, c color.RGBA) {
	if len(r.depthBuf) == 0 || len(m.Indices) < 3 {
		return
	}
	mvp := Mat4Mul(r.viewProj, model)

	var poly [9]Vec4
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		shade := c
		if r.Light.Enabled {
			n := v0.Normal.Add(v1.Normal).Add(v2.Normal)
			if n == (Vec3{}) {
				n = Cross(v1.Pos.Sub(v0.Pos), v2.Pos.Sub(v0.Pos))
			}
			n = Normalize(Mat4MulDir(model, n))
			shade = mulColor(c, lightIntensity(r.Light, n))
		}

		in := [3]Vec4{
			Mat4MulV4(mvp, Vec4{X: v0.Pos.X, Y: v0.Pos.Y, Z: v0.Pos.Z, W: 1}),
			Mat4MulV4(mvp, Vec4{X: v1.Pos.X, Y: v1.Pos.Y, Z: v1.Pos.Z, W: 1}),
			Mat4MulV4(mvp, Vec4{X: v2.Pos.X, Y: v2.Pos.Y, Z: v2.Pos.Z, W: 1}),
		}
		n := clipNear(in[:], poly[:0])
		if n < 3 {
			continue
		}
		var sx, sy [9]int
		var sz [9]float32
		for k := 0; k < n; k++ {
			p, _ := clipToNDC(poly[k])
			sx[k], sy[k] = ndcToScreen(p, r.w, r.h)
			sz[k] = p.Z
		}
		for k := 1; k+1 < n; k++ {
			r.fillTriangle(t, sx[0], sy[0], sz[0], sx[k], sy[k], sz[k], sx[k+1], sy[k+1], sz[k+1], shade)
		}
		r.Triangles++
	}
}

// DrawMeshWires draws the mesh edges, or every triangle outline when the
// mesh has no edge list.
func (r *Renderer) DrawMeshWires(t Target, m Mesh, model Mat4, c color.RGBA) {
	if len(r.depthBuf) == 0 {
		return
	}
	world := func(i uint32) (Vec3, bool) {
		if int(i) >= len(m.Vertices) {
			return Vec3{}, false
		}
		return Mat4MulPoint(model, m.Vertices[i].Pos), true
	}
	line := func(a, b uint32) {
		pa, ok1 := world(a)
		pb, ok2 := world(b)
		if ok1 && ok2 {
			r.DrawLine3D(t, pa, pb, c)
		}
	}
	if len(m.Edges) > 0 {
		for i := 0; i+1 < len(m.Edges); i += 2 {
			line(m.Edges[i], m.Edges[i+1])
		}
		return
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		line(m.Indices[i], m.Indices[i+1])
		line(m.Indices[i+1], m.Indices[i+2])
		line(m.Indices[i+2], m.Indices[i])
	}
}

// DrawLine3D draws a depth-tested world-space segment.
func (r *Renderer) DrawLine3D(t Target, a, b Vec3, c color.RGBA) {
	if len(r.depthBuf) == 0 {
		return
	}
	pa := Mat4MulV4(r.viewProj, Vec4{X: a.X, Y: a.Y, Z: a.Z, W: 1})
	pb := Mat4MulV4(r.viewProj, Vec4{X: b.X, Y: b.Y, Z: b.Z, W: 1})
	da, db := pa.Z+pa.W, pb.Z+pb.W
	if da < 0 && db < 0 {
		return
	}
	if da < 0 {
		pa = lerp4(pa, pb, da/(da-db))
	} else if db < 0 {
		pb = lerp4(pb, pa, db/(db-da))
	}
	na, ok1 := clipToNDC(pa)
	nb, ok2 := clipToNDC(pb)
	if !ok1 || !ok2 {
		return
	}
	ax, ay := ndcToScreenF(na, r.w, r.h)
	bx, by := ndcToScreenF(nb, r.w, r.h)
	t0, t1, ok := clipSegment(ax, ay, bx, by, float32(r.w-1), float32(r.h-1))
	if !ok {
		return
	}
	x0, y0 := int(ax+(bx-ax)*t0+0.5), int(ay+(by-ay)*t0+0.5)
	x1, y1 := int(ax+(bx-ax)*t1+0.5), int(ay+(by-ay)*t1+0.5)
	z0 := na.Z + (nb.Z-na.Z)*t0
	z1 := na.Z + (nb.Z-na.Z)*t1
	r.drawLine(t, x0, y0, z0, x1, y1, z1, c)
}

// clipSegment clips a->b to [0,maxX]x[0,maxY] (Liang-Barsky) and returns the
// visible parameter range.
func clipSegment(ax, ay, bx, by, maxX, maxY float32) (t0, t1 float32, ok bool) {
	t0, t1 = 0, 1
	dx, dy := bx-ax, by-ay
	edges := [4][2]float32{
		{-dx, ax},
		{dx, maxX - ax},
		{-dy, ay},
		{dy, maxY - ay},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		u := q / p
		if p < 0 {
			if u > t1 {
				return 0, 0, false
			}
			t0 = max(t0, u)
		} else {
			if u < t0 {
				return 0, 0, false
			}
			t1 = min(t1, u)
		}
	}
	return t0, t1, true
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W == 0 {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx, sy := ndcToScreenF(p, w, h)
	return int(sx + 0.5), int(sy + 0.5)
}

func ndcToScreenF(p ndcPoint, w, h int) (x, y float32) {
	return (p.X*0.5 + 0.5) * float32(w-1), (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
}

func lerp4(a, b Vec4, t float32) Vec4 {
	return Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

// clipNear clips a convex polygon against the near plane (z >= -w) and
// appends the result to out. It returns the resulting vertex count.
func clipNear(in []Vec4, out []Vec4) int {
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da, db := a.Z+a.W, b.Z+b.W
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerp4(a, b, da/(da-db)))
		}
	}
	return len(out)
}

func lightIntensity(l Light, n Vec3) float32 {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

func mulColor(c color.RGBA, s float32) color.RGBA {
	s = Clamp01(s)
	return color.RGBA{
		R: uint8(float32(c.R) * s),
		G: uint8(float32(c.G) * s),
		B: uint8(float32(c.B) * s),
		A: c.A,
	}
}

func (r *Renderer) depthTest(x, y int, z, bias float32) bool {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return false
	}
	idx := y*r.w + x
	// NDC z is in [-1,1]. Map to [0,1].
	d := Clamp01(z*0.5 + 0.5)
	if d-bias >= r.depthBuf[idx] {
		return false
	}
	if d < r.depthBuf[idx] {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	step := 0
	err := dx + dy
	for {
		z := z0
		if steps > 0 {
			z = z0 + (z1-z0)*float32(step)/float32(steps)
		}
		if r.depthTest(x0, y0, z, 1e-3) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		step++
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangle(t Target, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c color.RGBA) {
	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Both windings are drawn; depth testing resolves visibility.
	if area < 0 {
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}

	minX, maxX := max(min(x0, x1, x2), 0), min(max(x0, x1, x2), r.w-1)
	minY, maxY := max(min(y0, y1, y2), 0), min(max(y0, y1, y2), r.h-1)
	if minX > maxX || minY > maxY {
		return
	}
	invArea := 1 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			z := (float32(w0)*z0 + float32(w1)*z1 + float32(w2)*z2) * invArea
			if !r.depthTest(x, y, z, 0) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
