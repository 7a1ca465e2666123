package render3d

import "math"

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
}

// Mesh is an indexed triangle list with an optional edge list used for
// wireframe drawing. Without edges, wireframes outline every triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Edges    []uint32
}

func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// BoundingBox returns the mesh extent.
func (m Mesh) BoundingBox() (lo, hi Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Pos, m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		p := v.Pos
		lo = V3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = V3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi
}

type meshBuilder struct {
	m Mesh
}

func (b *meshBuilder) vertex(p, n Vec3) uint32 {
	b.m.Vertices = append(b.m.Vertices, Vertex{Pos: p, Normal: n})
	return uint32(len(b.m.Vertices) - 1)
}

func (b *meshBuilder) tri(a, c, d uint32) {
	b.m.Indices = append(b.m.Indices, a, c, d)
}

func (b *meshBuilder) quad(a, c, d, e uint32) {
	b.tri(a, c, d)
	b.tri(a, d, e)
}

func (b *meshBuilder) edge(a, c uint32) {
	b.m.Edges = append(b.m.Edges, a, c)
}

// GenCube builds an axis-aligned box centered on the origin.
func GenCube(width, height, length float32) Mesh {
	x, y, z := width/2, height/2, length/2
	var b meshBuilder
	faces := []struct {
		n       Vec3
		corners [4]Vec3
	}{
		{V3(0, 0, 1), [4]Vec3{V3(-x, -y, z), V3(x, -y, z), V3(x, y, z), V3(-x, y, z)}},
		{V3(0, 0, -1), [4]Vec3{V3(x, -y, -z), V3(-x, -y, -z), V3(-x, y, -z), V3(x, y, -z)}},
		{V3(1, 0, 0), [4]Vec3{V3(x, -y, z), V3(x, -y, -z), V3(x, y, -z), V3(x, y, z)}},
		{V3(-1, 0, 0), [4]Vec3{V3(-x, -y, -z), V3(-x, -y, z), V3(-x, y, z), V3(-x, y, -z)}},
		{V3(0, 1, 0), [4]Vec3{V3(-x, y, z), V3(x, y, z), V3(x, y, -z), V3(-x, y, -z)}},
		{V3(0, -1, 0), [4]Vec3{V3(-x, -y, -z), V3(x, -y, -z), V3(x, -y, z), V3(-x, -y, z)}},
	}
	for _, f := range faces {
		var idx [4]uint32
		for i, c := range f.corners {
			idx[i] = b.vertex(c, f.n)
		}
		b.quad(idx[0], idx[1], idx[2], idx[3])
	}
	// Twelve box edges over the front (0..3) and back (4..7) faces.
	front := []uint32{0, 1, 2, 3}
	back := []uint32{5, 4, 7, 6}
	for i := 0; i < 4; i++ {
		b.edge(front[i], front[(i+1)%4])
		b.edge(back[i], back[(i+1)%4])
		b.edge(front[i], back[i])
	}
	return b.m
}

// GenPlane builds a subdivided plane on XZ centered on the origin.
func GenPlane(width, length float32, resX, resZ int) Mesh {
	resX = max(resX, 1)
	resZ = max(resZ, 1)
	var b meshBuilder
	up := V3(0, 1, 0)
	for z := 0; z <= resZ; z++ {
		for x := 0; x <= resX; x++ {
			px := -width/2 + width*float32(x)/float32(resX)
			pz := -length/2 + length*float32(z)/float32(resZ)
			b.vertex(V3(px, 0, pz), up)
		}
	}
	row := uint32(resX + 1)
	for z := 0; z < resZ; z++ {
		for x := 0; x < resX; x++ {
			i := uint32(z)*row + uint32(x)
			b.quad(i, i+row, i+row+1, i+1)
			b.edge(i, i+1)
			b.edge(i, i+row)
		}
	}
	for x := 0; x < resX; x++ {
		i := uint32(resZ)*row + uint32(x)
		b.edge(i, i+1)
	}
	for z := 0; z < resZ; z++ {
		i := uint32(z)*row + uint32(resX)
		b.edge(i, i+row)
	}
	return b.m
}

// GenSphere builds a UV sphere centered on the origin.
func GenSphere(radius float32, rings, slices int) Mesh {
	return genSphere(radius, rings, slices, math.Pi)
}

// GenHemiSphere builds the upper half of a sphere with a closed base.
func GenHemiSphere(radius float32, rings, slices int) Mesh {
	m := genSphere(radius, rings, slices, math.Pi/2)
	b := meshBuilder{m: m}
	capMesh(&b, 0, radius, slices, V3(0, -1, 0))
	return b.m
}

func genSphere(radius float32, rings, slices int, maxTheta float64) Mesh {
	rings = max(rings, 2)
	slices = max(slices, 3)
	var b meshBuilder
	for r := 0; r <= rings; r++ {
		theta := maxTheta * float64(r) / float64(rings)
		for s := 0; s <= slices; s++ {
			phi := 2 * math.Pi * float64(s) / float64(slices)
			n := V3(
				float32(math.Sin(theta)*math.Sin(phi)),
				float32(math.Cos(theta)),
				float32(math.Sin(theta)*math.Cos(phi)),
			)
			b.vertex(n.Mul(radius), n)
		}
	}
	row := uint32(slices + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < slices; s++ {
			i := uint32(r)*row + uint32(s)
			b.quad(i, i+row, i+row+1, i+1)
			b.edge(i, i+1)
			b.edge(i, i+row)
		}
	}
	return b.m
}

// GenCylinder builds a closed cylinder standing on the origin.
func GenCylinder(radius, height float32, slices int) Mesh {
	return GenCone(radius, radius, height, slices)
}

// GenCone builds a closed frustum standing on the origin, bottom radius
// rBottom at y=0 and top radius rTop at y=height.
func GenCone(rTop, rBottom, height float32, slices int) Mesh {
	slices = max(slices, 3)
	var b meshBuilder
	slope := (rBottom - rTop) / max(height, 1e-6)
	for s := 0; s <= slices; s++ {
		phi := 2 * math.Pi * float64(s) / float64(slices)
		sx, cz := float32(math.Sin(phi)), float32(math.Cos(phi))
		n := Normalize(V3(sx, slope, cz))
		b.vertex(V3(sx*rBottom, 0, cz*rBottom), n)
		b.vertex(V3(sx*rTop, height, cz*rTop), n)
	}
	for s := 0; s < slices; s++ {
		i := uint32(s * 2)
		b.quad(i, i+2, i+3, i+1)
		b.edge(i, i+1)
		b.edge(i, i+2)
		b.edge(i+1, i+3)
	}
	if rBottom > 0 {
		capMesh(&b, 0, rBottom, slices, V3(0, -1, 0))
	}
	if rTop > 0 {
		capMesh(&b, height, rTop, slices, V3(0, 1, 0))
	}
	return b.m
}

func capMesh(b *meshBuilder, y, radius float32, slices int, n Vec3) {
	center := b.vertex(V3(0, y, 0), n)
	first := uint32(len(b.m.Vertices))
	for s := 0; s <= slices; s++ {
		phi := 2 * math.Pi * float64(s) / float64(slices)
		b.vertex(V3(float32(math.Sin(phi))*radius, y, float32(math.Cos(phi))*radius), n)
	}
	for s := 0; s < slices; s++ {
		b.tri(center, first+uint32(s), first+uint32(s)+1)
	}
}

// GenTorus builds a torus around the Y axis with outer diameter size. radius
// is the tube thickness relative to the ring radius, clamped to [0.1, 1].
func GenTorus(radius, size float32, radSeg, sides int) Mesh {
	radius = min(max(radius, 0.1), 1)
	ring := size / 2
	return genTube(sides, radSeg, radius*ring, func(t float64) Vec3 {
		return V3(float32(math.Cos(t))*ring, 0, float32(math.Sin(t))*ring)
	})
}

// GenKnot builds a (2,3) torus knot tube.
func GenKnot(radius, size float32, radSeg, sides int) Mesh {
	return genTube(sides, radSeg, radius*0.25, func(t float64) Vec3 {
		r := 2 + math.Cos(3*t)
		return V3(
			float32(r*math.Cos(2*t))*size*0.25,
			float32(math.Sin(3*t))*size*0.25,
			float32(r*math.Sin(2*t))*size*0.25,
		)
	})
}

// genTube sweeps a circle of radius r along the closed curve path(t), t in [0, 2pi).
func genTube(segments, sides int, r float32, path func(t float64) Vec3) Mesh {
	segments = max(segments, 3)
	sides = max(sides, 3)
	var b meshBuilder
	for i := 0; i <= segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		p := path(t)
		tangent := Normalize(path(t + 1e-3).Sub(path(t - 1e-3)))
		ref := V3(0, 1, 0)
		if abs32(Dot(ref, tangent)) > 0.9 {
			ref = V3(1, 0, 0)
		}
		nx := Normalize(Cross(tangent, ref))
		ny := Cross(nx, tangent)
		for j := 0; j <= sides; j++ {
			a := 2 * math.Pi * float64(j) / float64(sides)
			n := nx.Mul(float32(math.Cos(a))).Add(ny.Mul(float32(math.Sin(a))))
			b.vertex(p.Add(n.Mul(r)), n)
		}
	}
	row := uint32(sides + 1)
	for i := 0; i < segments; i++ {
		for j := 0; j < sides; j++ {
			k := uint32(i)*row + uint32(j)
			b.quad(k, k+1, k+row+1, k+row)
			b.edge(k, k+1)
			b.edge(k, k+row)
		}
	}
	return b.m
}

// GenPoly builds a flat regular polygon on XZ.
func GenPoly(sides int, radius float32) Mesh {
	sides = max(sides, 3)
	var b meshBuilder
	up := V3(0, 1, 0)
	center := b.vertex(V3(0, 0, 0), up)
	for s := 0; s < sides; s++ {
		phi := 2 * math.Pi * float64(s) / float64(sides)
		b.vertex(V3(float32(math.Sin(phi))*radius, 0, float32(math.Cos(phi))*radius), up)
	}
	for s := 0; s < sides; s++ {
		a := center + 1 + uint32(s)
		c := center + 1 + uint32((s+1)%sides)
		b.tri(center, a, c)
		b.edge(a, c)
	}
	return b.m
}

// GenTriangle builds a single triangle from three points with an upward normal.
func GenTriangle(a, c, d Vec3) Mesh {
	var b meshBuilder
	n := Normalize(Cross(c.Sub(a), d.Sub(a)))
	i0 := b.vertex(a, n)
	i1 := b.vertex(c, n)
	i2 := b.vertex(d, n)
	b.tri(i0, i1, i2)
	return b.m
}
