package render3d

import (
	"image/color"
	"testing"
)

type testTarget struct {
	w, h int
	px   []color.RGBA
}

func newTestTarget(w, h int) *testTarget {
	return &testTarget{w: w, h: h, px: make([]color.RGBA, w*h)}
}

func (t *testTarget) Size() (int, int) { return t.w, t.h }

func (t *testTarget) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.px[y*t.w+x] = c
}

func (t *testTarget) count(c color.RGBA) int {
	n := 0
	for _, p := range t.px {
		if p == c {
			n++
		}
	}
	return n
}

var frontCam = Camera{Position: V3(0, 0, 5), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 45}

func TestDrawMeshCoversCenter(t *testing.T) {
	tgt := newTestTarget(64, 64)
	r := NewRenderer()
	r.Light.Enabled = false
	r.Begin(64, 64, frontCam)

	red := color.RGBA{R: 255, A: 255}
	r.DrawMesh(tgt, GenCube(2, 2, 2), Mat4Identity(), red)

	if got := tgt.px[32*64+32]; got != red {
		t.Fatalf("center pixel = %v, want %v", got, red)
	}
	if got := tgt.px[0]; got != (color.RGBA{}) {
		t.Fatalf("corner pixel = %v, want untouched", got)
	}
	if r.Triangles == 0 {
		t.Fatalf("Triangles = 0, want > 0")
	}
}

func TestDepthTestKeepsNearest(t *testing.T) {
	tgt := newTestTarget(64, 64)
	r := NewRenderer()
	r.Light.Enabled = false
	r.Begin(64, 64, frontCam)

	near := color.RGBA{G: 255, A: 255}
	far := color.RGBA{B: 255, A: 255}
	r.DrawMesh(tgt, GenCube(1, 1, 1), Mat4Translate(V3(0, 0, 1)), near)
	r.DrawMesh(tgt, GenCube(3, 3, 1), Mat4Translate(V3(0, 0, -2)), far)

	if got := tgt.px[32*64+32]; got != near {
		t.Fatalf("center pixel = %v, want nearest %v", got, near)
	}
	if tgt.count(far) == 0 {
		t.Fatalf("far cube not visible around the near one")
	}
}

func TestBeginDoesNotClear(t *testing.T) {
	tgt := newTestTarget(16, 16)
	mark := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	tgt.SetPixel(0, 0, mark)

	r := NewRenderer()
	r.Begin(16, 16, frontCam)
	if tgt.px[0] != mark {
		t.Fatalf("Begin() touched the target")
	}
}

func TestLineBehindCameraClipped(t *testing.T) {
	tgt := newTestTarget(32, 32)
	r := NewRenderer()
	r.Begin(32, 32, frontCam)

	white := color.RGBA{255, 255, 255, 255}
	// Runs from in front of the camera to behind it.
	r.DrawLine3D(tgt, V3(0, -1, 0), V3(0, -1, 10), white)
	if tgt.count(white) == 0 {
		t.Fatalf("visible part of the line not drawn")
	}
	// Entirely behind.
	tgt2 := newTestTarget(32, 32)
	r.DrawLine3D(tgt2, V3(-1, 0, 6), V3(1, 0, 6), white)
	if tgt2.count(white) != 0 {
		t.Fatalf("line behind camera drew %d pixels", tgt2.count(white))
	}
}

func TestGeneratorsProduceValidIndices(t *testing.T) {
	meshes := map[string]Mesh{
		"cube":     GenCube(2, 1, 2),
		"plane":    GenPlane(2, 2, 4, 3),
		"sphere":   GenSphere(2, 16, 16),
		"hemi":     GenHemiSphere(2, 8, 8),
		"cylinder": GenCylinder(1, 2, 16),
		"cone":     GenCone(0, 1.5, 3, 8),
		"torus":    GenTorus(0.25, 4, 16, 32),
		"knot":     GenKnot(1, 2, 16, 128),
		"poly":     GenPoly(5, 2),
		"triangle": GenTriangle(V3(0, 0, 0), V3(1, 0, 2), V3(2, 0, 0)),
	}
	for name, m := range meshes {
		if m.TriangleCount() == 0 {
			t.Fatalf("%s: no triangles", name)
		}
		for _, idx := range append(append([]uint32(nil), m.Indices...), m.Edges...) {
			if int(idx) >= len(m.Vertices) {
				t.Fatalf("%s: index %d out of range (%d vertices)", name, idx, len(m.Vertices))
			}
		}
	}
	if got := len(GenCube(1, 1, 1).Edges) / 2; got != 12 {
		t.Fatalf("cube edges = %d, want 12", got)
	}
	lo, hi := GenCube(2, 4, 6).BoundingBox()
	if lo != V3(-1, -2, -3) || hi != V3(1, 2, 3) {
		t.Fatalf("BoundingBox() = %v %v, want (-1,-2,-3) (1,2,3)", lo, hi)
	}
}
