package render3d

import (
	"math"
	"testing"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestAxisRotations(t *testing.T) {
	const q = math.Pi / 2
	cases := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"X", Mat4RotateX(q), V3(0, 1, 0), V3(0, 0, 1)},
		{"Y", Mat4RotateY(q), V3(0, 0, 1), V3(1, 0, 0)},
		{"Z", Mat4RotateZ(q), V3(1, 0, 0), V3(0, 1, 0)},
		{"diagonal", Mat4Rotate(Normalize(V3(1, 1, 1)), 2*math.Pi/3), V3(1, 0, 0), V3(0, 1, 0)},
	}
	for _, c := range cases {
		if got := Mat4MulDir(c.m, c.in); Len(got.Sub(c.want)) > 1e-5 {
			t.Fatalf("Rotate%s(%v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestLookAtFrame(t *testing.T) {
	eye, target := V3(1, 2, 3), V3(1, 2, -2)
	m := Mat4LookAt(eye, target, V3(0, 1, 0))
	if got := Mat4MulPoint(m, eye); Len(got) > 1e-5 {
		t.Fatalf("LookAt() eye = %v, want origin", got)
	}
	if got := Mat4MulPoint(m, target); Len(got.Sub(V3(0, 0, -5))) > 1e-5 {
		t.Fatalf("LookAt() target = %v, want (0,0,-5)", got)
	}
}

func TestAlignY(t *testing.T) {
	for _, dir := range []Vec3{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1), V3(1, 1, 1)} {
		got := Mat4MulDir(Mat4AlignY(dir), V3(0, 1, 0))
		want := Normalize(dir)
		if Len(got.Sub(want)) > 1e-5 {
			t.Fatalf("AlignY(%v) * up = %v, want %v", dir, got, want)
		}
	}
}

func TestOrbitControllerRoundTrip(t *testing.T) {
	cam := Camera{Position: V3(5, 5, 5), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 45}
	oc := NewOrbitController(cam)

	var got Camera
	oc.Apply(&got)
	if Len(got.Position.Sub(cam.Position)) > 1e-4 {
		t.Fatalf("Apply() position = %v, want %v", got.Position, cam.Position)
	}

	oc.Rotate(0, math.Pi)
	if oc.Pitch >= math.Pi/2 {
		t.Fatalf("Rotate() pitch = %v, want clamped below pi/2", oc.Pitch)
	}
}

func TestOrbitControllerZoomClamps(t *testing.T) {
	oc := NewOrbitController(Camera{Position: V3(0, 0, 10)})
	oc.MinRadius, oc.MaxRadius = 2, 12

	oc.Zoom(-3)
	var cam Camera
	oc.Apply(&cam)
	if d := Len(cam.Position.Sub(cam.Target)); math.Abs(float64(d-7)) > 1e-4 {
		t.Fatalf("Zoom(-3) distance = %v, want 7", d)
	}
	oc.Zoom(-100)
	if oc.Radius != 2 {
		t.Fatalf("Zoom(-100) radius = %v, want 2", oc.Radius)
	}
	oc.Zoom(100)
	if oc.Radius != 12 {
		t.Fatalf("Zoom(100) radius = %v, want 12", oc.Radius)
	}
}

func TestOrbitStepKeepsDistance(t *testing.T) {
	cam := Camera{Position: V3(2, 3, 2), Target: V3(0, 1, 0)}
	before := Len(cam.Position.Sub(cam.Target))
	cam.OrbitStep(math.Pi / 2)
	if d := Len(cam.Position.Sub(cam.Target)); math.Abs(float64(d-before)) > 1e-4 {
		t.Fatalf("OrbitStep() distance = %v, want %v", d, before)
	}
	if cam.Position.Y != 3 {
		t.Fatalf("OrbitStep() height = %v, want 3", cam.Position.Y)
	}
	if Len(cam.Position.Sub(V3(2, 3, -2))) > 1e-4 {
		t.Fatalf("OrbitStep(pi/2) position = %v, want (2,3,-2)", cam.Position)
	}
}
