package render3d

import "math"

type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a homogeneous point or direction.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is column-major: m[col*4+row].
type Mat4 [16]float32

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return V3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func Len(v Vec3) float32 { return float32(math.Sqrt(float64(Dot(v, v)))) }

// Normalize returns the zero vector unchanged.
func Normalize(v Vec3) Vec3 {
	if l := Len(v); l != 0 {
		return v.Mul(1 / l)
	}
	return Vec3{}
}

func Clamp01(v float32) float32 { return min(max(v, 0), 1) }

func Deg2Rad(deg float32) float32 { return deg * math.Pi / 180 }

func abs32(v float32) float32 { return float32(math.Abs(float64(v))) }

// fromBasis builds a matrix whose first three columns are x, y and z,
// translated by t.
func fromBasis(x, y, z, t Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

func Mat4Identity() Mat4 { return fromBasis(V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), Vec3{}) }

func Mat4Translate(v Vec3) Mat4 { return fromBasis(V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), v) }

func Mat4Scale(v Vec3) Mat4 { return fromBasis(V3(v.X, 0, 0), V3(0, v.Y, 0), V3(0, 0, v.Z), Vec3{}) }

func (m Mat4) col(i int) Vec4 { return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]} }

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	var out Vec4
	for i, w := range [4]float32{v.X, v.Y, v.Z, v.W} {
		c := m.col(i)
		out.X += c.X * w
		out.Y += c.Y * w
		out.Z += c.Z * w
		out.W += c.W * w
	}
	return out
}

// Mat4Mul returns a*b; b is applied first.
func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		c := Mat4MulV4(a, b.col(i))
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = c.X, c.Y, c.Z, c.W
	}
	return out
}

func Mat4MulPoint(m Mat4, p Vec3) Vec3 { return xyz(Mat4MulV4(m, Vec4{p.X, p.Y, p.Z, 1})) }

func Mat4MulDir(m Mat4, d Vec3) Vec3 { return xyz(Mat4MulV4(m, Vec4{d.X, d.Y, d.Z, 0})) }

func xyz(v Vec4) Vec3 { return Vec3{v.X, v.Y, v.Z} }

// Mat4Rotate is a right-handed rotation by rad around the unit vector axis.
func Mat4Rotate(axis Vec3, rad float32) Mat4 {
	s, c := math.Sincos(float64(rad))
	sin, cos := float32(s), float32(c)
	// Each column is the image of a unit axis under Rodrigues' formula.
	turn := func(e Vec3) Vec3 {
		return e.Mul(cos).Add(Cross(axis, e).Mul(sin)).Add(axis.Mul((1 - cos) * Dot(axis, e)))
	}
	return fromBasis(turn(V3(1, 0, 0)), turn(V3(0, 1, 0)), turn(V3(0, 0, 1)), Vec3{})
}

func Mat4RotateX(rad float32) Mat4 { return Mat4Rotate(V3(1, 0, 0), rad) }
func Mat4RotateY(rad float32) Mat4 { return Mat4Rotate(V3(0, 1, 0), rad) }
func Mat4RotateZ(rad float32) Mat4 { return Mat4Rotate(V3(0, 0, 1), rad) }

// Mat4AlignY returns a rotation taking the +Y axis onto dir.
func Mat4AlignY(dir Vec3) Mat4 {
	y := Normalize(dir)
	if y == (Vec3{}) {
		return Mat4Identity()
	}
	ref := V3(1, 0, 0)
	if abs32(y.X) > 0.9 {
		ref = V3(0, 0, 1)
	}
	z := Normalize(Cross(ref, y))
	return fromBasis(Cross(y, z), y, z, Vec3{})
}

// Mat4LookAt moves eye to the origin looking down -Z.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(target.Sub(eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)
	// The view rotation is the transpose of the camera basis.
	rot := fromBasis(V3(s.X, u.X, -f.X), V3(s.Y, u.Y, -f.Y), V3(s.Z, u.Z, -f.Z), Vec3{})
	return Mat4Mul(rot, Mat4Translate(eye.Mul(-1)))
}

// Mat4Perspective maps the view frustum to clip space with depth in [-1, 1].
func Mat4Perspective(fovYRad, aspect, zNear, zFar float32) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / float32(math.Tan(float64(fovYRad)/2))
	depth := zNear - zFar
	return Mat4{
		0:  f / aspect,
		5:  f,
		10: (zFar + zNear) / depth,
		11: -1,
		14: 2 * zFar * zNear / depth,
	}
}

func Mat4Ortho(left, right, bottom, top, zNear, zFar float32) Mat4 {
	span := func(a, b float32) float32 {
		if a == b {
			return 1
		}
		return b - a
	}
	w, h, d := span(left, right), span(bottom, top), span(zNear, zFar)
	return fromBasis(
		V3(2/w, 0, 0),
		V3(0, 2/h, 0),
		V3(0, 0, -2/d),
		V3(-(right+left)/w, -(top+bottom)/h, -(zFar+zNear)/d),
	)
}
