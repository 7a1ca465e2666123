package render3d

import "math"

// Projection selects the camera projection.
type Projection uint8

const (
	Perspective Projection = iota
	Orthographic
)

// Camera describes the viewing transform.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	// FovY is the vertical field of view in degrees for perspective cameras
	// and the view height in world units for orthographic ones.
	FovY       float32
	Projection Projection

	Near float32
	Far  float32
}

const (
	defaultNear = 0.01
	defaultFar  = 1000
)

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// ProjectionMatrix returns the projection matrix for a target aspect.
func (c Camera) ProjectionMatrix(aspect float32) Mat4 {
	near, far := c.Near, c.Far
	if near <= 0 {
		near = defaultNear
	}
	if far <= near {
		far = defaultFar
	}
	switch c.Projection {
	case Orthographic:
		top := c.FovY / 2
		if top == 0 {
			top = 1
		}
		right := top * aspect
		return Mat4Ortho(-right, right, -top, top, near, far)
	default:
		fov := c.FovY
		if fov == 0 {
			fov = 45
		}
		return Mat4Perspective(Deg2Rad(fov), aspect, near, far)
	}
}

// OrbitController moves a camera on a sphere around its target.
//
// It does not depend on any input system; callers feed it deltas.
type OrbitController struct {
	Target Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32
}

// NewOrbitController derives yaw, pitch and radius from a camera placement.
func NewOrbitController(cam Camera) *OrbitController {
	d := cam.Position.Sub(cam.Target)
	r := Len(d)
	c := &OrbitController{Target: cam.Target, Radius: r}
	if r > 0 {
		c.Yaw = float32(math.Atan2(float64(d.X), float64(d.Z)))
		c.Pitch = -float32(math.Asin(float64(d.Y / r)))
	}
	return c
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	const limit = math.Pi/2 - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

func (c *OrbitController) Zoom(delta float32) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

// OrbitStep rotates the camera position around its target about the Y axis
// by angle radians, keeping height and distance.
func (c *Camera) OrbitStep(angle float32) {
	d := c.Position.Sub(c.Target)
	s, co := math.Sincos(float64(angle))
	x := float64(d.X)*co + float64(d.Z)*s
	z := -float64(d.X)*s + float64(d.Z)*co
	c.Position = c.Target.Add(V3(float32(x), d.Y, float32(z)))
}
