package scene

import (
	"fmt"
	"math"

	"github.com/BardoBard/Bardrix-sub000/geometry"
	"github.com/BardoBard/Bardrix-sub000/types"
)

// Stores the ray directions at the four corners of the camera frustrum. Per
// pixel rays are generated by bilinear interpolation of the corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : %v\nTR : %v\nBL : %v\nBR : %v",
		fr[0], fr[1], fr[2], fr[3],
	)
}

// The camera type generates primary rays for the scene.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Rotations (in radians) applied on top of the look-at direction.
	Pitch float32
	Yaw   float32

	// Vertical FOV in degrees.
	FOV float32

	Frustrum Frustrum

	aspect float32
}

// Create a camera at the origin looking down the negative z axis.
func NewCamera(fov float32) *Camera {
	c := &Camera{
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
		aspect:   1,
	}
	c.Update()
	return c
}

// Set the frame aspect ratio (width / height) and update the frustrum.
func (c *Camera) SetupProjection(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
	c.Update()
}

// Get the view direction after applying pitch and yaw.
func (c *Camera) Direction() types.Vec3 {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchQuat := types.QuatFromAxisAngle(dir.Cross(c.Up), c.Pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()
	return orientQuat.Rotate(dir).Normalize()
}

// Recalculate the frustrum corner rays. Must be called after changing any
// of the camera fields.
func (c *Camera) Update() {
	dir := c.Direction()
	right := dir.Cross(c.Up).Normalize()
	up := right.Cross(dir).Normalize()

	halfH := float32(math.Tan(float64(c.FOV) * math.Pi / 360.0))
	halfW := halfH * c.aspect

	vUp := up.Mul(halfH)
	vRight := right.Mul(halfW)

	c.Frustrum[0] = dir.Add(vUp).Sub(vRight)
	c.Frustrum[1] = dir.Add(vUp).Add(vRight)
	c.Frustrum[2] = dir.Sub(vUp).Sub(vRight)
	c.Frustrum[3] = dir.Sub(vUp).Add(vRight)
}

// Generate the primary ray through the center of pixel (x, y) of a
// frameW x frameH frame. Pixel (0, 0) is the top-left corner.
func (c *Camera) Ray(x, y, frameW, frameH uint32) geometry.Ray {
	u := (float32(x) + 0.5) / float32(frameW)
	v := (float32(y) + 0.5) / float32(frameH)

	top := lerp(c.Frustrum[0], c.Frustrum[1], u)
	bottom := lerp(c.Frustrum[2], c.Frustrum[3], u)
	return geometry.NewRay(c.Position, lerp(top, bottom, v))
}

func lerp(a, b types.Vec3, t float32) types.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
