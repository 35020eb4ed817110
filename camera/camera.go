package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

func (t Type) String() string {

	switch t {
	case Type_Perspective:
		return "Perspective"
	case Type_Orthographic:
		return "Orthographic"
	default:
		return "Unknown"
	}
}

// Camera produces the view and projection matrices the renderer draws with.
// After changing any field call Update to recompute ViewMat and ProjMat
type Camera struct {
	Type Type

	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip float32
	FarClip  float32

	// Perspective
	FovRad      float32
	AspectRatio float32

	// Orthographic
	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

func (c *Camera) Update() {

	c.ViewMat = gglm.LookAtRH(&c.Pos, c.Pos.Clone().Add(&c.Forward), &c.WorldUp).Mat4

	switch c.Type {
	case Type_Perspective:
		c.ProjMat = gglm.Perspective(c.FovRad, c.AspectRatio, c.NearClip, c.FarClip)
	case Type_Orthographic:
		c.ProjMat = gglm.Ortho(c.Left, c.Right, c.Top, c.Bottom, c.NearClip, c.FarClip).Mat4
	}
}

// UpdateRotation points the camera using pitch and yaw in radians, then calls Update.
// A yaw of zero looks down +X
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	cosPitch := float32(math.Cos(float64(pitch)))
	dir := gglm.NewVec3(
		float32(math.Cos(float64(yaw)))*cosPitch,
		float32(math.Sin(float64(pitch))),
		float32(math.Sin(float64(yaw)))*cosPitch,
	)
	dir.Normalize()

	c.Forward = dir
	c.Update()
}

// ProjView returns ProjMat*ViewMat
func (c *Camera) ProjView() gglm.Mat4 {
	return *c.ProjMat.Clone().Mul(&c.ViewMat)
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Type:        Type_Perspective,
		Pos:         *pos,
		Forward:     *forward,
		WorldUp:     *worldUp,
		NearClip:    nearClip,
		FarClip:     farClip,
		FovRad:      fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, left, right, top, bottom float32) Camera {

	cam := Camera{
		Type:     Type_Orthographic,
		Pos:      *pos,
		Forward:  *forward,
		WorldUp:  *worldUp,
		NearClip: nearClip,
		FarClip:  farClip,
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
	}

	cam.Update()
	return cam
}
