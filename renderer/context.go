package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/buffers"
	"github.com/bloeys/nbatch/camera"
	"github.com/bloeys/nbatch/logging"
	"github.com/charmbracelet/log"
)

// Context is the state shared by the batch drawers: the backend, the camera matrices and a
// transform stack whose top is applied to everything drawn.
//
// Create contexts with NewContext. A Context literal works too, with an identity base transform
// and logging.ErrLog when Log is nil, but its View and Projection start as zero matrices.
//
// A Context must only be used from the thread that owns the graphics context.
type Context struct {
	Backend Backend
	Log     *log.Logger

	View       gglm.Mat4
	Projection gglm.Mat4

	// transforms is empty only for a Context that was never pushed to or multiplied
	transforms []gglm.Mat4
}

func (c *Context) logger() *log.Logger {

	if c.Log == nil {
		return logging.ErrLog
	}

	return c.Log
}

// stack returns the transform stack, giving a zero value Context its identity base transform
func (c *Context) stack() []gglm.Mat4 {

	if len(c.transforms) == 0 {
		c.transforms = append(c.transforms, gglm.NewMat4Diag(1))
	}

	return c.transforms
}

func (c *Context) SetCamera(cam *camera.Camera) {
	c.View = cam.ViewMat
	c.Projection = cam.ProjMat
}

// Transform returns the top of the transform stack
func (c *Context) Transform() gglm.Mat4 {
	st := c.stack()
	return st[len(st)-1]
}

// PushTransform pushes a copy of the current transform, so that following
// MulTransform calls can be undone with PopTransform
func (c *Context) PushTransform() {
	c.transforms = append(c.transforms, c.Transform())
}

// PopTransform goes back to the transform before the last PushTransform.
// Popping more than was pushed logs an error and keeps the base transform.
func (c *Context) PopTransform() {

	if len(c.stack()) == 1 {
		c.logger().Error("PopTransform called without a matching PushTransform")
		return
	}

	c.transforms = c.transforms[:len(c.transforms)-1]
}

// MulTransform sets the current transform to current*m
func (c *Context) MulTransform(m *gglm.Mat4) {
	st := c.stack()
	st[len(st)-1].Mul(m)
}

// ResetTransform drops all pushed transforms and sets the base transform to identity
func (c *Context) ResetTransform() {
	c.transforms = c.stack()[:1]
	c.transforms[0] = gglm.NewMat4Diag(1)
}

// ProjViewBase returns Projection*View*Transform()
func (c *Context) ProjViewBase() gglm.Mat4 {
	base := c.Transform()
	return *c.Projection.Clone().Mul(&c.View).Mul(&base)
}

type boundState struct {
	program     uint32
	textureUnit uint32
	vao         uint32
	arrayBuffer uint32
}

// acquire saves the backend state the drawers change and returns a func that restores it
func (c *Context) acquire() (restore func()) {

	b := c.Backend
	saved := boundState{
		program:     b.ActiveProgram(),
		textureUnit: b.ActiveTextureUnit(),
		vao:         b.BoundVertexArray(),
		arrayBuffer: b.BoundArrayBuffer(),
	}

	return func() {
		b.BindVertexArray(saved.vao)
		b.BindBuffer(buffers.BufTarget_Array, saved.arrayBuffer)
		b.ActiveTexture(saved.textureUnit)
		b.UseProgram(saved.program)
	}
}

// NewContext returns a context with identity view, projection and transform
// that logs through logging.ErrLog
func NewContext(backend Backend) *Context {
	return &Context{
		Backend:    backend,
		Log:        logging.ErrLog,
		View:       gglm.NewMat4Diag(1),
		Projection: gglm.NewMat4Diag(1),
		transforms: []gglm.Mat4{gglm.NewMat4Diag(1)},
	}
}
