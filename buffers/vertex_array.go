package buffers

import (
	"github.com/bloeys/nbatch/logging"
)

type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind(dev Device) {
	dev.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind(dev Device) {
	dev.BindVertexArray(0)
}

// AddVertexBuffer enables one attribute per element of the vbo layout, starting at
// attribute location firstLoc, and takes ownership of the vbo so that it is deleted with the vertex array.
//
// A divisor of zero advances the attributes per vertex, a divisor of N advances them once every N instances.
func (va *VertexArray) AddVertexBuffer(dev Device, vbo VertexBuffer, firstLoc, divisor uint32) {
	va.BindVertexBuffer(dev, &vbo, firstLoc, divisor)
	va.Vbos = append(va.Vbos, vbo)
}

// BindVertexBuffer is like AddVertexBuffer but the vertex array does NOT own the vbo.
// This is used for buffers that live shorter than the vertex array (e.g. per draw instance data),
// which must be detached with DisableAttribs before the buffer is deleted.
func (va *VertexArray) BindVertexBuffer(dev Device, vbo *VertexBuffer, firstLoc, divisor uint32) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind(dev)
	vbo.Bind(dev)

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		loc := firstLoc + uint32(i)

		dev.EnableVertexAttribArray(loc)
		dev.VertexAttribPointer(loc, l.ElementType, vbo.Stride, l.Offset)
		if divisor != 0 {
			dev.VertexAttribDivisor(loc, divisor)
		}
	}
}

// DisableAttribs disables count attributes starting at firstLoc and resets their divisors
func (va *VertexArray) DisableAttribs(dev Device, firstLoc, count uint32) {

	va.Bind(dev)
	for loc := firstLoc; loc < firstLoc+count; loc++ {
		dev.VertexAttribDivisor(loc, 0)
		dev.DisableVertexAttribArray(loc)
	}
}

func (va *VertexArray) SetIndexBuffer(dev Device, ib IndexBuffer) {
	va.Bind(dev)
	ib.Bind(dev)
	va.IndexBuffer = ib
}

// Delete frees the vertex array along with all its owned buffers.
// Calling it again on a deleted array does nothing.
func (va *VertexArray) Delete(dev Device) {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete(dev)
	}
	va.Vbos = nil

	va.IndexBuffer.Delete(dev)

	if va.Id != 0 {
		dev.DeleteVertexArray(va.Id)
		va.Id = 0
	}
}

func NewVertexArray(dev Device) VertexArray {

	vao := VertexArray{}

	vao.Id = dev.GenVertexArray()
	if vao.Id == 0 {
		logging.ErrLog.Error("Failed to create vertex array object")
	}

	return vao
}
