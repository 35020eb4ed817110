package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/buffers"
	"github.com/bloeys/nbatch/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Backend = &Rend3DGL{}

// Rend3DGL is the OpenGL 4.1 core renderer backend.
//
// It keeps a copy of the bound program, texture unit, vertex array and array buffer so that
// querying them doesn't stall on glGet calls. Code that changes those bindings with gl calls
// directly must call SyncState afterwards.
type Rend3DGL struct {
	BoundProgramId     uint32
	BoundTexUnit       uint32
	BoundVaoId         uint32
	BoundArrayBufferId uint32

	vaoSupport bool
}

// SyncState reads the bindings tracked by the renderer back from OpenGL
func (r *Rend3DGL) SyncState() {

	var v int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &v)
	r.BoundProgramId = uint32(v)

	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &v)
	r.BoundTexUnit = uint32(v) - gl.TEXTURE0

	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &v)
	r.BoundVaoId = uint32(v)

	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &v)
	r.BoundArrayBufferId = uint32(v)
}

func (r *Rend3DGL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (r *Rend3DGL) DeleteBuffer(id uint32) {

	if id == 0 {
		return
	}

	gl.DeleteBuffers(1, &id)

	// Deleting a bound buffer unbinds it
	if r.BoundArrayBufferId == id {
		r.BoundArrayBufferId = 0
	}
}

func (r *Rend3DGL) BindBuffer(target buffers.BufTarget, id uint32) {

	if target == buffers.BufTarget_Array {
		r.BoundArrayBufferId = id
	}

	gl.BindBuffer(bufTargetToGL(target), id)
}

func (r *Rend3DGL) BufferDataFloat32(target buffers.BufTarget, values []float32, usage buffers.BufUsage) {

	if len(values) == 0 {
		gl.BufferData(bufTargetToGL(target), 0, nil, bufUsageToGL(usage))
		return
	}

	gl.BufferData(bufTargetToGL(target), len(values)*4, gl.Ptr(&values[0]), bufUsageToGL(usage))
}

func (r *Rend3DGL) BufferDataUint32(target buffers.BufTarget, values []uint32, usage buffers.BufUsage) {

	if len(values) == 0 {
		gl.BufferData(bufTargetToGL(target), 0, nil, bufUsageToGL(usage))
		return
	}

	gl.BufferData(bufTargetToGL(target), len(values)*4, gl.Ptr(&values[0]), bufUsageToGL(usage))
}

func (r *Rend3DGL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (r *Rend3DGL) DeleteVertexArray(id uint32) {

	if id == 0 {
		return
	}

	gl.DeleteVertexArrays(1, &id)
	if r.BoundVaoId == id {
		r.BoundVaoId = 0
	}
}

func (r *Rend3DGL) BindVertexArray(id uint32) {
	r.BoundVaoId = id
	gl.BindVertexArray(id)
}

func (r *Rend3DGL) EnableVertexAttribArray(loc uint32) {
	gl.EnableVertexAttribArray(loc)
}

func (r *Rend3DGL) DisableVertexAttribArray(loc uint32) {
	gl.DisableVertexAttribArray(loc)
}

func (r *Rend3DGL) VertexAttribPointer(loc uint32, elementType buffers.ElementType, stride int32, offset int) {

	if elementType.IsInteger() {
		gl.VertexAttribIPointerWithOffset(loc, elementType.CompCount(), elementTypeToGL(elementType), stride, uintptr(offset))
		return
	}

	gl.VertexAttribPointerWithOffset(loc, elementType.CompCount(), elementTypeToGL(elementType), false, stride, uintptr(offset))
}

func (r *Rend3DGL) VertexAttribDivisor(loc uint32, divisor uint32) {
	gl.VertexAttribDivisor(loc, divisor)
}

func (r *Rend3DGL) SupportsVertexArrays() bool {
	return r.vaoSupport
}

func (r *Rend3DGL) ActiveProgram() uint32 {
	return r.BoundProgramId
}

func (r *Rend3DGL) ActiveTextureUnit() uint32 {
	return r.BoundTexUnit
}

func (r *Rend3DGL) BoundVertexArray() uint32 {
	return r.BoundVaoId
}

func (r *Rend3DGL) BoundArrayBuffer() uint32 {
	return r.BoundArrayBufferId
}

func (r *Rend3DGL) UseProgram(id uint32) {

	if r.BoundProgramId == id {
		return
	}

	r.BoundProgramId = id
	gl.UseProgram(id)
}

func (r *Rend3DGL) ActiveTexture(unit uint32) {

	if r.BoundTexUnit == unit {
		return
	}

	r.BoundTexUnit = unit
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (r *Rend3DGL) BindTexture(target renderer.TextureTarget, id uint32) {
	gl.BindTexture(textureTargetToGL(target), id)
}

func (r *Rend3DGL) SetUniformInt32(progId uint32, loc int32, val int32) {
	gl.ProgramUniform1i(progId, loc, val)
}

func (r *Rend3DGL) SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4) {
	gl.ProgramUniform4fv(progId, loc, 1, &val.Data[0])
}

func (r *Rend3DGL) SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(progId, loc, 1, false, &val.Data[0][0])
}

func (r *Rend3DGL) DrawArrays(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (r *Rend3DGL) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (r *Rend3DGL) DrawArraysInstanced(first, count, instanceCount int32) {
	gl.DrawArraysInstanced(gl.TRIANGLES, first, count, instanceCount)
}

func (r *Rend3DGL) DrawElementsInstanced(count, instanceCount int32) {
	gl.DrawElementsInstanced(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0), instanceCount)
}

// NewRend3DGL must be called after OpenGL is initialized on the current thread
func NewRend3DGL() *Rend3DGL {

	r := &Rend3DGL{}

	// Vertex array objects are core since OpenGL 3.0
	var major int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	r.vaoSupport = major >= 3

	r.SyncState()
	return r
}
