package renderer

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/buffers"
)

type mockAttrib struct {
	enabled     bool
	buffer      uint32
	elementType buffers.ElementType
	stride      int32
	offset      int
	divisor     uint32
}

type mockVao struct {
	attribs     map[uint32]mockAttrib
	indexBuffer uint32
}

type mockBuffer struct {
	floats []float32
	uints  []uint32
	usage  buffers.BufUsage
}

type uniformKey struct {
	prog uint32
	loc  int32
}

type drawCall struct {
	name      string
	first     int32
	count     int32
	instances int32
	program   uint32
	vao       uint32

	// attribs is a copy of the vao attributes at the time of the draw
	attribs map[uint32]mockAttrib
}

// recordingBackend keeps GL-like state and records every call made to it
type recordingBackend struct {
	noVaos bool
	lastId uint32

	calls []string
	draws []drawCall

	buffers        map[uint32]*mockBuffer
	deletedBuffers map[uint32]*mockBuffer
	vaos           map[uint32]*mockVao

	program     uint32
	textureUnit uint32
	vao         uint32
	arrayBuffer uint32
	textures    map[uint32]map[TextureTarget]uint32

	int32Unifs map[uniformKey]int32
	vec4Unifs  map[uniformKey]gglm.Vec4
	mat4Unifs  map[uniformKey][]gglm.Mat4
}

var _ Backend = &recordingBackend{}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		buffers:        map[uint32]*mockBuffer{},
		deletedBuffers: map[uint32]*mockBuffer{},
		vaos:           map[uint32]*mockVao{},
		textures:       map[uint32]map[TextureTarget]uint32{},
		int32Unifs:     map[uniformKey]int32{},
		vec4Unifs:      map[uniformKey]gglm.Vec4{},
		mat4Unifs:      map[uniformKey][]gglm.Mat4{},
	}
}

func (r *recordingBackend) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingBackend) countCalls(prefix string) int {

	n := 0
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}

	return n
}

func (r *recordingBackend) boundVao() *mockVao {
	return r.vaos[r.vao]
}

func (r *recordingBackend) GenBuffer() uint32 {
	r.lastId++
	r.buffers[r.lastId] = &mockBuffer{}
	r.record("GenBuffer")
	return r.lastId
}

func (r *recordingBackend) DeleteBuffer(id uint32) {
	r.deletedBuffers[id] = r.buffers[id]
	delete(r.buffers, id)
	r.record("DeleteBuffer(%d)", id)
}

func (r *recordingBackend) BindBuffer(target buffers.BufTarget, id uint32) {

	r.record("BindBuffer(%d, %d)", target, id)
	if target == buffers.BufTarget_Array {
		r.arrayBuffer = id
		return
	}

	if vao := r.boundVao(); vao != nil {
		vao.indexBuffer = id
	}
}

func (r *recordingBackend) BufferDataFloat32(target buffers.BufTarget, values []float32, usage buffers.BufUsage) {

	r.record("BufferDataFloat32(%d, %d)", target, len(values))
	if buf, ok := r.buffers[r.arrayBuffer]; ok && target == buffers.BufTarget_Array {
		buf.floats = append([]float32(nil), values...)
		buf.usage = usage
	}
}

func (r *recordingBackend) BufferDataUint32(target buffers.BufTarget, values []uint32, usage buffers.BufUsage) {

	r.record("BufferDataUint32(%d, %d)", target, len(values))
	if vao := r.boundVao(); vao != nil {
		if buf, ok := r.buffers[vao.indexBuffer]; ok {
			buf.uints = append([]uint32(nil), values...)
			buf.usage = usage
		}
	}
}

func (r *recordingBackend) GenVertexArray() uint32 {
	r.lastId++
	r.vaos[r.lastId] = &mockVao{attribs: map[uint32]mockAttrib{}}
	r.record("GenVertexArray")
	return r.lastId
}

func (r *recordingBackend) DeleteVertexArray(id uint32) {
	delete(r.vaos, id)
	r.record("DeleteVertexArray(%d)", id)
}

func (r *recordingBackend) BindVertexArray(id uint32) {
	r.vao = id
	r.record("BindVertexArray(%d)", id)
}

func (r *recordingBackend) updateAttrib(loc uint32, f func(a *mockAttrib)) {

	vao := r.boundVao()
	if vao == nil {
		return
	}

	a := vao.attribs[loc]
	f(&a)
	vao.attribs[loc] = a
}

func (r *recordingBackend) EnableVertexAttribArray(loc uint32) {
	r.record("EnableVertexAttribArray(%d)", loc)
	r.updateAttrib(loc, func(a *mockAttrib) { a.enabled = true })
}

func (r *recordingBackend) DisableVertexAttribArray(loc uint32) {
	r.record("DisableVertexAttribArray(%d)", loc)
	r.updateAttrib(loc, func(a *mockAttrib) { a.enabled = false })
}

func (r *recordingBackend) VertexAttribPointer(loc uint32, elementType buffers.ElementType, stride int32, offset int) {

	r.record("VertexAttribPointer(%d, %v, %d, %d)", loc, elementType, stride, offset)
	r.updateAttrib(loc, func(a *mockAttrib) {
		a.buffer = r.arrayBuffer
		a.elementType = elementType
		a.stride = stride
		a.offset = offset
	})
}

func (r *recordingBackend) VertexAttribDivisor(loc uint32, divisor uint32) {
	r.record("VertexAttribDivisor(%d, %d)", loc, divisor)
	r.updateAttrib(loc, func(a *mockAttrib) { a.divisor = divisor })
}

func (r *recordingBackend) SupportsVertexArrays() bool {
	return !r.noVaos
}

func (r *recordingBackend) ActiveProgram() uint32 {
	return r.program
}

func (r *recordingBackend) ActiveTextureUnit() uint32 {
	return r.textureUnit
}

func (r *recordingBackend) BoundVertexArray() uint32 {
	return r.vao
}

func (r *recordingBackend) BoundArrayBuffer() uint32 {
	return r.arrayBuffer
}

func (r *recordingBackend) UseProgram(id uint32) {
	r.program = id
	r.record("UseProgram(%d)", id)
}

func (r *recordingBackend) ActiveTexture(unit uint32) {
	r.textureUnit = unit
	r.record("ActiveTexture(%d)", unit)
}

func (r *recordingBackend) BindTexture(target TextureTarget, id uint32) {

	r.record("BindTexture(%v, %d)", target, id)
	if r.textures[r.textureUnit] == nil {
		r.textures[r.textureUnit] = map[TextureTarget]uint32{}
	}

	r.textures[r.textureUnit][target] = id
}

func (r *recordingBackend) SetUniformInt32(progId uint32, loc int32, val int32) {
	r.record("SetUniformInt32(%d, %d, %d)", progId, loc, val)
	r.int32Unifs[uniformKey{progId, loc}] = val
}

func (r *recordingBackend) SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4) {
	r.record("SetUniformVec4(%d, %d)", progId, loc)
	r.vec4Unifs[uniformKey{progId, loc}] = *val
}

func (r *recordingBackend) SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4) {
	r.record("SetUniformMat4(%d, %d)", progId, loc)
	key := uniformKey{progId, loc}
	r.mat4Unifs[key] = append(r.mat4Unifs[key], *val)
}

func (r *recordingBackend) draw(name string, first, count, instances int32) {

	r.record("%s(%d, %d, %d)", name, first, count, instances)

	attribs := map[uint32]mockAttrib{}
	if vao := r.boundVao(); vao != nil {
		for loc, a := range vao.attribs {
			attribs[loc] = a
		}
	}

	r.draws = append(r.draws, drawCall{
		attribs:   attribs,
		name:      name,
		first:     first,
		count:     count,
		instances: instances,
		program:   r.program,
		vao:       r.vao,
	})
}

func (r *recordingBackend) DrawArrays(first, count int32) {
	r.draw("DrawArrays", first, count, 1)
}

func (r *recordingBackend) DrawElements(count int32) {
	r.draw("DrawElements", 0, count, 1)
}

func (r *recordingBackend) DrawArraysInstanced(first, count, instanceCount int32) {
	r.draw("DrawArraysInstanced", first, count, instanceCount)
}

func (r *recordingBackend) DrawElementsInstanced(count, instanceCount int32) {
	r.draw("DrawElementsInstanced", 0, count, instanceCount)
}
