package meshes

import (
	"github.com/bloeys/nbatch/buffers"
)

type fakeAttrib struct {
	buffer      uint32
	elementType buffers.ElementType
	enabled     bool
	divisor     uint32
}

type fakeVao struct {
	attribs      map[uint32]fakeAttrib
	indexBuffer  uint32
	wasDeleted   bool
	deletedCount int
}

// fakeDevice tracks just enough GL-like state to check what meshes do to the GPU
type fakeDevice struct {
	lastId uint32

	// failVaos makes GenVertexArray return 0
	failVaos bool

	vaos    map[uint32]*fakeVao
	buffers map[uint32]int

	deletedBuffers map[uint32]int
	boundVao       uint32
	boundArray     uint32
}

var _ buffers.Device = &fakeDevice{}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		vaos:           map[uint32]*fakeVao{},
		buffers:        map[uint32]int{},
		deletedBuffers: map[uint32]int{},
	}
}

func (d *fakeDevice) GenBuffer() uint32 {
	d.lastId++
	d.buffers[d.lastId] = 0
	return d.lastId
}

func (d *fakeDevice) DeleteBuffer(id uint32) {
	delete(d.buffers, id)
	d.deletedBuffers[id]++
}

func (d *fakeDevice) BindBuffer(target buffers.BufTarget, id uint32) {

	if target == buffers.BufTarget_Array {
		d.boundArray = id
		return
	}

	if vao, ok := d.vaos[d.boundVao]; ok {
		vao.indexBuffer = id
	}
}

func (d *fakeDevice) BufferDataFloat32(target buffers.BufTarget, values []float32, usage buffers.BufUsage) {
	if target == buffers.BufTarget_Array {
		d.buffers[d.boundArray] = len(values)
	}
}

func (d *fakeDevice) BufferDataUint32(target buffers.BufTarget, values []uint32, usage buffers.BufUsage) {
	if vao, ok := d.vaos[d.boundVao]; ok {
		d.buffers[vao.indexBuffer] = len(values)
	}
}

func (d *fakeDevice) GenVertexArray() uint32 {

	if d.failVaos {
		return 0
	}

	d.lastId++
	d.vaos[d.lastId] = &fakeVao{attribs: map[uint32]fakeAttrib{}}
	return d.lastId
}

func (d *fakeDevice) DeleteVertexArray(id uint32) {
	if vao, ok := d.vaos[id]; ok {
		vao.wasDeleted = true
		vao.deletedCount++
	}
}

func (d *fakeDevice) BindVertexArray(id uint32) {
	d.boundVao = id
}

func (d *fakeDevice) EnableVertexAttribArray(loc uint32) {
	a := d.vaos[d.boundVao].attribs[loc]
	a.enabled = true
	d.vaos[d.boundVao].attribs[loc] = a
}

func (d *fakeDevice) DisableVertexAttribArray(loc uint32) {
	a := d.vaos[d.boundVao].attribs[loc]
	a.enabled = false
	d.vaos[d.boundVao].attribs[loc] = a
}

func (d *fakeDevice) VertexAttribPointer(loc uint32, elementType buffers.ElementType, stride int32, offset int) {
	a := d.vaos[d.boundVao].attribs[loc]
	a.buffer = d.boundArray
	a.elementType = elementType
	d.vaos[d.boundVao].attribs[loc] = a
}

func (d *fakeDevice) VertexAttribDivisor(loc uint32, divisor uint32) {
	a := d.vaos[d.boundVao].attribs[loc]
	a.divisor = divisor
	d.vaos[d.boundVao].attribs[loc] = a
}
