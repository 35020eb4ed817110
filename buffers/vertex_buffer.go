package buffers

import (
	"github.com/bloeys/nbatch/logging"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) Bind(dev Device) {
	dev.BindBuffer(BufTarget_Array, vb.Id)
}

func (vb *VertexBuffer) UnBind(dev Device) {
	dev.BindBuffer(BufTarget_Array, 0)
}

// SetData binds the buffer and replaces its contents. An empty values slice
// allocates a zero sized buffer
func (vb *VertexBuffer) SetData(dev Device, values []float32, usage BufUsage) {
	vb.Bind(dev)
	dev.BufferDataFloat32(BufTarget_Array, values, usage)
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

// Delete frees the buffer on the GPU. Deleting an already deleted buffer does nothing
func (vb *VertexBuffer) Delete(dev Device) {

	if vb.Id == 0 {
		return
	}

	dev.DeleteBuffer(vb.Id)
	vb.Id = 0
}

func NewVertexBuffer(dev Device, layout ...Element) VertexBuffer {

	vb := VertexBuffer{}

	vb.Id = dev.GenBuffer()
	if vb.Id == 0 {
		logging.ErrLog.Error("Failed to create vertex buffer")
	}

	vb.SetLayout(layout...)
	return vb
}
