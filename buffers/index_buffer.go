package buffers

import (
	"github.com/bloeys/nbatch/logging"
)

type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
}

func (ib *IndexBuffer) Bind(dev Device) {
	dev.BindBuffer(BufTarget_ElementArray, ib.Id)
}

func (ib *IndexBuffer) UnBind(dev Device) {
	dev.BindBuffer(BufTarget_ElementArray, 0)
}

func (ib *IndexBuffer) SetData(dev Device, values []uint32, usage BufUsage) {

	ib.Bind(dev)
	ib.IndexBufCount = int32(len(values))
	dev.BufferDataUint32(BufTarget_ElementArray, values, usage)
}

func (ib *IndexBuffer) Delete(dev Device) {

	if ib.Id == 0 {
		return
	}

	dev.DeleteBuffer(ib.Id)
	ib.Id = 0
	ib.IndexBufCount = 0
}

func NewIndexBuffer(dev Device) IndexBuffer {

	ib := IndexBuffer{}

	ib.Id = dev.GenBuffer()
	if ib.Id == 0 {
		logging.ErrLog.Error("Failed to create index buffer")
	}

	return ib
}
