package buffers

type BufTarget int32

const (
	BufTarget_Unknown BufTarget = iota
	BufTarget_Array
	BufTarget_ElementArray
)

// Device is the part of a rendering backend that creates, fills and destroys
// GPU buffers and vertex arrays. Buffers only ever talk to the GPU through it,
// so they can be used with any backend (or a mock in tests).
//
// Ids returned by Gen* are never zero on success. Zero means 'none' everywhere,
// so binding id zero unbinds and deleting id zero is a no-op.
type Device interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target BufTarget, id uint32)

	// BufferData* replace the contents of the buffer currently bound to target
	BufferDataFloat32(target BufTarget, values []float32, usage BufUsage)
	BufferDataUint32(target BufTarget, values []uint32, usage BufUsage)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)

	// Attribute functions apply to the bound vertex array, and VertexAttribPointer
	// sources from the buffer bound to BufTarget_Array
	EnableVertexAttribArray(loc uint32)
	DisableVertexAttribArray(loc uint32)
	VertexAttribPointer(loc uint32, elementType ElementType, stride int32, offset int)
	VertexAttribDivisor(loc uint32, divisor uint32)
}
