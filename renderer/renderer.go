package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/buffers"
)

type TextureTarget int32

const (
	TextureTarget_Unknown TextureTarget = iota
	TextureTarget_2D
	TextureTarget_Cube
)

func (t TextureTarget) String() string {

	switch t {
	case TextureTarget_2D:
		return "2D"
	case TextureTarget_Cube:
		return "Cube"
	default:
		return "Unknown"
	}
}

// Backend is everything the batch drawers need from a graphics API.
//
// Uniform setters take the program explicitly, so they don't depend on (or change) the active program.
// Draw calls draw triangles using the bound vertex array, and the Elements variants
// use its index buffer with uint32 indices.
type Backend interface {
	buffers.Device

	// SupportsVertexArrays is false on contexts where vertex array objects can't be created,
	// in which case nothing can be drawn
	SupportsVertexArrays() bool

	// Currently bound state, used to restore it after a draw
	ActiveProgram() uint32
	ActiveTextureUnit() uint32
	BoundVertexArray() uint32
	BoundArrayBuffer() uint32

	UseProgram(id uint32)
	// ActiveTexture selects the texture unit (0, 1, 2...) that BindTexture binds to
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, id uint32)

	SetUniformInt32(progId uint32, loc int32, val int32)
	SetUniformVec4(progId uint32, loc int32, val *gglm.Vec4)
	SetUniformMat4(progId uint32, loc int32, val *gglm.Mat4)

	DrawArrays(first, count int32)
	DrawElements(count int32)
	DrawArraysInstanced(first, count, instanceCount int32)
	DrawElementsInstanced(count, instanceCount int32)
}
