package rend3dgl

import (
	"github.com/bloeys/nbatch/assert"
	"github.com/bloeys/nbatch/buffers"
	"github.com/bloeys/nbatch/renderer"
	"github.com/bloeys/nbatch/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func bufTargetToGL(t buffers.BufTarget) uint32 {

	switch t {
	case buffers.BufTarget_Array:
		return gl.ARRAY_BUFFER
	case buffers.BufTarget_ElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	}

	assert.T(false, "Unknown buffer target '%v'", t)
	return 0
}

func bufUsageToGL(b buffers.BufUsage) uint32 {

	switch b {
	case buffers.BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case buffers.BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case buffers.BufUsage_Stream_Draw:
		return gl.STREAM_DRAW

	case buffers.BufUsage_Static_Read:
		return gl.STATIC_READ
	case buffers.BufUsage_Dynamic_Read:
		return gl.DYNAMIC_READ
	case buffers.BufUsage_Stream_Read:
		return gl.STREAM_READ

	case buffers.BufUsage_Static_Copy:
		return gl.STATIC_COPY
	case buffers.BufUsage_Dynamic_Copy:
		return gl.DYNAMIC_COPY
	case buffers.BufUsage_Stream_Copy:
		return gl.STREAM_COPY
	}

	assert.T(false, "Unknown buffer usage '%v'", b)
	return 0
}

func elementTypeToGL(dt buffers.ElementType) uint32 {

	switch dt {
	case buffers.DataTypeUint32:
		return gl.UNSIGNED_INT
	case buffers.DataTypeInt32:
		return gl.INT

	case buffers.DataTypeFloat32,
		buffers.DataTypeVec2, buffers.DataTypeVec3, buffers.DataTypeVec4,
		buffers.DataTypeMat2, buffers.DataTypeMat3, buffers.DataTypeMat4:
		return gl.FLOAT
	}

	assert.T(false, "Unknown data type passed. DataType '%v'", dt)
	return 0
}

func textureTargetToGL(t renderer.TextureTarget) uint32 {

	switch t {
	case renderer.TextureTarget_2D:
		return gl.TEXTURE_2D
	case renderer.TextureTarget_Cube:
		return gl.TEXTURE_CUBE_MAP
	}

	assert.T(false, "Unknown texture target '%v'", t)
	return 0
}

func shaderTypeToGL(t shaders.ShaderType) uint32 {

	switch t {
	case shaders.ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case shaders.ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case shaders.ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	}

	assert.T(false, "Unknown shader type '%v'", t)
	return 0
}
