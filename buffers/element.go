package buffers

import (
	"github.com/bloeys/nbatch/assert"
)

// Element is one attribute inside an interleaved buffer layout (e.g. a Vec3 at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType
}

// ElementType is the type of one attribute of a buffer (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	dataTypeCount
)

type elementTypeInfo struct {
	name      string
	compCount int32
}

// All supported types have 4 byte components
const elementCompSize = 4

var elementTypeInfos = [dataTypeCount]elementTypeInfo{
	DataTypeUnknown: {"Unknown", 0},
	DataTypeUint32:  {"uint32", 1},
	DataTypeInt32:   {"int32", 1},
	DataTypeFloat32: {"float32", 1},
	DataTypeVec2:    {"Vec2", 2},
	DataTypeVec3:    {"Vec3", 3},
	DataTypeVec4:    {"Vec4", 4},
	DataTypeMat2:    {"Mat2", 2 * 2},
	DataTypeMat3:    {"Mat3", 3 * 3},
	DataTypeMat4:    {"Mat4", 4 * 4},
}

func (dt ElementType) IsValid() bool {
	return dt > DataTypeUnknown && dt < dataTypeCount
}

// IsInteger is true for types that a backend should upload as integers instead of floats
func (dt ElementType) IsInteger() bool {
	return dt == DataTypeUint32 || dt == DataTypeInt32
}

// CompSize returns the size in bytes of one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {
	assert.T(dt.IsValid(), "Unknown data type passed. DataType '%d'", dt)
	if !dt.IsValid() {
		return 0
	}

	return elementCompSize
}

// CompCount returns the number of components of the type (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {
	assert.T(dt.IsValid(), "Unknown data type passed. DataType '%d'", dt)
	if !dt.IsValid() {
		return 0
	}

	return elementTypeInfos[dt].compCount
}

// Size returns the total size in bytes (e.g. for Vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompSize() * dt.CompCount()
}

func (dt ElementType) String() string {

	if !dt.IsValid() {
		return "Unknown"
	}

	return elementTypeInfos[dt].name
}
