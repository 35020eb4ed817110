package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/nbatch/buffers"
)

var (
	ErrMeshUnloaded  = errors.New("mesh was unloaded")
	ErrNoVertexArray = errors.New("device failed to create a vertex array")
)

// Fixed vertex attribute locations of an uploaded mesh. Shaders drawing meshes should use:
//
//	layout(location=0) in vec3 vertPosIn;
//	layout(location=1) in vec3 vertNormalIn;
//	layout(location=2) in vec2 vertUV0In;
//	layout(location=3) in vec4 vertTangentIn;
//	layout(location=4) in vec4 vertColorIn;
//	layout(location=5) in vec2 vertUV1In;
//	layout(location=6) in vec4 vertBoneIdsIn;
//	layout(location=7) in vec4 vertBoneWeightsIn;
//
// Optional attributes that a mesh doesn't have are left disabled, so the shader reads the current attribute value.
const (
	AttribLoc_Position uint32 = iota
	AttribLoc_Normal
	AttribLoc_TexCoord
	AttribLoc_Tangent
	AttribLoc_Color
	AttribLoc_TexCoord2
	AttribLoc_BoneIds
	AttribLoc_BoneWeights

	// AttribLoc_Count is the first location free for per instance attributes
	AttribLoc_Count
)

// Mesh holds the vertex data of a mesh on the CPU, and after Upload, on the GPU.
//
// All per-vertex arrays that are set have exactly VertexCount entries (an entry being 3 floats for a position, 4 bytes for a color, etc).
// If Indices is set, it has TriangleCount*3 indices into the vertex arrays, otherwise
// every 3 consecutive vertices make a triangle.
//
// The mesh owns all of its arrays and GPU objects, which are released by Unload.
type Mesh struct {
	Name string

	VertexCount   int32
	TriangleCount int32

	// Vertices are xyz positions
	Vertices  []float32
	Normals   []float32
	TexCoords []float32

	// Optional
	TexCoords2 []float32
	// Tangents are xyzw, where w is the handedness of the bitangent
	Tangents []float32
	// Colors are rgba
	Colors  []uint8
	Indices []uint32

	// Skinning data, 4 bones per vertex. Uploaded but never animated
	BoneIds     []uint8
	BoneWeights []float32

	// Vao is zero until the mesh is uploaded
	Vao buffers.VertexArray

	unloaded bool
}

func (m *Mesh) IsIndexed() bool {
	return len(m.Indices) > 0
}

func (m *Mesh) IsUploaded() bool {
	return m.Vao.Id != 0
}

func (m *Mesh) IsUnloaded() bool {
	return m.unloaded
}

// HasAttrib returns true if the mesh has data for the fixed attribute location, which means
// an uploaded mesh has a buffer bound there
func (m *Mesh) HasAttrib(loc uint32) bool {

	switch loc {
	case AttribLoc_Position:
		return len(m.Vertices) > 0
	case AttribLoc_Normal:
		return len(m.Normals) > 0
	case AttribLoc_TexCoord:
		return len(m.TexCoords) > 0
	case AttribLoc_Tangent:
		return len(m.Tangents) > 0
	case AttribLoc_Color:
		return len(m.Colors) > 0
	case AttribLoc_TexCoord2:
		return len(m.TexCoords2) > 0
	case AttribLoc_BoneIds:
		return len(m.BoneIds) > 0
	case AttribLoc_BoneWeights:
		return len(m.BoneWeights) > 0
	default:
		return false
	}
}

// ElementCount is the number of vertices (or indices if indexed) that make up the mesh triangles
func (m *Mesh) ElementCount() int32 {
	return m.TriangleCount * 3
}

// Validate returns an error describing the first broken invariant of the mesh arrays
func (m *Mesh) Validate() error {

	if m.unloaded {
		return ErrMeshUnloaded
	}

	if m.VertexCount < 0 || m.TriangleCount < 0 {
		return fmt.Errorf("mesh '%s' has negative counts. VertexCount=%d; TriangleCount=%d", m.Name, m.VertexCount, m.TriangleCount)
	}

	vc := int(m.VertexCount)
	if len(m.Vertices) != vc*3 {
		return fmt.Errorf("mesh '%s' has %d position floats but expected %d", m.Name, len(m.Vertices), vc*3)
	}

	optionalArrs := []struct {
		name        string
		len         int
		compsPerVtx int
	}{
		{"normal", len(m.Normals), 3},
		{"texcoord", len(m.TexCoords), 2},
		{"texcoord2", len(m.TexCoords2), 2},
		{"tangent", len(m.Tangents), 4},
		{"color", len(m.Colors), 4},
		{"bone id", len(m.BoneIds), 4},
		{"bone weight", len(m.BoneWeights), 4},
	}

	for _, arr := range optionalArrs {
		if arr.len != 0 && arr.len != vc*arr.compsPerVtx {
			return fmt.Errorf("mesh '%s' has %d %s components but expected %d", m.Name, arr.len, arr.name, vc*arr.compsPerVtx)
		}
	}

	if !m.IsIndexed() {

		if int(m.TriangleCount)*3 != vc {
			return fmt.Errorf("non-indexed mesh '%s' has %d vertices which can't make %d triangles", m.Name, vc, m.TriangleCount)
		}

		return nil
	}

	if len(m.Indices) != int(m.TriangleCount)*3 {
		return fmt.Errorf("mesh '%s' has %d indices but expected %d", m.Name, len(m.Indices), m.TriangleCount*3)
	}

	for i, index := range m.Indices {
		if index >= uint32(vc) {
			return fmt.Errorf("mesh '%s' index %d is %d which is out of range of the %d vertices", m.Name, i, index, vc)
		}
	}

	return nil
}

// Upload creates the vertex array of the mesh and one buffer per attribute the mesh has.
// Calling it on an already uploaded mesh does nothing.
func (m *Mesh) Upload(dev buffers.Device, dynamic bool) error {

	if m.unloaded {
		return ErrMeshUnloaded
	}

	if m.IsUploaded() {
		return nil
	}

	if err := m.Validate(); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}

	usage := buffers.BufUsage_Static_Draw
	if dynamic {
		usage = buffers.BufUsage_Dynamic_Draw
	}

	m.Vao = buffers.NewVertexArray(dev)
	if m.Vao.Id == 0 {
		return fmt.Errorf("failed to upload mesh '%s': %w", m.Name, ErrNoVertexArray)
	}

	m.addAttrib(dev, m.Vertices, buffers.DataTypeVec3, AttribLoc_Position, usage)
	m.addAttrib(dev, m.Normals, buffers.DataTypeVec3, AttribLoc_Normal, usage)
	m.addAttrib(dev, m.TexCoords, buffers.DataTypeVec2, AttribLoc_TexCoord, usage)
	m.addAttrib(dev, m.Tangents, buffers.DataTypeVec4, AttribLoc_Tangent, usage)
	m.addAttrib(dev, normalizedBytes(m.Colors), buffers.DataTypeVec4, AttribLoc_Color, usage)
	m.addAttrib(dev, m.TexCoords2, buffers.DataTypeVec2, AttribLoc_TexCoord2, usage)
	m.addAttrib(dev, bytesToFloats(m.BoneIds), buffers.DataTypeVec4, AttribLoc_BoneIds, usage)
	m.addAttrib(dev, m.BoneWeights, buffers.DataTypeVec4, AttribLoc_BoneWeights, usage)

	if m.IsIndexed() {
		ib := buffers.NewIndexBuffer(dev)
		m.Vao.SetIndexBuffer(dev, ib)
		m.Vao.IndexBuffer.SetData(dev, m.Indices, usage)
	}

	// This is needed so that if you upload meshes one after the other the
	// following mesh doesn't attach its buffers to this vao
	m.Vao.UnBind(dev)

	return nil
}

func (m *Mesh) addAttrib(dev buffers.Device, data []float32, elementType buffers.ElementType, loc uint32, usage buffers.BufUsage) {

	if len(data) == 0 {
		return
	}

	vbo := buffers.NewVertexBuffer(dev, buffers.Element{ElementType: elementType})
	vbo.SetData(dev, data, usage)
	m.Vao.AddVertexBuffer(dev, vbo, loc, 0)
}

// Unload frees all the GPU objects and arrays of the mesh. Attributes that were never
// set or a mesh that was never uploaded are fine, and unloading twice does nothing.
//
// An unloaded mesh can't be uploaded or drawn again.
func (m *Mesh) Unload(dev buffers.Device) {

	if m.unloaded {
		return
	}

	m.Vao.Delete(dev)

	m.Vertices = nil
	m.Normals = nil
	m.TexCoords = nil
	m.TexCoords2 = nil
	m.Tangents = nil
	m.Colors = nil
	m.Indices = nil
	m.BoneIds = nil
	m.BoneWeights = nil

	m.VertexCount = 0
	m.TriangleCount = 0
	m.unloaded = true
}

func normalizedBytes(b []uint8) []float32 {

	if len(b) == 0 {
		return nil
	}

	out := make([]float32, len(b))
	for i := 0; i < len(b); i++ {
		out[i] = float32(b[i]) / 255
	}

	return out
}

func bytesToFloats(b []uint8) []float32 {

	if len(b) == 0 {
		return nil
	}

	out := make([]float32, len(b))
	for i := 0; i < len(b); i++ {
		out[i] = float32(b[i])
	}

	return out
}
