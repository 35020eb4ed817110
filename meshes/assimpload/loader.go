// Package assimpload loads model files into meshes with assimp, which needs cgo.
package assimpload

import (
	"errors"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/assert"
	"github.com/bloeys/nbatch/meshes"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a new mesh regardless
	// of what post process flags are used when loading a mesh.
	//
	// Defaults to: asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace;
	// Note: the renderer draws triangles only, so triangulation must stay on
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace
)

// NewMesh loads all meshes in a model file and merges them into one indexed meshes.Mesh.
// The returned mesh is not uploaded.
func NewMesh(name, modelPath string, postProcessFlags asig.PostProcess) (meshes.Mesh, error) {

	finalPostProcessFlags := DefaultMeshLoadFlags | postProcessFlags

	scene, release, err := asig.ImportFile(modelPath, finalPostProcessFlags)
	if err != nil {
		return meshes.Mesh{}, errors.New("Failed to load model. Err: " + err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return meshes.Mesh{}, errors.New("No meshes found in file: " + modelPath)
	}

	// Optional attributes are kept if any submesh has them, and zero/white filled for the ones that don't
	hasColors := false
	hasUV1 := false
	totalVerts := 0
	totalFaces := 0
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		totalVerts += len(sceneMesh.Vertices)
		totalFaces += len(sceneMesh.Faces)

		hasColors = hasColors || (len(sceneMesh.ColorSets) > 0 && len(sceneMesh.ColorSets[0]) > 0)
		hasUV1 = hasUV1 || (len(sceneMesh.TexCoords) > 1 && len(sceneMesh.TexCoords[1]) > 0)
	}

	mesh := meshes.Mesh{
		Name:          name,
		VertexCount:   int32(totalVerts),
		TriangleCount: int32(totalFaces),
		Vertices:      make([]float32, 0, totalVerts*3),
		Normals:       make([]float32, 0, totalVerts*3),
		TexCoords:     make([]float32, 0, totalVerts*2),
		Tangents:      make([]float32, 0, totalVerts*4),
		Indices:       make([]uint32, 0, totalFaces*3),
	}

	if hasColors {
		mesh.Colors = make([]uint8, 0, totalVerts*4)
	}

	if hasUV1 {
		mesh.TexCoords2 = make([]float32, 0, totalVerts*2)
	}

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		vertCount := len(sceneMesh.Vertices)

		// Index of the first vertex of this submesh in the merged arrays
		baseVertex := uint32(len(mesh.Vertices) / 3)

		mesh.Vertices = appendV3s(mesh.Vertices, sceneMesh.Vertices, vertCount)
		mesh.Normals = appendV3s(mesh.Normals, sceneMesh.Normals, vertCount)
		mesh.TexCoords = appendV3sAsV2s(mesh.TexCoords, sceneMesh.TexCoords[0], vertCount)
		mesh.Tangents = appendTangents(mesh.Tangents, sceneMesh.Tangents, vertCount)

		if hasUV1 {
			var uv1 []gglm.Vec3
			if len(sceneMesh.TexCoords) > 1 {
				uv1 = sceneMesh.TexCoords[1]
			}
			mesh.TexCoords2 = appendV3sAsV2s(mesh.TexCoords2, uv1, vertCount)
		}

		if hasColors {
			var colorSet0 []gglm.Vec4
			if len(sceneMesh.ColorSets) > 0 {
				colorSet0 = sceneMesh.ColorSets[0]
			}
			mesh.Colors = appendColors(mesh.Colors, colorSet0, vertCount)
		}

		mesh.Indices = appendFaces(mesh.Indices, sceneMesh.Faces, baseVertex)
	}

	return mesh, nil
}

func appendV3s(out []float32, v3s []gglm.Vec3, count int) []float32 {

	if len(v3s) == 0 {
		return append(out, make([]float32, count*3)...)
	}

	for i := 0; i < count; i++ {
		out = append(out, v3s[i].Data[:]...)
	}

	return out
}

func appendV3sAsV2s(out []float32, v3s []gglm.Vec3, count int) []float32 {

	if len(v3s) == 0 {
		return append(out, make([]float32, count*2)...)
	}

	for i := 0; i < count; i++ {
		out = append(out, v3s[i].X(), v3s[i].Y())
	}

	return out
}

func appendTangents(out []float32, tangents []gglm.Vec3, count int) []float32 {

	for i := 0; i < count; i++ {

		if len(tangents) == 0 {
			out = append(out, 0, 0, 0, 1)
			continue
		}

		out = append(out, tangents[i].X(), tangents[i].Y(), tangents[i].Z(), 1)
	}

	return out
}

func appendColors(out []uint8, colors []gglm.Vec4, count int) []uint8 {

	for i := 0; i < count; i++ {

		if len(colors) == 0 {
			out = append(out, 255, 255, 255, 255)
			continue
		}

		c := &colors[i]
		out = append(out, unitToByte(c.Data[0]), unitToByte(c.Data[1]), unitToByte(c.Data[2]), unitToByte(c.Data[3]))
	}

	return out
}

func unitToByte(v float32) uint8 {

	if v <= 0 {
		return 0
	}

	if v >= 1 {
		return 255
	}

	return uint8(v*255 + 0.5)
}

func appendFaces(out []uint32, faces []asig.Face, baseVertex uint32) []uint32 {

	if len(faces) == 0 {
		return out
	}

	assert.T(len(faces[0].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[0].Indices))

	for i := 0; i < len(faces); i++ {
		out = append(out,
			baseVertex+uint32(faces[i].Indices[0]),
			baseVertex+uint32(faces[i].Indices[1]),
			baseVertex+uint32(faces[i].Indices[2]),
		)
	}

	return out
}
