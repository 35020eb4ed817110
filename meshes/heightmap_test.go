package meshes

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"golang.org/x/image/bmp"
)

const epsilon = 1e-5

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestGenHeightmapCounts(t *testing.T) {

	for edge := 2; edge <= 9; edge++ {

		heights := make([]float32, edge*edge)
		m, err := GenHeightmap(edge, heights)
		if err != nil {
			t.Fatalf("GenHeightmap(%d) err = %v", edge, err)
		}

		cells := (edge - 1) * (edge - 1)
		if m.TriangleCount != int32(2*cells) {
			t.Errorf("edge=%d TriangleCount = %d, want %d", edge, m.TriangleCount, 2*cells)
		}

		if m.VertexCount != int32(6*cells) {
			t.Errorf("edge=%d VertexCount = %d, want %d", edge, m.VertexCount, 6*cells)
		}

		if m.IsIndexed() {
			t.Errorf("edge=%d mesh has %d indices, want none", edge, len(m.Indices))
		}

		if err := m.Validate(); err != nil {
			t.Errorf("edge=%d Validate() = %v", edge, err)
		}
	}
}

func TestGenHeightmapSmallEdge(t *testing.T) {

	for _, edge := range []int{-1, 0, 1} {

		m, err := GenHeightmap(edge, nil)
		if err != nil {
			t.Fatalf("GenHeightmap(%d) err = %v, want nil", edge, err)
		}

		if m.TriangleCount != 0 || m.VertexCount != 0 {
			t.Errorf("GenHeightmap(%d) counts = (%d, %d), want zeros", edge, m.TriangleCount, m.VertexCount)
		}

		if len(m.Vertices) != 0 || len(m.Normals) != 0 || len(m.TexCoords) != 0 {
			t.Errorf("GenHeightmap(%d) arrays are not empty", edge)
		}
	}
}

func TestGenHeightmapTooFewHeights(t *testing.T) {

	_, err := GenHeightmap(3, make([]float32, 8))
	if !errors.Is(err, ErrHeightFieldTooSmall) {
		t.Errorf("GenHeightmap(3, 8 heights) err = %v, want %v", err, ErrHeightFieldTooSmall)
	}
}

func TestGenHeightmapFlatField(t *testing.T) {

	const h = 3.5
	edge := 5
	heights := make([]float32, edge*edge)
	for i := range heights {
		heights[i] = h
	}

	m, err := GenHeightmap(edge, heights)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < int(m.VertexCount); i++ {
		if y := m.Vertices[i*3+1]; y != h {
			t.Fatalf("vertex %d y = %v, want %v", i, y, h)
		}

		// Flat ground faces straight up
		if nx, ny, nz := m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]; !almostEqual(nx, 0) || !almostEqual(ny, 1) || !almostEqual(nz, 0) {
			t.Fatalf("vertex %d normal = (%v, %v, %v), want (0, 1, 0)", i, nx, ny, nz)
		}
	}
}

func TestGenHeightmapCoordinateMapping(t *testing.T) {

	heights := []float32{
		0, 1, 2,
		1, 2, 3,
		2, 3, 4,
	}

	m, err := GenHeightmap(3, heights)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, z  float32
		wantY float32
	}{
		{0, 0, 0},
		{2, 2, 4},
		{1, 0, 1},
		{0, 1, 1},
		{2, 0, 2},
		{1, 1, 2},
	}

	for _, tt := range tests {

		found := 0
		for i := 0; i < int(m.VertexCount); i++ {

			x, y, z := m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]
			if x != tt.x || z != tt.z {
				continue
			}

			found++
			if y != tt.wantY {
				t.Errorf("vertex at grid (%v,%v) = (%v,%v,%v), want (%v,%v,%v)", tt.x, tt.z, x, y, z, tt.x, tt.wantY, tt.z)
			}
		}

		if found == 0 {
			t.Errorf("no vertex at grid (%v,%v)", tt.x, tt.z)
		}
	}
}

func TestGenHeightmapTexCoords(t *testing.T) {

	edge := 4
	m, err := GenHeightmap(edge, make([]float32, edge*edge))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < int(m.VertexCount); i++ {

		x, z := m.Vertices[i*3], m.Vertices[i*3+2]
		u, v := m.TexCoords[i*2], m.TexCoords[i*2+1]

		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("vertex %d texcoord (%v, %v) out of [0,1]", i, u, v)
		}

		if x == 0 && z == 0 && (u != 0 || v != 0) {
			t.Errorf("texcoord at grid (0,0) = (%v,%v), want (0,0)", u, v)
		}

		if x == float32(edge-1) && z == float32(edge-1) && (u != 1 || v != 1) {
			t.Errorf("texcoord at grid (%d,%d) = (%v,%v), want (1,1)", edge-1, edge-1, u, v)
		}

		if !almostEqual(u, x/float32(edge-1)) || !almostEqual(v, z/float32(edge-1)) {
			t.Errorf("vertex %d texcoord (%v,%v) doesn't match position (%v,%v)", i, u, v, x, z)
		}
	}
}

func triangleFaceNormal(m *Mesh, tri int) [3]float64 {

	p := func(v int) [3]float64 {
		i := (tri*3 + v) * 3
		return [3]float64{float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2])}
	}

	v0, v1, v2 := p(0), p(1), p(2)
	e1 := [3]float64{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	e2 := [3]float64{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}

	c := [3]float64{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}

	l := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
	return [3]float64{c[0] / l, c[1] / l, c[2] / l}
}

func TestGenHeightmapFlatNormals(t *testing.T) {

	edge := 6
	heights := make([]float32, edge*edge)
	for i := range heights {
		heights[i] = float32(math.Sin(float64(i)*1.7)) * 2
	}

	m, err := GenHeightmap(edge, heights)
	if err != nil {
		t.Fatal(err)
	}

	for tri := 0; tri < int(m.TriangleCount); tri++ {

		want := triangleFaceNormal(&m, tri)
		for v := 0; v < 3; v++ {

			i := (tri*3 + v) * 3
			got := [3]float32{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
			for c := 0; c < 3; c++ {
				if !almostEqual(got[c], float32(want[c])) {
					t.Fatalf("triangle %d vertex %d normal = %v, want %v", tri, v, got, want)
				}
			}
		}

		// Heightmaps always face up
		if want[1] <= 0 {
			t.Errorf("triangle %d normal %v points down", tri, want)
		}
	}
}

func TestGenHeightmapNormalsNotSmoothed(t *testing.T) {

	m, err := GenHeightmap(2, []float32{0, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}

	n0 := [3]float32{m.Normals[0], m.Normals[1], m.Normals[2]}
	n1 := [3]float32{m.Normals[9], m.Normals[10], m.Normals[11]}

	if n0 == n1 {
		t.Errorf("triangles across the shared edge have the same normal %v, want different", n0)
	}

	want1 := float32(1 / math.Sqrt(3))
	if !almostEqual(n1[0], -want1) || !almostEqual(n1[1], want1) || !almostEqual(n1[2], -want1) {
		t.Errorf("second triangle normal = %v, want (%v, %v, %v)", n1, -want1, want1, -want1)
	}
}

func TestGenHeightmapScaled(t *testing.T) {

	edge := 3
	heights := []float32{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}

	m, err := GenHeightmapScaled(edge, heights, gglm.NewVec3(10, 5, 20))
	if err != nil {
		t.Fatal(err)
	}

	var maxX, maxY, maxZ float32
	for i := 0; i < int(m.VertexCount); i++ {
		maxX = max(maxX, m.Vertices[i*3])
		maxY = max(maxY, m.Vertices[i*3+1])
		maxZ = max(maxZ, m.Vertices[i*3+2])
	}

	if maxX != 10 || maxY != 5 || maxZ != 20 {
		t.Errorf("scaled heightmap extents = (%v,%v,%v), want (10,5,20)", maxX, maxY, maxZ)
	}
}

func writeGray(t *testing.T, name string, img *image.Gray, encode func(f *os.File, img image.Image) error) string {

	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}

	return p
}

func TestLoadHeightField(t *testing.T) {

	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(2, 0, color.Gray{Y: 255})
	img.SetGray(1, 2, color.Gray{Y: 255})

	encoders := map[string]func(f *os.File, img image.Image) error{
		"hf.png": func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"hf.bmp": func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
	}

	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {

			edge, heights, err := LoadHeightField(writeGray(t, name, img, enc), 10)
			if err != nil {
				t.Fatal(err)
			}

			if edge != 3 || len(heights) != 9 {
				t.Fatalf("LoadHeightField() edge=%d len=%d, want 3 and 9", edge, len(heights))
			}

			if !almostEqual(heights[0], 0) || !almostEqual(heights[2], 10) || !almostEqual(heights[1+2*3], 10) {
				t.Errorf("LoadHeightField() heights = %v", heights)
			}
		})
	}
}

func TestHeightFieldFromImageNotSquare(t *testing.T) {

	_, _, err := HeightFieldFromImage(image.NewGray(image.Rect(0, 0, 4, 2)), 1)
	if !errors.Is(err, ErrImageNotSquare) {
		t.Errorf("HeightFieldFromImage(4x2) err = %v, want %v", err, ErrImageNotSquare)
	}
}
