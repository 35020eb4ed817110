package meshes

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders for LoadHeightField
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/bloeys/gglm/gglm"
)

var (
	ErrHeightFieldTooSmall = errors.New("height field has less than edge*edge heights")
	ErrImageNotSquare      = errors.New("height field image is not square")
)

// GenHeightmap generates a flat shaded terrain mesh from a square height field of edge*edge heights,
// where the height at grid point (x,z) is heights[x+z*edge].
//
// Every grid cell becomes two triangles and every triangle gets its own 3 vertices, so the
// mesh has 2*(edge-1)^2 triangles, 6*(edge-1)^2 vertices and no indices.
// Vertex positions are (x, height, z) so the grid spans [0, edge-1] on X and Z,
// and texture coordinates span [0,1] over the grid.
//
// Normals are the face normal of each triangle, so neighboring triangles do not share normals.
//
// An edge less than 2 has no cells and produces an empty mesh.
func GenHeightmap(edge int, heights []float32) (Mesh, error) {
	return genHeightmap(edge, heights, gglm.NewVec3(1, 1, 1))
}

// GenHeightmapScaled is like GenHeightmap but the grid spans [0,size.X] on X and [0,size.Z] on Z,
// and all heights are multiplied by size.Y
func GenHeightmapScaled(edge int, heights []float32, size gglm.Vec3) (Mesh, error) {

	if edge < 2 {
		return genHeightmap(edge, heights, size)
	}

	cells := float32(edge - 1)
	return genHeightmap(edge, heights, gglm.NewVec3(size.X()/cells, size.Y(), size.Z()/cells))
}

type heightmapCorner struct {
	pos gglm.Vec3
	uv  [2]float32
}

// genHeightmap uses cellScale as the size of one cell on X/Z and the multiplier of heights on Y
func genHeightmap(edge int, heights []float32, cellScale gglm.Vec3) (Mesh, error) {

	m := Mesh{Name: "heightmap"}
	if edge < 2 {
		m.Vertices = []float32{}
		m.Normals = []float32{}
		m.TexCoords = []float32{}
		return m, nil
	}

	if len(heights) < edge*edge {
		return Mesh{}, fmt.Errorf("%w: edge=%d needs %d heights but got %d", ErrHeightFieldTooSmall, edge, edge*edge, len(heights))
	}

	cells := edge - 1
	triCount := 2 * cells * cells
	vertCount := 3 * triCount

	m.VertexCount = int32(vertCount)
	m.TriangleCount = int32(triCount)
	m.Vertices = make([]float32, 0, vertCount*3)
	m.Normals = make([]float32, 0, vertCount*3)
	m.TexCoords = make([]float32, 0, vertCount*2)

	corner := func(x, z int) heightmapCorner {
		return heightmapCorner{
			pos: gglm.NewVec3(
				float32(x)*cellScale.X(),
				heights[x+z*edge]*cellScale.Y(),
				float32(z)*cellScale.Z(),
			),
			uv: [2]float32{float32(x) / float32(cells), float32(z) / float32(cells)},
		}
	}

	for z := 0; z < cells; z++ {
		for x := 0; x < cells; x++ {

			a := corner(x, z)
			b := corner(x, z+1)
			c := corner(x+1, z)
			d := corner(x+1, z+1)

			// Both triangles are counter clockwise when looking down the Y axis
			m.appendFlatTriangle(&a, &b, &c)
			m.appendFlatTriangle(&c, &b, &d)
		}
	}

	return m, nil
}

func (m *Mesh) appendFlatTriangle(v0, v1, v2 *heightmapCorner) {

	edge1 := gglm.NewVec3(v1.pos.X()-v0.pos.X(), v1.pos.Y()-v0.pos.Y(), v1.pos.Z()-v0.pos.Z())
	edge2 := gglm.NewVec3(v2.pos.X()-v0.pos.X(), v2.pos.Y()-v0.pos.Y(), v2.pos.Z()-v0.pos.Z())

	normal := gglm.Cross(&edge1, &edge2)
	normal.Normalize()

	for _, v := range [3]*heightmapCorner{v0, v1, v2} {
		m.Vertices = append(m.Vertices, v.pos.X(), v.pos.Y(), v.pos.Z())
		m.Normals = append(m.Normals, normal.X(), normal.Y(), normal.Z())
		m.TexCoords = append(m.TexCoords, v.uv[0], v.uv[1])
	}
}

// HeightFieldFromImage converts a square image into a height field usable with GenHeightmap.
// The luminance of each pixel is mapped from [0,1] to [0,maxHeight], and image rows become Z.
func HeightFieldFromImage(img image.Image, maxHeight float32) (edge int, heights []float32, err error) {

	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		return 0, nil, fmt.Errorf("%w: size is %dx%d", ErrImageNotSquare, bounds.Dx(), bounds.Dy())
	}

	edge = bounds.Dx()
	heights = make([]float32, edge*edge)
	for z := 0; z < edge; z++ {
		for x := 0; x < edge; x++ {
			gray := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+z)).(color.Gray16)
			heights[x+z*edge] = float32(gray.Y) / 0xffff * maxHeight
		}
	}

	return edge, heights, nil
}

// LoadHeightField decodes a png, jpeg, gif, bmp or tiff image and passes it to HeightFieldFromImage
func LoadHeightField(imgPath string, maxHeight float32) (edge int, heights []float32, err error) {

	f, err := os.Open(imgPath)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open height field image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to decode height field image '%s': %w", imgPath, err)
	}

	return HeightFieldFromImage(img, maxHeight)
}
