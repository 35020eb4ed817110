package meshes

// cubeFaces holds the normal and two in-plane axes of each cube face,
// where cross(u, v) is the normal so corners in u,v order wind counter clockwise from outside
var cubeFaces = [6]struct {
	n, u, v [3]float32
}{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// GenCube generates an indexed cube centered on the origin with 4 vertices per face, so each face has its own normal and
// texture coordinates that cover the whole [0,1] range
func GenCube(size float32) Mesh {

	const vertsPerFace = 4
	halfSize := size / 2

	m := Mesh{
		Name:          "cube",
		VertexCount:   int32(len(cubeFaces) * vertsPerFace),
		TriangleCount: int32(len(cubeFaces) * 2),
		Vertices:      make([]float32, 0, len(cubeFaces)*vertsPerFace*3),
		Normals:       make([]float32, 0, len(cubeFaces)*vertsPerFace*3),
		TexCoords:     make([]float32, 0, len(cubeFaces)*vertsPerFace*2),
		Indices:       make([]uint32, 0, len(cubeFaces)*6),
	}

	corners := [vertsPerFace][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, f := range cubeFaces {

		for _, c := range corners {

			for axis := 0; axis < 3; axis++ {
				m.Vertices = append(m.Vertices, (f.n[axis]+c[0]*f.u[axis]+c[1]*f.v[axis])*halfSize)
			}

			m.Normals = append(m.Normals, f.n[:]...)
			m.TexCoords = append(m.TexCoords, (c[0]+1)/2, (c[1]+1)/2)
		}

		base := uint32(i * vertsPerFace)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	return m
}
