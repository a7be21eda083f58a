package geometry

import "github.com/go-gl/mathgl/mgl32"

// Grid builds a flat subdivided quad in the XY plane, centered at the
// origin, facing +Z. segmentsX and segmentsY are the number of quads
// along each axis; sizeX/sizeY the total extent.
func Grid(segmentsX, segmentsY int, sizeX, sizeY float32) *Mesh {
	if segmentsX < 1 {
		segmentsX = 1
	}
	if segmentsY < 1 {
		segmentsY = 1
	}

	m := &Mesh{}
	cols := segmentsX + 1
	rows := segmentsY + 1
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := (float32(x)/float32(segmentsX) - 0.5) * sizeX
			py := (float32(y)/float32(segmentsY) - 0.5) * sizeY
			m.Positions = append(m.Positions, mgl32.Vec3{px, py, 0})
			m.Normals = append(m.Normals, mgl32.Vec3{0, 0, 1})
		}
	}
	for y := 0; y < segmentsY; y++ {
		for x := 0; x < segmentsX; x++ {
			a := uint32(y*cols + x)
			b := a + 1
			c := a + uint32(cols)
			d := c + 1
			m.Indices = append(m.Indices, a, b, d, a, d, c)
		}
	}
	return m
}

// Box builds an axis-aligned cube of the given edge length, centered
// at the origin, with 8 shared vertices and 12 triangles.
func Box(size float32) *Mesh {
	h := size / 2
	m := &Mesh{
		Positions: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // -Z
			4, 5, 6, 4, 6, 7, // +Z
			0, 1, 5, 0, 5, 4, // -Y
			3, 7, 6, 3, 6, 2, // +Y
			0, 4, 7, 0, 7, 3, // -X
			1, 2, 6, 1, 6, 5, // +X
		},
	}
	m.RecalculateNormals()
	return m
}
