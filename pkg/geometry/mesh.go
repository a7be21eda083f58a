// Package geometry provides triangle mesh types shared by the bake
// pipeline and the format codecs.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// UVLayer holds one named set of per-loop texture coordinates.
// A loop is a face corner: loop i belongs to triangle i/3 and
// references vertex Indices[i].
type UVLayer struct {
	Name string
	UV   []mgl32.Vec2 // one entry per loop
}

// Mesh is indexed triangle geometry with per-vertex positions and
// normals and any number of per-loop UV layers.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32 // triangle list, 3 indices per face
	UVLayers  []UVLayer
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// LoopCount returns the number of face corners.
func (m *Mesh) LoopCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: append([]mgl32.Vec3(nil), m.Positions...),
		Normals:   append([]mgl32.Vec3(nil), m.Normals...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for _, layer := range m.UVLayers {
		c.UVLayers = append(c.UVLayers, UVLayer{
			Name: layer.Name,
			UV:   append([]mgl32.Vec2(nil), layer.UV...),
		})
	}
	return c
}

// Append concatenates other onto m, offsetting indices so other's
// triangles keep referencing other's vertices. UV layers are matched
// by position; a side missing a layer contributes zero coordinates.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Positions))
	ownLoops := len(m.Indices)

	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}

	layers := len(m.UVLayers)
	if len(other.UVLayers) > layers {
		layers = len(other.UVLayers)
	}
	for i := 0; i < layers; i++ {
		if i >= len(m.UVLayers) {
			name := other.UVLayers[i].Name
			m.UVLayers = append(m.UVLayers, UVLayer{
				Name: name,
				UV:   make([]mgl32.Vec2, ownLoops),
			})
		}
		layer := &m.UVLayers[i]
		if i < len(other.UVLayers) {
			layer.UV = append(layer.UV, other.UVLayers[i].UV...)
		} else {
			layer.UV = append(layer.UV, make([]mgl32.Vec2, other.LoopCount())...)
		}
	}
}

// Transform applies a world matrix to all positions and rotates the
// normals by the matrix's inverse-transpose, renormalizing them.
func (m *Mesh) Transform(world mgl32.Mat4) {
	normalMat := world.Mat3().Inv().Transpose()
	for i, p := range m.Positions {
		m.Positions[i] = mgl32.TransformCoordinate(p, world)
	}
	for i, n := range m.Normals {
		rotated := normalMat.Mul3x1(n)
		if l := rotated.Len(); l > 0 {
			rotated = rotated.Mul(1 / l)
		}
		m.Normals[i] = rotated
	}
}

// RecalculateNormals rebuilds smooth per-vertex normals from the
// triangle list by accumulating area-weighted face normals. Degenerate
// triangles are skipped; vertices referenced by no triangle keep a
// zero normal.
func (m *Mesh) RecalculateNormals() {
	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([]mgl32.Vec3, len(m.Positions))
	} else {
		for i := range m.Normals {
			m.Normals[i] = mgl32.Vec3{}
		}
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v0 := m.Positions[i0]
		e1 := m.Positions[i1].Sub(v0)
		e2 := m.Positions[i2].Sub(v0)
		face := e1.Cross(e2)
		if face.Len() < 1e-12 {
			continue
		}
		m.Normals[i0] = m.Normals[i0].Add(face)
		m.Normals[i1] = m.Normals[i1].Add(face)
		m.Normals[i2] = m.Normals[i2].Add(face)
	}

	for i, n := range m.Normals {
		if l := n.Len(); l > 0 {
			m.Normals[i] = n.Mul(1 / l)
		}
	}
}
