package bake

import "github.com/buchananwill/JRB-unreal-tools/pkg/geometry"

// EncodeVertexData flattens per-frame meshes into offset and normal
// channel lists. meshes[0] is the reference frame; offsets are deltas
// against it. Frames are emitted in REVERSE order (last frame first,
// reference frame last) with vertex index ascending inside each frame.
// Downstream shaders depend on exactly this row order, so it must not
// be "fixed" to forward order.
//
// Every fourth channel is a constant 1.0 alpha. Consumed meshes are
// dropped from the slice as they are read so peak memory stays at the
// flat arrays plus one live mesh.
func EncodeVertexData(meshes []*geometry.Mesh) (offsets, normals []float32) {
	if len(meshes) == 0 {
		return nil, nil
	}
	reference := meshes[0].Positions
	vertexCount := len(reference)

	offsets = make([]float32, 0, 4*vertexCount*len(meshes))
	normals = make([]float32, 0, 4*vertexCount*len(meshes))

	for i := len(meshes) - 1; i >= 0; i-- {
		mesh := meshes[i]
		for v, pos := range mesh.Positions {
			delta := pos.Sub(reference[v])
			offsets = append(offsets, delta.X(), delta.Y(), delta.Z(), 1.0)

			n := mesh.Normals[v]
			normals = append(normals,
				mapSignedToUnit(n.X()),
				mapSignedToUnit(n.Y()),
				mapSignedToUnit(n.Z()),
				1.0,
			)
		}
		meshes[i] = nil
	}
	return offsets, normals
}

// mapSignedToUnit remaps a [-1,1] component into [0,1].
func mapSignedToUnit(v float32) float32 {
	return (v + 1) * 0.5
}
