package bake

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// ExportUVLayerName is the name of the UV layer carrying the texture
// lookup coordinates.
const ExportUVLayerName = "vertex_anim"

// exportRowV is the fixed vertical sample point written for every
// vertex. Row addressing per frame is driven by the shader's time
// parameter, not baked into the mesh.
const exportRowV = float32(128.0 / 255.0)

// BuildExportMesh returns a copy of the reference frame's merged mesh
// whose second UV layer maps each vertex to its texture column:
// UV = ((index+0.5)/vertexCount, 128/255). The half-texel offset
// centers the lookup on the pixel. Layers are created as needed so the
// second one always exists.
func BuildExportMesh(reference *geometry.Mesh) *geometry.Mesh {
	mesh := reference.Clone()

	for len(mesh.UVLayers) < 2 {
		mesh.UVLayers = append(mesh.UVLayers, geometry.UVLayer{
			Name: "UVMap",
			UV:   make([]mgl32.Vec2, mesh.LoopCount()),
		})
	}

	layer := &mesh.UVLayers[1]
	layer.Name = ExportUVLayerName
	if len(layer.UV) != mesh.LoopCount() {
		layer.UV = make([]mgl32.Vec2, mesh.LoopCount())
	}
	vertexCount := float32(mesh.VertexCount())
	for loop, vi := range mesh.Indices {
		layer.UV[loop] = mgl32.Vec2{(float32(vi) + 0.5) / vertexCount, exportRowV}
	}
	return mesh
}
