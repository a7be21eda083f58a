package export

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/buchananwill/JRB-unreal-tools/internal/logger"
	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// SaveMeshGLB writes a mesh to dir as <name>.glb, resolving name
// collisions. Attributes are split per loop so each face corner keeps
// its own UV pair; both UV layers go out as TEXCOORD_0/TEXCOORD_1.
// Returns the path written.
func SaveMeshGLB(dir, name string, mesh *geometry.Mesh) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	loops := mesh.LoopCount()
	positions := make([][3]float32, loops)
	normals := make([][3]float32, loops)
	indices := make([]uint32, loops)
	for loop, vi := range mesh.Indices {
		positions[loop] = mesh.Positions[vi]
		normals[loop] = mesh.Normals[vi]
		indices[loop] = uint32(loop)
	}

	doc := gltf.NewDocument()
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
		"NORMAL":   modeler.WriteNormal(doc, normals),
	}
	for i, layer := range mesh.UVLayers {
		if i > 1 {
			break
		}
		uvs := make([][2]float32, loops)
		for loop := 0; loop < loops && loop < len(layer.UV); loop++ {
			uvs[loop] = layer.UV[loop]
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", i)] = modeler.WriteTextureCoord(doc, uvs)
	}

	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attributes,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []uint32{0}

	path := UniquePath(dir, name, ".glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		return "", fmt.Errorf("writing glb: %w", err)
	}

	logger.Info("saved export mesh",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
	return path, nil
}
