package bake

import (
	"go.uber.org/zap"

	"github.com/buchananwill/JRB-unreal-tools/internal/logger"
	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// Job describes one bake invocation.
type Job struct {
	Range   FrameRange
	Objects []Deformable
	Units   UnitSettings
}

// Result holds the persisted outputs of a bake. Everything else the
// pipeline touches (per-frame meshes, raw channel lists) is transient.
type Result struct {
	OffsetTexture *Texture
	NormalTexture *Texture
	ExportMesh    *geometry.Mesh

	VertexCount int
	FrameCount  int
}

// Run executes the full pipeline: validate, sample, build the export
// mesh off the reference frame, encode, normalize, bake. Nothing is
// produced unless every stage succeeds.
func Run(job Job) (*Result, error) {
	if err := Validate(job); err != nil {
		return nil, err
	}

	frameCount := job.Range.Count()
	logger.Info("sampling frames",
		zap.Int("start", job.Range.Start),
		zap.Int("end", job.Range.End),
		zap.Int("step", job.Range.Step),
		zap.Int("objects", len(job.Objects)))

	meshes, err := Sample(job.Range, job.Objects)
	if err != nil {
		return nil, err
	}
	vertexCount := meshes[0].VertexCount()

	exportMesh := BuildExportMesh(meshes[0])

	offsets, normals := EncodeVertexData(meshes)
	negExtent, posExtent := NormalizeOffsets(offsets)
	logger.Debug("normalized offsets",
		zap.Float32("neg_extent", negExtent),
		zap.Float32("pos_extent", posExtent))

	offsetTex, normalTex := BakeTextures(offsets, normals, vertexCount, frameCount, negExtent, posExtent)
	logger.Info("baked textures",
		zap.Int("width", vertexCount),
		zap.Int("height", frameCount),
		zap.String("offset_texture", offsetTex.Name))

	return &Result{
		OffsetTexture: offsetTex,
		NormalTexture: normalTex,
		ExportMesh:    exportMesh,
		VertexCount:   vertexCount,
		FrameCount:    frameCount,
	}, nil
}
