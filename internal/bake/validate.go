// Package bake implements the vertex animation texture pipeline:
// per-frame sampling of deformed geometry, offset/normal encoding,
// range normalization, texture layout and export mesh construction.
package bake

import (
	"errors"
	"fmt"
	"math"
)

// Hard caps on the baked texture dimensions. Each is checked before
// any sampling happens so a bad job fails without side effects.
const (
	MaxVertexCount = 8192
	MaxFrameCount  = 8192

	// MaxPixelCount bounds width*height: two independently legal axis
	// counts could otherwise still demand a 1 GiB float buffer. Set to
	// half the theoretical 8192x8192 maximum.
	MaxPixelCount = 8192 * 4096
)

// Validation errors.
var (
	ErrUnitScale           = errors.New("scene unit must be metric with a unit scale of 0.01")
	ErrVertexLimit         = errors.New("vertex count exceeds limit")
	ErrFrameLimit          = errors.New("frame count exceeds limit")
	ErrTextureSize         = errors.New("texture pixel count exceeds limit")
	ErrUnsupportedDeformer = errors.New("deformer kind not allowed")
	ErrNoGeometry          = errors.New("no mesh geometry to sample")
	ErrEmptyFrameRange     = errors.New("frame range contains no frames")
)

// AllowedDeformers is the set of deformation kinds accepted on input
// objects. Anything else aborts the bake before sampling.
var AllowedDeformers = map[string]bool{
	"armature": true, "cast": true, "curve": true, "displace": true,
	"hook": true, "laplaciandeform": true, "lattice": true,
	"mesh_deform": true, "shrinkwrap": true, "simple_deform": true,
	"smooth": true, "corrective_smooth": true, "laplaciansmooth": true,
	"surface_deform": true, "warp": true, "wave": true,
}

// UnitSettings describes the scene's unit configuration. Sampled
// positions are assumed to already be in this unit space; the pipeline
// performs no conversion, it only refuses to run on anything else.
type UnitSettings struct {
	System      string  `yaml:"system"`
	ScaleLength float64 `yaml:"scale_length"`
}

// Validate checks for the metric/0.01 setup the downstream shader
// contract expects.
func (u UnitSettings) Validate() error {
	if u.System != "metric" || math.Round(u.ScaleLength*100)/100 != 0.01 {
		return fmt.Errorf("%w: got %s/%v", ErrUnitScale, u.System, u.ScaleLength)
	}
	return nil
}

// Validate runs every upfront check for a job: units, degenerate
// inputs, deformer allow-list and size limits. It is cheap (no
// sampling) and a job that passes cannot fail limit checks later.
func Validate(job Job) error {
	if err := job.Units.Validate(); err != nil {
		return err
	}

	frameCount := job.Range.Count()
	if frameCount == 0 {
		return fmt.Errorf("%w: start %d end %d step %d",
			ErrEmptyFrameRange, job.Range.Start, job.Range.End, job.Range.Step)
	}

	vertexCount := 0
	for _, ob := range job.Objects {
		vertexCount += ob.VertexCount()
		for _, kind := range ob.DeformerKinds() {
			if !AllowedDeformers[kind] {
				return fmt.Errorf("object %q: %w: %s", ob.Name(), ErrUnsupportedDeformer, kind)
			}
		}
	}
	if vertexCount == 0 {
		return ErrNoGeometry
	}
	if vertexCount > MaxVertexCount {
		return fmt.Errorf("%w: %d > %d", ErrVertexLimit, vertexCount, MaxVertexCount)
	}
	if frameCount > MaxFrameCount {
		return fmt.Errorf("%w: %d > %d", ErrFrameLimit, frameCount, MaxFrameCount)
	}
	if vertexCount*frameCount > MaxPixelCount {
		return fmt.Errorf("%w: %d x %d", ErrTextureSize, vertexCount, frameCount)
	}
	return nil
}
