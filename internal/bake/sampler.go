package bake

import (
	"fmt"

	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// FrameRange is an inclusive [Start, End] schedule stepped by Step.
type FrameRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	Step  int `yaml:"step"`
}

// Count returns the number of frames in the range, zero when the
// range is empty or the step invalid.
func (r FrameRange) Count() int {
	if r.Step < 1 || r.End < r.Start {
		return 0
	}
	return (r.End-r.Start)/r.Step + 1
}

// Frames returns the frame numbers in ascending order, nil for an
// empty range.
func (r FrameRange) Frames() []int {
	if r.Count() == 0 {
		return nil
	}
	frames := make([]int, 0, r.Count())
	for i := r.Start; i <= r.End; i += r.Step {
		frames = append(frames, i)
	}
	return frames
}

// Deformable is the capability an input object must expose: evaluated
// world-space geometry at an arbitrary frame, plus enough metadata for
// upfront validation. Implementations must be deterministic per
// (object, frame) and must not retain the returned mesh.
type Deformable interface {
	Name() string
	VertexCount() int
	DeformerKinds() []string
	EvaluateAt(frame int) (*geometry.Mesh, error)
}

// Sample evaluates every object at every frame of the range and merges
// them, per frame, into one combined mesh. Objects are appended in
// input order with their own vertex order intact, so a logical vertex
// keeps the same merged index on every frame. Normals are recomputed
// on the merged geometry, not per object, because merged topology
// affects smoothing.
func Sample(r FrameRange, objects []Deformable) ([]*geometry.Mesh, error) {
	meshes := make([]*geometry.Mesh, 0, r.Count())
	for _, frame := range r.Frames() {
		merged := &geometry.Mesh{}
		for _, ob := range objects {
			evaluated, err := ob.EvaluateAt(frame)
			if err != nil {
				return nil, fmt.Errorf("evaluating %q at frame %d: %w", ob.Name(), frame, err)
			}
			merged.Append(evaluated)
		}
		merged.RecalculateNormals()
		meshes = append(meshes, merged)
	}
	return meshes, nil
}
