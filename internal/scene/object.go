package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// Object is one deformable mesh object in a scene. It satisfies
// bake.Deformable: evaluation returns a fresh world-space copy of the
// base mesh with the deformer stack applied at the requested frame,
// leaving the base untouched.
type Object struct {
	name      string
	base      *geometry.Mesh // object space, undeformed
	world     mgl32.Mat4
	deformers []Deformer
}

// Name returns the object's scene name.
func (o *Object) Name() string { return o.name }

// VertexCount returns the base mesh vertex count. Deformers never add
// or remove vertices, so this is also the evaluated count.
func (o *Object) VertexCount() int { return o.base.VertexCount() }

// DeformerKinds returns the kinds in stack order, for validation.
func (o *Object) DeformerKinds() []string {
	kinds := make([]string, len(o.deformers))
	for i, d := range o.deformers {
		kinds[i] = d.Kind()
	}
	return kinds
}

// EvaluateAt applies the deformer stack in object space at the given
// frame, then applies the world transform.
func (o *Object) EvaluateAt(frame int) (*geometry.Mesh, error) {
	mesh := o.base.Clone()
	for _, d := range o.deformers {
		d.Deform(mesh, frame)
	}
	mesh.Transform(o.world)
	return mesh, nil
}

// NewObject builds a scene object directly, bypassing YAML decoding.
// Used by tests and by callers that assemble scenes programmatically.
func NewObject(name string, base *geometry.Mesh, world mgl32.Mat4, deformers ...Deformer) *Object {
	return &Object{name: name, base: base, world: world, deformers: deformers}
}
