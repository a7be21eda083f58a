// Package scene provides the input side of a bake: a YAML scene
// description listing deformable mesh objects, their world transforms
// and their deformer stacks. Scene objects implement bake.Deformable,
// so the pipeline never touches scene state directly and tests can
// substitute synthetic fixtures.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/pkg/formats"
	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// Scene loading errors.
var (
	ErrNoMeshSource  = errors.New("object needs either a mesh path or a primitive")
	ErrBadPrimitive  = errors.New("unknown primitive kind")
	ErrUnnamedObject = errors.New("object has no name")
)

// File is the YAML shape of a scene description.
type File struct {
	Units   bake.UnitSettings `yaml:"units"`
	Objects []ObjectSpec      `yaml:"objects"`
}

// ObjectSpec describes one deformable mesh object.
type ObjectSpec struct {
	Name      string         `yaml:"name"`
	Mesh      string         `yaml:"mesh"` // OBJ path, relative to the scene file
	Primitive *PrimitiveSpec `yaml:"primitive"`
	Transform Transform      `yaml:"transform"`
	Deformers []DeformerSpec `yaml:"deformers"`
}

// PrimitiveSpec describes a builtin mesh for scenes without external
// geometry files.
type PrimitiveSpec struct {
	Kind      string  `yaml:"kind"` // "grid" or "box"
	Size      float32 `yaml:"size"`
	SegmentsX int     `yaml:"segments_x"`
	SegmentsY int     `yaml:"segments_y"`
}

// Transform is an object's world placement: translate, XYZ euler
// rotation in degrees, uniform or per-axis scale.
type Transform struct {
	Translate [3]float32 `yaml:"translate"`
	RotateDeg [3]float32 `yaml:"rotate_deg"`
	Scale     []float32  `yaml:"scale"`
}

// Matrix builds the world matrix as translate * rotateZ*rotateY*rotateX * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	sx, sy, sz := float32(1), float32(1), float32(1)
	switch len(t.Scale) {
	case 0:
	case 1:
		sx, sy, sz = t.Scale[0], t.Scale[0], t.Scale[0]
	default:
		sx = t.Scale[0]
		if len(t.Scale) > 1 {
			sy = t.Scale[1]
		}
		if len(t.Scale) > 2 {
			sz = t.Scale[2]
		}
	}

	m := mgl32.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2])
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.RotateDeg[2])))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.RotateDeg[1])))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.RotateDeg[0])))
	return m.Mul4(mgl32.Scale3D(sx, sy, sz))
}

// Scene is a loaded, ready-to-sample scene.
type Scene struct {
	Units   bake.UnitSettings
	Objects []*Object
}

// Load reads and resolves a scene file. Mesh paths are resolved
// relative to the file's directory. Deformer kinds are resolved here
// but NOT allow-list checked; that stays with bake validation so an
// offending kind is reported per object, not as a parse failure.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a scene description. baseDir anchors relative mesh
// paths.
func Parse(data []byte, baseDir string) (*Scene, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	sc := &Scene{Units: file.Units}
	for i := range file.Objects {
		ob, err := buildObject(&file.Objects[i], baseDir)
		if err != nil {
			return nil, err
		}
		sc.Objects = append(sc.Objects, ob)
	}
	return sc, nil
}

// Deformables returns the objects as the pipeline's capability
// interface, in scene order.
func (s *Scene) Deformables() []bake.Deformable {
	out := make([]bake.Deformable, len(s.Objects))
	for i, ob := range s.Objects {
		out[i] = ob
	}
	return out
}

func buildObject(spec *ObjectSpec, baseDir string) (*Object, error) {
	if spec.Name == "" {
		return nil, ErrUnnamedObject
	}

	base, err := loadBaseMesh(spec, baseDir)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", spec.Name, err)
	}

	ob := &Object{
		name:  spec.Name,
		base:  base,
		world: spec.Transform.Matrix(),
	}
	for i := range spec.Deformers {
		d, err := spec.Deformers[i].Build()
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", spec.Name, err)
		}
		ob.deformers = append(ob.deformers, d)
	}
	return ob, nil
}

func loadBaseMesh(spec *ObjectSpec, baseDir string) (*geometry.Mesh, error) {
	switch {
	case spec.Mesh != "":
		path := spec.Mesh
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading mesh: %w", err)
		}
		mesh, err := formats.ParseOBJ(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", spec.Mesh, err)
		}
		return mesh, nil
	case spec.Primitive != nil:
		return buildPrimitive(spec.Primitive)
	default:
		return nil, ErrNoMeshSource
	}
}

func buildPrimitive(p *PrimitiveSpec) (*geometry.Mesh, error) {
	size := p.Size
	if size == 0 {
		size = 1
	}
	switch p.Kind {
	case "grid":
		return geometry.Grid(p.SegmentsX, p.SegmentsY, size, size), nil
	case "box":
		return geometry.Box(size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadPrimitive, p.Kind)
	}
}
