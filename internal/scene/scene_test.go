package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
)

const testScene = `
units:
  system: metric
  scale_length: 0.01
objects:
  - name: sheet
    primitive:
      kind: grid
      segments_x: 2
      segments_y: 2
      size: 2
    deformers:
      - kind: wave
        amplitude: 0.25
        wavelength: 2
        speed: 0.5
  - name: crate
    primitive:
      kind: box
      size: 1
    transform:
      translate: [3, 0, 0]
`

func TestParseScene(t *testing.T) {
	sc, err := Parse([]byte(testScene), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sc.Units.System != "metric" || sc.Units.ScaleLength != 0.01 {
		t.Errorf("units = %+v", sc.Units)
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("object count = %d, want 2", len(sc.Objects))
	}

	sheet := sc.Objects[0]
	if sheet.Name() != "sheet" {
		t.Errorf("name = %q, want sheet", sheet.Name())
	}
	if sheet.VertexCount() != 9 {
		t.Errorf("sheet vertex count = %d, want 9", sheet.VertexCount())
	}
	if kinds := sheet.DeformerKinds(); len(kinds) != 1 || kinds[0] != "wave" {
		t.Errorf("sheet deformer kinds = %v", kinds)
	}
}

func TestParseSceneUnknownDeformerSurvivesToValidation(t *testing.T) {
	src := `
units: {system: metric, scale_length: 0.01}
objects:
  - name: bad
    primitive: {kind: box, size: 1}
    deformers:
      - kind: boolean
`
	sc, err := Parse([]byte(src), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Load keeps the kind; the allow-list check rejects it per object.
	job := bake.Job{
		Range:   bake.FrameRange{Start: 0, End: 1, Step: 1},
		Objects: sc.Deformables(),
		Units:   sc.Units,
	}
	if err := bake.Validate(job); !errors.Is(err, bake.ErrUnsupportedDeformer) {
		t.Errorf("Validate() = %v, want ErrUnsupportedDeformer", err)
	}
}

func TestParseSceneErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"no mesh source", `objects: [{name: x}]`, ErrNoMeshSource},
		{"unnamed", `objects: [{primitive: {kind: box}}]`, ErrUnnamedObject},
		{"bad primitive", `objects: [{name: x, primitive: {kind: torus}}]`, ErrBadPrimitive},
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c.src), "."); !errors.Is(err, c.want) {
			t.Errorf("%s: Parse() = %v, want %v", c.name, err, c.want)
		}
	}
}

func TestLoadSceneWithOBJMesh(t *testing.T) {
	dir := t.TempDir()
	obj := `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}
	src := `
units: {system: metric, scale_length: 0.01}
objects:
  - name: tri
    mesh: tri.obj
`
	scenePath := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scenePath, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(scenePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sc.Objects[0].VertexCount() != 3 {
		t.Errorf("vertex count = %d, want 3", sc.Objects[0].VertexCount())
	}
}

func TestObjectEvaluateAppliesTransform(t *testing.T) {
	sc, err := Parse([]byte(testScene), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	crate := sc.Objects[1]
	mesh, err := crate.EvaluateAt(0)
	if err != nil {
		t.Fatalf("EvaluateAt failed: %v", err)
	}
	// Box is centered at origin; translated by (3,0,0) every vertex
	// has x in [2.5, 3.5].
	for i, p := range mesh.Positions {
		if p.X() < 2.5 || p.X() > 3.5 {
			t.Errorf("vertex %d: x = %v, want within [2.5,3.5]", i, p.X())
		}
	}
}

func TestObjectEvaluateDeterministic(t *testing.T) {
	sc, err := Parse([]byte(testScene), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sheet := sc.Objects[0]

	a, err := sheet.EvaluateAt(7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := sheet.EvaluateAt(7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("vertex %d differs between evaluations: %v vs %v",
				i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestObjectEvaluateLeavesBaseUntouched(t *testing.T) {
	sc, err := Parse([]byte(testScene), ".")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sheet := sc.Objects[0]

	before := append([]mgl32.Vec3(nil), sheet.base.Positions...)
	if _, err := sheet.EvaluateAt(3); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if sheet.base.Positions[i] != before[i] {
			t.Fatalf("base mesh mutated at vertex %d", i)
		}
	}
}

func TestTransformMatrixScaleForms(t *testing.T) {
	uniform := Transform{Scale: []float32{2}}
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 1, 1}, uniform.Matrix())
	if !p.ApproxEqualThreshold(mgl32.Vec3{2, 2, 2}, 1e-6) {
		t.Errorf("uniform scale: %v, want (2,2,2)", p)
	}

	perAxis := Transform{Scale: []float32{1, 2, 3}}
	p = mgl32.TransformCoordinate(mgl32.Vec3{1, 1, 1}, perAxis.Matrix())
	if !p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-6) {
		t.Errorf("per-axis scale: %v, want (1,2,3)", p)
	}
}
