package scene

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// Deformer mutates a mesh in object space at a given frame. All
// implementations are pure functions of (mesh, frame): evaluating the
// same frame twice yields identical geometry.
type Deformer interface {
	Kind() string
	Deform(m *geometry.Mesh, frame int)
}

// deformerFactories maps the procedurally implemented kinds to their
// constructors. Kinds on the bake allow-list but absent here (e.g.
// armature, lattice) decode to a passthrough: their data sources live
// in a host this tool does not embed.
var deformerFactories = map[string]func() Deformer{
	"wave":          func() Deformer { return &WaveDeformer{Amplitude: 0.5, Wavelength: 1, Speed: 0.1} },
	"displace":      func() Deformer { return &DisplaceDeformer{Strength: 0.1} },
	"cast":          func() Deformer { return &CastDeformer{Factor: 0.5, Radius: 1} },
	"simple_deform": func() Deformer { return &SimpleDeformDeformer{Mode: "twist"} },
	"smooth":        func() Deformer { return &SmoothDeformer{Factor: 0.5, Iterations: 1} },
}

// DeformerSpec is the polymorphic YAML representation of a deformer.
// The kind selects the concrete type; remaining fields decode into it.
type DeformerSpec struct {
	Kind string
	node yaml.Node
}

// UnmarshalYAML captures the raw node so Build can decode it into the
// kind-specific struct later.
func (s *DeformerSpec) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	s.Kind = head.Kind
	s.node = *value
	return nil
}

// Build resolves the spec into a Deformer. Unknown kinds build a
// passthrough rather than failing, so bake validation gets to report
// them against the allow-list with the owning object named.
func (s *DeformerSpec) Build() (Deformer, error) {
	factory, ok := deformerFactories[s.Kind]
	if !ok {
		return passthroughDeformer{kind: s.Kind}, nil
	}
	d := factory()
	if s.node.Kind != 0 {
		if err := s.node.Decode(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// passthroughDeformer keeps an unimplemented kind visible to
// validation without moving any vertices.
type passthroughDeformer struct {
	kind string
}

func (p passthroughDeformer) Kind() string               { return p.kind }
func (p passthroughDeformer) Deform(*geometry.Mesh, int) {}

// WaveDeformer displaces vertices along Z with a sinusoid travelling
// radially from the object origin, one wave front per Wavelength,
// advancing Speed units per frame.
type WaveDeformer struct {
	Amplitude  float32 `yaml:"amplitude"`
	Wavelength float32 `yaml:"wavelength"`
	Speed      float32 `yaml:"speed"`
}

func (w *WaveDeformer) Kind() string { return "wave" }

func (w *WaveDeformer) Deform(m *geometry.Mesh, frame int) {
	wavelength := w.Wavelength
	if wavelength == 0 {
		wavelength = 1
	}
	for i, p := range m.Positions {
		r := float32(gomath.Hypot(float64(p.X()), float64(p.Y())))
		phase := 2 * gomath.Pi * float64((r-w.Speed*float32(frame))/wavelength)
		m.Positions[i][2] += w.Amplitude * float32(gomath.Sin(phase))
	}
}

// DisplaceDeformer pushes every vertex along its normal.
type DisplaceDeformer struct {
	Strength float32 `yaml:"strength"`
}

func (d *DisplaceDeformer) Kind() string { return "displace" }

func (d *DisplaceDeformer) Deform(m *geometry.Mesh, frame int) {
	for i := range m.Positions {
		if i < len(m.Normals) {
			m.Positions[i] = m.Positions[i].Add(m.Normals[i].Mul(d.Strength))
		}
	}
}

// CastDeformer blends vertices toward a sphere of the given radius
// around the object origin.
type CastDeformer struct {
	Factor float32 `yaml:"factor"`
	Radius float32 `yaml:"radius"`
}

func (c *CastDeformer) Kind() string { return "cast" }

func (c *CastDeformer) Deform(m *geometry.Mesh, frame int) {
	for i, p := range m.Positions {
		l := p.Len()
		if l == 0 {
			continue
		}
		target := p.Mul(c.Radius / l)
		m.Positions[i] = p.Add(target.Sub(p).Mul(c.Factor))
	}
}

// SimpleDeformDeformer twists, bends, tapers or stretches the mesh
// around the object origin. Angle and Factor can advance per frame so
// the deformation animates over the sampled range.
type SimpleDeformDeformer struct {
	Mode           string  `yaml:"mode"` // twist, bend, taper, stretch
	AngleDeg       float32 `yaml:"angle_deg"`
	AnglePerFrame  float32 `yaml:"angle_per_frame"`
	Factor         float32 `yaml:"factor"`
	FactorPerFrame float32 `yaml:"factor_per_frame"`
}

func (s *SimpleDeformDeformer) Kind() string { return "simple_deform" }

func (s *SimpleDeformDeformer) Deform(m *geometry.Mesh, frame int) {
	angle := mgl32.DegToRad(s.AngleDeg + s.AnglePerFrame*float32(frame))
	factor := s.Factor + s.FactorPerFrame*float32(frame)

	switch s.Mode {
	case "bend":
		for i, p := range m.Positions {
			theta := float64(angle * p.X())
			sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
			x, z := p.X(), p.Z()
			m.Positions[i][0] = x*cos - z*sin
			m.Positions[i][2] = x*sin + z*cos
		}
	case "taper":
		for i, p := range m.Positions {
			scale := 1 + factor*p.Z()
			m.Positions[i][0] = p.X() * scale
			m.Positions[i][1] = p.Y() * scale
		}
	case "stretch":
		if factor <= -1 {
			return
		}
		shrink := 1 / float32(gomath.Sqrt(float64(1+factor)))
		for i, p := range m.Positions {
			m.Positions[i][0] = p.X() * shrink
			m.Positions[i][1] = p.Y() * shrink
			m.Positions[i][2] = p.Z() * (1 + factor)
		}
	default: // twist
		for i, p := range m.Positions {
			theta := float64(angle * p.Z())
			sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
			x, y := p.X(), p.Y()
			m.Positions[i][0] = x*cos - y*sin
			m.Positions[i][1] = x*sin + y*cos
		}
	}
}

// SmoothDeformer runs Laplacian smoothing: each vertex moves toward
// the average of its edge-connected neighbors.
type SmoothDeformer struct {
	Factor     float32 `yaml:"factor"`
	Iterations int     `yaml:"iterations"`
}

func (s *SmoothDeformer) Kind() string { return "smooth" }

func (s *SmoothDeformer) Deform(m *geometry.Mesh, frame int) {
	iterations := s.Iterations
	if iterations < 1 {
		iterations = 1
	}

	neighbors := make(map[uint32][]uint32, len(m.Positions))
	addEdge := func(a, b uint32) {
		neighbors[a] = append(neighbors[a], b)
		neighbors[b] = append(neighbors[b], a)
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		addEdge(m.Indices[t], m.Indices[t+1])
		addEdge(m.Indices[t+1], m.Indices[t+2])
		addEdge(m.Indices[t+2], m.Indices[t])
	}

	for iter := 0; iter < iterations; iter++ {
		smoothed := make([]mgl32.Vec3, len(m.Positions))
		copy(smoothed, m.Positions)
		for vi, adj := range neighbors {
			if len(adj) == 0 {
				continue
			}
			var sum mgl32.Vec3
			for _, n := range adj {
				sum = sum.Add(m.Positions[n])
			}
			avg := sum.Mul(1 / float32(len(adj)))
			p := m.Positions[vi]
			smoothed[vi] = p.Add(avg.Sub(p).Mul(s.Factor))
		}
		m.Positions = smoothed
	}
}
