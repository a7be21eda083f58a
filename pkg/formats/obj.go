package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// OBJ format errors.
var (
	ErrEmptyOBJ       = errors.New("OBJ contains no geometry")
	ErrMalformedFace  = errors.New("malformed OBJ face")
	ErrOBJIndexRange  = errors.New("OBJ index out of range")
	ErrMalformedFloat = errors.New("malformed OBJ float value")
)

// ParseOBJ parses Wavefront OBJ text into a triangle mesh.
// Supports v, vn, vt and f records; polygons are fan-triangulated.
// Negative (relative) indices are resolved. If the file carries no
// normals, smooth normals are recomputed from the triangle list.
// Texture coordinates, when present, become a per-loop UV layer named
// "UVMap".
func ParseOBJ(data []byte) (*geometry.Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		texcoords []mgl32.Vec2
	)

	mesh := &geometry.Mesh{}
	var loopUVs []mgl32.Vec2
	sawNormal := false
	sawUV := false

	// Per-vertex normals gathered from face corners (last corner wins,
	// which matches how most exporters emit one vn per vertex anyway).
	vertexNormal := map[uint32]mgl32.Vec3{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedFloat)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedFloat)
			}
			texcoords = append(texcoords, mgl32.Vec2{float32(u), float32(v)})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedFace)
			}
			corners := fields[1:]
			for i := 1; i+1 < len(corners); i++ {
				tri := [3]string{corners[0], corners[i], corners[i+1]}
				for _, corner := range tri {
					vi, ti, ni, err := parseCorner(corner, len(positions), len(texcoords), len(normals))
					if err != nil {
						return nil, fmt.Errorf("line %d: %w", lineNo, err)
					}
					mesh.Indices = append(mesh.Indices, uint32(vi))
					if ti >= 0 {
						sawUV = true
						loopUVs = append(loopUVs, texcoords[ti])
					} else {
						loopUVs = append(loopUVs, mgl32.Vec2{})
					}
					if ni >= 0 {
						sawNormal = true
						vertexNormal[uint32(vi)] = normals[ni]
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(positions) == 0 || len(mesh.Indices) == 0 {
		return nil, ErrEmptyOBJ
	}

	mesh.Positions = positions
	mesh.Normals = make([]mgl32.Vec3, len(positions))
	if sawNormal {
		for vi, n := range vertexNormal {
			mesh.Normals[vi] = n
		}
	} else {
		mesh.RecalculateNormals()
	}
	if sawUV {
		mesh.UVLayers = []geometry.UVLayer{{Name: "UVMap", UV: loopUVs}}
	}
	return mesh, nil
}

// parseCorner parses one face corner (i, i/t, i/t/n or i//n) and
// resolves 1-based and negative indices. Returned texture/normal
// indices are -1 when absent.
func parseCorner(s string, nPos, nTex, nNorm int) (vi, ti, ni int, err error) {
	ti, ni = -1, -1
	parts := strings.Split(s, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, 0, 0, ErrMalformedFace
	}

	vi, err = resolveIndex(parts[0], nPos)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(parts) > 1 && parts[1] != "" {
		ti, err = resolveIndex(parts[1], nTex)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], nNorm)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return vi, ti, ni, nil
}

func resolveIndex(s string, count int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrMalformedFace
	}
	idx := raw - 1
	if raw < 0 {
		idx = count + raw
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %d of %d", ErrOBJIndexRange, raw, count)
	}
	return idx, nil
}

func parseFloats3(fields []string) (mgl32.Vec3, error) {
	if len(fields) < 3 {
		return mgl32.Vec3{}, ErrMalformedFloat
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, ErrMalformedFloat
		}
		out[i] = float32(f)
	}
	return out, nil
}
