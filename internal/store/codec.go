package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

// Texture record: u32 width, u32 height, u8 half flag, f32 neg extent,
// f32 pos extent, then width*height*4 f32 pixels. Little endian.

func encodeTexture(tex *bake.Texture) []byte {
	out := make([]byte, 0, 17+len(tex.Pixels)*4)
	out = appendUint32(out, uint32(tex.Width))
	out = appendUint32(out, uint32(tex.Height))
	if tex.HalfPrecision {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = appendFloat32(out, tex.NegExtent)
	out = appendFloat32(out, tex.PosExtent)
	for _, v := range tex.Pixels {
		out = appendFloat32(out, v)
	}
	return out
}

func decodeTexture(name string, raw []byte) (*bake.Texture, error) {
	if len(raw) < 17 {
		return nil, fmt.Errorf("texture record too short: %d bytes", len(raw))
	}
	tex := &bake.Texture{
		Name:          name,
		Width:         int(binary.LittleEndian.Uint32(raw[0:4])),
		Height:        int(binary.LittleEndian.Uint32(raw[4:8])),
		HalfPrecision: raw[8] == 1,
		NegExtent:     math.Float32frombits(binary.LittleEndian.Uint32(raw[9:13])),
		PosExtent:     math.Float32frombits(binary.LittleEndian.Uint32(raw[13:17])),
	}
	want := tex.Width * tex.Height * 4
	raw = raw[17:]
	if len(raw) != want*4 {
		return nil, fmt.Errorf("texture record pixel size mismatch: have %d bytes, want %d", len(raw), want*4)
	}
	tex.Pixels = make([]float32, want)
	for i := range tex.Pixels {
		tex.Pixels[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return tex, nil
}

// Mesh record: u32 vertex count, u32 index count, u32 uv layer count,
// positions, normals, indices, then per layer a length-prefixed name
// and loop-count f32 pairs.

func encodeMesh(mesh *geometry.Mesh) []byte {
	var out []byte
	out = appendUint32(out, uint32(mesh.VertexCount()))
	out = appendUint32(out, uint32(len(mesh.Indices)))
	out = appendUint32(out, uint32(len(mesh.UVLayers)))
	for _, p := range mesh.Positions {
		out = appendVec3(out, p)
	}
	for _, n := range mesh.Normals {
		out = appendVec3(out, n)
	}
	for _, idx := range mesh.Indices {
		out = appendUint32(out, idx)
	}
	for _, layer := range mesh.UVLayers {
		out = appendUint32(out, uint32(len(layer.Name)))
		out = append(out, layer.Name...)
		for _, uv := range layer.UV {
			out = appendFloat32(out, uv.X())
			out = appendFloat32(out, uv.Y())
		}
	}
	return out
}

func appendUint32(out []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(out, v)
}

func appendFloat32(out []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
}

func appendVec3(out []byte, v mgl32.Vec3) []byte {
	out = appendFloat32(out, v.X())
	out = appendFloat32(out, v.Y())
	return appendFloat32(out, v.Z())
}
