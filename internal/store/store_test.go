package store

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/pkg/geometry"
)

func testResult() *bake.Result {
	return &bake.Result{
		OffsetTexture: &bake.Texture{
			Name:      "offsets_neg_max_0_pos_max_1",
			Width:     2,
			Height:    2,
			Pixels:    []float32{0, 0.25, 0.5, 1, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
			NegExtent: 0,
			PosExtent: 1,
		},
		NormalTexture: &bake.Texture{
			Name:          "normals",
			Width:         2,
			Height:        2,
			Pixels:        make([]float32, 16),
			HalfPrecision: true,
		},
		ExportMesh: &geometry.Mesh{
			Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
			Indices:   []uint32{0, 1, 2},
		},
		VertexCount: 2,
		FrameCount:  2,
	}
}

func TestPackAndLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage.res")
	result := testResult()

	if err := Pack(path, result); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	tex, err := LoadTexture(path, result.OffsetTexture.Name)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if tex.NegExtent != 0 || tex.PosExtent != 1 {
		t.Errorf("extents = %v/%v, want 0/1", tex.NegExtent, tex.PosExtent)
	}
	if tex.HalfPrecision {
		t.Error("offset texture decoded as half precision")
	}
	for i, v := range result.OffsetTexture.Pixels {
		if tex.Pixels[i] != v {
			t.Fatalf("pixel %d = %v, want %v", i, tex.Pixels[i], v)
		}
	}
}

func TestPackOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage.res")
	result := testResult()

	if err := Pack(path, result); err != nil {
		t.Fatalf("first Pack failed: %v", err)
	}
	result.OffsetTexture.Pixels[0] = 0.75
	if err := Pack(path, result); err != nil {
		t.Fatalf("second Pack failed: %v", err)
	}

	tex, err := LoadTexture(path, result.OffsetTexture.Name)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if tex.Pixels[0] != 0.75 {
		t.Errorf("pixel 0 = %v, want overwritten 0.75", tex.Pixels[0])
	}
}

func TestLoadTextureMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage.res")
	if err := Pack(path, testResult()); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if _, err := LoadTexture(path, "nope"); err == nil {
		t.Error("expected an error for a missing texture")
	}
}

func TestTextureCodecRoundTrip(t *testing.T) {
	in := &bake.Texture{
		Name:          "normals",
		Width:         1,
		Height:        2,
		Pixels:        []float32{0.5, 0.5, 1, 1, 0.5, 0.5, 1, 1},
		HalfPrecision: true,
	}
	out, err := decodeTexture(in.Name, encodeTexture(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Width != in.Width || out.Height != in.Height || !out.HalfPrecision {
		t.Errorf("decoded header = %+v", out)
	}
	for i := range in.Pixels {
		if out.Pixels[i] != in.Pixels[i] {
			t.Fatalf("pixel %d = %v, want %v", i, out.Pixels[i], in.Pixels[i])
		}
	}
}

func TestTextureCodecRejectsTruncated(t *testing.T) {
	raw := encodeTexture(testResult().OffsetTexture)
	if _, err := decodeTexture("x", raw[:10]); err == nil {
		t.Error("expected an error for a short record")
	}
	if _, err := decodeTexture("x", raw[:len(raw)-4]); err == nil {
		t.Error("expected an error for truncated pixels")
	}
}
