package bake

import (
	"fmt"
	"strconv"
)

// Texture is a logical 2D float RGBA buffer. Pixels is row-major with
// row 0 first in memory: row 0 holds the LAST sampled frame and the
// final row holds the reference frame, the order EncodeVertexData
// emits. Column = merged vertex index. Channel data is linear; no
// color transform may ever be applied to it.
type Texture struct {
	Name   string
	Width  int // vertex count
	Height int // frame count
	Pixels []float32

	// HalfPrecision marks buffers that tolerate 16-bit storage.
	// Offsets need full float; normals are bounded [0,1] and don't.
	HalfPrecision bool

	// NegExtent and PosExtent invert the offset normalization:
	// original = value*(NegExtent+PosExtent) - NegExtent.
	// Zero on the normal texture.
	NegExtent float32
	PosExtent float32
}

// BakeTextures lays the normalized offset and normal channel lists out
// as two textures of width*height RGBA pixels. The flat arrays are
// adopted as-is: their order already encodes the row layout. The
// offset texture's name embeds the extents so the normalization stays
// recoverable wherever the file ends up.
func BakeTextures(offsets, normals []float32, width, height int, negExtent, posExtent float32) (offsetTex, normalTex *Texture) {
	offsetTex = &Texture{
		Name: fmt.Sprintf("offsets_neg_max_%s_pos_max_%s",
			formatExtent(negExtent), formatExtent(posExtent)),
		Width:     width,
		Height:    height,
		Pixels:    offsets,
		NegExtent: negExtent,
		PosExtent: posExtent,
	}
	normalTex = &Texture{
		Name:          "normals",
		Width:         width,
		Height:        height,
		Pixels:        normals,
		HalfPrecision: true,
	}
	return offsetTex, normalTex
}

func formatExtent(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
