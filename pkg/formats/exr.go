package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/x448/float16"
)

// EXR format errors.
var (
	ErrEXRBadDimensions = errors.New("EXR dimensions must be positive")
	ErrEXRPixelCount    = errors.New("EXR pixel data length does not match dimensions")
)

// EXRPixelType selects the per-channel storage width.
type EXRPixelType int32

// Pixel type constants from the OpenEXR specification.
const (
	EXRHalf  EXRPixelType = 1
	EXRFloat EXRPixelType = 2
)

// EXRImage is a 4-channel float image destined for OpenEXR output.
// Pixels holds RGBA quads in row-major order with row 0 at the BOTTOM
// of the image, the layout the bake pipeline produces. The encoder
// flips rows so the visual orientation is preserved in the file.
type EXRImage struct {
	Width     int
	Height    int
	Pixels    []float32
	PixelType EXRPixelType
}

// exrMagic is the OpenEXR file signature followed by version 2 with no
// feature flags (scanline storage).
var exrMagic = []byte{0x76, 0x2f, 0x31, 0x01, 0x02, 0x00, 0x00, 0x00}

// Channel storage order within a scanline chunk. OpenEXR requires the
// channel list sorted by name.
var exrChannels = []struct {
	name   string
	offset int // float offset within an RGBA quad
}{
	{"A", 3},
	{"B", 2},
	{"G", 1},
	{"R", 0},
}

// EncodeEXR writes img as an uncompressed single-part scanline OpenEXR
// file. Channel data is linear; no color transform is applied.
func EncodeEXR(w io.Writer, img *EXRImage) error {
	if img.Width < 1 || img.Height < 1 {
		return ErrEXRBadDimensions
	}
	if len(img.Pixels) != img.Width*img.Height*4 {
		return fmt.Errorf("%w: have %d floats, want %d",
			ErrEXRPixelCount, len(img.Pixels), img.Width*img.Height*4)
	}
	pixelType := img.PixelType
	if pixelType != EXRHalf {
		pixelType = EXRFloat
	}

	var buf bytes.Buffer
	buf.Write(exrMagic)

	writeEXRAttr(&buf, "channels", "chlist", channelList(pixelType))
	writeEXRAttr(&buf, "compression", "compression", []byte{0}) // NO_COMPRESSION
	window := box2i(0, 0, img.Width-1, img.Height-1)
	writeEXRAttr(&buf, "dataWindow", "box2i", window)
	writeEXRAttr(&buf, "displayWindow", "box2i", window)
	writeEXRAttr(&buf, "lineOrder", "lineOrder", []byte{0}) // INCREASING_Y
	writeEXRAttr(&buf, "pixelAspectRatio", "float", floatBytes(1))
	writeEXRAttr(&buf, "screenWindowCenter", "v2f", append(floatBytes(0), floatBytes(0)...))
	writeEXRAttr(&buf, "screenWindowWidth", "float", floatBytes(1))
	buf.WriteByte(0) // end of header

	bytesPerValue := 4
	if pixelType == EXRHalf {
		bytesPerValue = 2
	}
	lineDataSize := img.Width * len(exrChannels) * bytesPerValue
	chunkSize := 8 + lineDataSize // y + size prefix

	// Scanline offset table: one uncompressed chunk per line.
	dataStart := uint64(buf.Len()) + uint64(8*img.Height)
	for y := 0; y < img.Height; y++ {
		var off [8]byte
		binary.LittleEndian.PutUint64(off[:], dataStart+uint64(y*chunkSize))
		buf.Write(off[:])
	}

	line := make([]byte, lineDataSize)
	for y := 0; y < img.Height; y++ {
		var head [8]byte
		binary.LittleEndian.PutUint32(head[0:4], uint32(y))
		binary.LittleEndian.PutUint32(head[4:8], uint32(lineDataSize))
		buf.Write(head[:])

		// Scanline 0 is the top of the image; buffer row 0 is the bottom.
		row := img.Height - 1 - y
		pos := 0
		for _, ch := range exrChannels {
			for x := 0; x < img.Width; x++ {
				v := img.Pixels[(row*img.Width+x)*4+ch.offset]
				if pixelType == EXRHalf {
					binary.LittleEndian.PutUint16(line[pos:], float16.Fromfloat32(v).Bits())
					pos += 2
				} else {
					binary.LittleEndian.PutUint32(line[pos:], math.Float32bits(v))
					pos += 4
				}
			}
		}
		buf.Write(line)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeEXRAttr emits one header attribute: name, type, value size,
// value bytes.
func writeEXRAttr(buf *bytes.Buffer, name, attrType string, value []byte) {
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.WriteString(attrType)
	buf.WriteByte(0)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(value)))
	buf.Write(size[:])
	buf.Write(value)
}

// channelList builds a chlist value for A, B, G, R channels of the
// given pixel type with no subsampling.
func channelList(pixelType EXRPixelType) []byte {
	var buf bytes.Buffer
	for _, ch := range exrChannels {
		buf.WriteString(ch.name)
		buf.WriteByte(0)
		var fields [16]byte
		binary.LittleEndian.PutUint32(fields[0:4], uint32(pixelType))
		// pLinear + 3 reserved bytes stay zero.
		binary.LittleEndian.PutUint32(fields[8:12], 1)  // xSampling
		binary.LittleEndian.PutUint32(fields[12:16], 1) // ySampling
		buf.Write(fields[:])
	}
	buf.WriteByte(0)
	return buf.Bytes()
}

func box2i(xMin, yMin, xMax, yMax int) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint32(out[0:4], uint32(int32(xMin)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(int32(yMin)))
	binary.LittleEndian.PutUint32(out[8:12], uint32(int32(xMax)))
	binary.LittleEndian.PutUint32(out[12:16], uint32(int32(yMax)))
	return out
}

func floatBytes(v float32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, math.Float32bits(v))
	return out
}
