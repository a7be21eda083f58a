package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func testImage(width, height int, pixelType EXRPixelType) *EXRImage {
	pixels := make([]float32, width*height*4)
	for i := range pixels {
		pixels[i] = float32(i) * 0.25
	}
	return &EXRImage{Width: width, Height: height, Pixels: pixels, PixelType: pixelType}
}

func TestEncodeEXRMagicAndVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeEXR(&buf, testImage(2, 2, EXRFloat)); err != nil {
		t.Fatalf("EncodeEXR failed: %v", err)
	}
	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte{0x76, 0x2f, 0x31, 0x01}) {
		t.Errorf("bad magic: % x", data[:4])
	}
	if binary.LittleEndian.Uint32(data[4:8]) != 2 {
		t.Errorf("version = %d, want 2", binary.LittleEndian.Uint32(data[4:8]))
	}
}

func TestEncodeEXRHeaderAttributes(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeEXR(&buf, testImage(3, 2, EXRFloat)); err != nil {
		t.Fatalf("EncodeEXR failed: %v", err)
	}
	data := buf.Bytes()

	for _, attr := range []string{
		"channels", "compression", "dataWindow", "displayWindow",
		"lineOrder", "pixelAspectRatio", "screenWindowCenter", "screenWindowWidth",
	} {
		if !bytes.Contains(data, append([]byte(attr), 0)) {
			t.Errorf("header missing attribute %q", attr)
		}
	}

	// dataWindow value: 0,0,width-1,height-1.
	idx := bytes.Index(data, append([]byte("dataWindow"), 0))
	val := data[idx+len("dataWindow")+1+len("box2i")+1+4:]
	if binary.LittleEndian.Uint32(val[8:12]) != 2 {
		t.Errorf("xMax = %d, want 2", binary.LittleEndian.Uint32(val[8:12]))
	}
	if binary.LittleEndian.Uint32(val[12:16]) != 1 {
		t.Errorf("yMax = %d, want 1", binary.LittleEndian.Uint32(val[12:16]))
	}
}

// decodeScanlines walks the offset table and returns per-scanline
// channel data, verifying the chunk framing on the way.
func decodeScanlines(t *testing.T, data []byte, width, height, bytesPerValue int) [][]byte {
	t.Helper()

	// Header ends at the double null before the offset table; find it
	// by walking attributes from the fixed 8-byte preamble.
	pos := 8
	for data[pos] != 0 {
		// name
		for data[pos] != 0 {
			pos++
		}
		pos++
		// type
		for data[pos] != 0 {
			pos++
		}
		pos++
		size := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4 + size
	}
	pos++ // header terminator

	lineSize := width * 4 * bytesPerValue
	lines := make([][]byte, height)
	for y := 0; y < height; y++ {
		off := int(binary.LittleEndian.Uint64(data[pos+y*8:]))
		gotY := int(int32(binary.LittleEndian.Uint32(data[off:])))
		if gotY != y {
			t.Fatalf("chunk %d: y = %d", y, gotY)
		}
		gotSize := int(binary.LittleEndian.Uint32(data[off+4:]))
		if gotSize != lineSize {
			t.Fatalf("chunk %d: size = %d, want %d", y, gotSize, lineSize)
		}
		lines[y] = data[off+8 : off+8+lineSize]
	}
	return lines
}

func TestEncodeEXRScanlineLayout(t *testing.T) {
	img := testImage(2, 2, EXRFloat)
	var buf bytes.Buffer
	if err := EncodeEXR(&buf, img); err != nil {
		t.Fatalf("EncodeEXR failed: %v", err)
	}

	lines := decodeScanlines(t, buf.Bytes(), 2, 2, 4)

	// Buffer row 1 (top of the image) becomes scanline 0. Channels are
	// stored A then B then G then R; R of pixel (0, top) is buffer
	// index (1*2+0)*4 + 0 = 8.
	rOffset := 3 * 2 * 4 // past A, B, G planes
	got := math.Float32frombits(binary.LittleEndian.Uint32(lines[0][rOffset:]))
	if want := img.Pixels[8]; got != want {
		t.Errorf("scanline 0 R[0] = %v, want %v", got, want)
	}

	// A channel comes first: alpha of pixel (0, top) is buffer index 11.
	got = math.Float32frombits(binary.LittleEndian.Uint32(lines[0][0:]))
	if want := img.Pixels[11]; got != want {
		t.Errorf("scanline 0 A[0] = %v, want %v", got, want)
	}
}

func TestEncodeEXRHalfPrecision(t *testing.T) {
	img := testImage(2, 1, EXRHalf)
	var buf bytes.Buffer
	if err := EncodeEXR(&buf, img); err != nil {
		t.Fatalf("EncodeEXR failed: %v", err)
	}
	lines := decodeScanlines(t, buf.Bytes(), 2, 1, 2)
	if len(lines[0]) != 2*4*2 {
		t.Errorf("half scanline size = %d, want 16", len(lines[0]))
	}
}

func TestEncodeEXRRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeEXR(&buf, &EXRImage{Width: 0, Height: 1})
	if !errors.Is(err, ErrEXRBadDimensions) {
		t.Errorf("zero width: %v, want ErrEXRBadDimensions", err)
	}

	err = EncodeEXR(&buf, &EXRImage{Width: 2, Height: 2, Pixels: make([]float32, 3)})
	if !errors.Is(err, ErrEXRPixelCount) {
		t.Errorf("short pixels: %v, want ErrEXRPixelCount", err)
	}
}
