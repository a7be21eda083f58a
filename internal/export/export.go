// Package export persists bake results: textures as OpenEXR files,
// the export mesh as binary glTF, with filename collision handling.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/internal/logger"
	"github.com/buchananwill/JRB-unreal-tools/pkg/formats"
)

var numberedName = regexp.MustCompile(`^(.*)_(\d+)$`)

// UniquePath returns dir/name+ext, appending or incrementing a _N
// suffix on the name until the path does not exist yet.
func UniquePath(dir, name, ext string) string {
	for {
		full := filepath.Join(dir, name+ext)
		if _, err := os.Stat(full); os.IsNotExist(err) {
			return full
		}
		if m := numberedName.FindStringSubmatch(name); m != nil {
			n := 0
			fmt.Sscanf(m[2], "%d", &n)
			name = fmt.Sprintf("%s_%d", m[1], n+1)
		} else {
			name = name + "_1"
		}
	}
}

// SaveTextureEXR writes a baked texture to dir as an uncompressed
// linear OpenEXR file named after the texture, resolving name
// collisions. Half-precision textures get HALF channels; everything
// else full float. Returns the path written.
func SaveTextureEXR(dir string, tex *bake.Texture) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	pixelType := formats.EXRFloat
	if tex.HalfPrecision {
		pixelType = formats.EXRHalf
	}
	img := &formats.EXRImage{
		Width:     tex.Width,
		Height:    tex.Height,
		Pixels:    tex.Pixels,
		PixelType: pixelType,
	}

	path := UniquePath(dir, tex.Name, ".exr")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := formats.EncodeEXR(file, img); err != nil {
		return "", fmt.Errorf("encoding EXR: %w", err)
	}

	logger.Info("saved texture",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
	return path, nil
}
