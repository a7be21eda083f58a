// vatbake is a CLI tool that bakes mesh animations into vertex
// animation textures: an offset texture and a normal texture a vertex
// shader can replay without CPU skinning, plus an export mesh whose
// second UV channel addresses them.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/internal/config"
	"github.com/buchananwill/JRB-unreal-tools/internal/export"
	"github.com/buchananwill/JRB-unreal-tools/internal/logger"
	"github.com/buchananwill/JRB-unreal-tools/internal/scene"
	"github.com/buchananwill/JRB-unreal-tools/internal/store"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "bake":
		cmdBake(cfg, args[1:])
	case "validate":
		cmdValidate(cfg, args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vatbake - vertex animation texture baker

Usage:
  vatbake [flags] <command> <scene.yaml>

Commands:
  bake <scene.yaml>       Sample, encode and save textures + export mesh
  validate <scene.yaml>   Run upfront validation only

Flags:
  -config path    Config file (default ./vatbake.yaml)
  -out dir        Output directory for EXR/GLB files
  -res file       Also pack outputs into a bbolt resource file
  -start/-end/-step n  Frame range overrides
  -debug          Debug logging

Examples:
  vatbake -start 1 -end 60 bake scene.yaml
  vatbake -out ./baked -res stage.res bake scene.yaml
  vatbake validate scene.yaml`)
}

func cmdBake(cfg *config.Config, args []string) {
	job := loadJob(cfg, args)

	result, err := bake.Run(job)
	if err != nil {
		logger.Error("bake failed", zap.Error(err))
		os.Exit(1)
	}

	if !cfg.Output.HalfNormals {
		result.NormalTexture.HalfPrecision = false
	}
	for _, tex := range []*bake.Texture{result.OffsetTexture, result.NormalTexture} {
		if _, err := export.SaveTextureEXR(cfg.Output.Dir, tex); err != nil {
			logger.Error("saving texture", zap.String("name", tex.Name), zap.Error(err))
			os.Exit(1)
		}
	}

	if _, err := export.SaveMeshGLB(cfg.Output.Dir, store.ExportMeshKey, result.ExportMesh); err != nil {
		logger.Error("saving export mesh", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Output.ResourceFile != "" {
		if err := store.Pack(cfg.Output.ResourceFile, result); err != nil {
			logger.Error("packing resource file", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("bake complete",
		zap.Int("vertices", result.VertexCount),
		zap.Int("frames", result.FrameCount))
}

func cmdValidate(cfg *config.Config, args []string) {
	job := loadJob(cfg, args)
	if err := bake.Validate(job); err != nil {
		logger.Error("validation failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("scene is valid",
		zap.Int("objects", len(job.Objects)),
		zap.Int("frames", job.Range.Count()))
}

// loadJob initializes logging, loads the scene file named in args and
// assembles the bake job from scene + config.
func loadJob(cfg *config.Config, args []string) bake.Job {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: vatbake [flags] <command> <scene.yaml>")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(args[0])
	if err != nil {
		logger.Error("loading scene", zap.Error(err))
		os.Exit(1)
	}

	return bake.Job{
		Range:   cfg.Frames,
		Objects: sc.Deformables(),
		Units:   sc.Units,
	}
}
