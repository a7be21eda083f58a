// Package store packs bake results into a single bbolt resource file
// so an engine can load textures and the export mesh without touching
// loose files. Records are little-endian binary, one bucket per
// artifact kind.
package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/buchananwill/JRB-unreal-tools/internal/bake"
	"github.com/buchananwill/JRB-unreal-tools/internal/logger"
)

// Bucket names.
var (
	texturesBucket = []byte("textures")
	meshesBucket   = []byte("meshes")
)

// ExportMeshKey is the key the export mesh is stored under.
const ExportMeshKey = "export_mesh"

// Pack writes a bake result into the resource file at path, creating
// it if needed. Textures are keyed by their name, the export mesh by
// ExportMeshKey. Existing entries with the same keys are overwritten.
func Pack(path string, result *bake.Result) error {
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return fmt.Errorf("opening resource file: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		textures, err := tx.CreateBucketIfNotExists(texturesBucket)
		if err != nil {
			return err
		}
		for _, tex := range []*bake.Texture{result.OffsetTexture, result.NormalTexture} {
			if err := textures.Put([]byte(tex.Name), encodeTexture(tex)); err != nil {
				return err
			}
		}

		meshes, err := tx.CreateBucketIfNotExists(meshesBucket)
		if err != nil {
			return err
		}
		return meshes.Put([]byte(ExportMeshKey), encodeMesh(result.ExportMesh))
	})
	if err != nil {
		return fmt.Errorf("packing resources: %w", err)
	}

	logger.Info("packed resource file", zap.String("path", path))
	return nil
}

// LoadTexture reads one texture record back out of a resource file.
func LoadTexture(path, name string) (*bake.Texture, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("opening resource file: %w", err)
	}
	defer db.Close()

	var tex *bake.Texture
	err = db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(texturesBucket)
		if buck == nil {
			return fmt.Errorf("textures bucket not found")
		}
		raw := buck.Get([]byte(name))
		if raw == nil {
			return fmt.Errorf("texture %q not found", name)
		}
		var decodeErr error
		tex, decodeErr = decodeTexture(name, raw)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return tex, nil
}
