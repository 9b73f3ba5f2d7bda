package loaders

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

// ModelLoader handles Wavefront .obj files. Parsing is not implemented yet,
// so every load fails with core.ErrMeshLoadUnsupported once the file has
// been found.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, name string) (*metadata.Mesh, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	mesh := metadata.NewMesh(name)
	if !mesh.LoadFromObjectFile(path) {
		return nil, fmt.Errorf("load model '%s': %w", path, core.ErrMeshLoadUnsupported)
	}
	return mesh, nil
}
