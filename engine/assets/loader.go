package assets

import "github.com/spaghettifunk/anima/engine/renderer/metadata"

type Loader interface {
	// Load reads the file at path and returns a new mesh called name.
	Load(path string, name string) (*metadata.Mesh, error)
}
