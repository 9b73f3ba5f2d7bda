package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima/engine/assets/loaders"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeModel
	AssetTypeConfig
)

// CHANGES_BUFFER is how many file changes may queue up between two frames.
const CHANGES_BUFFER int = 64

type AssetInfo struct {
	Path        string
	Type        AssetType
	LastChanged time.Time
}

// AssetManager owns every mesh asset of a session and watches the assets
// directory for changes. Meshes live in an arena indexed by MeshID; objects
// refer to them by id and never hold their own copy.
type AssetManager struct {
	meshes    []*metadata.Mesh
	meshNames map[string]metadata.MeshID

	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
	changes  chan core.AssetEvent
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		meshNames: make(map[string]metadata.MeshID),
		assets:    make(map[string]AssetInfo),
		loaders:   make(map[AssetType]Loader),
		fsnotify:  fsWatch,
		changes:   make(chan core.AssetEvent, CHANGES_BUFFER),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(AssetTypeModel, &loaders.ModelLoader{})

	return am, nil
}

// Initialize indexes assetsDir and starts watching it, sub-directories
// included.
func (am *AssetManager) Initialize(assetsDir string) error {
	if am.isClosed {
		return core.ErrAssetManagerClosed
	}
	if err := am.addRecursive(assetsDir); err != nil {
		return fmt.Errorf("watch assets directory '%s': %w", assetsDir, err)
	}
	if !am.watching {
		am.watching = true
		go am.start()
	}
	core.LogInfo("watching assets in '%s'", assetsDir)
	return nil
}

// Changes delivers file changes observed under the assets directory. The
// engine drains it once per frame on the render thread.
func (am *AssetManager) Changes() <-chan core.AssetEvent {
	return am.changes
}

// Shutdown stops the watcher. Meshes stay readable afterwards.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return core.ErrAssetManagerClosed
	}
	am.isClosed = true
	if am.watching {
		close(am.done)
		<-am.stopped
		return nil
	}
	return am.fsnotify.Close()
}

// AddMesh stores mesh under name and returns its id. Adding a name twice
// replaces the mesh in place and keeps the id stable.
func (am *AssetManager) AddMesh(name string, mesh *metadata.Mesh) metadata.MeshID {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	mesh.Name = name
	if id, exists := am.meshNames[name]; exists {
		am.meshes[id] = mesh
		core.LogDebug("mesh '%s' replaced (id %d)", name, id)
		return id
	}
	id := metadata.MeshID(len(am.meshes))
	am.meshes = append(am.meshes, mesh)
	am.meshNames[name] = id
	return id
}

func (am *AssetManager) Mesh(id metadata.MeshID) (*metadata.Mesh, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	if int(id) >= len(am.meshes) {
		return nil, fmt.Errorf("mesh %d: %w", id, core.ErrInvalidMeshID)
	}
	return am.meshes[id], nil
}

func (am *AssetManager) MeshByName(name string) (metadata.MeshID, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	id, ok := am.meshNames[name]
	if !ok {
		return metadata.InvalidMeshID, false
	}
	return id, true
}

func (am *AssetManager) MeshCount() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.meshes)
}

// LoadMesh reads a mesh file through the loader registered for its
// extension. On failure the arena is left untouched.
func (am *AssetManager) LoadMesh(name, path string) (metadata.MeshID, error) {
	assetType := determineAssetType(path)
	loader, exists := am.loaders[assetType]
	if !exists {
		return metadata.InvalidMeshID, fmt.Errorf("no loader for '%s': %w", path, core.ErrUnknownAssetType)
	}
	mesh, err := loader.Load(path, name)
	if err != nil {
		core.LogWarn("could not load mesh '%s': %s", name, err)
		return metadata.InvalidMeshID, err
	}
	return am.AddMesh(name, mesh), nil
}

// Asset returns what is known about a watched file.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return core.ErrAssetManagerClosed
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			if err := am.fsnotify.Close(); err != nil {
				core.LogError("closing asset watcher: %s", err)
			}
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("watching new directory '%s': %s", e.Name, err)
			}
		}
		return
	}
	if determineAssetType(e.Name) == AssetTypeNone {
		return
	}
	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		am.handleFileEvent(e.Name)
		am.notify(core.AssetEvent{Path: e.Name})
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		am.removeAsset(e.Name)
		am.notify(core.AssetEvent{Path: e.Name, Removed: true})
	}
}

// notify never blocks the watcher; a full queue drops the event.
func (am *AssetManager) notify(ev core.AssetEvent) {
	select {
	case am.changes <- ev:
	default:
		core.LogWarn("asset change queue full, dropping '%s'", ev.Path)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}
	path = filepath.Clean(path)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:        path,
		Type:        assetType,
		LastChanged: time.Now(),
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".obj":
		return AssetTypeModel
	case ".toml", ".yaml", ".yml":
		return AssetTypeConfig
	default:
		return AssetTypeNone
	}
}
