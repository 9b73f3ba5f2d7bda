package systems

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer/components"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system. The default camera does not count.
	 */
	MaxCameraCount uint16
	/** @brief Projection settings every new camera starts with. */
	FovDegrees float32
	Near       float32
	Far        float32
}

type cameraLookup struct {
	camera         *components.Camera
	referenceCount uint16
}

type CameraSystem struct {
	Config *CameraSystemConfig
	lookup map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
}

var ErrCameraSystemFull = fmt.Errorf("camera system has no free slot")

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		lookup:        make(map[string]*cameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(config.FovDegrees, config.Near, config.Far),
	}, nil
}

/**
 * @brief Acquires a camera by name.
 * If one is not found, a new one is created and returned.
 * Internal reference counter is incremented.
 *
 * @param name The name of the camera to acquire.
 * @return The camera, or an error when every slot is taken.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	entry, ok := cs.lookup[name]
	if !ok {
		if len(cs.lookup) >= int(cs.Config.MaxCameraCount) {
			core.LogError("cannot create camera '%s': %d cameras already registered", name, len(cs.lookup))
			return nil, ErrCameraSystemFull
		}
		core.LogDebug("Creating new camera named '%s'...", name)
		entry = &cameraLookup{
			camera: components.NewCamera(cs.Config.FovDegrees, cs.Config.Near, cs.Config.Far),
		}
		cs.lookup[name] = entry
	}
	entry.referenceCount++
	return entry.camera, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is dropped and
 * its slot is usable by a new camera.
 *
 * @param name The name of the camera to release.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	entry, ok := cs.lookup[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup for '%s'. Nothing was done.", name)
		return
	}
	entry.referenceCount--
	if entry.referenceCount < 1 {
		delete(cs.lookup, name)
	}
}

/**
 * @brief Gets the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}

// Count returns how many named cameras are alive.
func (cs *CameraSystem) Count() int {
	return len(cs.lookup)
}

func (cs *CameraSystem) Shutdown() error {
	cs.lookup = make(map[string]*cameraLookup)
	return nil
}
