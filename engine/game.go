package engine

import (
	"github.com/spaghettifunk/anima/engine/assets"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer"
	"github.com/spaghettifunk/anima/engine/systems"
)

// Game is what an application hands to the engine: its configuration and
// lifecycle callbacks. The engine fills the handles during Initialize.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Renderer          *renderer.Renderer
	Assets            *assets.AssetManager
	Cameras           *systems.CameraSystem
	Input             *core.InputState
	Events            *core.EventSystem
	State             interface{}
	FnOnCreate        OnCreate
	FnOnUpdate        OnUpdate
	FnOnShutdown      Shutdown
}

// OnCreate runs once before the first frame. Returning false aborts startup.
type OnCreate func() bool

// OnUpdate runs once per frame with the seconds since the previous frame.
// Returning false stops the loop after this frame.
type OnUpdate func(deltaTime float32) bool

type Shutdown func() error
