package platform

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
)

const (
	BackendGLFW     string = "glfw"
	BackendEbiten   string = "ebiten"
	BackendHeadless string = "headless"
)

// Platform is the window, input and presentation layer under the engine.
// Every method is called from the render thread.
type Platform interface {
	Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error
	// Run calls frame once per iteration until it returns false or the
	// window is closed.
	Run(frame func() bool) error
	// IsKeyDown reports the raw state of key right now.
	IsKeyDown(key core.KeyCode) bool
	// Present shows one RGBA8 frame, row 0 being the bottom scanline.
	Present(pixels []uint8, width int, height int) error
	Shutdown() error
}

// New returns the backend called name. Only one windowed backend is linked
// into a binary (GLFW by default, Ebiten with the ebiten build tag), and an
// empty name selects it.
func New(name string, headless HeadlessConfig) (Platform, error) {
	switch name {
	case BackendGLFW, BackendEbiten, "":
		if name != "" && name != WindowedBackend {
			return nil, fmt.Errorf("backend '%s': %w", name, core.ErrBackendNotBuilt)
		}
		return newWindowed(), nil
	case BackendHeadless:
		return NewHeadlessPlatform(headless), nil
	default:
		return nil, fmt.Errorf("backend '%s': %w", name, core.ErrUnknownBackend)
	}
}
