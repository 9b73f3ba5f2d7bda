//go:build !ebiten

package platform

import (
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/anima/engine/core"
)

// WindowedBackend is the windowed backend linked into this binary.
const WindowedBackend = BackendGLFW

func newWindowed() Platform {
	return NewGLFWPlatform()
}

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// GLFWPlatform opens a window with a legacy GL context and blits the
// framebuffer with glDrawPixels.
type GLFWPlatform struct {
	Window *glfw.Window
	keys   [core.KEYS_MAX_KEYS]bool
}

func NewGLFWPlatform() *GLFWPlatform {
	return &GLFWPlatform{
		Window: nil,
	}
}

func (p *GLFWPlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	p.Window = window

	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize gl: %s", err)
		window.Destroy()
		glfw.Terminate()
		return err
	}
	glfw.SwapInterval(1)

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFocusCallback(p.focusCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	core.LogInfo("glfw window %dx%d, GL %s", width, height, gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

func (p *GLFWPlatform) Run(frame func() bool) error {
	for !p.Window.ShouldClose() {
		glfw.PollEvents()
		if !frame() {
			break
		}
	}
	return nil
}

func (p *GLFWPlatform) IsKeyDown(key core.KeyCode) bool {
	if key >= core.KEYS_MAX_KEYS {
		return false
	}
	return p.keys[key]
}

func (p *GLFWPlatform) Present(pixels []uint8, width int, height int) error {
	if len(pixels) < width*height*4 {
		return nil
	}
	gl.RasterPos2f(-1, -1)
	gl.DrawPixels(int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	p.Window.SwapBuffers()
	return nil
}

func (p *GLFWPlatform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func (p *GLFWPlatform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key < 0 || int(key) >= int(core.KEYS_MAX_KEYS) {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		p.keys[key] = true
	case glfw.Release:
		p.keys[key] = false
	}
}

// Releases are not delivered while unfocused, so drop everything held.
func (p *GLFWPlatform) focusCallback(w *glfw.Window, focused bool) {
	if !focused {
		p.keys = [core.KEYS_MAX_KEYS]bool{}
	}
}
