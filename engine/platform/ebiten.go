//go:build ebiten

package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spaghettifunk/anima/engine/core"
)

// WindowedBackend is the windowed backend linked into this binary.
const WindowedBackend = BackendEbiten

func newWindowed() Platform {
	return NewEbitenPlatform()
}

var ebitenKeys = map[core.KeyCode]ebiten.Key{
	core.KEY_SPACE:     ebiten.KeySpace,
	core.KEY_0:         ebiten.KeyDigit0,
	core.KEY_1:         ebiten.KeyDigit1,
	core.KEY_2:         ebiten.KeyDigit2,
	core.KEY_3:         ebiten.KeyDigit3,
	core.KEY_4:         ebiten.KeyDigit4,
	core.KEY_5:         ebiten.KeyDigit5,
	core.KEY_6:         ebiten.KeyDigit6,
	core.KEY_7:         ebiten.KeyDigit7,
	core.KEY_8:         ebiten.KeyDigit8,
	core.KEY_9:         ebiten.KeyDigit9,
	core.KEY_A:         ebiten.KeyA,
	core.KEY_B:         ebiten.KeyB,
	core.KEY_C:         ebiten.KeyC,
	core.KEY_D:         ebiten.KeyD,
	core.KEY_E:         ebiten.KeyE,
	core.KEY_F:         ebiten.KeyF,
	core.KEY_G:         ebiten.KeyG,
	core.KEY_H:         ebiten.KeyH,
	core.KEY_I:         ebiten.KeyI,
	core.KEY_J:         ebiten.KeyJ,
	core.KEY_K:         ebiten.KeyK,
	core.KEY_L:         ebiten.KeyL,
	core.KEY_M:         ebiten.KeyM,
	core.KEY_N:         ebiten.KeyN,
	core.KEY_O:         ebiten.KeyO,
	core.KEY_P:         ebiten.KeyP,
	core.KEY_Q:         ebiten.KeyQ,
	core.KEY_R:         ebiten.KeyR,
	core.KEY_S:         ebiten.KeyS,
	core.KEY_T:         ebiten.KeyT,
	core.KEY_U:         ebiten.KeyU,
	core.KEY_V:         ebiten.KeyV,
	core.KEY_W:         ebiten.KeyW,
	core.KEY_X:         ebiten.KeyX,
	core.KEY_Y:         ebiten.KeyY,
	core.KEY_Z:         ebiten.KeyZ,
	core.KEY_ESCAPE:    ebiten.KeyEscape,
	core.KEY_ENTER:     ebiten.KeyEnter,
	core.KEY_TAB:       ebiten.KeyTab,
	core.KEY_BACKSPACE: ebiten.KeyBackspace,
	core.KEY_RIGHT:     ebiten.KeyArrowRight,
	core.KEY_LEFT:      ebiten.KeyArrowLeft,
	core.KEY_DOWN:      ebiten.KeyArrowDown,
	core.KEY_UP:        ebiten.KeyArrowUp,
	core.KEY_F1:        ebiten.KeyF1,
	core.KEY_F2:        ebiten.KeyF2,
	core.KEY_F3:        ebiten.KeyF3,
	core.KEY_F4:        ebiten.KeyF4,
	core.KEY_F5:        ebiten.KeyF5,
	core.KEY_F6:        ebiten.KeyF6,
	core.KEY_F7:        ebiten.KeyF7,
	core.KEY_F8:        ebiten.KeyF8,
	core.KEY_F9:        ebiten.KeyF9,
	core.KEY_F10:       ebiten.KeyF10,
	core.KEY_F11:       ebiten.KeyF11,
	core.KEY_F12:       ebiten.KeyF12,
	core.KEY_LSHIFT:    ebiten.KeyShiftLeft,
	core.KEY_RSHIFT:    ebiten.KeyShiftRight,
	core.KEY_LCONTROL:  ebiten.KeyControlLeft,
	core.KEY_RCONTROL:  ebiten.KeyControlRight,
	core.KEY_LALT:      ebiten.KeyAltLeft,
	core.KEY_RALT:      ebiten.KeyAltRight,
}

// EbitenPlatform runs the frame callback from ebiten's Update and draws
// the last presented frame in Draw.
type EbitenPlatform struct {
	width   int
	height  int
	frame   func() bool
	staging []uint8
	image   *ebiten.Image
	dirty   bool
}

func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{}
}

func (p *EbitenPlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	p.width = int(width)
	p.height = int(height)
	p.staging = make([]uint8, p.width*p.height*4)

	ebiten.SetWindowTitle(applicationName)
	ebiten.SetWindowSize(p.width, p.height)
	ebiten.SetWindowPosition(int(x), int(y))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	core.LogInfo("ebiten window %dx%d", width, height)
	return nil
}

func (p *EbitenPlatform) Run(frame func() bool) error {
	p.frame = frame
	if err := ebiten.RunGame(p); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (p *EbitenPlatform) IsKeyDown(key core.KeyCode) bool {
	k, ok := ebitenKeys[key]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

// Present copies the frame flipped vertically, since ebiten images are
// top-down.
func (p *EbitenPlatform) Present(pixels []uint8, width int, height int) error {
	if width != p.width || height != p.height || len(pixels) < width*height*4 {
		return nil
	}
	flipRows(p.staging, pixels, width, height)
	p.dirty = true
	return nil
}

func (p *EbitenPlatform) Shutdown() error {
	p.image = nil
	return nil
}

func (p *EbitenPlatform) Update() error {
	if p.frame == nil || !p.frame() {
		return ebiten.Termination
	}
	return nil
}

func (p *EbitenPlatform) Draw(screen *ebiten.Image) {
	if p.image == nil {
		p.image = ebiten.NewImage(p.width, p.height)
	}
	if p.dirty {
		p.image.WritePixels(p.staging)
		p.dirty = false
	}
	screen.DrawImage(p.image, nil)
}

func (p *EbitenPlatform) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.width, p.height
}
