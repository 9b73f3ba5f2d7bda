package testbed

import (
	"testing"

	"github.com/spaghettifunk/anima/engine"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/renderer"
)

// scriptedPlatform steps a fixed number of frames, holding the keys listed
// for each frame.
type scriptedPlatform struct {
	keys   []map[core.KeyCode]bool
	frame  int
	frames int
}

func (p *scriptedPlatform) Startup(string, uint32, uint32, uint32, uint32) error { return nil }

func (p *scriptedPlatform) Run(frame func() bool) error {
	for p.frame = 0; p.frame < p.frames; p.frame++ {
		if !frame() {
			break
		}
	}
	return nil
}

func (p *scriptedPlatform) IsKeyDown(key core.KeyCode) bool {
	if p.frame >= len(p.keys) {
		return false
	}
	return p.keys[p.frame][key]
}

func (p *scriptedPlatform) Present([]uint8, int, int) error { return nil }

func (p *scriptedPlatform) Shutdown() error { return nil }

func runTestGame(t *testing.T, p *scriptedPlatform) *TestGame {
	t.Helper()
	cfg := engine.DefaultApplicationConfig()
	cfg.StartWidth = 160
	cfg.StartHeight = 120
	cfg.Scene.RotationSpeed = 90

	tg, err := NewTestGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.NewWithPlatform(tg.Game, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	return tg
}

func TestTestGameDrawsScene(t *testing.T) {
	tg := runTestGame(t, &scriptedPlatform{frames: 3})
	state := tg.State.(*gameState)

	if len(state.objects) != 3 {
		t.Fatalf("%d objects, want 3", len(state.objects))
	}
	if state.objects[0].Mesh != state.objects[1].Mesh {
		t.Fatalf("cubes do not share a mesh")
	}
	if tg.Assets.MeshCount() != 2 {
		t.Fatalf("MeshCount() = %d, want 2", tg.Assets.MeshCount())
	}

	fb := tg.Renderer.Framebuffer
	counts := map[renderer.Color]int{}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			counts[fb.At(x, y)]++
		}
	}
	for _, c := range []renderer.Color{renderer.White, renderer.Green, WALL_COLOR, renderer.Red} {
		if counts[c] == 0 {
			t.Fatalf("no pixels of %v drawn", c)
		}
	}
}

func TestPauseToggle(t *testing.T) {
	keys := []map[core.KeyCode]bool{
		{},
		{core.KEY_P: true},
		{core.KEY_P: true},
		{},
		{},
	}
	tg := runTestGame(t, &scriptedPlatform{frames: len(keys), keys: keys})
	state := tg.State.(*gameState)
	if !state.paused {
		t.Fatalf("holding P for two frames should toggle pause once")
	}
}

func TestCameraMovesWhileHeld(t *testing.T) {
	keys := []map[core.KeyCode]bool{
		{},
		{core.KEY_UP: true},
		{core.KEY_UP: true},
		{core.KEY_UP: true},
	}
	tg := runTestGame(t, &scriptedPlatform{frames: len(keys), keys: keys})
	state := tg.State.(*gameState)
	if state.WorldCamera.Position.Z < 0 {
		t.Fatalf("camera moved backwards to %v", state.WorldCamera.Position.Z)
	}
}
