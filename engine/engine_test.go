package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/platform"
	"github.com/spaghettifunk/anima/engine/renderer"
)

// fakePlatform replays a scripted key sequence, one entry per frame.
type fakePlatform struct {
	keys      []map[core.KeyCode]bool
	maxFrames int
	frame     int
	presented int
	started   bool
	shutdown  bool
	startErr  error
}

func (p *fakePlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	p.started = true
	return p.startErr
}

func (p *fakePlatform) Run(frame func() bool) error {
	for p.frame = 0; p.frame < p.maxFrames; p.frame++ {
		if !frame() {
			p.frame++
			break
		}
	}
	return nil
}

func (p *fakePlatform) IsKeyDown(key core.KeyCode) bool {
	if p.frame >= len(p.keys) {
		return false
	}
	return p.keys[p.frame][key]
}

func (p *fakePlatform) Present(pixels []uint8, width int, height int) error {
	p.presented++
	return nil
}

func (p *fakePlatform) Shutdown() error {
	p.shutdown = true
	return nil
}

func testConfig() *ApplicationConfig {
	cfg := DefaultApplicationConfig()
	cfg.StartWidth = 64
	cfg.StartHeight = 48
	return cfg
}

func newTestEngine(t *testing.T, g *Game, p *fakePlatform) *Engine {
	t.Helper()
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = testConfig()
	}
	e, err := NewWithPlatform(g, p)
	if err != nil {
		t.Fatalf("NewWithPlatform() error = %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Shutdown() })
	return e
}

func TestInitializeFillsHandles(t *testing.T) {
	p := &fakePlatform{}
	g := &Game{}
	e := newTestEngine(t, g, p)

	if !p.started {
		t.Fatalf("platform was not started")
	}
	if e.Stage() != EngineStageInitialized {
		t.Fatalf("Stage() = %d, want initialized", e.Stage())
	}
	if g.Renderer == nil || g.Assets == nil || g.Input == nil || g.Events == nil || g.Cameras == nil {
		t.Fatalf("game handles not set: %+v", g)
	}
	if g.Renderer.Width != 64 || g.Renderer.Height != 48 {
		t.Fatalf("framebuffer is %dx%d, want 64x48", g.Renderer.Width, g.Renderer.Height)
	}
	if cam := g.Cameras.GetDefault(); cam.FovDegrees != 90 || cam.Far != 1000 {
		t.Fatalf("default camera not configured: %+v", cam)
	}
	if w, h := e.GetFramebufferSize(); w != 64 || h != 48 {
		t.Fatalf("GetFramebufferSize() = %d, %d", w, h)
	}
}

func TestInitializePlatformFailure(t *testing.T) {
	boom := errors.New("no display")
	e, err := NewWithPlatform(&Game{ApplicationConfig: testConfig()}, &fakePlatform{startErr: boom})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Shutdown()
	if err := e.Initialize(); !errors.Is(err, boom) {
		t.Fatalf("Initialize() error = %v, want %v", err, boom)
	}
}

func TestRunOnCreateFailure(t *testing.T) {
	updates := 0
	g := &Game{
		FnOnCreate: func() bool { return false },
		FnOnUpdate: func(float32) bool { updates++; return true },
	}
	p := &fakePlatform{maxFrames: 10}
	e := newTestEngine(t, g, p)

	if err := e.Run(); !errors.Is(err, core.ErrApplicationCreate) {
		t.Fatalf("Run() error = %v, want ErrApplicationCreate", err)
	}
	if updates != 0 || p.presented != 0 {
		t.Fatalf("loop ran after a failed OnCreate: %d updates, %d frames", updates, p.presented)
	}
}

func TestRunStopsWhenUpdateFails(t *testing.T) {
	created := 0
	updates := 0
	var total float32
	g := &Game{
		FnOnCreate: func() bool { created++; return true },
		FnOnUpdate: func(dt float32) bool {
			if dt < 0 {
				t.Errorf("negative delta %v", dt)
			}
			total += dt
			updates++
			return updates < 3
		},
	}
	p := &fakePlatform{maxFrames: 100}
	e := newTestEngine(t, g, p)

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if created != 1 {
		t.Fatalf("OnCreate called %d times", created)
	}
	// the frame whose update failed is not presented
	if updates != 3 || p.presented != 2 {
		t.Fatalf("%d updates and %d frames, want 3 and 2", updates, p.presented)
	}
	if float64(total) > e.clock.Elapsed()+1e-6 {
		t.Fatalf("deltas add up to %v, more than the %v elapsed", total, e.clock.Elapsed())
	}
}

func TestKeyEdges(t *testing.T) {
	p := &fakePlatform{
		maxFrames: 6,
		keys: []map[core.KeyCode]bool{
			{},
			{core.KEY_P: true},
			{core.KEY_P: true},
			{core.KEY_P: true},
			{},
			{},
		},
	}
	var got []core.KeyState
	g := &Game{}
	g.FnOnUpdate = func(float32) bool {
		got = append(got, g.Input.GetKey(core.KEY_P))
		return true
	}
	e := newTestEngine(t, g, p)

	pressed, released := 0, 0
	g.Events.Register(core.EVENT_CODE_KEY_PRESSED, g, func(ctx core.EventContext) bool {
		if ctx.Data.(*core.KeyEvent).KeyCode == core.KEY_P {
			pressed++
		}
		return false
	})
	g.Events.Register(core.EVENT_CODE_KEY_RELEASED, g, func(ctx core.EventContext) bool {
		if ctx.Data.(*core.KeyEvent).KeyCode == core.KEY_P {
			released++
		}
		return false
	})

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []core.KeyState{
		{},
		{Pressed: true, Held: true},
		{Held: true},
		{Held: true},
		{Released: true},
		{},
	}
	if len(got) != len(want) {
		t.Fatalf("saw %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: %+v, want %+v", i, got[i], want[i])
		}
	}
	if pressed != 1 || released != 1 {
		t.Fatalf("pressed fired %d times, released %d times", pressed, released)
	}
}

func TestEscapeQuits(t *testing.T) {
	p := &fakePlatform{
		maxFrames: 50,
		keys:      []map[core.KeyCode]bool{{}, {}, {core.KEY_ESCAPE: true}},
	}
	updates := 0
	g := &Game{FnOnUpdate: func(float32) bool { updates++; return true }}
	e := newTestEngine(t, g, p)

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p.frame != 3 || updates != 3 {
		t.Fatalf("ran %d frames and %d updates, want 3", p.frame, updates)
	}
}

func TestRequestQuit(t *testing.T) {
	p := &fakePlatform{maxFrames: 50}
	updates := 0
	g := &Game{FnOnUpdate: func(float32) bool { updates++; return true }}
	e := newTestEngine(t, g, p)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.RequestQuit()
	}()
	wg.Wait()

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if updates != 0 || p.presented != 0 {
		t.Fatalf("loop ran %d updates after RequestQuit", updates)
	}
}

func TestShutdown(t *testing.T) {
	p := &fakePlatform{}
	shutdownCalled := false
	g := &Game{
		ApplicationConfig: testConfig(),
		FnOnShutdown:      func() error { shutdownCalled = true; return nil },
	}
	e, err := NewWithPlatform(g, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !shutdownCalled || !p.shutdown {
		t.Fatalf("shutdown not propagated: game %v, platform %v", shutdownCalled, p.shutdown)
	}
}

func TestReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("Name = \"first\"\nStartWidth = 64\nStartHeight = 48\nLogLevel = \"info\"\n")

	cfg, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	g := &Game{ApplicationConfig: cfg}
	e := newTestEngine(t, g, &fakePlatform{})

	var reloaded *ApplicationConfig
	g.Events.Register(core.EVENT_CODE_CONFIG_RELOADED, g, func(ctx core.EventContext) bool {
		reloaded = ctx.Data.(*ApplicationConfig)
		return true
	})

	if !e.isConfigFile(filepath.Join(dir, ".", "config.toml")) {
		t.Fatalf("isConfigFile() did not match the active config")
	}
	if e.isConfigFile(filepath.Join(dir, "other.toml")) {
		t.Fatalf("isConfigFile() matched another file")
	}

	// session overrides applied on the command line
	progress := &bytes.Buffer{}
	g.ApplicationConfig.Backend = platform.BackendHeadless
	g.ApplicationConfig.Headless.Frames = 12
	g.ApplicationConfig.Headless.Progress = progress
	g.ApplicationConfig.AssetsDir = dir

	write("Name = \"second\"\nStartWidth = 640\nStartHeight = 480\nLogLevel = \"debug\"\n[Scene]\nRotationSpeed = 10.0\n")
	e.reloadConfig()

	if reloaded == nil {
		t.Fatalf("CONFIG_RELOADED was not fired")
	}
	if g.ApplicationConfig.Name != "second" || g.ApplicationConfig.Scene.RotationSpeed != 10 {
		t.Fatalf("config not applied: %+v", g.ApplicationConfig)
	}
	if g.ApplicationConfig.StartWidth != 64 || g.ApplicationConfig.StartHeight != 48 {
		t.Fatalf("window size changed mid-session to %dx%d", g.ApplicationConfig.StartWidth, g.ApplicationConfig.StartHeight)
	}

	if g.ApplicationConfig.Backend != platform.BackendHeadless || g.ApplicationConfig.AssetsDir != dir {
		t.Fatalf("reload dropped session settings: backend %q, assets %q", g.ApplicationConfig.Backend, g.ApplicationConfig.AssetsDir)
	}
	if g.ApplicationConfig.Headless.Frames != 12 || g.ApplicationConfig.Headless.Progress != progress {
		t.Fatalf("reload dropped headless settings: %+v", g.ApplicationConfig.Headless)
	}

	// a broken file keeps what was loaded before
	write("Name = ")
	e.reloadConfig()
	if g.ApplicationConfig.Name != "second" {
		t.Fatalf("broken reload replaced the config")
	}
}

func TestRendererIsPresentedEachFrame(t *testing.T) {
	p := &fakePlatform{maxFrames: 4}
	g := &Game{}
	g.FnOnUpdate = func(float32) bool {
		g.Renderer.Clear(renderer.Black)
		g.Renderer.DrawLine(0, 0, 10, 10, renderer.White)
		return true
	}
	e := newTestEngine(t, g, p)
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if p.presented != 4 {
		t.Fatalf("presented %d frames, want 4", p.presented)
	}
}
