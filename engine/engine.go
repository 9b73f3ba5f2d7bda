package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/spaghettifunk/anima/engine/assets"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/platform"
	"github.com/spaghettifunk/anima/engine/renderer"
	"github.com/spaghettifunk/anima/engine/systems"
)

// MAX_CAMERAS is how many named cameras a game may hold besides the default.
const MAX_CAMERAS uint16 = 16

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine drives the frame loop. Everything except RequestQuit runs on the
// render thread.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	quit         atomic.Bool
	platform     platform.Platform
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	cameraSystem *systems.CameraSystem
	input        *core.InputState
	events       *core.EventSystem
	metrics      *core.Metrics
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

// New builds the engine on the backend named in the game configuration.
func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	p, err := platform.New(g.ApplicationConfig.Backend, g.ApplicationConfig.Headless)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return NewWithPlatform(g, p)
}

// NewWithPlatform builds the engine on an existing platform.
func NewWithPlatform(g *Game, p platform.Platform) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     p,
		assetManager: am,
		input:        core.NewInputState(),
		events:       core.NewEventSystem(),
		metrics:      core.NewMetrics(),
		isRunning:    false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	if cfg.LogLevel != "" {
		if err := core.SetLogLevel(cfg.LogLevel); err != nil {
			core.LogWarn("%s, keeping the current log level", err)
		}
	}

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)

	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, e.width, e.height); err != nil {
		core.LogError("platform startup failed: %s", err)
		return fmt.Errorf("platform startup: %w", err)
	}

	e.renderer = renderer.New(int(e.width), int(e.height), e.platform)
	e.renderer.Clear(renderer.Black)

	cs, err := systems.NewCameraSystem(&systems.CameraSystemConfig{
		MaxCameraCount: MAX_CAMERAS,
		FovDegrees:     cfg.Camera.FovDegrees,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
	})
	if err != nil {
		return err
	}
	cs.GetDefault().SetPosition(cfg.Camera.Position)
	e.cameraSystem = cs

	if cfg.AssetsDir != "" {
		if err := e.assetManager.Initialize(cfg.AssetsDir); err != nil {
			return err
		}
	}

	e.gameInstance.Renderer = e.renderer
	e.gameInstance.Assets = e.assetManager
	e.gameInstance.Cameras = e.cameraSystem
	e.gameInstance.Input = e.input
	e.gameInstance.Events = e.events

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized (%dx%d)", e.width, e.height)
	return nil
}

// Run calls OnCreate and then steps frames until OnUpdate returns false,
// a quit is requested or the platform closes.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}

	if e.gameInstance.FnOnCreate != nil && !e.gameInstance.FnOnCreate() {
		core.LogError("application OnCreate failed")
		return core.ErrApplicationCreate
	}

	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	err := e.platform.Run(e.frame)
	e.isRunning = false
	return err
}

// RequestQuit stops the loop before the next frame. Safe to call from any
// goroutine.
func (e *Engine) RequestQuit() {
	e.quit.Store(true)
}

func (e *Engine) frame() bool {
	if e.quit.Load() || !e.isRunning {
		return false
	}

	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	e.input.Update(e.platform.IsKeyDown)
	e.fireKeyEvents()
	e.processAssetChanges()

	if e.gameInstance.FnOnUpdate != nil && !e.gameInstance.FnOnUpdate(float32(delta)) {
		// the frame that failed is never shown
		e.isRunning = false
		return false
	}

	if err := e.renderer.Present(); err != nil {
		core.LogError("%s, shutting down.", err)
		e.isRunning = false
	}

	if e.metrics.Update(delta) {
		fps, ms := e.metrics.Frame()
		core.LogDebug("%.0f fps, %.3f ms/frame", fps, ms)
	}

	return e.isRunning && !e.quit.Load()
}

func (e *Engine) fireKeyEvents() {
	for k := core.KeyCode(0); k < core.KEYS_MAX_KEYS; k++ {
		state := e.input.GetKey(k)
		if state.Pressed {
			e.events.Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: k}})
		}
		if state.Released {
			e.events.Fire(core.EventContext{Type: core.EVENT_CODE_KEY_RELEASED, Data: &core.KeyEvent{KeyCode: k}})
		}
	}
}

// processAssetChanges drains the watcher queue without blocking.
func (e *Engine) processAssetChanges() {
	for {
		select {
		case ev := <-e.assetManager.Changes():
			e.events.Fire(core.EventContext{Type: core.EVENT_CODE_ASSET_CHANGED, Data: &ev})
			if !ev.Removed && e.isConfigFile(ev.Path) {
				e.reloadConfig()
			}
		default:
			return
		}
	}
}

func (e *Engine) isConfigFile(path string) bool {
	cfgPath := e.gameInstance.ApplicationConfig.Path
	if cfgPath == "" {
		return false
	}
	a, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	b, err := filepath.Abs(cfgPath)
	if err != nil {
		return false
	}
	return a == b
}

func (e *Engine) reloadConfig() {
	current := e.gameInstance.ApplicationConfig
	cfg, err := LoadApplicationConfig(current.Path)
	if err != nil {
		core.LogWarn("config reload failed, keeping the current one: %s", err)
		return
	}
	if cfg.StartWidth != e.width || cfg.StartHeight != e.height {
		core.LogWarn("window size cannot change while running, keeping %dx%d", e.width, e.height)
		cfg.StartWidth, cfg.StartHeight = e.width, e.height
	}
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		core.LogWarn(err.Error())
	}
	// The session was started with these; command line overrides and the
	// progress writer live only in memory.
	cfg.Backend = current.Backend
	cfg.Headless = current.Headless
	cfg.AssetsDir = current.AssetsDir
	*current = *cfg
	core.LogInfo("configuration reloaded from '%s'", cfg.Path)
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: current})
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.clock.Stop()

	var errs []error
	if e.gameInstance.FnOnShutdown != nil {
		if err := e.gameInstance.FnOnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	e.events.Shutdown()
	if e.cameraSystem != nil {
		if err := e.cameraSystem.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.assetManager.Shutdown(); err != nil && !errors.Is(err, core.ErrAssetManagerClosed) {
		errs = append(errs, err)
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED {
		if ke.KeyCode == core.KEY_ESCAPE {
			// NOTE: Technically firing an event to itself, but there may be other listeners.
			e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
			// Block anything else from processing this.
			return true
		}
		core.LogDebug("key %d pressed", ke.KeyCode)
	} else if context.Type == core.EVENT_CODE_KEY_RELEASED {
		core.LogDebug("key %d released", ke.KeyCode)
	}
	return false
}
