package testbed

import (
	"path/filepath"

	"github.com/spaghettifunk/anima/engine"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/renderer"
	"github.com/spaghettifunk/anima/engine/renderer/components"
	"github.com/spaghettifunk/anima/engine/renderer/metadata"
)

// Units per second the camera moves while UP or DOWN is held.
const CAMERA_SPEED float32 = 2.0

// The camera stays in front of the cubes.
const (
	CAMERA_MIN_Z float32 = -20.0
	CAMERA_MAX_Z float32 = 6.0
)

var WALL_COLOR = renderer.RGB(255, 160, 0)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	cubeMesh metadata.MeshID
	wallMesh metadata.MeshID
	objects  []*metadata.Object
	colors   []renderer.Color

	theta  float32
	paused bool
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnOnCreate = tg.OnCreate
	tg.FnOnUpdate = tg.OnUpdate
	tg.FnOnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) OnCreate() bool {
	core.LogDebug("TestGame OnCreate fn....")

	if g.Assets == nil || g.Renderer == nil || g.Cameras == nil {
		core.LogError("the engine did not provide the asset manager, cameras and the renderer")
		return false
	}

	state := g.State.(*gameState)
	config := g.ApplicationConfig

	state.WorldCamera = g.Cameras.GetDefault()

	state.cubeMesh = g.Assets.AddMesh("cube", metadata.NewUnitCube("cube"))

	wall := metadata.NewMesh("wall")
	metadata.AddWallX(wall, -3, -2, 0, 6, 1, 1)
	state.wallMesh = g.Assets.AddMesh("wall", wall)

	if config.AssetsDir != "" {
		// Mesh files are not supported yet; the demo keeps going without it.
		if _, err := g.Assets.LoadMesh("teapot", filepath.Join(config.AssetsDir, "models", "teapot.obj")); err != nil {
			core.LogDebug("teapot skipped: %s", err)
		}
	}

	left := metadata.NewObject(state.cubeMesh)
	left.Position = math.NewVec3(-1.5, 0, 8)
	right := metadata.NewObject(state.cubeMesh)
	right.Position = math.NewVec3(1.5, 0, 8)
	right.Scale = 0.75
	floor := metadata.NewObject(state.wallMesh)
	floor.Position = math.NewVec3(0, 0, 12)

	state.objects = []*metadata.Object{left, right, floor}
	state.colors = []renderer.Color{renderer.White, renderer.Green, WALL_COLOR}

	g.Events.Register(core.EVENT_CODE_CONFIG_RELOADED, g, g.onConfigReloaded)

	core.LogInfo("testbed ready: %d meshes, %d objects", g.Assets.MeshCount(), len(state.objects))
	return true
}

func (g *TestGame) OnUpdate(deltaTime float32) bool {
	state := g.State.(*gameState)

	if g.Input.GetKey(core.KEY_P).Pressed {
		state.paused = !state.paused
		core.LogInfo("rotation paused: %t", state.paused)
	}
	forward := math.NewVec3(0, 0, 1)
	if g.Input.IsKeyDown(core.KEY_UP) {
		state.WorldCamera.Move(forward.MulScalar(CAMERA_SPEED * deltaTime))
	}
	if g.Input.IsKeyDown(core.KEY_DOWN) {
		state.WorldCamera.Move(forward.MulScalar(-CAMERA_SPEED * deltaTime))
	}
	state.WorldCamera.Position.Z = math.Clamp(state.WorldCamera.Position.Z, CAMERA_MIN_Z, CAMERA_MAX_Z)

	if !state.paused {
		state.theta += g.ApplicationConfig.Scene.RotationSpeed * deltaTime
	}

	left, right := state.objects[0], state.objects[1]
	left.Rotation = math.NewVec3(state.theta, 0, state.theta*0.5)
	right.Rotation = math.NewVec3(0, state.theta, state.theta)

	g.Renderer.Clear(renderer.Black)
	for i, obj := range state.objects {
		mesh, err := g.Assets.Mesh(obj.Mesh)
		if err != nil {
			core.LogError(err.Error())
			return false
		}
		g.Renderer.DrawObject(obj, mesh, state.WorldCamera, state.colors[i])
	}
	g.Renderer.DrawCircle(g.Renderer.Width/2, g.Renderer.Height/2, 4, renderer.Red)

	return true
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("shutting down testbed")
	return nil
}

func (g *TestGame) onConfigReloaded(context core.EventContext) bool {
	config, ok := context.Data.(*engine.ApplicationConfig)
	if !ok {
		return false
	}
	state := g.State.(*gameState)
	state.WorldCamera.FovDegrees = config.Camera.FovDegrees
	state.WorldCamera.Near = config.Camera.Near
	state.WorldCamera.Far = config.Camera.Far
	core.LogInfo("camera fov %.1f, rotation %.1f deg/s", config.Camera.FovDegrees, config.Scene.RotationSpeed)
	return false
}
