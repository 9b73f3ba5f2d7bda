package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/platform"
	"gopkg.in/yaml.v3"
)

type CameraConfig struct {
	// Vertical field of view in degrees.
	FovDegrees float32   `toml:"FovDegrees" yaml:"fov_degrees"`
	Near       float32   `toml:"Near" yaml:"near"`
	Far        float32   `toml:"Far" yaml:"far"`
	Position   math.Vec3 `toml:"Position" yaml:"position"`
}

type SceneConfig struct {
	// Degrees per second applied to the demo objects.
	RotationSpeed float32 `toml:"RotationSpeed" yaml:"rotation_speed"`
}

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"StartPosX" yaml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"StartPosY" yaml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"StartWidth" yaml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"StartHeight" yaml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"Name" yaml:"name"`
	LogLevel core.LogLevel `toml:"LogLevel" yaml:"log_level"`
	// One of glfw, ebiten or headless.
	Backend string `toml:"Backend" yaml:"backend"`
	// Directory watched for asset and configuration changes. Empty disables
	// watching.
	AssetsDir string                  `toml:"AssetsDir" yaml:"assets_dir"`
	Camera    CameraConfig            `toml:"Camera" yaml:"camera"`
	Scene     SceneConfig             `toml:"Scene" yaml:"scene"`
	Headless  platform.HeadlessConfig `toml:"Headless" yaml:"headless"`

	// File the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Anima",
		LogLevel:    core.InfoLevel,
		Backend:     platform.WindowedBackend,
		Camera: CameraConfig{
			FovDegrees: 90,
			Near:       0.1,
			Far:        1000,
		},
		Scene: SceneConfig{
			RotationSpeed: 45,
		},
	}
}

// LoadApplicationConfig decodes path over the defaults. The format is
// picked from the extension: .toml, .yaml or .yml.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultApplicationConfig()
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config '%s': %w", path, core.ErrUnknownAssetType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config '%s': %w", path, err)
	}
	if cfg.StartWidth == 0 || cfg.StartHeight == 0 {
		return nil, fmt.Errorf("config '%s': window size %dx%d is empty", path, cfg.StartWidth, cfg.StartHeight)
	}
	cfg.Path = path
	return cfg, nil
}
