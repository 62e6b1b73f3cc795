package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"winterroom/internal/engine3D/camera"
	"winterroom/internal/engine3D/particle"
	"winterroom/internal/engine3D/shader"
	"winterroom/internal/scene"
	"winterroom/internal/utils"
)

// EnvPrefix is prepended to every environment override, e.g. WINTERROOM_WINDOW_FPS.
const EnvPrefix = "WINTERROOM_"

type WindowConfig struct {
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	Title  string `yaml:"title" env:"TITLE"`
	// FPS caps the frame rate. 0 leaves it uncapped.
	FPS       int  `yaml:"fps" env:"FPS"`
	MSAA      bool `yaml:"msaa" env:"MSAA"`
	Resizable bool `yaml:"resizable" env:"RESIZABLE"`
}

// AssetsConfig locates models and textures. When Pkg is set the bundle is
// unpacked into CacheDir before anything is loaded.
type AssetsConfig struct {
	Root     string `yaml:"root" env:"ROOT"`
	Pkg      string `yaml:"pkg" env:"PKG"`
	CacheDir string `yaml:"cache_dir" env:"CACHE_DIR"`
	Workers  int    `yaml:"workers" env:"WORKERS"`
}

type LightConfig struct {
	Color     scene.Color `yaml:"color"`
	Intensity float32     `yaml:"intensity"`
}

type DirectionalLightConfig struct {
	LightConfig `yaml:",inline"`
	Position    mgl32.Vec3 `yaml:"position"`
	CastShadow  bool       `yaml:"cast_shadow"`
	ShadowSize  int        `yaml:"shadow_map_size" env:"SHADOW_MAP_SIZE"`
	// Half extent of the orthographic shadow frustum around the origin.
	ShadowExtent float32 `yaml:"shadow_extent"`
}

type HemisphereLightConfig struct {
	Sky       scene.Color `yaml:"sky"`
	Ground    scene.Color `yaml:"ground"`
	Intensity float32     `yaml:"intensity"`
}

type LightsConfig struct {
	Ambient     LightConfig            `yaml:"ambient"`
	Directional DirectionalLightConfig `yaml:"directional" envPrefix:"DIRECTIONAL_"`
	Hemisphere  HemisphereLightConfig  `yaml:"hemisphere"`
}

func (l LightConfig) light() shader.Light {
	return shader.Light{Color: l.Color.Vec4(), Intensity: l.Intensity}
}

// Lighting converts the light settings into shader inputs. The hemisphere
// intensity scales both of its colors.
func (l LightsConfig) Lighting() shader.Lighting {
	return shader.Lighting{
		Ambient:     l.Ambient.light(),
		Directional: l.Directional.light(),
		Position:    l.Directional.Position,
		Sky:         shader.Light{Color: l.Hemisphere.Sky.Vec4(), Intensity: l.Hemisphere.Intensity},
		Ground:      shader.Light{Color: l.Hemisphere.Ground.Vec4(), Intensity: l.Hemisphere.Intensity},
		CastShadow:  l.Directional.CastShadow,
		ShadowSize:  l.Directional.ShadowSize,
	}
}

// WorldConfig holds the scene furniture that is not a loaded model.
type WorldConfig struct {
	SkyboxTexture  string      `yaml:"skybox_texture"`
	SkyboxSize     float32     `yaml:"skybox_size"`
	SkyboxY        float32     `yaml:"skybox_y"`
	GroundRadius   float32     `yaml:"ground_radius"`
	GroundSegments int         `yaml:"ground_segments"`
	GroundY        float32     `yaml:"ground_y"`
	GroundColor    scene.Color `yaml:"ground_color"`
	AxesSize       float32     `yaml:"axes_size" env:"AXES_SIZE"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Path    string  `yaml:"path" env:"PATH"`
	Volume  float32 `yaml:"volume" env:"VOLUME"`
}

type Config struct {
	Window WindowConfig         `yaml:"window" envPrefix:"WINDOW_"`
	Assets AssetsConfig         `yaml:"assets" envPrefix:"ASSETS_"`
	Camera camera.Options       `yaml:"camera"`
	Snow   particle.FieldConfig `yaml:"snow"`
	World  WorldConfig          `yaml:"world" envPrefix:"WORLD_"`
	Lights LightsConfig         `yaml:"lights" envPrefix:"LIGHTS_"`
	Audio  AudioConfig          `yaml:"audio" envPrefix:"AUDIO_"`

	// Scene is an optional YAML layout; empty means the built-in room.
	Scene     string `yaml:"scene" env:"SCENE"`
	Watch     bool   `yaml:"watch" env:"WATCH"`
	Seed      int64  `yaml:"seed" env:"SEED"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	Debug     bool   `yaml:"debug" env:"DEBUG"`
	Wallpaper bool   `yaml:"wallpaper" env:"WALLPAPER"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Winter Room",
			FPS:       60,
			MSAA:      true,
			Resizable: true,
		},
		Assets: AssetsConfig{
			Root:     "assets",
			CacheDir: "tmp",
			Workers:  4,
		},
		Camera: camera.DefaultOptions(),
		Snow:   particle.DefaultFieldConfig(),
		World: WorldConfig{
			SkyboxTexture:  "skybox-winter-stylized/textures/skybox_snow.png",
			SkyboxSize:     10000,
			SkyboxY:        1500,
			GroundRadius:   1000,
			GroundSegments: 50,
			GroundY:        -1.8,
			GroundColor:    scene.White,
			AxesSize:       100,
		},
		Lights: LightsConfig{
			Ambient: LightConfig{Color: scene.White, Intensity: 0.5},
			Directional: DirectionalLightConfig{
				LightConfig:  LightConfig{Color: scene.White, Intensity: 0.5},
				Position:     mgl32.Vec3{1, 750, 1}.Normalize(),
				CastShadow:   true,
				ShadowSize:   2048,
				ShadowExtent: 60,
			},
			Hemisphere: HemisphereLightConfig{
				Sky:       scene.Hex(0x000000),
				Ground:    scene.Hex(0x000000),
				Intensity: 0.5,
			},
		},
		Audio: AudioConfig{
			Path:   "sound/fireplace.ogg",
			Volume: 0.6,
		},
		LogLevel: "warn",
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and WINTERROOM_* environment variables, in that order. Flags are applied by
// the caller, which then calls Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from the environment. A nil environ reads the
// process environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS < 0 {
		errs = append(errs, fmt.Errorf("window: fps must not be negative, got %d", c.Window.FPS))
	}
	if c.Assets.Root == "" {
		errs = append(errs, errors.New("assets: root is required"))
	}
	if c.Assets.Pkg != "" && c.Assets.CacheDir == "" {
		errs = append(errs, errors.New("assets: cache_dir is required with pkg"))
	}
	if c.Assets.Workers < 1 {
		errs = append(errs, fmt.Errorf("assets: workers must be at least 1, got %d", c.Assets.Workers))
	}
	if c.Snow.Count < 0 {
		errs = append(errs, fmt.Errorf("snow: count must not be negative, got %d", c.Snow.Count))
	}
	if c.Snow.MaxRange <= 0 {
		errs = append(errs, fmt.Errorf("snow: max_range must be positive, got %v", c.Snow.MaxRange))
	}
	if c.Snow.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("snow: min_height must not be negative, got %v", c.Snow.MinHeight))
	}
	if c.Snow.PrimaryRatio < 0 || c.Snow.PrimaryRatio > 1 {
		errs = append(errs, fmt.Errorf("snow: primary_ratio must be within [0, 1], got %v", c.Snow.PrimaryRatio))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, fmt.Errorf("camera: need 0 < min_distance <= max_distance, got %v and %v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.MaxPolarAngle < c.Camera.MinPolarAngle {
		errs = append(errs, errors.New("camera: max_polar_angle is below min_polar_angle"))
	}
	for axis := 0; axis < 3; axis++ {
		if c.Camera.BoundsMax[axis] < c.Camera.BoundsMin[axis] {
			errs = append(errs, fmt.Errorf("camera: bounds_max is below bounds_min on axis %d", axis))
			break
		}
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far))
	}
	if c.Lights.Directional.CastShadow && c.Lights.Directional.ShadowSize < 16 {
		errs = append(errs, fmt.Errorf("lights: shadow_map_size too small: %d", c.Lights.Directional.ShadowSize))
	}
	if c.World.GroundSegments < 3 {
		errs = append(errs, fmt.Errorf("world: ground_segments must be at least 3, got %d", c.World.GroundSegments))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	if c.LogLevel != "" {
		if _, err := utils.ParseLogLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	return errors.Join(errs...)
}
