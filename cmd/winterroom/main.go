package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"winterroom/internal/config"
	"winterroom/internal/convert"
	"winterroom/internal/scene"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	configPath string

	scenePath  string
	assetsRoot string
	pkgPath    string
	seed       int64
	debugFlag  bool
	wallpaper  bool
	watch      bool
	fps        int
	width      int
	height     int

	decodeOut string
)

var rootCmd = &cobra.Command{
	Use:   "winterroom",
	Short: "Winter holiday room with falling snow and an orbit camera",
	Long: `winterroom renders a decorated winter room: a Christmas tree with a glowing
star, randomized presents, a chimney and falling snow, viewed through an
orbit camera.

Settings come from defaults, the --config YAML file, WINTERROOM_* environment
variables and flags, in that order. Press F8 for the debug overlay.`,
	SilenceUsage: true,
	RunE:         runRoom,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a .tex or .dds texture to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the effective scene layout with generated presents as YAML",
	Args:  cobra.NoArgs,
	RunE:  runLayout,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&scenePath, "scene", "", "YAML scene layout (default: built-in room)")
	pf.StringVar(&assetsRoot, "assets", "", "asset root directory")
	pf.StringVar(&pkgPath, "pkg", "", "asset bundle (.pkg) to unpack into the cache dir")
	pf.Int64Var(&seed, "seed", 0, "random seed for snow and presents (0: time based)")
	pf.BoolVar(&debugFlag, "debug", false, "enable verbose debug logging")

	f := rootCmd.Flags()
	f.BoolVar(&wallpaper, "wallpaper", false, "borderless window driven by the desktop pointer")
	f.BoolVar(&watch, "watch", false, "reload the scene layout when its file changes")
	f.IntVar(&fps, "fps", 0, "target frame rate, overrides window.fps (default 60, 0: unlimited)")
	f.IntVar(&width, "width", 0, "window width")
	f.IntVar(&height, "height", 0, "window height")

	decodeCmd.Flags().StringVarP(&decodeOut, "output", "o", "", "output PNG (default: test_out/<name>.png)")

	rootCmd.AddCommand(decodeCmd, layoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("scene") {
		cfg.Scene = scenePath
	}
	if flags.Changed("assets") {
		cfg.Assets.Root = assetsRoot
	}
	if flags.Changed("pkg") {
		cfg.Assets.Pkg = pkgPath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("debug") {
		cfg.Debug = debugFlag
	}
	if flags.Changed("wallpaper") {
		cfg.Wallpaper = wallpaper
	}
	if flags.Changed("watch") {
		cfg.Watch = watch
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
}

func logLevel(cfg config.Config) utils.LogLevel {
	if cfg.Debug {
		return utils.LevelDebug
	}
	level, err := utils.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return utils.LevelWarn
	}
	return level
}

// setup loads and validates the configuration and installs the logger.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := utils.InitLogger(logLevel(cfg)); err != nil {
		return config.Config{}, err
	}

	utils.AssetRoot = cfg.Assets.Root
	utils.CacheDir = cfg.Assets.CacheDir
	utils.SilentMode = !cfg.Audio.Enabled
	return cfg, nil
}

func newRand(cfg config.Config) *rand.Rand {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	utils.Debug("Random seed: %d", s)
	return rand.New(rand.NewSource(s))
}

func loadLayout(cfg config.Config) (scene.Layout, error) {
	if cfg.Scene == "" {
		return scene.DefaultLayout(), nil
	}
	return scene.LoadLayout(cfg.Scene)
}

// prepareAssets unpacks the asset bundle on first start and pre-converts its
// packed textures.
func prepareAssets(ctx context.Context, cfg config.Config) error {
	if cfg.Assets.Pkg == "" {
		return nil
	}

	if _, err := os.Stat(cfg.Assets.CacheDir); os.IsNotExist(err) {
		utils.Info("Unpacking %s...", cfg.Assets.Pkg)
		if err := convert.ExtractPkg(cfg.Assets.Pkg, cfg.Assets.CacheDir); err != nil {
			return fmt.Errorf("extract %s: %w", cfg.Assets.Pkg, err)
		}
	}

	if _, err := convert.BulkConvertTextures(ctx, cfg.Assets.CacheDir, cfg.Assets.Workers); err != nil {
		return err
	}
	return nil
}

func windowFlags(cfg config.Config) uint32 {
	var flags uint32
	if cfg.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if cfg.Window.Resizable && !cfg.Wallpaper {
		flags |= rl.FlagWindowResizable
	}
	if cfg.Wallpaper {
		flags |= rl.FlagWindowUndecorated
	}
	return flags
}

func runRoom(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer utils.SyncLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Info("--- Winter Room Start ---")

	if err := prepareAssets(ctx, cfg); err != nil {
		return err
	}

	layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(windowFlags(cfg))
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	window, err := NewWindow(cfg, layout, newRand(cfg))
	if err != nil {
		return err
	}
	defer window.Close()

	if cfg.Watch && cfg.Scene != "" {
		watcher, err := config.Watch(ctx, cfg.Scene)
		if err != nil {
			utils.Warn("Scene hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			window.layouts = watcher.Layouts()
		}
	}

	utils.Info("Starting render loop...")
	window.Run(ctx)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	defer utils.SyncLogger()

	src := args[0]
	utils.Info("Decoding %s", src)
	img, err := convert.DecodeFile(src)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	out := decodeOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		out = filepath.Join("test_out", base+".png")
	}
	if err := convert.WritePNG(out, img); err != nil {
		return err
	}

	b := img.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d\n", out, b.Dx(), b.Dy())
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer utils.SyncLogger()

	layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}
	props, err := layout.Instantiate(newRand(cfg))
	if err != nil {
		return err
	}

	// The generated presents are listed as props, so reloading the output
	// must not generate another set.
	out := scene.Layout{Props: props, Presents: layout.Presents}
	out.Presents.Count = 0
	return out.Encode(cmd.OutOrStdout())
}
