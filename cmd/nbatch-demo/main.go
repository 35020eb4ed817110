package main

import (
	"embed"
	"errors"
	"flag"
	"os"

	"github.com/bloeys/nbatch/config"
	"github.com/bloeys/nbatch/engine"
	"github.com/bloeys/nbatch/logging"
)

//go:embed shaders/*.glsl
var builtinShaders embed.FS

var (
	configPath = flag.String("config", "nbatch.toml", "Path to a TOML or YAML config. Changes to it are applied while running")
)

func main() {

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logging.ErrLog.Fatal("Failed to load config", "path", *configPath, "err", err)
	}

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.ErrLog.Fatal("Failed to set log level", "err", err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatal("Failed to init nBatch", "err", err)
	}
	defer engine.Deinit()

	//Create window
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatal("Failed to create window", "err", err)
	}
	defer window.Destroy()

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(true)

	game := &Game{
		Win:       window,
		WinWidth:  cfg.Window.Width,
		WinHeight: cfg.Window.Height,
		Cfg:       cfg,
		CfgPath:   *configPath,
		camDist:   60,
		camPitch:  0.6,
		camYaw:    0.8,
		instanceY: 10,
	}
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	engine.Run(game, window)
}

// loadConfig falls back to the default config when there is no config file
func loadConfig(path string) (config.Config, error) {

	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.InfoLog.Info("No config file found, using defaults", "path", path)
		return config.Default(), nil
	}

	return cfg, err
}
