// Package main provides the hud overlay manager.
// It keeps a list of streaming overlays (browser windows pointed at chat
// popouts and similar pages) and lets you add, reconfigure and close them
// from the terminal, or drive the same actions from a YAML script.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/hud/pkg/config"
	"github.com/entrhq/hud/pkg/executor/headless"
	"github.com/entrhq/hud/pkg/executor/tui"
	"github.com/entrhq/hud/pkg/logging"
)

const version = "0.1.0"

// Config holds the command line configuration. Empty values fall back to the
// config file.
type Config struct {
	ConfigPath  string
	Runtime     string
	Endpoint    string
	Headless    bool
	Script      string
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("hud v%s\n", version)
		return
	}

	if err := cfg.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if runErr := run(ctx, cfg); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
	cancel()
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigPath, "config", os.Getenv("HUD_CONFIG"), "Config file path (or set HUD_CONFIG env var, default ~/.hud/config.json)")
	flag.StringVar(&cfg.Runtime, "runtime", os.Getenv("HUD_RUNTIME"), "Overlay runtime: sim, browser or ws (overrides the config file)")
	flag.StringVar(&cfg.Endpoint, "endpoint", os.Getenv("HUD_ENDPOINT"), "Overlay host websocket URL for the ws runtime")
	flag.BoolVar(&cfg.Headless, "headless", false, "Run a script instead of the interactive list")
	flag.StringVar(&cfg.Script, "script", "", "Path to the headless script (YAML)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hud - a terminal manager for streaming overlays\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hud [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  HUD_CONFIG     Config file path\n")
		fmt.Fprintf(os.Stderr, "  HUD_RUNTIME    Overlay runtime\n")
		fmt.Fprintf(os.Stderr, "  HUD_ENDPOINT   Overlay host websocket URL\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hud                                   # Interactive list, runtime from config\n")
		fmt.Fprintf(os.Stderr, "  hud -runtime browser\n")
		fmt.Fprintf(os.Stderr, "  hud -runtime ws -endpoint ws://localhost:7777/overlays\n")
		fmt.Fprintf(os.Stderr, "  hud -headless -script smoke.yaml -runtime sim\n")
	}

	flag.Parse()
	return cfg
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	if c.Headless && c.Script == "" {
		return errors.New("headless mode requires a script (use -script flag)")
	}
	if !c.Headless && c.Script != "" {
		return errors.New("-script is only used with -headless")
	}

	switch c.Runtime {
	case "", config.BackendSim, config.BackendBrowser, config.BackendWS:
	default:
		return fmt.Errorf("unknown runtime %q (must be 'sim', 'browser' or 'ws')", c.Runtime)
	}
	return nil
}

// run executes the main application logic
func run(ctx context.Context, cfg *Config) error {
	logger, err := logging.NewLogger("hud")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging to stderr: %v\n", err)
	}
	defer logger.Close()

	if initErr := config.Initialize(cfg.ConfigPath); initErr != nil {
		return fmt.Errorf("failed to initialize configuration: %w", initErr)
	}

	settings := cfg.apply(config.GetRuntime().Settings())
	rt, err := startRuntime(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			logger.Warnf("failed to close runtime: %v", closeErr)
		}
	}()

	logger.Infof("hud v%s starting with the %s runtime", version, settings.Backend)

	if cfg.Headless {
		script, err := headless.LoadScript(cfg.Script)
		if err != nil {
			return err
		}
		executor := headless.NewExecutor(rt, script, headless.Options{Presets: config.Presets()}, logger.With("headless"))
		return executor.Run(ctx)
	}

	showCounts, confirmClose := config.GetUI().Settings()
	executor := tui.NewExecutor(rt, tui.Options{
		Presets:      config.Presets(),
		ShowCounts:   showCounts,
		ConfirmClose: confirmClose,
	}, logger.With("tui"))

	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}
	return nil
}
