// Package main provides the entry point for Voice Intelligence.
// Voice Intelligence is a small always-on-top dictation window with a
// native menu bar and a tray icon.
//
// Features:
//   - Appearance (system, light, dark) and always-on-top from the menu bar
//   - Tray icon that brings the window back; closing only hides it
//   - Settings and history kept in a local SQLite store
//   - API keys in the system keyring with an encrypted file fallback
//   - Command-line interface for settings, history, and keys
//
// Usage:
//
//	voice-intelligence [options]
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/voice-intelligence/cli"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/config"
	"github.com/yllada/voice-intelligence/keyring"
	"github.com/yllada/voice-intelligence/store"
	"github.com/yllada/voice-intelligence/ui"
)

//go:embed all:frontend/dist
var assets embed.FS

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	showSettings = flag.Bool("settings", false, "Print stored settings")
	showHistory  = flag.Bool("history", false, "Print transcription history")
	clearHistory = flag.Bool("clear-history", false, "Delete all history entries")
	setKey       = flag.String("set-key", "", "Store an API key for a provider")
	deleteKey    = flag.String("delete-key", "", "Remove the API key for a provider")
	keyStatus    = flag.Bool("key-status", false, "Show stored API keys")
	demoKeys     = flag.String("import-demo-keys", "", "Import demo API keys from a YAML bundle")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		return 0
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	// Initialize logger with structured logging and file output
	logLevel := common.ParseLogLevel(cfg.LogLevel)
	if *verbose {
		logLevel = common.LevelDebug
	}
	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	storePath, err := cfg.ResolveStorePath()
	if err != nil {
		common.LogError("Could not resolve store path: %v", err)
		return 1
	}
	st, err := store.Open(ctx, storePath, common.GetLogger().Named("store"))
	if err != nil {
		common.LogError("Could not open settings store: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer st.Close()

	keys, err := keyring.New(keyring.Options{Logger: common.GetLogger().Named("keyring")})
	if err != nil {
		common.LogWarn("Credential storage unavailable: %v", err)
		keys = nil
	}

	if *showSettings || *showHistory || *clearHistory || *setKey != "" || *deleteKey != "" || *keyStatus || *demoKeys != "" {
		return runCLI(ctx, cli.New(st, keys))
	}

	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		common.LogError("Embedded assets missing: %v", err)
		return 1
	}

	app, err := ui.NewApplication(ui.Options{
		Config:  cfg,
		Store:   st,
		Keyring: keys,
		Assets:  dist,
		Version: appVersion,
		Logger:  common.GetLogger(),
	})
	if err != nil {
		common.LogError("Could not build the shell: %v", err)
		return 1
	}

	exitCode := app.Run(ctx)
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	return exitCode
}

// runCLI handles command-line interface operations.
func runCLI(ctx context.Context, c *cli.CLI) int {
	var err error
	switch {
	case *showSettings:
		err = c.Settings(ctx)
	case *showHistory:
		err = c.History(ctx)
	case *clearHistory:
		err = c.ClearHistory(ctx)
	case *setKey != "":
		err = c.SetKey(*setKey)
	case *deleteKey != "":
		err = c.DeleteKey(*deleteKey)
	case *keyStatus:
		err = c.KeyStatus(ctx)
	case *demoKeys != "":
		err = c.ImportDemoKeys(ctx, *demoKeys)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupSignalHandler cancels ctx on SIGINT/SIGTERM.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
