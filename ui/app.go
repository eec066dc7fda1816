package ui

import (
	"context"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/config"
	"github.com/yllada/voice-intelligence/keyring"
	"github.com/yllada/voice-intelligence/shell"
	"github.com/yllada/voice-intelligence/store"
)

// Options are the dependencies of an Application.
type Options struct {
	Config  *config.Config
	Store   *store.Store
	Keyring *keyring.Keyring // optional
	Assets  fs.FS
	Version string
	Logger  *common.AppLogger
}

// Application wires the shell to the Wails window and the system tray.
type Application struct {
	config   *config.Config
	store    *store.Store
	assets   fs.FS
	version  string
	logger   *common.AppLogger
	log      common.Logger
	host     *host
	shell    *shell.Shell
	menuBar  *menuBar
	tray     *TrayIndicator
	bridge   *Bridge
	detector *appearance.PortalDetector
	initial  shell.State
	exitCode atomic.Int32
}

// NewApplication builds the menus and the shell. Nothing is shown until Run.
func NewApplication(opts Options) (*Application, error) {
	appLogger := opts.Logger
	if appLogger == nil {
		appLogger = common.GetLogger()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	a := &Application{
		config:  cfg,
		store:   opts.Store,
		assets:  opts.Assets,
		version: opts.Version,
		logger:  appLogger,
		log:     appLogger.Named("ui"),
		host:    newHost(),
	}
	a.initial = a.initialState()

	appTree, err := shell.BuildAppMenu(a.initial)
	if err != nil {
		return nil, err
	}
	a.menuBar, err = buildMenuBar(appTree, a.host, a.dispatch, a.runRole)
	if err != nil {
		return nil, err
	}

	a.shell, err = shell.New(shell.Options{
		Window:  a.host,
		Emitter: a.host,
		Exiter:  shell.ExiterFunc(a.exit),
		Items:   a.menuBar.checkItems(),
		Initial: a.initial,
		Logger:  appLogger.Named("shell"),
	})
	if err != nil {
		return nil, err
	}

	if cfg.ShowTray {
		trayTree, err := shell.BuildTrayMenu()
		if err != nil {
			return nil, err
		}
		a.tray = NewTrayIndicator(a.shell, trayTree, appLogger.Named("tray"))
	}

	var detector appearance.Detector
	if d, err := appearance.NewPortalDetector(); err == nil {
		a.detector = d
		detector = d
	} else {
		a.log.Debug("System theme detection unavailable: %v", err)
	}

	var keys keyStore
	if opts.Keyring != nil {
		keys = opts.Keyring
	}
	a.bridge = newBridge(opts.Store, keys, a.host, detector, appLogger.Named("bridge"))

	return a, nil
}

// initialState reads the stored preferences when restoring is enabled.
func (a *Application) initialState() shell.State {
	state := shell.DefaultState()
	if !a.config.RestoreSettings || a.store == nil {
		return state
	}
	s, err := a.store.Settings(context.Background())
	if err != nil {
		a.log.Warn("Could not restore settings: %v", err)
		return state
	}
	state.Theme = s.ThemeMode
	state.AlwaysOnTop = s.AlwaysOnTop
	return state
}

// Run starts the tray and the Wails event loop and blocks until the
// application quits. Cancelling ctx quits the application the same way
// the Quit menu items do. It returns the process exit code.
func (a *Application) Run(ctx context.Context) int {
	done := make(chan struct{})
	defer close(done)
	go quitOnCancel(ctx, done, a.Quit)

	if a.tray != nil {
		a.tray.Register()
	}

	a.log.Info("Starting %s %s", common.AppName, a.version)
	err := wails.Run(&options.App{
		Title:       common.AppName,
		Width:       a.config.WindowWidth,
		Height:      a.config.WindowHeight,
		MinWidth:    common.MinWindowWidth,
		MinHeight:   common.MinWindowHeight,
		StartHidden: a.config.StartHidden,
		AlwaysOnTop: a.initial.AlwaysOnTop,
		AssetServer: &assetserver.Options{
			Assets: a.assets,
		},
		Menu:          a.menuBar.menu,
		Logger:        common.NewWailsLogger(a.logger),
		LogLevel:      wailsLogLevel(a.logger.Level()),
		OnStartup:     a.startup,
		OnShutdown:    a.shutdown,
		OnBeforeClose: a.beforeClose,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               common.AppID,
			OnSecondInstanceLaunch: a.secondInstance,
		},
		Bind: []interface{}{
			a.bridge,
		},
		Linux: &linux.Options{
			Icon:        GenerateAppIcon(),
			ProgramName: common.ConfigDirName,
		},
	})
	if err != nil {
		a.log.Error("Application failed: %v", err)
		return 1
	}
	return int(a.exitCode.Load())
}

func (a *Application) startup(ctx context.Context) {
	a.host.attach(ctx)
	a.bridge.startup(ctx)
	a.log.Debug("Window ready")
}

func (a *Application) shutdown(ctx context.Context) {
	if a.detector != nil {
		common.LogIfError(a.log, a.detector.Close(), "close session bus")
	}
	a.log.Info("Shutting down")
}

func (a *Application) beforeClose(ctx context.Context) bool {
	return a.shell.BeforeClose()
}

// secondInstance brings the running window forward when the app is
// launched again.
func (a *Application) secondInstance(data options.SecondInstanceData) {
	a.log.Debug("Second instance launched with %v", data.Args)
	a.shell.Dispatch(shell.IDShow)
}

// Quit ends the application through the quit menu handler.
func (a *Application) Quit() {
	common.LogIfError(a.log, a.shell.Activate(shell.IDQuitApp), "quit")
}

// quitOnCancel calls quit when ctx ends before done is closed.
func quitOnCancel(ctx context.Context, done <-chan struct{}, quit func()) {
	select {
	case <-ctx.Done():
		quit()
	case <-done:
	}
}

// dispatch routes a menu bar click and pushes the resulting check
// changes to the native menu in one refresh.
func (a *Application) dispatch(id shell.MenuID) {
	a.shell.Dispatch(id)
	common.LogIfError(a.log, a.menuBar.flush(), "refresh menu")
}

// runRole performs the platform edit and window actions.
func (a *Application) runRole(role shell.Role) {
	switch role {
	case shell.RoleUndo, shell.RoleRedo, shell.RoleCut, shell.RoleCopy, shell.RolePaste, shell.RoleSelectAll:
		common.LogIfError(a.log, a.host.ExecJS("document.execCommand('"+string(role)+"')"), "menu "+string(role))
	case shell.RoleMinimize:
		common.LogIfError(a.log, a.host.Minimise(), "minimise window")
	case shell.RoleCloseWindow:
		// A close request, not a destroy: the guard hides the window.
		a.shell.BeforeClose()
	default:
		a.log.Debug("Unhandled menu role %q", role)
	}
}

// exit ends the run loop; Run returns code.
func (a *Application) exit(code int) {
	a.exitCode.Store(int32(code))
	if a.tray != nil {
		a.tray.Quit()
	}
	if err := a.host.Quit(); err != nil {
		// No window yet, so no run loop to unwind.
		a.log.Warn("Quit before startup: %v", err)
		a.logger.Close()
		os.Exit(code)
	}
}

func wailsLogLevel(level common.LogLevel) logger.LogLevel {
	switch level {
	case common.LevelDebug:
		return logger.DEBUG
	case common.LevelWarn:
		return logger.WARNING
	case common.LevelError:
		return logger.ERROR
	default:
		return logger.INFO
	}
}
