package common

import "os"

// WailsLogger routes the webview framework's log output into an AppLogger.
// It satisfies github.com/wailsapp/wails/v2/pkg/logger.Logger.
type WailsLogger struct {
	parent *AppLogger
}

// NewWailsLogger returns a WailsLogger writing to l, or to the default
// logger when l is nil.
func NewWailsLogger(l *AppLogger) *WailsLogger {
	if l == nil {
		l = GetLogger()
	}
	return &WailsLogger{parent: l}
}

func (w *WailsLogger) Print(message string) {
	w.parent.write(2, LevelInfo, "wails", "%s", message)
}

func (w *WailsLogger) Trace(message string) {
	w.parent.write(2, LevelDebug, "wails", "%s", message)
}

func (w *WailsLogger) Debug(message string) {
	w.parent.write(2, LevelDebug, "wails", "%s", message)
}

func (w *WailsLogger) Info(message string) {
	w.parent.write(2, LevelInfo, "wails", "%s", message)
}

func (w *WailsLogger) Warning(message string) {
	w.parent.write(2, LevelWarn, "wails", "%s", message)
}

func (w *WailsLogger) Error(message string) {
	w.parent.write(2, LevelError, "wails", "%s", message)
}

// Fatal logs and exits with status 1, matching the framework's default.
func (w *WailsLogger) Fatal(message string) {
	w.parent.write(2, LevelError, "wails", "%s", message)
	w.parent.Close()
	os.Exit(1)
}
