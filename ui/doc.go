// Package ui hosts the shell on Wails and the system tray.
//
// # Architecture
//
//   - Application: builds the menus and the shell, then runs the Wails loop
//   - host: the Wails window and event bus behind shell.Window and shell.Emitter
//   - menuBar: the shell's menu tree realized as a Wails application menu
//   - TrayIndicator: fyne.io/systray icon with Show and Quit
//   - Bridge: methods bound into the content view
//
// # Threading
//
// Menu bar callbacks arrive from Wails and tray clicks from systray
// goroutines. Both go through shell.Dispatch, which runs one handler at
// a time. The Wails context only exists after OnStartup; calls made
// earlier return common.ErrHostNotReady and are logged by the shell.
//
// # File Organization
//
//   - app.go: Application lifecycle and Wails options
//   - host.go: Wails runtime adapter
//   - menubar.go: menu tree realization and accelerators
//   - tray.go: system tray indicator
//   - icons.go: icon generation for the tray and window
//   - bindings.go: content view bindings
package ui
