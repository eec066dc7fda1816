// Package shell keeps the native shell's UI state consistent across the
// menu bar, the tray icon, the window chrome, and the content view.
//
// The package is toolkit-neutral. Hosts build menus from the MenuTree
// values returned by BuildAppMenu and BuildTrayMenu, hand the realized
// check items and the window to New, and forward every activation to
// Shell.Dispatch by MenuID. State changes are reported to the content
// view through an Emitter:
//
//	menu-theme-change           "system" | "light" | "dark"
//	menu-always-on-top-changed  bool
//
// Cosmetic UI calls (check marks, window attributes, show and focus) are
// best-effort: failures are logged and the handler carries on.
package shell
