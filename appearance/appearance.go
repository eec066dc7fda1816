// Package appearance defines the theme modes shared by the menu bar, the
// settings store, and the content view, and resolves the "system" mode
// against the desktop's color-scheme preference.
package appearance

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/yllada/voice-intelligence/common"
)

// Mode is a user-selected theme.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// FallbackMode is used when the system preference cannot be read.
const FallbackMode = ModeDark

// Modes returns all selectable modes in menu order.
func Modes() []Mode {
	return []Mode{ModeSystem, ModeLight, ModeDark}
}

// Valid reports whether m is one of the selectable modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeSystem, ModeLight, ModeDark:
		return true
	}
	return false
}

// String returns the token sent to the content view.
func (m Mode) String() string {
	return string(m)
}

// Parse converts a stored or user-supplied token into a Mode.
// Anything unrecognized becomes ModeSystem.
func Parse(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return ModeSystem
}

// ParseStrict is like Parse but rejects unknown tokens.
func ParseStrict(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return ModeSystem, fmt.Errorf("%w: %q", common.ErrInvalidTheme, s)
	}
	return m, nil
}

// Detector reports the desktop's preferred mode (light or dark).
type Detector interface {
	Preferred() (Mode, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() (Mode, error)

// Preferred calls f.
func (f DetectorFunc) Preferred() (Mode, error) {
	return f()
}

// Resolve maps m to a concrete light or dark mode. ModeSystem asks the
// detector and falls back to FallbackMode on error or no preference.
func Resolve(m Mode, d Detector) Mode {
	if m == ModeLight || m == ModeDark {
		return m
	}
	if d == nil {
		return FallbackMode
	}
	pref, err := d.Preferred()
	if err != nil {
		common.LogDebug("appearance: system preference unavailable: %v", err)
		return FallbackMode
	}
	if pref != ModeLight && pref != ModeDark {
		return FallbackMode
	}
	return pref
}

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalRead      = "org.freedesktop.portal.Settings.Read"
	portalNamespace = "org.freedesktop.appearance"
	portalKey       = "color-scheme"
)

// PortalDetector reads org.freedesktop.appearance color-scheme from the
// xdg-desktop-portal over the session bus.
type PortalDetector struct {
	conn *dbus.Conn
}

// NewPortalDetector connects to the session bus.
func NewPortalDetector() (*PortalDetector, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &PortalDetector{conn: conn}, nil
}

// Preferred implements Detector.
func (p *PortalDetector) Preferred() (Mode, error) {
	obj := p.conn.Object(portalDest, portalPath)

	var value dbus.Variant
	if err := obj.Call(portalRead, 0, portalNamespace, portalKey).Store(&value); err != nil {
		return "", fmt.Errorf("portal read failed: %w", err)
	}

	scheme, ok := unwrapScheme(value.Value())
	if !ok {
		return "", fmt.Errorf("unexpected color-scheme value %v", value)
	}
	mode, ok := schemeToMode(scheme)
	if !ok {
		return "", fmt.Errorf("no color-scheme preference")
	}
	return mode, nil
}

// Close releases the bus connection.
func (p *PortalDetector) Close() error {
	return p.conn.Close()
}

// unwrapScheme handles the portal's Read, which nests the value in a
// second variant, and ReadOne, which doesn't.
func unwrapScheme(v any) (uint32, bool) {
	for i := 0; i < 2; i++ {
		inner, ok := v.(dbus.Variant)
		if !ok {
			break
		}
		v = inner.Value()
	}
	scheme, ok := v.(uint32)
	return scheme, ok
}

// schemeToMode maps the portal enum: 0 no preference, 1 dark, 2 light.
func schemeToMode(scheme uint32) (Mode, bool) {
	switch scheme {
	case 1:
		return ModeDark, true
	case 2:
		return ModeLight, true
	default:
		return "", false
	}
}
