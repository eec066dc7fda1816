package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/yllada/voice-intelligence/common"
	"github.com/yllada/voice-intelligence/shell"
)

// menuRefresher pushes menu changes to the native menu bar.
type menuRefresher interface {
	RefreshMenu() error
}

// checkItem adapts a Wails checkbox to shell.CheckItem. Changes are
// pushed to the native menu by menuBar.flush.
type checkItem struct {
	bar  *menuBar
	item *menu.MenuItem
}

func (c *checkItem) SetChecked(checked bool) error {
	c.bar.mu.Lock()
	defer c.bar.mu.Unlock()
	c.item.Checked = checked
	c.bar.dirty = true
	return nil
}

func (c *checkItem) Checked() bool {
	c.bar.mu.Lock()
	defer c.bar.mu.Unlock()
	return c.item.Checked
}

// menuBar is a realized application menu.
type menuBar struct {
	menu    *menu.Menu
	checks  map[shell.MenuID]*checkItem
	refresh menuRefresher

	mu    sync.Mutex
	dirty bool
}

// flush refreshes the native menu once if any check item changed since
// the last flush.
func (b *menuBar) flush() error {
	b.mu.Lock()
	dirty := b.dirty
	b.dirty = false
	b.mu.Unlock()
	if !dirty {
		return nil
	}

	// Before startup the menu is not on screen yet; the fields are enough.
	if err := b.refresh.RefreshMenu(); err != nil && !errors.Is(err, common.ErrHostNotReady) {
		return err
	}
	return nil
}

// checkItems returns the realized check items keyed by identifier.
func (b *menuBar) checkItems() map[shell.MenuID]shell.CheckItem {
	items := make(map[shell.MenuID]shell.CheckItem, len(b.checks))
	for id, c := range b.checks {
		items[id] = c
	}
	return items
}

// buildMenuBar turns a menu tree into a Wails menu. Identified items call
// dispatch; role items call role. Callers flush after dispatching.
func buildMenuBar(tree shell.MenuTree, refresh menuRefresher, dispatch func(shell.MenuID), role func(shell.Role)) (*menuBar, error) {
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	bar := &menuBar{
		menu:    menu.NewMenu(),
		checks:  make(map[shell.MenuID]*checkItem),
		refresh: refresh,
	}
	if err := bar.add(bar.menu, tree.Items, dispatch, role); err != nil {
		return nil, err
	}
	return bar, nil
}

func (b *menuBar) add(parent *menu.Menu, items []shell.MenuItem, dispatch func(shell.MenuID), role func(shell.Role)) error {
	for _, item := range items {
		item := item
		accel, err := parseAccelerator(item.Accelerator)
		if err != nil {
			return err
		}

		switch item.Kind {
		case shell.KindSeparator:
			parent.AddSeparator()
		case shell.KindSubmenu:
			sub := parent.AddSubmenu(item.Label)
			if err := b.add(sub, item.Children, dispatch, role); err != nil {
				return err
			}
		case shell.KindCheck:
			mi := parent.AddCheckbox(item.Label, item.Checked, accel, func(*menu.CallbackData) {
				dispatch(item.ID)
			})
			b.checks[item.ID] = &checkItem{bar: b, item: mi}
		case shell.KindRole:
			parent.AddText(item.Label, accel, func(*menu.CallbackData) {
				role(item.Role)
			})
		default:
			parent.AddText(item.Label, accel, func(*menu.CallbackData) {
				dispatch(item.ID)
			})
		}
	}
	return nil
}

// parseAccelerator converts "CmdOrCtrl+Shift+Z" into a Wails accelerator.
// An empty string means no accelerator.
func parseAccelerator(s string) (*keys.Accelerator, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "+")
	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return nil, fmt.Errorf("%w: accelerator %q has no key", common.ErrInvalidMenu, s)
	}

	accel := &keys.Accelerator{Key: key}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "cmdorctrl", "cmd", "command":
			accel.Modifiers = append(accel.Modifiers, keys.CmdOrCtrlKey)
		case "ctrl", "control":
			accel.Modifiers = append(accel.Modifiers, keys.ControlKey)
		case "shift":
			accel.Modifiers = append(accel.Modifiers, keys.ShiftKey)
		case "alt", "option", "optionoralt":
			accel.Modifiers = append(accel.Modifiers, keys.OptionOrAltKey)
		default:
			return nil, fmt.Errorf("%w: unknown modifier %q in %q", common.ErrInvalidMenu, mod, s)
		}
	}
	return accel, nil
}
