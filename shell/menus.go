package shell

import (
	"fmt"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
)

// ItemKind distinguishes the entries of a MenuTree.
type ItemKind int

const (
	KindAction ItemKind = iota
	KindCheck
	KindSeparator
	KindSubmenu
	KindRole
)

// Role names a platform-provided menu action.
type Role string

const (
	RoleUndo        Role = "undo"
	RoleRedo        Role = "redo"
	RoleCut         Role = "cut"
	RoleCopy        Role = "copy"
	RolePaste       Role = "paste"
	RoleSelectAll   Role = "selectAll"
	RoleMinimize    Role = "minimize"
	RoleCloseWindow Role = "closeWindow"
)

// MenuItem is one node of a toolkit-neutral menu tree.
type MenuItem struct {
	ID          MenuID
	Label       string
	Kind        ItemKind
	Checked     bool
	Accelerator string // e.g. "CmdOrCtrl+Q"
	Role        Role
	Children    []MenuItem
}

// MenuTree is a static menu description. Hosts realize it with their
// own widgets and route activations of identified items to a Router.
type MenuTree struct {
	Items []MenuItem
}

// State is the shell state a menu tree is built from.
type State struct {
	Theme       appearance.Mode
	AlwaysOnTop bool
}

// DefaultState is the state on a fresh start: system theme, on top.
func DefaultState() State {
	return State{Theme: appearance.ModeSystem, AlwaysOnTop: true}
}

// Walk calls fn for every item depth-first, submenus before their children.
func (t MenuTree) Walk(fn func(MenuItem)) {
	var walk func(items []MenuItem)
	walk = func(items []MenuItem) {
		for _, item := range items {
			fn(item)
			walk(item.Children)
		}
	}
	walk(t.Items)
}

// IDs returns the identifiers of all dispatchable items.
func (t MenuTree) IDs() []MenuID {
	var ids []MenuID
	t.Walk(func(item MenuItem) {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	})
	return ids
}

// Find returns the item with the given identifier.
func (t MenuTree) Find(id MenuID) (MenuItem, bool) {
	var found MenuItem
	var ok bool
	t.Walk(func(item MenuItem) {
		if !ok && item.ID == id {
			found, ok = item, true
		}
	})
	return found, ok
}

// Validate checks the structural rules hosts rely on.
func (t MenuTree) Validate() error {
	seen := make(map[MenuID]bool)
	var err error
	t.Walk(func(item MenuItem) {
		if err != nil {
			return
		}
		switch item.Kind {
		case KindSeparator:
			return
		case KindSubmenu:
			if len(item.Children) == 0 {
				err = fmt.Errorf("%w: submenu %q is empty", common.ErrInvalidMenu, item.Label)
				return
			}
		case KindRole:
			if item.Role == "" {
				err = fmt.Errorf("%w: role item %q has no role", common.ErrInvalidMenu, item.Label)
				return
			}
		case KindAction, KindCheck:
			if item.ID == "" {
				err = fmt.Errorf("%w: item %q has no identifier", common.ErrInvalidMenu, item.Label)
				return
			}
		}
		if item.Label == "" {
			err = fmt.Errorf("%w: item %q has no label", common.ErrInvalidMenu, item.ID)
			return
		}
		if item.ID != "" {
			if seen[item.ID] {
				err = fmt.Errorf("%w: %q", common.ErrDuplicateMenuID, item.ID)
				return
			}
			seen[item.ID] = true
		}
	})
	return err
}

// BuildAppMenu returns the menu bar: App, Edit, and Window groups.
func BuildAppMenu(s State) (MenuTree, error) {
	selected := ThemeID(s.Theme)
	themes := make([]MenuItem, 0, 3)
	for _, id := range ThemeIDs() {
		themes = append(themes, MenuItem{
			ID:      id,
			Label:   themeLabels[id],
			Kind:    KindCheck,
			Checked: id == selected,
		})
	}

	tree := MenuTree{Items: []MenuItem{
		{
			Label: common.AppName,
			Kind:  KindSubmenu,
			Children: []MenuItem{
				{ID: IDAbout, Label: "About " + common.AppName, Kind: KindAction},
				{Kind: KindSeparator},
				{Label: "Appearance", Kind: KindSubmenu, Children: themes},
				{ID: IDAlwaysOnTop, Label: "Always on Top", Kind: KindCheck, Checked: s.AlwaysOnTop},
				{Kind: KindSeparator},
				{ID: IDQuitApp, Label: "Quit", Kind: KindAction, Accelerator: "CmdOrCtrl+Q"},
			},
		},
		{
			Label: "Edit",
			Kind:  KindSubmenu,
			Children: []MenuItem{
				{Label: "Undo", Kind: KindRole, Role: RoleUndo, Accelerator: "CmdOrCtrl+Z"},
				{Label: "Redo", Kind: KindRole, Role: RoleRedo, Accelerator: "CmdOrCtrl+Shift+Z"},
				{Kind: KindSeparator},
				{Label: "Cut", Kind: KindRole, Role: RoleCut, Accelerator: "CmdOrCtrl+X"},
				{Label: "Copy", Kind: KindRole, Role: RoleCopy, Accelerator: "CmdOrCtrl+C"},
				{Label: "Paste", Kind: KindRole, Role: RolePaste, Accelerator: "CmdOrCtrl+V"},
				{Label: "Select All", Kind: KindRole, Role: RoleSelectAll, Accelerator: "CmdOrCtrl+A"},
			},
		},
		{
			Label: "Window",
			Kind:  KindSubmenu,
			Children: []MenuItem{
				{Label: "Minimize", Kind: KindRole, Role: RoleMinimize, Accelerator: "CmdOrCtrl+M"},
				{Label: "Close", Kind: KindRole, Role: RoleCloseWindow, Accelerator: "CmdOrCtrl+W"},
			},
		},
	}}

	if err := tree.Validate(); err != nil {
		return MenuTree{}, err
	}
	return tree, nil
}

// BuildTrayMenu returns the tray context menu.
func BuildTrayMenu() (MenuTree, error) {
	tree := MenuTree{Items: []MenuItem{
		{ID: IDShow, Label: "Show", Kind: KindAction},
		{ID: IDQuit, Label: "Quit", Kind: KindAction},
	}}
	if err := tree.Validate(); err != nil {
		return MenuTree{}, err
	}
	return tree, nil
}

var themeLabels = map[MenuID]string{
	IDThemeSystem: "System",
	IDThemeLight:  "Light",
	IDThemeDark:   "Dark",
}
