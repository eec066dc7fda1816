package shell

import (
	"errors"
	"testing"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
)

func TestBuildAppMenu_Structure(t *testing.T) {
	tree, err := BuildAppMenu(DefaultState())
	if err != nil {
		t.Fatalf("BuildAppMenu() error = %v", err)
	}

	if len(tree.Items) != 3 {
		t.Fatalf("top-level groups = %d, want 3", len(tree.Items))
	}
	wantGroups := []string{common.AppName, "Edit", "Window"}
	for i, want := range wantGroups {
		if tree.Items[i].Label != want {
			t.Errorf("group %d = %q, want %q", i, tree.Items[i].Label, want)
		}
	}

	for _, id := range []MenuID{IDAbout, IDThemeSystem, IDThemeLight, IDThemeDark, IDAlwaysOnTop, IDQuitApp} {
		if _, ok := tree.Find(id); !ok {
			t.Errorf("menu is missing %q", id)
		}
	}

	quit, _ := tree.Find(IDQuitApp)
	if quit.Accelerator != "CmdOrCtrl+Q" {
		t.Errorf("quit accelerator = %q", quit.Accelerator)
	}
}

func TestBuildAppMenu_InitialChecks(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"defaults", DefaultState()},
		{"dark not on top", State{Theme: appearance.ModeDark, AlwaysOnTop: false}},
		{"light on top", State{Theme: appearance.ModeLight, AlwaysOnTop: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildAppMenu(tt.state)
			if err != nil {
				t.Fatal(err)
			}

			checked := 0
			for _, id := range ThemeIDs() {
				item, _ := tree.Find(id)
				if item.Kind != KindCheck {
					t.Errorf("%q kind = %v, want KindCheck", id, item.Kind)
				}
				if item.Checked {
					checked++
					if id.ThemeMode() != tt.state.Theme {
						t.Errorf("%q checked, want %v", id, tt.state.Theme)
					}
				}
			}
			if checked != 1 {
				t.Errorf("%d theme items checked, want 1", checked)
			}

			onTop, _ := tree.Find(IDAlwaysOnTop)
			if onTop.Checked != tt.state.AlwaysOnTop {
				t.Errorf("always_on_top checked = %v, want %v", onTop.Checked, tt.state.AlwaysOnTop)
			}
		})
	}
}

func TestBuildTrayMenu(t *testing.T) {
	tree, err := BuildTrayMenu()
	if err != nil {
		t.Fatalf("BuildTrayMenu() error = %v", err)
	}
	ids := tree.IDs()
	if len(ids) != 2 || ids[0] != IDShow || ids[1] != IDQuit {
		t.Errorf("tray IDs = %v, want [show quit]", ids)
	}
}

func TestMenuTree_Validate(t *testing.T) {
	tests := []struct {
		name string
		tree MenuTree
		want error
	}{
		{
			name: "duplicate id",
			tree: MenuTree{Items: []MenuItem{
				{ID: IDShow, Label: "Show"},
				{ID: IDShow, Label: "Show again"},
			}},
			want: common.ErrDuplicateMenuID,
		},
		{
			name: "missing label",
			tree: MenuTree{Items: []MenuItem{{ID: IDQuit}}},
			want: common.ErrInvalidMenu,
		},
		{
			name: "action without id",
			tree: MenuTree{Items: []MenuItem{{Label: "Nothing"}}},
			want: common.ErrInvalidMenu,
		},
		{
			name: "empty submenu",
			tree: MenuTree{Items: []MenuItem{{Label: "Empty", Kind: KindSubmenu}}},
			want: common.ErrInvalidMenu,
		},
		{
			name: "role without role",
			tree: MenuTree{Items: []MenuItem{{Label: "Copy", Kind: KindRole}}},
			want: common.ErrInvalidMenu,
		},
		{
			name: "separators need nothing",
			tree: MenuTree{Items: []MenuItem{{Kind: KindSeparator}, {ID: IDQuit, Label: "Quit"}}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestThemeIDRoundTrip(t *testing.T) {
	for _, m := range appearance.Modes() {
		if got := ThemeID(m).ThemeMode(); got != m {
			t.Errorf("ThemeID(%v).ThemeMode() = %v", m, got)
		}
	}
	if IDAlwaysOnTop.IsTheme() || !IDThemeDark.IsTheme() {
		t.Error("IsTheme misclassifies identifiers")
	}
}

func TestRouter_HandleAndDispatch(t *testing.T) {
	r := NewRouter(nil)
	calls := 0
	r.Handle("ping", func() { calls++ })

	if !r.Dispatch("ping") || calls != 1 {
		t.Errorf("Dispatch(ping) calls = %d", calls)
	}
	if r.Dispatch("pong") {
		t.Error("Dispatch(pong) should not be handled")
	}

	shown := false
	r.Handle(IDShow, func() { shown = true })
	r.TrayClicked()
	if !shown {
		t.Error("TrayClicked should dispatch show")
	}
}

func TestFlag(t *testing.T) {
	f := NewFlag(true)
	if !f.Load() {
		t.Error("Load() = false, want true")
	}
	if f.Toggle() {
		t.Error("Toggle() = true, want false")
	}
	f.Store(true)
	if !f.Load() {
		t.Error("Store(true) not observed")
	}
}
