package shell

import (
	"errors"
	"sync"
)

var errInjected = errors.New("injected failure")

type fakeCheckItem struct {
	mu      sync.Mutex
	checked bool
	fail    bool
	calls   int
}

func (f *fakeCheckItem) SetChecked(checked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return errInjected
	}
	f.checked = checked
	return nil
}

func (f *fakeCheckItem) Checked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checked
}

type fakeWindow struct {
	mu        sync.Mutex
	visible   bool
	focused   bool
	onTop     bool
	destroyed bool
	failOnTop bool
	failShow  bool
}

func (w *fakeWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failShow {
		return errInjected
	}
	w.visible = true
	return nil
}

func (w *fakeWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	w.focused = false
	return nil
}

func (w *fakeWindow) Focus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.visible {
		return errors.New("cannot focus hidden window")
	}
	w.focused = true
	return nil
}

func (w *fakeWindow) SetAlwaysOnTop(onTop bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failOnTop {
		return errInjected
	}
	w.onTop = onTop
	return nil
}

type emitted struct {
	event   string
	payload any
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emitted
	fail   bool
}

func (e *fakeEmitter) Emit(event string, payload any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return errInjected
	}
	e.events = append(e.events, emitted{event: event, payload: payload})
	return nil
}

func (e *fakeEmitter) last() (emitted, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return emitted{}, false
	}
	return e.events[len(e.events)-1], true
}

func (e *fakeEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

type fakeExiter struct {
	mu    sync.Mutex
	codes []int
}

func (x *fakeExiter) Exit(code int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.codes = append(x.codes, code)
}

func (x *fakeExiter) exits() []int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]int(nil), x.codes...)
}

type fixture struct {
	shell   *Shell
	items   map[MenuID]*fakeCheckItem
	window  *fakeWindow
	emitter *fakeEmitter
	exiter  *fakeExiter
}

// newFixture builds a Shell from the default menus, the way a host does.
func newFixture(initial State) (*fixture, error) {
	tree, err := BuildAppMenu(initial)
	if err != nil {
		return nil, err
	}

	f := &fixture{
		items:   make(map[MenuID]*fakeCheckItem),
		window:  &fakeWindow{visible: true, onTop: initial.AlwaysOnTop},
		emitter: &fakeEmitter{},
		exiter:  &fakeExiter{},
	}
	items := make(map[MenuID]CheckItem)
	tree.Walk(func(item MenuItem) {
		if item.Kind == KindCheck {
			fake := &fakeCheckItem{checked: item.Checked}
			f.items[item.ID] = fake
			items[item.ID] = fake
		}
	})

	f.shell, err = New(Options{
		Window:  f.window,
		Emitter: f.emitter,
		Exiter:  f.exiter,
		Items:   items,
		Initial: initial,
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *fixture) themeChecks() [3]bool {
	return [3]bool{
		f.items[IDThemeSystem].Checked(),
		f.items[IDThemeLight].Checked(),
		f.items[IDThemeDark].Checked(),
	}
}
