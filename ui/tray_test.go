package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/yllada/voice-intelligence/shell"
)

type fakeDispatcher struct {
	mu      sync.Mutex
	ids     []shell.MenuID
	tapped  int
	handled chan struct{}
}

func (d *fakeDispatcher) Dispatch(id shell.MenuID) bool {
	d.mu.Lock()
	d.ids = append(d.ids, id)
	d.mu.Unlock()
	d.handled <- struct{}{}
	return true
}

func (d *fakeDispatcher) TrayClicked() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tapped++
}

func TestTrayIndicator_ForwardDispatchesClicks(t *testing.T) {
	tree, err := shell.BuildTrayMenu()
	if err != nil {
		t.Fatal(err)
	}
	d := &fakeDispatcher{handled: make(chan struct{}, 4)}
	tray := NewTrayIndicator(d, tree, nil)

	clicks := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		tray.forward(clicks, shell.IDShow)
		close(stopped)
	}()

	for i := 0; i < 2; i++ {
		clicks <- struct{}{}
		select {
		case <-d.handled:
		case <-time.After(time.Second):
			t.Fatal("click was not dispatched")
		}
	}

	tray.onExit()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("forward did not stop after exit")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.ids) != 2 || d.ids[0] != shell.IDShow || d.ids[1] != shell.IDShow {
		t.Errorf("dispatched %v, want [show show]", d.ids)
	}
}

func TestTrayIndicator_ForwardStopsOnClosedChannel(t *testing.T) {
	d := &fakeDispatcher{handled: make(chan struct{}, 1)}
	tray := NewTrayIndicator(d, shell.MenuTree{}, nil)

	clicks := make(chan struct{})
	close(clicks)

	done := make(chan struct{})
	go func() {
		tray.forward(clicks, shell.IDQuit)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward should return when the click channel closes")
	}

	// A second exit must not panic on the closed done channel.
	tray.onExit()
	tray.onExit()
}

func TestTrayIndicator_HasIcon(t *testing.T) {
	tray := NewTrayIndicator(&fakeDispatcher{}, shell.MenuTree{}, nil)
	if len(tray.icon) == 0 {
		t.Error("tray icon should be generated")
	}
}
