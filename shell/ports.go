package shell

// CheckItem is a live checkable menu entry owned by the host toolkit.
type CheckItem interface {
	SetChecked(checked bool) error
	Checked() bool
}

// Window is the single top-level window. The shell never destroys it.
type Window interface {
	Show() error
	Hide() error
	Focus() error
	SetAlwaysOnTop(onTop bool) error
}

// Emitter delivers named notifications to the content view.
// Delivery is fire-and-forget.
type Emitter interface {
	Emit(event string, payload any) error
}

// Exiter terminates the process with the given exit code.
type Exiter interface {
	Exit(code int)
}

// ExiterFunc adapts a function to Exiter.
type ExiterFunc func(code int)

// Exit calls f.
func (f ExiterFunc) Exit(code int) {
	f(code)
}
