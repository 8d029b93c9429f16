package gesture

// MouseListener receives raw mouse button and motion input.
type MouseListener interface {
	MouseDown(point Point)
	MouseMove(point Point)
	MouseUp(point Point)
}

// TouchListener receives raw multi-touch input. Each call carries the touches
// relevant to that phase: new contacts for TouchStart, current contacts for
// TouchMove and the lifted contacts for TouchEnd and TouchCancel.
type TouchListener interface {
	TouchStart(touches []Touch)
	TouchMove(touches []Touch)
	TouchEnd(touches []Touch)
	TouchCancel(touches []Touch)
}

// Source is a host surface that can deliver mouse or touch input.
type Source interface {
	// TouchCapable reports whether the platform delivers touch input.
	TouchCapable() bool
	// ListenMouse registers listener and returns a function that removes it.
	ListenMouse(listener MouseListener) (remove func())
	// ListenTouch registers listener and returns a function that removes it.
	ListenTouch(listener TouchListener) (remove func())
}
