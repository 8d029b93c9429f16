package gesture

import "testing"

type fakeSource struct {
	touch         bool
	mouse         MouseListener
	touchListener TouchListener
	mouseAdds     int
	touchAdds     int
	mouseRemovals int
	touchRemovals int
}

func (source *fakeSource) TouchCapable() bool { return source.touch }

func (source *fakeSource) ListenMouse(listener MouseListener) func() {
	source.mouseAdds++
	source.mouse = listener
	return func() {
		source.mouseRemovals++
		source.mouse = nil
	}
}

func (source *fakeSource) ListenTouch(listener TouchListener) func() {
	source.touchAdds++
	source.touchListener = listener
	return func() {
		source.touchRemovals++
		source.touchListener = nil
	}
}

type recorder struct{ events []Event }

func (rec *recorder) handle(event Event) { rec.events = append(rec.events, event) }

func (rec *recorder) kinds() []Kind {
	kinds := make([]Kind, 0, len(rec.events))
	for _, event := range rec.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func assertKinds(t *testing.T, got []Kind, want ...Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got kinds %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got kinds %v, want %v", got, want)
		}
	}
}

func TestActivateSelectsModality(t *testing.T) {
	tests := []struct {
		name       string
		touch      bool
		forceMouse bool
		want       Mode
	}{
		{"mouse platform", false, false, ModeMouse},
		{"touch platform", true, false, ModeTouch},
		{"touch platform forced to mouse", true, true, ModeMouse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{touch: tt.touch}
			unifier := NewUnifier(nil)
			if got := unifier.Activate(source, tt.forceMouse); got != tt.want {
				t.Fatalf("Activate: got %v, want %v", got, tt.want)
			}
			if got := unifier.Mode(); got != tt.want {
				t.Fatalf("Mode: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	source := &fakeSource{}
	unifier := NewUnifier(nil)
	unifier.Activate(source, false)
	unifier.Activate(source, false)
	unifier.Activate(source, false)
	if source.mouseAdds != 1 || source.mouseRemovals != 0 {
		t.Fatalf("got %d adds / %d removals, want 1/0", source.mouseAdds, source.mouseRemovals)
	}
}

func TestActivateReRegistersOnModalityChange(t *testing.T) {
	source := &fakeSource{touch: true}
	unifier := NewUnifier(nil)
	unifier.Activate(source, false)
	unifier.Activate(source, true)
	if source.touchAdds != 1 || source.touchRemovals != 1 {
		t.Fatalf("touch: got %d adds / %d removals, want 1/1", source.touchAdds, source.touchRemovals)
	}
	if source.mouseAdds != 1 || source.mouse == nil {
		t.Fatalf("mouse: got %d adds, want 1 active", source.mouseAdds)
	}
	unifier.Deactivate()
	unifier.Deactivate()
	if source.mouseRemovals != 1 {
		t.Fatalf("mouse removals: got %d, want 1", source.mouseRemovals)
	}
	if unifier.Mode() != ModeNone {
		t.Fatalf("Mode after Deactivate: got %v, want none", unifier.Mode())
	}
}

func TestMouseStrayUpAndMoveAreSilent(t *testing.T) {
	source := &fakeSource{}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.mouse.MouseMove(Point{X: 1, Y: 1})
	source.mouse.MouseUp(Point{X: 1, Y: 1})
	if len(rec.events) != 0 {
		t.Fatalf("got %d events, want 0", len(rec.events))
	}
}

func TestMouseSequence(t *testing.T) {
	source := &fakeSource{}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.mouse.MouseDown(Point{X: 10, Y: 10})
	source.mouse.MouseMove(Point{X: 13, Y: 6})
	source.mouse.MouseMove(Point{X: 11, Y: 7})
	source.mouse.MouseUp(Point{X: 11, Y: 7})
	source.mouse.MouseUp(Point{X: 11, Y: 7})
	source.mouse.MouseMove(Point{X: 50, Y: 50})

	assertKinds(t, rec.kinds(), Down, Move, Move, Up)
	second := rec.events[2]
	if second.Previous != (Point{X: 13, Y: 6}) {
		t.Fatalf("move previous: got %+v, want {13 6}", second.Previous)
	}
	if second.Displacement != (Point{X: 5, Y: 5}) {
		t.Fatalf("move displacement: got %+v, want {5 5}", second.Displacement)
	}
	if rec.events[3].Displacement != (Point{X: 5, Y: 5}) {
		t.Fatalf("up displacement: got %+v, want {5 5}", rec.events[3].Displacement)
	}
}

func TestDisplacementResetsOnDown(t *testing.T) {
	source := &fakeSource{}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.mouse.MouseDown(Point{})
	source.mouse.MouseMove(Point{X: 30, Y: 40})
	source.mouse.MouseUp(Point{X: 30, Y: 40})
	source.mouse.MouseDown(Point{X: 30, Y: 40})

	last := rec.events[len(rec.events)-1]
	if last.Kind != Down || last.Displacement != (Point{}) {
		t.Fatalf("got %+v, want down with zero displacement", last)
	}
	if last.Previous != (Point{X: 30, Y: 40}) {
		t.Fatalf("down previous: got %+v, want {30 40}", last.Previous)
	}
}

func TestTouchTracksSingleIdentifier(t *testing.T) {
	source := &fakeSource{touch: true}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.touchListener.TouchStart([]Touch{{ID: 7, Point: Point{X: 1, Y: 1}}, {ID: 8, Point: Point{X: 90, Y: 90}}})
	source.touchListener.TouchStart([]Touch{{ID: 9, Point: Point{X: 50, Y: 50}}})
	source.touchListener.TouchMove([]Touch{
		{ID: 8, Point: Point{X: 100, Y: 100}},
		{ID: 7, Point: Point{X: 4, Y: 5}},
		{ID: 9, Point: Point{X: 0, Y: 0}},
	})
	source.touchListener.TouchEnd([]Touch{{ID: 8, Point: Point{X: 100, Y: 100}}})
	source.touchListener.TouchEnd([]Touch{{ID: 7, Point: Point{X: 99, Y: 99}}})

	assertKinds(t, rec.kinds(), Down, Move, Up)
	if rec.events[0].Point != (Point{X: 1, Y: 1}) {
		t.Fatalf("down point: got %+v, want {1 1}", rec.events[0].Point)
	}
	up := rec.events[2]
	if up.Point != (Point{X: 4, Y: 5}) {
		t.Fatalf("up point: got %+v, want last known {4 5}", up.Point)
	}
	if up.Displacement != (Point{X: 3, Y: 4}) {
		t.Fatalf("up displacement: got %+v, want {3 4}", up.Displacement)
	}
}

func TestTouchCancelEmitsUpAndAllowsNewTracking(t *testing.T) {
	source := &fakeSource{touch: true}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.touchListener.TouchStart([]Touch{{ID: 1, Point: Point{X: 5, Y: 5}}})
	source.touchListener.TouchCancel([]Touch{{ID: 1}})
	source.touchListener.TouchCancel([]Touch{{ID: 1}})
	source.touchListener.TouchStart([]Touch{{ID: 2, Point: Point{X: 6, Y: 6}}})

	assertKinds(t, rec.kinds(), Down, Up, Down)
	if rec.events[1].Point != (Point{X: 5, Y: 5}) {
		t.Fatalf("up point: got %+v, want {5 5}", rec.events[1].Point)
	}
}

func TestTouchStartWithoutTouchesIsIgnored(t *testing.T) {
	source := &fakeSource{touch: true}
	rec := &recorder{}
	unifier := NewUnifier(rec.handle)
	unifier.Activate(source, false)

	source.touchListener.TouchStart(nil)
	source.touchListener.TouchEnd(nil)
	if len(rec.events) != 0 {
		t.Fatalf("got %d events, want 0", len(rec.events))
	}
}

func TestHandlerMayDeactivate(t *testing.T) {
	source := &fakeSource{}
	var unifier *Unifier
	unifier = NewUnifier(func(event Event) {
		if event.Kind == Up {
			unifier.Deactivate()
		}
	})
	unifier.Activate(source, false)
	listener := source.mouse
	listener.MouseDown(Point{})
	listener.MouseUp(Point{})
	if source.mouseRemovals != 1 {
		t.Fatalf("removals: got %d, want 1", source.mouseRemovals)
	}
}
