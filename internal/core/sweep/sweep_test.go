package sweep

import "testing"

func TestProject(t *testing.T) {
	tests := []struct {
		seconds float64
		want    Angles
	}{
		{0, Angles{Left: 180, Right: 180}},
		{-30, Angles{Left: 180, Right: 180}},
		{900, Angles{Left: 90, Right: 180}},
		{1800, Angles{Left: 0, Right: 180}},
		{2700, Angles{Left: 0, Right: 90}},
		{3600, Angles{Left: 0, Right: 0}},
		{7200, Angles{Left: 0, Right: 0}},
	}
	for _, tt := range tests {
		if got := Project(tt.seconds); got != tt.want {
			t.Fatalf("Project(%v): got %+v, want %+v", tt.seconds, got, tt.want)
		}
	}
}

func TestProjectStaysWithinHalfTurn(t *testing.T) {
	for seconds := -100.0; seconds <= 3700; seconds += 0.5 {
		got := Project(seconds)
		if got.Left < 0 || got.Left > 180 || got.Right < 0 || got.Right > 180 {
			t.Fatalf("Project(%v): got %+v, want both in [0,180]", seconds, got)
		}
	}
}

type countingSurface struct {
	left, right []float64
}

func (surface *countingSurface) SetLeft(degree float64) { surface.left = append(surface.left, degree) }
func (surface *countingSurface) SetRight(degree float64) {
	surface.right = append(surface.right, degree)
}

func TestWriterSkipsUnchangedAngles(t *testing.T) {
	surface := &countingSurface{}
	writer := NewWriter(surface)

	writer.Write(600)
	writer.Write(600)
	writer.Write(599)
	writer.Write(2700)

	if len(surface.left) != 3 {
		t.Fatalf("left writes: got %v, want 3", surface.left)
	}
	if len(surface.right) != 2 {
		t.Fatalf("right writes: got %v, want 2", surface.right)
	}
	if got := writer.Last(); got != Project(2700) {
		t.Fatalf("Last: got %+v, want %+v", got, Project(2700))
	}
}

func TestWriterWithoutSurface(t *testing.T) {
	writer := NewWriter(nil)
	if got := writer.Write(1800); got != (Angles{Left: 0, Right: 180}) {
		t.Fatalf("got %+v", got)
	}
}
