package touchdial

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dialtimer/internal/core/gesture"
)

// Input is the per-tick view of pointer and keyboard state.
type Input interface {
	TouchCapable() bool
	Cursor() gesture.Point
	MouseJustPressed() bool
	MouseJustReleased() bool
	JustPressedTouches() []gesture.Touch
	Touches() []gesture.Touch
	JustReleasedTouches() []gesture.Touch
	SpaceJustPressed() bool
}

// EbitenInput reads input from Ebiten. Its methods must be called from
// within Game.Update.
type EbitenInput struct{}

var _ Input = EbitenInput{}

// TouchCapable reports true on mobile targets.
func (EbitenInput) TouchCapable() bool {
	return runtime.GOOS == "android" || runtime.GOOS == "ios"
}

func (EbitenInput) Cursor() gesture.Point {
	x, y := ebiten.CursorPosition()
	return gesture.Point{X: float64(x), Y: float64(y)}
}

func (EbitenInput) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (EbitenInput) MouseJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (EbitenInput) JustPressedTouches() []gesture.Touch {
	return touchesAt(inpututil.AppendJustPressedTouchIDs(nil), ebiten.TouchPosition)
}

func (EbitenInput) Touches() []gesture.Touch {
	return touchesAt(ebiten.AppendTouchIDs(nil), ebiten.TouchPosition)
}

func (EbitenInput) JustReleasedTouches() []gesture.Touch {
	return touchesAt(inpututil.AppendJustReleasedTouchIDs(nil), inpututil.TouchPositionInPreviousTick)
}

func (EbitenInput) SpaceJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

func touchesAt(ids []ebiten.TouchID, position func(ebiten.TouchID) (int, int)) []gesture.Touch {
	if len(ids) == 0 {
		return nil
	}
	touches := make([]gesture.Touch, 0, len(ids))
	for _, id := range ids {
		x, y := position(id)
		touches = append(touches, gesture.Touch{
			ID:    gesture.TouchID(id),
			Point: gesture.Point{X: float64(x), Y: float64(y)},
		})
	}
	return touches
}
