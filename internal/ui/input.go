package ui

import "github.com/hajimehoshi/ebiten/v2"

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	wheel                = ebiten.Wheel
	deviceScale          = func() float64 { return ebiten.Monitor().DeviceScaleFactor() }
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	wh func() (float64, float64),
	scale func() float64,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldWheel := wheel
	oldScale := deviceScale
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	wheel = wh
	deviceScale = scale
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		wheel = oldWheel
		deviceScale = oldScale
	}
}

// keyEdges turns the level-triggered isKeyPressed into press events.
type keyEdges struct {
	down map[ebiten.Key]bool
}

// pressed reports whether k went down since the previous call for k.
func (e *keyEdges) pressed(k ebiten.Key) bool {
	if e.down == nil {
		e.down = map[ebiten.Key]bool{}
	}
	now := isKeyPressed(k)
	was := e.down[k]
	e.down[k] = now
	return now && !was
}

// held reports the level state and keeps the edge tracker in sync.
func (e *keyEdges) held(k ebiten.Key) bool {
	if e.down == nil {
		e.down = map[ebiten.Key]bool{}
	}
	now := isKeyPressed(k)
	e.down[k] = now
	return now
}
