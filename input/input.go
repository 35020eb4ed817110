// The input package tracks keyboard and mouse state from SDL events, along with
// pressed/released this frame, so demo code can poll it once per frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               uint8
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   uint8
	State uint8

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

var (
	mouseWheelYDelta int32
	mouseMotion      = mouseMotionState{}
	mouseBtnMap      = make(map[uint8]mouseBtnState)
	keyMap           = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
)

// EventLoopStart resets the per frame state. Called once per frame before the events are handled
func EventLoopStart() {

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0
	mouseWheelYDelta = 0
}

// HandleEvent updates the input state from one SDL event. Events that aren't input are ignored
func HandleEvent(event sdl.Event) {

	switch e := event.(type) {

	case *sdl.KeyboardEvent:

		ks := keyMap[e.Keysym.Sym]
		ks.Key = e.Keysym.Sym
		ks.IsPressedThisFrame = e.State == sdl.PRESSED && ks.State == sdl.RELEASED
		ks.IsReleasedThisFrame = e.State == sdl.RELEASED && ks.State == sdl.PRESSED
		ks.State = e.State
		keyMap[e.Keysym.Sym] = ks

	case *sdl.MouseButtonEvent:

		mb := mouseBtnMap[e.Button]
		mb.Btn = e.Button
		mb.IsPressedThisFrame = e.State == sdl.PRESSED
		mb.IsReleasedThisFrame = e.State == sdl.RELEASED
		mb.State = e.State
		mouseBtnMap[e.Button] = mb

	case *sdl.MouseMotionEvent:

		mouseMotion.XPos = e.X
		mouseMotion.YPos = e.Y
		mouseMotion.XDelta += e.XRel
		mouseMotion.YDelta += e.YRel

	case *sdl.MouseWheelEvent:
		mouseWheelYDelta += e.Y

	case *sdl.QuitEvent:
		isQuitRequested = true
	}
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how much the mouse moved this frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

func GetMouseWheelMotion() int32 {
	return mouseWheelYDelta
}

func KeyClicked(kc sdl.Keycode) bool {
	return keyMap[kc].IsPressedThisFrame
}

func KeyReleased(kc sdl.Keycode) bool {
	return keyMap[kc].IsReleasedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {
	return keyMap[kc].State == sdl.PRESSED
}

func MouseClicked(mb uint8) bool {
	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseDown(mb uint8) bool {
	return mouseBtnMap[mb].State == sdl.PRESSED
}
