package engine

import (
	"github.com/bloeys/nbatch/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	isRunning = false
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls g.Init, then runs the frame loop until Quit is called or the window is closed,
// then calls g.DeInit
func Run(g Game, w *Window) {

	isRunning = true
	g.Init()

	for isRunning {

		timing.FrameStarted()

		w.PollEvents()
		if w.ShouldClose() {
			break
		}

		g.Update()

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		g.Render()
		w.SDLWin.GLSwap()

		g.FrameEnd()
		timing.FrameEnded()
	}

	g.DeInit()
}

func Quit() {
	isRunning = false
}
