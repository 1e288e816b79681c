package main

import (
	"gochip8/cmd"

	"github.com/faiface/pixel/pixelgl"
)

// pixelgl needs to own the main thread, so the whole command tree runs
// inside pixelgl.Run.
func main() {
	pixelgl.Run(run)
}

func run() {
	cmd.Execute()
}
