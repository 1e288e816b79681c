// Package screen is the windowed frontend. It owns the pixelgl window, the
// tick loop pacing, the key mapping and the upload of display snapshots.
package screen

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"gochip8/emu/audio"
	"gochip8/emu/cpu"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/log"
)

const pixelScale = 10

// keymap is the conventional QWERTY layout of the hex keypad:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keymap = map[pixelgl.Button]int{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window drives one emulation session inside a pixelgl window. It must be
// used from the pixelgl main thread, i.e. inside pixelgl.Run.
type Window struct {
	win    *pixelgl.Window
	logger *log.Logger
	on     color.RGBA
	off    color.RGBA
}

// New opens the emulator window.
func New(title string, colors cpu.ColorMap, logger *log.Logger) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:     title,
		Bounds:    pixel.R(0, 0, cpu.LoresWidth*pixelScale, cpu.LoresHeight*pixelScale),
		VSync:     true,
		Resizable: true,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	return &Window{
		win:    win,
		logger: logger,
		on:     ParseColor(colors.On, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}),
		off:    ParseColor(colors.Off, color.RGBA{A: 0xFF}),
	}, nil
}

// Run ticks the session at its configured rate until the window closes, the
// program exits or a fault stops the machine. The last fault, if any, is
// returned after the window is torn down.
func (w *Window) Run(emu *cpu.EMU, buzzer *audio.Buzzer) error {
	ticker := time.NewTicker(time.Second / time.Duration(emu.TickRate()))
	defer ticker.Stop()

	var fault error
	for !w.win.Closed() {
		w.pollKeys(emu)

		snap, gate, err := emu.Tick()
		if buzzer != nil {
			buzzer.SetGate(gate)
		}
		if err != nil && fault == nil {
			fault = err
			w.logger.Error("emulation fault", log.Err(err))
		}

		w.render(snap)
		w.win.Update()

		if emu.Halted() {
			break
		}
		<-ticker.C
	}

	if buzzer != nil {
		buzzer.SetGate(false)
	}
	return fault
}

func (w *Window) pollKeys(emu *cpu.EMU) {
	for btn, idx := range keymap {
		emu.SetKey(idx, w.win.Pressed(btn))
	}
}

// render uploads the snapshot as a picture and scales it to fit the window.
func (w *Window) render(snap cpu.Snapshot) {
	pd := pixel.MakePictureData(pixel.R(0, 0, float64(snap.Width), float64(snap.Height)))
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			c := w.off
			if snap.At(x, y) {
				c = w.on
			}
			// PictureData rows run bottom-up, snapshot rows top-down.
			pd.Pix[(snap.Height-1-y)*pd.Stride+x] = c
		}
	}

	w.win.Clear(w.off)
	bounds := w.win.Bounds()
	scale := math.Min(bounds.W()/float64(snap.Width), bounds.H()/float64(snap.Height))
	pixel.NewSprite(pd, pd.Bounds()).
		Draw(w.win, pixel.IM.Scaled(pixel.ZV, scale).Moved(bounds.Center()))
}

// ParseColor decodes a "#RRGGBB" string, falling back to def when the string
// is malformed.
func ParseColor(s string, def color.RGBA) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return def
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
