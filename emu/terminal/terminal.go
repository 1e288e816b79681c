// Package terminal is the tcell frontend: it renders the display buffer as
// half-block cells and maps terminal keys onto the hex keypad, for running
// ROMs without a window system.
package terminal

import (
	"time"
	"unicode"

	"gochip8/emu/cpu"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/log"
)

// keyHold is how many ticks a terminal keypress stays down. Terminals only
// deliver key-down events, so releases have to be synthesized.
const keyHold = 6

var keymap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal drives one emulation session on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	logger *log.Logger
	on     tcell.Color
	off    tcell.Color
	held   [cpu.KeyCount]int
}

// New initializes the terminal screen.
func New(colors cpu.ColorMap, logger *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	on := tcell.GetColor(colors.On)
	if on == tcell.ColorDefault {
		on = tcell.ColorWhite
	}
	off := tcell.GetColor(colors.Off)
	if off == tcell.ColorDefault {
		off = tcell.ColorBlack
	}

	screen.SetStyle(tcell.StyleDefault.Background(off))
	screen.Clear()

	return &Terminal{
		screen: screen,
		logger: logger,
		on:     on,
		off:    off,
	}, nil
}

// Run ticks the session at its configured rate until Esc or Ctrl-C, program
// exit, or a fault. The screen is torn down before returning so the fault
// can be logged normally.
func (t *Terminal) Run(emu *cpu.EMU) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(emu.TickRate()))
	defer ticker.Stop()

	var fault error
	wasGated := false

loop:
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					break loop
				}
				if ev.Key() == tcell.KeyRune {
					if idx, ok := keymap[unicode.ToLower(ev.Rune())]; ok {
						emu.SetKey(idx, true)
						t.held[idx] = keyHold
					}
				}
			}

		case <-ticker.C:
			t.releaseExpired(emu)

			snap, gate, err := emu.Tick()
			if gate && !wasGated {
				t.screen.Beep()
			}
			wasGated = gate

			t.draw(snap)

			if err != nil {
				fault = err
				break loop
			}
			if emu.Halted() {
				break loop
			}
		}
	}

	close(quit)
	t.screen.Fini()
	if fault != nil {
		t.logger.Error("emulation fault", log.Err(fault))
	}
	return fault
}

func (t *Terminal) releaseExpired(emu *cpu.EMU) {
	for i, n := range t.held {
		if n == 0 {
			continue
		}
		t.held[i] = n - 1
		if t.held[i] == 0 {
			emu.SetKey(i, false)
		}
	}
}

// draw paints two pixel rows per cell row using the upper-half-block rune.
func (t *Terminal) draw(snap cpu.Snapshot) {
	w, h := t.screen.Size()
	offX := (w - snap.Width) / 2
	offY := (h - snap.Height/2) / 2
	if offX < 0 {
		offX = 0
	}
	if offY < 0 {
		offY = 0
	}

	for y := 0; y < snap.Height; y += 2 {
		for x := 0; x < snap.Width; x++ {
			top, bottom := t.off, t.off
			if snap.At(x, y) {
				top = t.on
			}
			if snap.At(x, y+1) {
				bottom = t.on
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(offX+x, offY+y/2, '▀', nil, style)
		}
	}
	t.screen.Show()
}
