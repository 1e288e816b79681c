package cpu

// Display dimensions for the two resolution modes.
const (
	LoresWidth  = 64
	LoresHeight = 32
	HiresWidth  = 128
	HiresHeight = 64
)

// ColorMap names the colors a renderer should use for on and off pixels.
// The values are hex strings like "#00FF00". The core never interprets them;
// they ride along on every Snapshot for the renderer's benefit.
type ColorMap struct {
	On  string
	Off string
}

// Snapshot is an immutable copy of the display buffer, safe to hand to a
// renderer running on another goroutine.
type Snapshot struct {
	Width  int
	Height int
	Pix    []bool
	Colors ColorMap
}

// At reports the pixel at (x, y). Out-of-range coordinates are off.
func (s Snapshot) At(x, y int) bool {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return false
	}
	return s.Pix[y*s.Width+x]
}

// Display is the XOR-drawn pixel grid. Dimensions are fixed between explicit
// resolution mode switches and never change mid-draw.
type Display struct {
	width  int
	height int
	hires  bool
	wrap   bool
	pix    []bool
	dirty  bool
}

func newDisplay(wrap bool) *Display {
	return &Display{
		width:  LoresWidth,
		height: LoresHeight,
		wrap:   wrap,
		pix:    make([]bool, LoresWidth*LoresHeight),
	}
}

func (d *Display) Width() int  { return d.width }
func (d *Display) Height() int { return d.height }
func (d *Display) Hires() bool { return d.hires }

// Clear switches every pixel off.
func (d *Display) Clear() {
	for i := range d.pix {
		d.pix[i] = false
	}
	d.dirty = true
}

// SetHires switches between the 64x32 and 128x64 modes. The buffer is
// reallocated blank; a mode switch never preserves pixel content.
func (d *Display) SetHires(hires bool) {
	if d.hires == hires {
		return
	}
	d.hires = hires
	if hires {
		d.width, d.height = HiresWidth, HiresHeight
	} else {
		d.width, d.height = LoresWidth, LoresHeight
	}
	d.pix = make([]bool, d.width*d.height)
	d.dirty = true
}

// Draw XORs a sprite into the buffer and returns the number of sprite rows
// that switched at least one pixel off. The base coordinates always wrap into
// range; pixels past the edges wrap or are discarded depending on the sprite
// wrap quirk. A narrow sprite is one byte per row, a wide one two.
func (d *Display) Draw(x, y int, sprite []byte, wide bool) int {
	x %= d.width
	y %= d.height

	bytesPerRow := 1
	if wide {
		bytesPerRow = 2
	}

	collided := 0
	for row := 0; row*bytesPerRow < len(sprite); row++ {
		cy := y + row
		if cy >= d.height {
			if !d.wrap {
				break
			}
			cy %= d.height
		}

		bits := uint16(sprite[row*bytesPerRow])
		width := 8
		if wide {
			bits = bits<<8 | uint16(sprite[row*bytesPerRow+1])
			width = 16
		}

		hit := false
		for col := 0; col < width; col++ {
			if bits&(1<<(width-1-col)) == 0 {
				continue
			}
			cx := x + col
			if cx >= d.width {
				if !d.wrap {
					continue
				}
				cx %= d.width
			}
			i := cy*d.width + cx
			if d.pix[i] {
				hit = true
			}
			d.pix[i] = !d.pix[i]
		}
		if hit {
			collided++
		}
	}

	d.dirty = true
	return collided
}

// Snapshot copies the buffer state. The copy is never written again by the
// emulation thread.
func (d *Display) Snapshot(colors ColorMap) Snapshot {
	pix := make([]bool, len(d.pix))
	copy(pix, d.pix)
	return Snapshot{
		Width:  d.width,
		Height: d.height,
		Pix:    pix,
		Colors: colors,
	}
}

// Dirty reports whether the buffer changed since the last call and resets
// the flag. Renderers use it to skip redundant uploads.
func (d *Display) Dirty() bool {
	dirty := d.dirty
	d.dirty = false
	return dirty
}
