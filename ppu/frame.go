package ppu

import "image"

const (
	FrameWidth  = 256
	FrameHeight = 240
)

// fillFrame paints the current frame buffer with the backdrop color (the
// universal background entry at palette offset 0x00, which 0x10 mirrors).
// This module's PPU models timing and registers, not tile
// and sprite compositing, so the buffer it hands a display collaborator
// is a solid field of whatever color the game last set as its backdrop
// rather than a rendered picture.
func (p *PPU) fillFrame() {
	c := SystemPalette[p.palette[0]&0x3F]
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			i := p.frame.PixOffset(x, y)
			p.frame.Pix[i+0] = c.R
			p.frame.Pix[i+1] = c.G
			p.frame.Pix[i+2] = c.B
			p.frame.Pix[i+3] = 0xFF
		}
	}
}

// Frame returns the 256x240 RGB buffer produced by the most recently
// completed frame. Callers must not mutate it; the same buffer is
// repainted in place on every frame-complete edge, so a caller that keeps
// a frame must copy it.
func (p *PPU) Frame() *image.RGBA {
	return p.frame
}
