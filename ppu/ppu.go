// Package ppu implements the NES Picture Processing Unit's register and
// timing model: the five CPU-visible registers, OAM and palette memory,
// nametable mirroring, and the scanline/dot state machine that drives
// vblank and NMI timing.
package ppu

import (
	"image"

	"github.com/kestrel-emu/nescore/cartridge"
)

const (
	VRAMSize    = 2048
	OAMSize     = 256
	PaletteSize = 32
)

const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	vblankScanline    = 241
	preRenderLine     = 261
)

// CartBus is what the PPU needs from the cartridge: pattern-table data
// (CHR) and the board's wired nametable mirroring.
type CartBus interface {
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

// PPU is the register and timing half of the picture processor. It does
// not render tiles or sprites: the only picture it produces is a frame
// buffer filled with the backdrop color (see frame.go).
type PPU struct {
	cart CartBus

	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	oam     [OAMSize]uint8
	palette [PaletteSize]uint8
	vram    [VRAMSize]uint8

	v, t   uint16 // current/temporary VRAM address, 15 bits used
	fineX  uint8  // fine X scroll, 3 bits used
	wLatch bool   // PPUSCROLL/PPUADDR shared write toggle

	readBuffer uint8 // delayed PPUDATA read buffer

	scanline   int
	dot        int
	frameCount uint64
	frame      *image.RGBA

	nmiOutput   bool // CTRL bit 7: whether vblank should raise NMI
	nmiOccurred bool // STATUS bit 7 latch
	nmiPending  bool // edge-triggered line to the CPU, drained by PollNMI
}

func New(cart CartBus) *PPU {
	return &PPU{
		cart:     cart,
		scanline: preRenderLine,
		frame:    image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}
}

// Register addresses, as they appear in CPU address space before bus
// mirroring folds $2008-$3FFF down to these eight.
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
)

// PPUCTRL bits.
const (
	ctrlNametableMask = 0x03
	ctrlVRAMIncrement = 1 << 2
	ctrlSpritePattern = 1 << 3
	ctrlBGPattern     = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlMasterSlave   = 1 << 6
	ctrlGenerateNMI   = 1 << 7
)

// PPUSTATUS bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVblank         = 1 << 7
)

// WriteReg handles a CPU write to one of the eight PPU-facing addresses
// (already reduced mod 8 by the bus). OAMDMA (0x4014) is handled by the
// bus directly via WriteOAMData, not here.
func (p *PPU) WriteReg(reg uint16, val uint8) {
	switch reg {
	case PPUCTRL:
		wasNMI := p.nmiOutput
		p.ctrl = val
		p.nmiOutput = val&ctrlGenerateNMI != 0
		p.t = (p.t & 0xF3FF) | (uint16(val&ctrlNametableMask) << 10)
		// Toggling NMI-on-write while still inside vblank re-fires it,
		// a well-known hardware quirk some games rely on.
		if !wasNMI && p.nmiOutput && p.nmiOccurred {
			p.nmiPending = true
		}
	case PPUMASK:
		p.mask = val
	case OAMADDR:
		p.oamAddr = val
	case OAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case PPUSCROLL:
		if !p.wLatch {
			p.t = (p.t & 0xFFE0) | uint16(val>>3)
			p.fineX = val & 0x07
		} else {
			p.t = (p.t & 0x8FFF) | (uint16(val&0x07) << 12)
			p.t = (p.t & 0xFC1F) | (uint16(val&0xF8) << 2)
		}
		p.wLatch = !p.wLatch
	case PPUADDR:
		if !p.wLatch {
			p.t = (p.t & 0x00FF) | (uint16(val&0x3F) << 8)
		} else {
			p.t = (p.t & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.wLatch = !p.wLatch
	case PPUDATA:
		p.writeVRAM(p.v, val)
		p.v += p.vramIncrement()
	}
}

// ReadReg handles a CPU read from one of the eight PPU-facing addresses.
func (p *PPU) ReadReg(reg uint16) uint8 {
	switch reg {
	case PPUSTATUS:
		result := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		if p.nmiOccurred {
			result |= statusVblank
		}
		p.nmiOccurred = false
		p.wLatch = false
		return result
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		val := p.readBuffer
		p.readBuffer = p.readVRAM(p.v)
		// Palette reads bypass the read-buffer delay.
		if p.v%0x4000 >= 0x3F00 {
			val = p.readBuffer
		}
		p.v += p.vramIncrement()
		return val
	default:
		return 0
	}
}

// PeekReg returns a register's value the way ReadReg would, but without
// any of its side effects (clearing vblank, advancing v, shifting the
// write latch). Used by non-mutating diagnostic reads like a tracer,
// which must not perturb the state of the machine it's observing.
func (p *PPU) PeekReg(reg uint16) uint8 {
	switch reg {
	case PPUSTATUS:
		result := p.status & 0xE0
		if p.nmiOccurred {
			result |= statusVblank
		}
		return result | (p.readBuffer & 0x1F)
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		if p.v%0x4000 >= paletteStart {
			return p.palette[paletteAddr(p.v%0x4000)]
		}
		return p.readBuffer
	default:
		return 0
	}
}

// WriteOAMData is the OAM-DMA entry point the bus drives 256 times per
// transfer, one source byte at a time, starting at whatever OAMADDR
// currently holds (matching real hardware, which does not reset it).
func (p *PPU) WriteOAMData(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

// PollNMI reports whether an NMI has become due since the last call,
// clearing the latch. The bus calls this once per CPU instruction and
// forwards the result as its own System.PollNMI.
func (p *PPU) PollNMI() bool {
	if p.nmiPending {
		p.nmiPending = false
		return true
	}
	return false
}

// Tick advances the PPU by one dot (a third of a CPU cycle on NTSC). The
// bus is responsible for calling this three times per CPU cycle.
func (p *PPU) Tick() {
	if p.scanline == preRenderLine && p.dot == 1 {
		p.nmiOccurred = false
		p.status &^= statusSprite0Hit | statusSpriteOverflow
	}
	if p.scanline == vblankScanline && p.dot == 1 {
		p.nmiOccurred = true
		if p.nmiOutput {
			p.nmiPending = true
		}
	}

	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline > preRenderLine {
			p.scanline = 0
			p.frameCount++
			p.fillFrame()
		}
	}
}

func (p *PPU) Scanline() int      { return p.scanline }
func (p *PPU) Dot() int           { return p.dot }
func (p *PPU) FrameCount() uint64 { return p.frameCount }

// InVBlank reports whether the PPU is currently within the vertical
// blanking interval (scanlines 241 through 260 inclusive).
func (p *PPU) InVBlank() bool {
	return p.scanline >= vblankScanline && p.scanline < preRenderLine
}
