package ppu

import "github.com/kestrel-emu/nescore/cartridge"

// PPU address-space layout.
const (
	patternTableEnd = 0x2000
	nametableStart  = 0x2000
	nametableEnd    = 0x3F00
	paletteStart    = 0x3F00
)

// nametableAddr folds a PPU address in 0x2000-0x3EFF down to one of the
// two physical 1KB nametables, following the board's wired mirroring.
// Four-screen mirroring needs cartridge-supplied extra VRAM this core's
// fixed-size vram array never provides; cartridge.Load rejects such
// cartridges with ErrFourScreenUnsupported before a PPU is ever built
// around them, so MirrorHorizontal is the only fallback this switch
// needs.
func (p *PPU) nametableAddr(addr uint16) uint16 {
	a := (addr - nametableStart) % 0x1000
	table := a / 0x0400
	offset := a % 0x0400

	switch p.cart.Mirroring() {
	case cartridge.MirrorVertical:
		return uint16(table%2)*0x0400 + offset
	case cartridge.MirrorHorizontal:
		return uint16(table/2)*0x0400 + offset
	default:
		return uint16(table/2)*0x0400 + offset
	}
}

// paletteAddr mirrors the four background-transparent-color slots
// (0x3F10/0x3F14/0x3F18/0x3F1C) onto their corresponding background
// entries (0x3F00/0x3F04/0x3F08/0x3F0C), then folds the rest mod 32.
func paletteAddr(addr uint16) uint16 {
	a := (addr - paletteStart) % 0x20
	if a >= 0x10 && a%4 == 0 {
		a -= 0x10
	}
	return a
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	a := addr % 0x4000
	switch {
	case a < patternTableEnd:
		return p.cart.ChrRead(a)
	case a < paletteStart:
		return p.vram[p.nametableAddr(a)]
	default:
		return p.palette[paletteAddr(a)]
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	a := addr % 0x4000
	switch {
	case a < patternTableEnd:
		p.cart.ChrWrite(a, val)
	case a < paletteStart:
		p.vram[p.nametableAddr(a)] = val
	default:
		p.palette[paletteAddr(a)] = val
	}
}
