package mappers

import "github.com/kestrel-emu/nescore/cartridge"

func init() {
	register(0, newMapper0)
}

// mapper0 is NROM: no bank switching. A single 16KB PRG bank is mirrored
// across both halves of 0x8000-0xFFFF; a double bank fills the space
// directly. CHR is either a fixed 8KB ROM bank or, when the header
// reports no CHR ROM, the cartridge's CHR RAM.
type mapper0 struct {
	*baseMapper
}

func newMapper0(rom *cartridge.ROM) Mapper {
	return &mapper0{baseMapper: &baseMapper{name: "NROM", rom: rom}}
}

func (m *mapper0) prgOffset(addr uint16) uint16 {
	off := addr - 0x8000
	if len(m.rom.PRG) == 16384 {
		off %= 16384
	}
	return off
}

func (m *mapper0) PrgRead(addr uint16) uint8 {
	return m.rom.PRG[m.prgOffset(addr)]
}

// PrgWrite is a no-op: NROM carts have no PRG RAM or bank-select latch,
// so writes into PRG ROM space are simply dropped.
func (m *mapper0) PrgWrite(addr uint16, val uint8) {}

func (m *mapper0) ChrRead(addr uint16) uint8 {
	return m.rom.CHR[addr]
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) {
	if m.rom.ChrRAM {
		m.rom.CHR[addr] = val
	}
}
