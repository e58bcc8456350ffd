package mappers

import "github.com/kestrel-emu/nescore/cartridge"

// dummyMapper is a flat 64KB test double: PRG and CHR reads/writes all
// land in one backing array, and mirroring is settable directly so a
// test can exercise every mirroring mode without building a
// real cartridge image.
type dummyMapper struct {
	memory    []uint8
	mirroring cartridge.Mirroring
	saveRAM   bool
}

// NewDummy returns a fresh dummy mapper; tests should take one of these
// each rather than sharing a single instance, so state from one test
// can't leak into another.
func NewDummy() *dummyMapper {
	return &dummyMapper{memory: make([]uint8, 1<<16), saveRAM: true}
}

func (dm *dummyMapper) Name() string { return "dummy" }

func (dm *dummyMapper) PrgRead(addr uint16) uint8       { return dm.memory[addr] }
func (dm *dummyMapper) PrgWrite(addr uint16, val uint8) { dm.memory[addr] = val }
func (dm *dummyMapper) ChrRead(addr uint16) uint8       { return dm.memory[addr] }
func (dm *dummyMapper) ChrWrite(addr uint16, val uint8) { dm.memory[addr] = val }
func (dm *dummyMapper) Mirroring() cartridge.Mirroring  { return dm.mirroring }
func (dm *dummyMapper) HasSaveRAM() bool                { return dm.saveRAM }

func (dm *dummyMapper) SetMirroring(m cartridge.Mirroring) { dm.mirroring = m }
