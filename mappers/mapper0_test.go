package mappers

import (
	"testing"

	"github.com/kestrel-emu/nescore/cartridge"
)

func TestNROMMirrorsSingleBank(t *testing.T) {
	rom := &cartridge.ROM{PRG: make([]byte, 16384), CHR: make([]byte, 8192)}
	rom.PRG[0] = 0x42
	m := newMapper0(rom)

	if got := m.PrgRead(0x8000); got != 0x42 {
		t.Fatalf("PrgRead(0x8000) = %#02x, want 0x42", got)
	}
	if got := m.PrgRead(0xC000); got != 0x42 {
		t.Fatalf("PrgRead(0xC000) = %#02x, want 0x42 (mirrored bank)", got)
	}
}

func TestNROMDoubleBankNotMirrored(t *testing.T) {
	rom := &cartridge.ROM{PRG: make([]byte, 32768), CHR: make([]byte, 8192)}
	rom.PRG[0] = 0x11
	rom.PRG[16384] = 0x22
	m := newMapper0(rom)

	if got := m.PrgRead(0x8000); got != 0x11 {
		t.Fatalf("PrgRead(0x8000) = %#02x, want 0x11", got)
	}
	if got := m.PrgRead(0xC000); got != 0x22 {
		t.Fatalf("PrgRead(0xC000) = %#02x, want 0x22", got)
	}
}

func TestNROMChrRAMWritable(t *testing.T) {
	rom := &cartridge.ROM{PRG: make([]byte, 16384), CHR: make([]byte, 8192), ChrRAM: true}
	m := newMapper0(rom)
	m.ChrWrite(0x10, 0x99)
	if got := m.ChrRead(0x10); got != 0x99 {
		t.Fatalf("ChrRead(0x10) = %#02x, want 0x99", got)
	}
}

// TestDummyMapperSatisfiesInterface exercises the flat test double a
// test can use when it needs a Mapper but not real cartridge-image
// parsing.
func TestDummyMapperSatisfiesInterface(t *testing.T) {
	dm := NewDummy()
	dm.SetMirroring(cartridge.MirrorFourScreen)

	dm.PrgWrite(0x8000, 0xAB)
	if got := dm.PrgRead(0x8000); got != 0xAB {
		t.Fatalf("PrgRead(0x8000) = %#02x, want 0xAB", got)
	}
	dm.ChrWrite(0x0010, 0xCD)
	if got := dm.ChrRead(0x0010); got != 0xCD {
		t.Fatalf("ChrRead(0x0010) = %#02x, want 0xCD", got)
	}
	if got := dm.Mirroring(); got != cartridge.MirrorFourScreen {
		t.Fatalf("Mirroring() = %v, want MirrorFourScreen", got)
	}
	if !dm.HasSaveRAM() {
		t.Fatalf("HasSaveRAM() = false, want true")
	}

	var _ Mapper = dm
}
