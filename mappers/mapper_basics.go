// Package mappers implements the cartridge address-decoding boards
// referenced numerically by the iNES mapper number.
package mappers

import (
	"fmt"

	"github.com/kestrel-emu/nescore/cartridge"
)

// registry is keyed by iNES mapper number; boards register themselves
// from an init func in their own file, mirroring how real iNES tooling
// treats the mapper number as a stable, globally-assigned id.
var registry = map[uint8]func(*cartridge.ROM) Mapper{}

func register(id uint8, build func(*cartridge.ROM) Mapper) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d registered twice", id))
	}
	registry[id] = build
}

// Get constructs the mapper named by rom's header, or an error if this
// core doesn't implement that board.
func Get(rom *cartridge.ROM) (Mapper, error) {
	build, ok := registry[rom.MapperNum()]
	if !ok {
		return nil, fmt.Errorf("mappers: unsupported mapper id %d", rom.MapperNum())
	}
	return build(rom), nil
}

// Mapper is a cartridge's address-decoding board: it owns PRG/CHR bank
// selection and reports the nametable mirroring wired into the board.
// RAM at 0x0000-0x1FFF is NES-internal, not cartridge state, so it's the
// bus's concern rather than the mapper's.
type Mapper interface {
	Name() string
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
	HasSaveRAM() bool
}

// baseMapper is embedded by concrete boards for the behavior every board
// shares: delegating mirroring and save-RAM presence straight to the
// header, and naming itself.
type baseMapper struct {
	name string
	rom  *cartridge.ROM
}

func (bm *baseMapper) Name() string                  { return bm.name }
func (bm *baseMapper) Mirroring() cartridge.Mirroring { return bm.rom.Mirroring() }
func (bm *baseMapper) HasSaveRAM() bool               { return bm.rom.HasBatteryRAM() }
