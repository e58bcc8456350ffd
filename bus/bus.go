// Package bus implements the NES system bus: CPU-visible address
// decoding across RAM, the PPU's register window, cartridge space and
// controller ports, plus the PPU-driving tick loop.
package bus

import (
	"fmt"

	"github.com/kestrel-emu/nescore/cartridge"
	"github.com/kestrel-emu/nescore/mappers"
	"github.com/kestrel-emu/nescore/ppu"
)

const (
	ramSize         = 0x0800 // 2KB internal work RAM
	ramMirrorEnd    = 0x1FFF
	ppuRegStart     = 0x2000
	ppuRegMirrorEnd = 0x3FFF
	apuIOStart      = 0x4000
	apuIOEnd        = 0x401F
	oamDMAReg       = 0x4014
	joy1Reg         = 0x4016
	joy2Reg         = 0x4017
	expRAMStart     = 0x4020
	expRAMEnd       = 0x5FFF
	saveRAMStart    = 0x6000
	saveRAMEnd      = 0x7FFF
	prgStart        = 0x8000
)

// InputDevice is the bus's view of a controller: a strobe-latched shift
// register the CPU reads one bit at a time through 0x4016/0x4017.
type InputDevice interface {
	Write(strobe uint8)
	Read() uint8
}

// FrameObserver is the display collaborator from spec.md section 9: a
// capability object handed the PPU synchronously on the frame-complete
// edge (the PPU's frame counter advancing at the end of the pre-render
// line), in
// place of the teacher's closure-over-bus callback style.
type FrameObserver interface {
	FrameReady(p *ppu.PPU)
}

// Bus wires together RAM, the PPU and a mapped cartridge into one
// 16-bit CPU address space, and drives the PPU/CPU-cycle relationship.
type Bus struct {
	ram     [ramSize]uint8
	expRAM  [expRAMEnd - expRAMStart + 1]uint8
	saveRAM [saveRAMEnd - saveRAMStart + 1]uint8
	ppu     *ppu.PPU
	mapper  mappers.Mapper

	controller1, controller2 InputDevice
	observer                 FrameObserver

	nmiPending bool
	prevFrame  uint64
}

// New wires a Bus around an already-mapped cartridge. The PPU is
// resolvable only once the Bus exists (it needs the bus as its
// CartBus), so construction is two-phase: New, then AttachPPU.
func New(mapper mappers.Mapper) *Bus {
	return &Bus{mapper: mapper}
}

// AttachPPU completes construction by giving the bus the PPU it drives.
// Must be called once, before any Read/Write/Tick.
func (b *Bus) AttachPPU(p *ppu.PPU) {
	b.ppu = p
	b.prevFrame = p.FrameCount()
}

// AttachControllers plugs input devices into 0x4016/0x4017. A nil device
// behaves as open bus (reads zero), matching unplugged hardware ports.
func (b *Bus) AttachControllers(p1, p2 InputDevice) {
	b.controller1, b.controller2 = p1, p2
}

// RegisterObserver attaches the display collaborator notified once per
// completed frame. A nil observer (the default) means no one is told.
func (b *Bus) RegisterObserver(o FrameObserver) {
	b.observer = o
}

// ChrRead/ChrWrite/Mirroring satisfy ppu.CartBus, routing pattern-table
// access straight to the mapper.
func (b *Bus) ChrRead(addr uint16) uint8       { return b.mapper.ChrRead(addr) }
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.mapper.ChrWrite(addr, val) }
func (b *Bus) Mirroring() cartridge.Mirroring  { return b.mapper.Mirroring() }

// Read implements cpu.Memory.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegMirrorEnd:
		return b.ppu.ReadReg(ppuRegStart + addr&0x0007)
	case addr == joy1Reg:
		return readController(b.controller1)
	case addr == joy2Reg:
		return readController(b.controller2)
	case addr >= apuIOStart && addr <= apuIOEnd:
		return 0 // APU registers: not modeled, reads as open bus
	case addr >= expRAMStart && addr <= expRAMEnd:
		return b.expRAM[addr-expRAMStart]
	case addr >= saveRAMStart && addr <= saveRAMEnd:
		return b.saveRAM[addr-saveRAMStart]
	case addr >= prgStart:
		return b.mapper.PrgRead(addr)
	default:
		return 0 // unmapped: open bus
	}
}

// Peek reads addr the way Read does, except that PPU registers are read
// through PeekReg rather than ReadReg so a diagnostic read (the tracer,
// a debugger) never perturbs vblank, the PPUDATA buffer or the
// PPUSCROLL/PPUADDR write latch, and the controller ports read as 0
// without shifting an attached device.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegMirrorEnd:
		return b.ppu.PeekReg(ppuRegStart + addr&0x0007)
	case addr >= prgStart:
		return b.mapper.PrgRead(addr)
	case addr >= saveRAMStart && addr <= saveRAMEnd:
		return b.saveRAM[addr-saveRAMStart]
	case addr >= expRAMStart && addr <= expRAMEnd:
		return b.expRAM[addr-expRAMStart]
	default:
		return 0
	}
}

func readController(d InputDevice) uint8 {
	if d == nil {
		return 0
	}
	return d.Read()
}

// Write implements cpu.Memory.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&0x07FF] = val
	case addr <= ppuRegMirrorEnd:
		b.ppu.WriteReg(ppuRegStart+addr&0x0007, val)
	case addr == oamDMAReg:
		b.runOAMDMA(val)
	case addr == joy1Reg:
		if b.controller1 != nil {
			b.controller1.Write(val)
		}
		if b.controller2 != nil {
			b.controller2.Write(val)
		}
	case addr >= apuIOStart && addr <= apuIOEnd:
		// APU registers: not modeled.
	case addr >= expRAMStart && addr <= expRAMEnd:
		b.expRAM[addr-expRAMStart] = val
	case addr >= saveRAMStart && addr <= saveRAMEnd:
		b.saveRAM[addr-saveRAMStart] = val
	case addr >= prgStart:
		b.mapper.PrgWrite(addr, val)
	}
}

// runOAMDMA copies the 256-byte CPU page starting at val*0x100 into OAM
// through the PPU's OAM-data port, one byte at a time. Real hardware
// stalls the CPU for 513 or 514 cycles during this; that stall isn't
// charged here (see SPEC_FULL.md), only the data movement is modeled.
func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMData(b.Read(base + uint16(i)))
	}
}

// Tick advances the PPU by 3 dots per CPU cycle (the NTSC clock ratio)
// and latches any NMI the PPU raised, surfaced to the CPU via PollNMI.
func (b *Bus) Tick(cpuCycles int) {
	for i := 0; i < cpuCycles*3; i++ {
		b.ppu.Tick()
	}
	if b.ppu.PollNMI() {
		b.nmiPending = true
	}
	if cur := b.ppu.FrameCount(); cur != b.prevFrame {
		b.prevFrame = cur
		if b.observer != nil {
			b.observer.FrameReady(b.ppu)
		}
	}
}

func (b *Bus) PollNMI() bool {
	if b.nmiPending {
		b.nmiPending = false
		return true
	}
	return false
}

func (b *Bus) String() string {
	return fmt.Sprintf("bus{mapper=%s}", b.mapper.Name())
}
