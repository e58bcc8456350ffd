package bus

import (
	"testing"

	"github.com/kestrel-emu/nescore/cartridge"
	"github.com/kestrel-emu/nescore/mappers"
	"github.com/kestrel-emu/nescore/ppu"
)

func newTestBus() *Bus {
	rom := &cartridge.ROM{PRG: make([]byte, 32768), CHR: make([]byte, 8192)}
	m, err := mappers.Get(rom)
	if err != nil {
		panic(err)
	}
	b := New(m)
	b.AttachPPU(ppu.New(b))
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x42)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := b.Read(addr); got != 0x42 {
			t.Errorf("Read(%#04x) = %#02x, want 0x42 (RAM mirror)", addr, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x2000, 0x80) // PPUCTRL
	for _, addr := range []uint16{0x2000, 0x2008, 0x3FF8} {
		b.Write(addr, 0x80)
	}
	// PPUSTATUS does not expose PPUCTRL, so this read checks no value:
	// the test only drives writes through the 0x2008-0x3FFF mirrors into
	// the PPU's register dispatch and then reads PPUSTATUS once.
	_ = b.Read(0x2002)
}

func TestPRGMirroringForSingleBank(t *testing.T) {
	rom := &cartridge.ROM{PRG: make([]byte, 16384), CHR: make([]byte, 8192)}
	m, err := mappers.Get(rom)
	if err != nil {
		t.Fatalf("mappers.Get: %v", err)
	}
	b := New(m)
	b.AttachPPU(ppu.New(b))
	rom.PRG[0] = 0x77

	if got := b.Read(0x8000); got != 0x77 {
		t.Errorf("Read(0x8000) = %#02x, want 0x77", got)
	}
	if got := b.Read(0xC000); got != 0x77 {
		t.Errorf("Read(0xC000) = %#02x, want 0x77 (mirrored 16KB bank)", got)
	}
}

func TestExpansionRAMIsReadWriteAndIsolatedFromSaveRAM(t *testing.T) {
	b := newTestBus()
	b.Write(0x4020, 0x11)
	b.Write(0x5FFF, 0x22)

	if got := b.Read(0x4020); got != 0x11 {
		t.Errorf("Read(0x4020) = %#02x, want 0x11", got)
	}
	if got := b.Read(0x5FFF); got != 0x22 {
		t.Errorf("Read(0x5FFF) = %#02x, want 0x22", got)
	}
	if got := b.Read(0x6000); got != 0 {
		t.Errorf("Read(0x6000) = %#02x, want 0 (save RAM unaffected)", got)
	}
	if got := b.Peek(0x4020); got != 0x11 {
		t.Errorf("Peek(0x4020) = %#02x, want 0x11", got)
	}
}

func TestOAMDMACopiesFullPage(t *testing.T) {
	b := newTestBus()
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	b.Write(oamDMAReg, 0x02)

	// OAMADDR was 0 at the start of the transfer, so OAM should now
	// read back the same byte sequence through OAMDATA. OAMDATA reads
	// don't advance OAMADDR, so it is set before each read.
	for i := 0; i < 256; i++ {
		b.Write(0x2003, uint8(i)) // OAMADDR = i
		got := b.ppu.ReadReg(0x2004)
		if got != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, got, uint8(i))
		}
	}
}

type stubController struct {
	bits []uint8
	pos  int
}

func (s *stubController) Write(strobe uint8) {
	if strobe&1 != 0 {
		s.pos = 0
	}
}

func (s *stubController) Read() uint8 {
	if s.pos >= len(s.bits) {
		return 1
	}
	v := s.bits[s.pos]
	s.pos++
	return v
}

func TestControllerRouting(t *testing.T) {
	b := newTestBus()
	c1 := &stubController{bits: []uint8{1, 0, 1, 0, 0, 0, 0, 0}}
	b.AttachControllers(c1, nil)

	b.Write(joy1Reg, 1) // strobe high then low to latch
	b.Write(joy1Reg, 0)
	for _, want := range c1.bits {
		if got := b.Read(joy1Reg); got != want {
			t.Fatalf("controller read = %d, want %d", got, want)
		}
	}
}

func TestUnattachedControllerReadsZero(t *testing.T) {
	b := newTestBus()
	if got := b.Read(joy1Reg); got != 0 {
		t.Errorf("Read(joy1Reg) with no device = %d, want 0", got)
	}
}

type countingObserver struct{ calls int }

func (o *countingObserver) FrameReady(p *ppu.PPU) { o.calls++ }

func TestFrameObserverFiresOncePerFrame(t *testing.T) {
	b := newTestBus()
	obs := &countingObserver{}
	b.RegisterObserver(obs)

	// One CPU cycle advances the PPU 3 dots; tick enough CPU cycles to
	// cross a whole 341*262-dot frame.
	dotsPerFrame := 341 * 262
	cpuCycles := dotsPerFrame/3 + 1
	for i := 0; i < cpuCycles; i++ {
		b.Tick(1)
	}

	if obs.calls != 1 {
		t.Fatalf("observer called %d times, want 1 after one frame", obs.calls)
	}
}
